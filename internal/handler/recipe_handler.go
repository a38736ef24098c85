package handler

import (
	"net/http"
	"strconv"

	"foodgram/backend/internal/config"
	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"
	"foodgram/backend/internal/storage"
	"foodgram/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// RecipeIngredientInput is one (ingredient id, amount) pair in a submission.
type RecipeIngredientInput struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}

// CreateRecipeInput defines the structure for recipe creation.
type CreateRecipeInput struct {
	Name        string                  `json:"name" binding:"required,max=150"`
	Text        string                  `json:"text" binding:"required"`
	Image       string                  `json:"image" binding:"required"`
	CookingTime int                     `json:"cooking_time" binding:"required"`
	Tags        []uint                  `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients" binding:"required"`
}

// UpdateRecipeInput defines the structure for recipe updates. Nil fields are
// left untouched; a non-nil tag or ingredient list replaces the previous one
// wholesale.
type UpdateRecipeInput struct {
	Name        *string                 `json:"name"`
	Text        *string                 `json:"text"`
	Image       *string                 `json:"image"`
	CookingTime *int                    `json:"cooking_time"`
	Tags        []uint                  `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

// PaginatedRecipeResponse defines the structure for a paginated list of recipes.
type PaginatedRecipeResponse struct {
	Data []RecipeResponse `json:"data"`
	Meta PaginationMeta   `json:"meta"`
}

// endregion

// region --- Helpers ---

// validateIngredientEntries checks for duplicates and amount bounds.
func validateIngredientEntries(entries []RecipeIngredientInput) error {
	ids := make([]uint, 0, len(entries))
	for _, entry := range entries {
		if err := validation.ValidateAmount(entry.Amount); err != nil {
			return err
		}
		ids = append(ids, entry.ID)
	}
	return validation.ValidateIngredientIDs(ids)
}

// loadTags resolves tag IDs, failing when any of them is unknown.
func loadTags(db *gorm.DB, ids []uint) ([]*models.Tag, bool) {
	var tags []*models.Tag
	db.Find(&tags, ids)
	return tags, len(tags) == len(ids)
}

// ingredientsExist reports whether every referenced ingredient is in the catalog.
func ingredientsExist(db *gorm.DB, entries []RecipeIngredientInput) bool {
	ids := make([]uint, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	var count int64
	db.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count)
	return count == int64(len(ids))
}

// replaceIngredients deletes every ingredient row of the recipe and recreates
// them from the submission. Must run inside a transaction.
func replaceIngredients(tx *gorm.DB, recipeID uint, entries []RecipeIngredientInput) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.IngredientInRecipe{}).Error; err != nil {
		return err
	}

	if len(entries) == 0 {
		return nil
	}

	rows := make([]models.IngredientInRecipe, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, models.IngredientInRecipe{
			RecipeID:     recipeID,
			IngredientID: entry.ID,
			Amount:       entry.Amount,
		})
	}
	return tx.Create(&rows).Error
}

// loadFullRecipe fetches a recipe with everything the read view needs.
func loadFullRecipe(db *gorm.DB, id uint) (models.Recipe, error) {
	var recipe models.Recipe
	err := db.Preload("Author").Preload("Tags").Preload("Ingredients.Ingredient").First(&recipe, id).Error
	return recipe, err
}

// endregion

// region --- Handlers ---

// CreateRecipe godoc
// @Summary      Create a recipe
// @Description  Creates a recipe with its tags and quantified ingredients. The image is a base64 payload.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateRecipeInput true "Recipe Info"
// @Success      201  {object}  RecipeResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /recipes [post]
func CreateRecipe(c *gin.Context) {
	viewer := viewerID(c)

	var input CreateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validation.ValidateCookingTime(input.CookingTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.ValidateTagIDs(input.Tags); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validateIngredientEntries(input.Ingredients); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tags, ok := loadTags(database.DB, input.Tags)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tag in submission"})
		return
	}
	if !ingredientsExist(database.DB, input.Ingredients) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown ingredient in submission"})
		return
	}

	imageRef, err := storage.SaveBase64Image(config.AppConfig.MediaRoot, input.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := models.Recipe{
		AuthorID:    *viewer,
		Name:        input.Name,
		Image:       imageRef,
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
			return err
		}
		return replaceIngredients(tx, recipe.ID, input.Ingredients)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	full, err := loadFullRecipe(database.DB, recipe.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return
	}

	notifyFollowers(*viewer, full)

	c.JSON(http.StatusCreated, newRecipeResponse(database.DB, full, viewer))
}

// GetRecipes godoc
// @Summary      List recipes
// @Description  Retrieves a paginated list of recipes, newest first, with optional filters.
// @Tags         recipes
// @Produce      json
// @Param        author              query  int     false  "Filter by author ID"
// @Param        tags                query  string  false  "Filter by tag slug (repeatable)"
// @Param        is_favorited        query  bool    false  "Only the viewer's favorites"
// @Param        is_in_shopping_cart query  bool    false  "Only recipes in the viewer's cart"
// @Param        page                query  int     false  "Page number" default(1)
// @Param        limit               query  int     false  "Items per page" default(10)
// @Success      200  {object}  PaginatedRecipeResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /recipes [get]
func GetRecipes(c *gin.Context) {
	viewer := viewerID(c)
	page, limit := parsePageLimit(c)

	var authorID *uint
	if authorStr := c.Query("author"); authorStr != "" {
		parsed, err := strconv.ParseUint(authorStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author ID"})
			return
		}
		id := uint(parsed)
		authorID = &id
	}
	tagSlugs := c.QueryArray("tags")
	favoritedOnly, _ := strconv.ParseBool(c.Query("is_favorited"))
	inCartOnly, _ := strconv.ParseBool(c.Query("is_in_shopping_cart"))

	// The filters on favorites and cart only make sense for an
	// authenticated viewer; anonymous requests ignore them.
	if viewer == nil {
		favoritedOnly = false
		inCartOnly = false
	}

	buildQuery := func() *gorm.DB {
		query := database.DB.Model(&models.Recipe{})
		if authorID != nil {
			query = query.Where("recipes.author_id = ?", *authorID)
		}
		if favoritedOnly {
			query = query.Joins("JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?", *viewer)
		}
		if inCartOnly {
			query = query.Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = recipes.id AND shopping_cart_items.user_id = ?", *viewer)
		}
		if len(tagSlugs) > 0 {
			query = query.Joins("JOIN recipe_tags rt ON rt.recipe_id = recipes.id").
				Joins("JOIN tags ON tags.id = rt.tag_id").
				Where("tags.slug IN ?", tagSlugs).
				Group("recipes.id")
		}
		return query
	}

	// A grouped query needs its count taken over the distinct groups.
	var totalItems int64
	if len(tagSlugs) > 0 {
		subQuery := buildQuery().Select("recipes.id")
		if err := database.DB.Table("(?) as sub", subQuery).Count(&totalItems).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count recipes"})
			return
		}
	} else {
		if err := buildQuery().Count(&totalItems).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count recipes"})
			return
		}
	}

	var recipes []models.Recipe
	offset := (page - 1) * limit
	err := buildQuery().
		Preload("Author").Preload("Tags").Preload("Ingredients.Ingredient").
		Order("recipes.pub_date DESC").
		Offset(offset).Limit(limit).
		Find(&recipes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipes"})
		return
	}

	response := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, newRecipeResponse(database.DB, recipe, viewer))
	}

	c.JSON(http.StatusOK, PaginatedRecipeResponse{
		Data: response,
		Meta: NewPaginatedResponse(response, totalItems, page, limit).Meta,
	})
}

// GetRecipeByID godoc
// @Summary      Get a recipe
// @Description  Retrieves the full read view of a single recipe.
// @Tags         recipes
// @Produce      json
// @Param        id   path      int  true  "Recipe ID"
// @Success      200  {object}  RecipeResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipe not found"
// @Router       /recipes/{id} [get]
func GetRecipeByID(c *gin.Context) {
	viewer := viewerID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := loadFullRecipe(database.DB, uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(database.DB, recipe, viewer))
}

// UpdateRecipe godoc
// @Summary      Update a recipe
// @Description  Updates a recipe's fields; a supplied tag or ingredient list replaces the old one wholesale.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Recipe ID"
// @Param        input body      UpdateRecipeInput true  "Updated fields"
// @Success      200   {object}  RecipeResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Only the author may edit"
// @Failure      404   {object}  ErrorResponse "Recipe not found"
// @Failure      500   {object}  ErrorResponse
// @Router       /recipes/{id} [patch]
func UpdateRecipe(c *gin.Context) {
	viewer := viewerID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var recipe models.Recipe
	if err := database.DB.First(&recipe, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if recipe.AuthorID != *viewer {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may edit this recipe"})
		return
	}

	var input UpdateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.CookingTime != nil {
		if err := validation.ValidateCookingTime(*input.CookingTime); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var tags []*models.Tag
	if input.Tags != nil {
		if err := validation.ValidateTagIDs(input.Tags); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var ok bool
		if tags, ok = loadTags(database.DB, input.Tags); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown tag in submission"})
			return
		}
	}

	if input.Ingredients != nil {
		if err := validateIngredientEntries(input.Ingredients); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !ingredientsExist(database.DB, input.Ingredients) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown ingredient in submission"})
			return
		}
	}

	if input.Name != nil {
		recipe.Name = *input.Name
	}
	if input.Text != nil {
		recipe.Text = *input.Text
	}
	if input.CookingTime != nil {
		recipe.CookingTime = *input.CookingTime
	}
	if input.Image != nil {
		imageRef, err := storage.SaveBase64Image(config.AppConfig.MediaRoot, *input.Image)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		recipe.Image = imageRef
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author").Save(&recipe).Error; err != nil {
			return err
		}
		if input.Tags != nil {
			if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		if input.Ingredients != nil {
			return replaceIngredients(tx, recipe.ID, input.Ingredients)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	full, err := loadFullRecipe(database.DB, recipe.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(database.DB, full, viewer))
}

// DeleteRecipe godoc
// @Summary      Delete a recipe
// @Description  Deletes a recipe together with its associations.
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Recipe ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Only the author may delete"
// @Failure      404  {object}  ErrorResponse "Recipe not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /recipes/{id} [delete]
func DeleteRecipe(c *gin.Context) {
	viewer := viewerID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var recipe models.Recipe
	if err := database.DB.First(&recipe, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	if recipe.AuthorID != *viewer {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author may delete this recipe"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientInRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.ShoppingCartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.Status(http.StatusNoContent)
}

// endregion
