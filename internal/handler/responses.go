package handler

import (
	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// UserResponse is the externally visible shape of a user.
type UserResponse struct {
	Email        string `json:"email" example:"chef@example.com"`
	ID           uint   `json:"id" example:"1"`
	Username     string `json:"username" example:"chef_olga"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// SubscriptionResponse extends UserResponse with the author's recipes.
// RecipesCount always reflects the full total, regardless of any limit
// applied to Recipes.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []CompactRecipeResponse `json:"recipes"`
	RecipesCount int64                   `json:"recipes_count"`
}

// TagResponse is the externally visible shape of a tag.
type TagResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// IngredientResponse is the externally visible shape of a catalog ingredient.
type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// RecipeIngredientResponse is an ingredient as it appears inside a recipe,
// carrying the amount alongside the catalog fields.
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeResponse is the full read view of a recipe. Every write operation
// re-renders its result through this shape.
type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// CompactRecipeResponse is the reduced recipe view used in favorite/cart
// confirmations and subscription listings.
type CompactRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// viewerID returns the authenticated user's ID, or nil for anonymous
// requests. Works behind both the required and the optional auth middleware.
func viewerID(c *gin.Context) *uint {
	if id, exists := c.Get("userID"); exists {
		if userID, ok := id.(uint); ok {
			return &userID
		}
	}
	return nil
}

// isSubscribed reports whether the viewer follows the author. Anonymous
// viewers are never subscribed.
func isSubscribed(db *gorm.DB, viewer *uint, authorID uint) bool {
	if viewer == nil {
		return false
	}
	var count int64
	db.Model(&models.Subscription{}).Where("user_id = ? AND author_id = ?", *viewer, authorID).Count(&count)
	return count > 0
}

// isFavorited reports whether the viewer has the recipe in favorites.
func isFavorited(db *gorm.DB, viewer *uint, recipeID uint) bool {
	if viewer == nil {
		return false
	}
	var count int64
	db.Model(&models.Favorite{}).Where("user_id = ? AND recipe_id = ?", *viewer, recipeID).Count(&count)
	return count > 0
}

// isInShoppingCart reports whether the viewer has the recipe in their cart.
func isInShoppingCart(db *gorm.DB, viewer *uint, recipeID uint) bool {
	if viewer == nil {
		return false
	}
	var count int64
	db.Model(&models.ShoppingCartItem{}).Where("user_id = ? AND recipe_id = ?", *viewer, recipeID).Count(&count)
	return count > 0
}

func newUserResponse(db *gorm.DB, user models.User, viewer *uint) UserResponse {
	return UserResponse{
		Email:        user.Email,
		ID:           user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed(db, viewer, user.ID),
	}
}

func newTagResponse(tag models.Tag) TagResponse {
	return TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func newIngredientResponse(ingredient models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

func newCompactRecipeResponse(recipe models.Recipe) CompactRecipeResponse {
	return CompactRecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}

// newRecipeResponse renders the full read view. The recipe is expected to
// have Author, Tags and Ingredients.Ingredient preloaded.
func newRecipeResponse(db *gorm.DB, recipe models.Recipe, viewer *uint) RecipeResponse {
	tags := make([]TagResponse, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		if tag != nil {
			tags = append(tags, newTagResponse(*tag))
		}
	}

	ingredients := make([]RecipeIngredientResponse, 0, len(recipe.Ingredients))
	for _, entry := range recipe.Ingredients {
		ingredients = append(ingredients, RecipeIngredientResponse{
			ID:              entry.IngredientID,
			Name:            entry.Ingredient.Name,
			MeasurementUnit: entry.Ingredient.MeasurementUnit,
			Amount:          entry.Amount,
		})
	}

	return RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           newUserResponse(db, recipe.Author, viewer),
		Ingredients:      ingredients,
		IsFavorited:      isFavorited(db, viewer, recipe.ID),
		IsInShoppingCart: isInShoppingCart(db, viewer, recipe.ID),
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

// newSubscriptionResponse renders an author with their recipes. A non-nil
// recipesLimit truncates the recipe list but never the count.
func newSubscriptionResponse(db *gorm.DB, author models.User, viewer *uint, recipesLimit *int) SubscriptionResponse {
	query := db.Where("author_id = ?", author.ID).Order("pub_date DESC")
	if recipesLimit != nil && *recipesLimit >= 0 {
		query = query.Limit(*recipesLimit)
	}

	var recipes []models.Recipe
	query.Find(&recipes)

	compact := make([]CompactRecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		compact = append(compact, newCompactRecipeResponse(recipe))
	}

	var recipesCount int64
	db.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&recipesCount)

	return SubscriptionResponse{
		UserResponse: newUserResponse(db, author, viewer),
		Recipes:      compact,
		RecipesCount: recipesCount,
	}
}
