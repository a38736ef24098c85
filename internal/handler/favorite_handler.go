package handler

import (
	"errors"
	"net/http"
	"strconv"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"
	"foodgram/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddFavorite godoc
// @Summary      Add a recipe to favorites
// @Description  Bookmarks the recipe for the current user.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Recipe ID"
// @Success      201  {object}  CompactRecipeResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipe not found"
// @Failure      409  {object}  ErrorResponse "Already favorited"
// @Failure      500  {object}  ErrorResponse
// @Router       /recipes/{id}/favorite [post]
func AddFavorite(c *gin.Context) {
	addRecipeRelation(c, &models.Favorite{}, validation.ErrAlreadyFavorited)
}

// RemoveFavorite godoc
// @Summary      Remove a recipe from favorites
// @Description  Removes the bookmark; fails if the recipe was not favorited.
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Recipe ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Favorite not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /recipes/{id}/favorite [delete]
func RemoveFavorite(c *gin.Context) {
	removeRecipeRelation(c, &models.Favorite{}, "Favorite not found")
}

// AddToShoppingCart godoc
// @Summary      Add a recipe to the shopping cart
// @Description  Stages the recipe for the shopping-list export.
// @Tags         shopping-cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Recipe ID"
// @Success      201  {object}  CompactRecipeResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipe not found"
// @Failure      409  {object}  ErrorResponse "Already in cart"
// @Failure      500  {object}  ErrorResponse
// @Router       /recipes/{id}/shopping_cart [post]
func AddToShoppingCart(c *gin.Context) {
	addRecipeRelation(c, &models.ShoppingCartItem{}, validation.ErrAlreadyInCart)
}

// RemoveFromShoppingCart godoc
// @Summary      Remove a recipe from the shopping cart
// @Description  Unstages the recipe; fails if it was not in the cart.
// @Tags         shopping-cart
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Recipe ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Recipe not in cart"
// @Failure      500  {object}  ErrorResponse
// @Router       /recipes/{id}/shopping_cart [delete]
func RemoveFromShoppingCart(c *gin.Context) {
	removeRecipeRelation(c, &models.ShoppingCartItem{}, "Recipe not in cart")
}

// addRecipeRelation creates a (user, recipe) row for favorites or the cart.
// Both share the same shape and rules, only the model and the conflict error
// differ.
func addRecipeRelation(c *gin.Context, model interface{}, conflictErr error) {
	viewer := viewerID(c)
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var recipe models.Recipe
	if err := database.DB.First(&recipe, uint(recipeID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var count int64
	database.DB.Model(model).Where("user_id = ? AND recipe_id = ?", *viewer, recipeID).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
		return
	}

	var createErr error
	switch model.(type) {
	case *models.Favorite:
		createErr = database.DB.Create(&models.Favorite{UserID: *viewer, RecipeID: uint(recipeID)}).Error
	case *models.ShoppingCartItem:
		createErr = database.DB.Create(&models.ShoppingCartItem{UserID: *viewer, RecipeID: uint(recipeID)}).Error
	}
	if createErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save"})
		return
	}

	c.JSON(http.StatusCreated, newCompactRecipeResponse(recipe))
}

// removeRecipeRelation deletes a (user, recipe) row, 404ing when it is absent.
func removeRecipeRelation(c *gin.Context, model interface{}, notFoundMsg string) {
	viewer := viewerID(c)
	recipeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	result := database.DB.Where("user_id = ? AND recipe_id = ?", *viewer, recipeID).Delete(model)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}

	c.Status(http.StatusNoContent)
}
