package handler

import (
	"net/http"
	"strconv"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type IngredientInput struct {
	Name            string `json:"name" binding:"required,max=150"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=150"`
}

// GetIngredients godoc
// @Summary      List ingredients
// @Description  Retrieves the ingredient catalog, optionally filtered by name prefix.
// @Tags         ingredients
// @Produce      json
// @Param        name  query  string  false  "Name prefix filter"
// @Success      200  {array}  IngredientResponse
// @Router       /ingredients [get]
func GetIngredients(c *gin.Context) {
	query := database.DB.Order("name")
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", name+"%")
	}

	var ingredients []models.Ingredient
	query.Find(&ingredients)

	response := make([]IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		response = append(response, newIngredientResponse(ingredient))
	}
	c.JSON(http.StatusOK, response)
}

// GetIngredientByID godoc
// @Summary      Get an ingredient
// @Description  Retrieves a single catalog ingredient by ID.
// @Tags         ingredients
// @Produce      json
// @Param        id   path      int  true  "Ingredient ID"
// @Success      200  {object}  IngredientResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Ingredient not found"
// @Router       /ingredients/{id} [get]
func GetIngredientByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var ingredient models.Ingredient
	if err := database.DB.First(&ingredient, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	c.JSON(http.StatusOK, newIngredientResponse(ingredient))
}

// CreateIngredient godoc
// @Summary      Create an ingredient
// @Description  Adds a new ingredient to the catalog.
// @Tags         admin-ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body IngredientInput true "Ingredient Info"
// @Success      201  {object}  IngredientResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Ingredient already exists"
// @Router       /admin/ingredients [post]
func CreateIngredient(c *gin.Context) {
	var input IngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient := models.Ingredient{Name: input.Name, MeasurementUnit: input.MeasurementUnit}
	if err := database.DB.Create(&ingredient).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Ingredient already exists or another error occurred"})
		return
	}

	c.JSON(http.StatusCreated, newIngredientResponse(ingredient))
}

// UpdateIngredient godoc
// @Summary      Update an ingredient
// @Description  Updates the name and measurement unit of a catalog ingredient.
// @Tags         admin-ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int              true  "Ingredient ID"
// @Param        input body IngredientInput true "New Ingredient Info"
// @Success      200  {object}  IngredientResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Ingredient not found"
// @Router       /admin/ingredients/{id} [put]
func UpdateIngredient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input IngredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ingredient models.Ingredient
	if err := database.DB.First(&ingredient, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	database.DB.Model(&ingredient).Updates(map[string]interface{}{
		"name":             input.Name,
		"measurement_unit": input.MeasurementUnit,
	})
	c.JSON(http.StatusOK, newIngredientResponse(ingredient))
}

// DeleteIngredient godoc
// @Summary      Delete an ingredient
// @Description  Removes an ingredient from the catalog.
// @Tags         admin-ingredients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Ingredient ID"
// @Success      200  {object}  map[string]string "{"message": "Ingredient deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "Ingredient not found"
// @Router       /admin/ingredients/{id} [delete]
func DeleteIngredient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	result := database.DB.Delete(&models.Ingredient{}, id)
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ingredient not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted"})
}
