package handler

import (
	"fmt"
	"net/http"
	"strings"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// shoppingListHeader is the first line of the exported document.
const shoppingListHeader = "Список покупок: \n"

// ShoppingItem is one aggregated line of the shopping list.
type ShoppingItem struct {
	Name  string
	Unit  string
	Total int
}

// BuildShoppingList sums ingredient amounts across every recipe in the
// user's shopping cart, grouped by (name, measurement unit) and ordered by
// name. The result is a pure function of the cart contents.
func BuildShoppingList(db *gorm.DB, userID uint) ([]ShoppingItem, error) {
	var items []ShoppingItem
	err := db.Model(&models.IngredientInRecipe{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, SUM(ingredient_in_recipes.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_in_recipes.ingredient_id").
		Joins("JOIN shopping_cart_items ON shopping_cart_items.recipe_id = ingredient_in_recipes.recipe_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	return items, err
}

// RenderShoppingList formats the aggregated items as the plain-text export:
// a header line followed by one "{name}: {total} {unit}" line per ingredient.
func RenderShoppingList(items []ShoppingItem) string {
	var b strings.Builder
	b.WriteString(shoppingListHeader)
	for _, item := range items {
		fmt.Fprintf(&b, "%s: %d %s\n", item.Name, item.Total, item.Unit)
	}
	return b.String()
}

// DownloadShoppingCart godoc
// @Summary      Download the shopping list
// @Description  Exports the aggregated ingredient totals of the cart as a text attachment.
// @Tags         shopping-cart
// @Produce      plain
// @Security     BearerAuth
// @Success      200  {string}  string
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /recipes/download_shopping_cart [get]
func DownloadShoppingCart(c *gin.Context) {
	viewer := viewerID(c)

	items, err := BuildShoppingList(database.DB, *viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build shopping list"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping-list.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(RenderShoppingList(items)))
}
