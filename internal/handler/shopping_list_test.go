package handler

import (
	"net/http"
	"testing"

	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShoppingListAggregates(t *testing.T) {
	db := setupTest(t)
	author := createUser(t, db, "author")
	buyer := createUser(t, db, "buyer")
	tag := createTag(t, db, "dinner")
	flour := createIngredient(t, db, "flour", "g")
	sugar := createIngredient(t, db, "sugar", "g")
	milk := createIngredient(t, db, "milk", "ml")

	pancakes := createRecipe(t, db, author, "Pancakes", tag,
		ingredientEntry{flour, 200}, ingredientEntry{sugar, 100})
	dough := createRecipe(t, db, author, "Dough", tag,
		ingredientEntry{flour, 300}, ingredientEntry{milk, 250})

	require.NoError(t, db.Create(&models.ShoppingCartItem{UserID: buyer.ID, RecipeID: pancakes.ID}).Error)
	require.NoError(t, db.Create(&models.ShoppingCartItem{UserID: buyer.ID, RecipeID: dough.ID}).Error)

	items, err := BuildShoppingList(db, buyer.ID)
	require.NoError(t, err)

	// Totals are summed per ingredient and sorted by name.
	require.Len(t, items, 3)
	assert.Equal(t, ShoppingItem{Name: "flour", Unit: "g", Total: 500}, items[0])
	assert.Equal(t, ShoppingItem{Name: "milk", Unit: "ml", Total: 250}, items[1])
	assert.Equal(t, ShoppingItem{Name: "sugar", Unit: "g", Total: 100}, items[2])
}

func TestBuildShoppingListScenario(t *testing.T) {
	db := setupTest(t)
	author := createUser(t, db, "usera")
	buyer := createUser(t, db, "userb")
	breakfast := createTag(t, db, "breakfast")
	flour := createIngredient(t, db, "flour", "g")
	sugar := createIngredient(t, db, "sugar", "g")

	recipe := createRecipe(t, db, author, "Pancakes", breakfast,
		ingredientEntry{flour, 200}, ingredientEntry{sugar, 100})
	require.NoError(t, db.Create(&models.ShoppingCartItem{UserID: buyer.ID, RecipeID: recipe.ID}).Error)

	items, err := BuildShoppingList(db, buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, []ShoppingItem{
		{Name: "flour", Unit: "g", Total: 200},
		{Name: "sugar", Unit: "g", Total: 100},
	}, items)
}

func TestBuildShoppingListEmptyCart(t *testing.T) {
	db := setupTest(t)
	buyer := createUser(t, db, "buyer")

	items, err := BuildShoppingList(db, buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRenderShoppingList(t *testing.T) {
	text := RenderShoppingList([]ShoppingItem{
		{Name: "flour", Unit: "g", Total: 500},
		{Name: "sugar", Unit: "g", Total: 100},
	})
	assert.Equal(t, "Список покупок: \nflour: 500 g\nsugar: 100 g\n", text)
}

func TestDownloadShoppingCart(t *testing.T) {
	db := setupTest(t)
	author := createUser(t, db, "author")
	buyer := createUser(t, db, "buyer")
	tag := createTag(t, db, "dinner")
	flour := createIngredient(t, db, "flour", "g")
	recipe := createRecipe(t, db, author, "Dough", tag, ingredientEntry{flour, 200})
	require.NoError(t, db.Create(&models.ShoppingCartItem{UserID: buyer.ID, RecipeID: recipe.ID}).Error)

	router := gin.New()
	router.GET("/recipes/download_shopping_cart", authAs(buyer.ID), DownloadShoppingCart)

	w := doJSON(router, http.MethodGet, "/recipes/download_shopping_cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="shopping-list.txt"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "Список покупок: \nflour: 200 g\n", w.Body.String())
}
