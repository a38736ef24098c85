package handler

import (
	"net/http"
	"testing"

	"foodgram/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscriptionRouter(userID uint) *gin.Engine {
	router := gin.New()
	router.GET("/users/me/subscriptions", authAs(userID), GetSubscriptions)
	router.POST("/users/:id/subscribe", authAs(userID), Subscribe)
	router.DELETE("/users/:id/subscribe", authAs(userID), Unsubscribe)
	return router
}

func TestSubscriptionLifecycle(t *testing.T) {
	db := setupTest(t)
	follower := createUser(t, db, "follower")
	author := createUser(t, db, "author")

	router := subscriptionRouter(follower.ID)
	path := "/users/" + itoa(author.ID) + "/subscribe"

	w := doJSON(router, http.MethodPost, path, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp SubscriptionResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, author.ID, resp.ID)
	assert.True(t, resp.IsSubscribed)

	// Subscribing twice conflicts.
	w = doJSON(router, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Removing succeeds once, then 404s.
	w = doJSON(router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelfSubscriptionRejected(t *testing.T) {
	db := setupTest(t)
	user := createUser(t, db, "loner")

	router := subscriptionRouter(user.ID)
	w := doJSON(router, http.MethodPost, "/users/"+itoa(user.ID)+"/subscribe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	db := setupTest(t)
	follower := createUser(t, db, "follower")

	router := subscriptionRouter(follower.ID)
	w := doJSON(router, http.MethodPost, "/users/9999/subscribe", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeStorageFailure(t *testing.T) {
	db := setupTest(t)
	follower := createUser(t, db, "follower")
	author := createUser(t, db, "author")

	// A failing duplicate check must surface as a server error, not as a
	// conflict.
	require.NoError(t, db.Migrator().DropTable(&models.Subscription{}))

	router := subscriptionRouter(follower.ID)
	w := doJSON(router, http.MethodPost, "/users/"+itoa(author.ID)+"/subscribe", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetSubscriptionsRecipesLimit(t *testing.T) {
	db := setupTest(t)
	follower := createUser(t, db, "follower")
	author := createUser(t, db, "author")
	tag := createTag(t, db, "dinner")
	flour := createIngredient(t, db, "flour", "g")

	createRecipe(t, db, author, "First", tag, ingredientEntry{flour, 100})
	createRecipe(t, db, author, "Second", tag, ingredientEntry{flour, 100})
	createRecipe(t, db, author, "Third", tag, ingredientEntry{flour, 100})

	router := subscriptionRouter(follower.ID)
	w := doJSON(router, http.MethodPost, "/users/"+itoa(author.ID)+"/subscribe", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/users/me/subscriptions?recipes_limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedSubscriptionResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Data, 1)
	// The recipe list honors the limit, the count does not.
	assert.Len(t, resp.Data[0].Recipes, 2)
	assert.EqualValues(t, 3, resp.Data[0].RecipesCount)
	assert.True(t, resp.Data[0].IsSubscribed)
}
