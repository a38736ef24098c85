package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRouter() *gin.Engine {
	router := gin.New()
	router.POST("/auth/register", RegisterUser)
	router.POST("/auth/login", LoginUser)
	router.GET("/users", ListUsers)
	router.GET("/users/:id", GetUserByID)
	return router
}

func registerBody(username string) gin.H {
	return gin.H{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "password123",
	}
}

func TestRegisterUser(t *testing.T) {
	setupTest(t)
	router := userRouter()

	w := doJSON(router, http.MethodPost, "/auth/register", registerBody("chef_olga"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]string
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp["token"])
}

func TestRegisterUserInvalidUsername(t *testing.T) {
	setupTest(t)
	router := userRouter()

	t.Run("reserved", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/auth/register", registerBody("me"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("forbidden characters", func(t *testing.T) {
		body := registerBody("valid")
		body["username"] = "chef olga!"
		w := doJSON(router, http.MethodPost, "/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "not allowed")
	})
}

func TestRegisterUserDuplicate(t *testing.T) {
	setupTest(t)
	router := userRouter()

	w := doJSON(router, http.MethodPost, "/auth/register", registerBody("chef_olga"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/auth/register", registerBody("chef_olga"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginUser(t *testing.T) {
	setupTest(t)
	router := userRouter()

	w := doJSON(router, http.MethodPost, "/auth/register", registerBody("chef_olga"))
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("valid credentials", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/auth/login", gin.H{
			"email":    "chef_olga@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]string
		decodeBody(t, w, &resp)
		assert.NotEmpty(t, resp["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/auth/login", gin.H{
			"email":    "chef_olga@example.com",
			"password": "wrongpassword",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/auth/login", gin.H{
			"email":    "nobody@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetUserByIDSubscriptionField(t *testing.T) {
	db := setupTest(t)
	follower := createUser(t, db, "follower")
	author := createUser(t, db, "author")

	// Anonymous viewers are never subscribed.
	router := userRouter()
	w := doJSON(router, http.MethodGet, "/users/"+itoa(author.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp UserResponse
	decodeBody(t, w, &resp)
	assert.False(t, resp.IsSubscribed)

	// An authenticated follower sees true after subscribing.
	authed := gin.New()
	authed.POST("/users/:id/subscribe", authAs(follower.ID), Subscribe)
	authed.GET("/users/:id", authAs(follower.ID), GetUserByID)

	w = doJSON(authed, http.MethodPost, "/users/"+itoa(author.ID)+"/subscribe", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(authed, http.MethodGet, "/users/"+itoa(author.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.True(t, resp.IsSubscribed)
}

func TestListUsers(t *testing.T) {
	db := setupTest(t)
	createUser(t, db, "alice")
	createUser(t, db, "bob")

	router := userRouter()
	w := doJSON(router, http.MethodGet, "/users?q=al", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PaginatedUserResponse
	decodeBody(t, w, &resp)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "alice", resp.Data[0].Username)
}
