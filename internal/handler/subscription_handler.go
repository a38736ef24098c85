package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"foodgram/backend/internal/database"
	"foodgram/backend/internal/feed"
	"foodgram/backend/internal/models"
	"foodgram/backend/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaginatedSubscriptionResponse defines the structure for a paginated list of
// followed authors.
type PaginatedSubscriptionResponse struct {
	Data []SubscriptionResponse `json:"data"`
	Meta PaginationMeta         `json:"meta"`
}

// GetSubscriptions godoc
// @Summary      List followed authors
// @Description  Retrieves the authors the current user is subscribed to, each with their recipes.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        page          query  int  false  "Page number" default(1)
// @Param        limit         query  int  false  "Items per page" default(10)
// @Param        recipes_limit query  int  false  "Max recipes rendered per author"
// @Success      200  {object}  PaginatedSubscriptionResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/me/subscriptions [get]
func GetSubscriptions(c *gin.Context) {
	viewer := viewerID(c)
	page, limit := parsePageLimit(c)

	var recipesLimit *int
	if limitStr := c.Query("recipes_limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			recipesLimit = &parsed
		}
	}

	query := database.DB.Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", *viewer).
		Order("users.username")

	paginated, err := Paginate[models.User](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscriptions"})
		return
	}

	responses := make([]SubscriptionResponse, 0, len(paginated.Data))
	for _, author := range paginated.Data {
		responses = append(responses, newSubscriptionResponse(database.DB, author, viewer, recipesLimit))
	}

	c.JSON(http.StatusOK, PaginatedSubscriptionResponse{Data: responses, Meta: paginated.Meta})
}

// Subscribe godoc
// @Summary      Subscribe to an author
// @Description  Creates a follow relationship from the current user to the author.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Author ID"
// @Success      201  {object}  SubscriptionResponse
// @Failure      400  {object}  ErrorResponse "Self-subscription"
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Author not found"
// @Failure      409  {object}  ErrorResponse "Already subscribed"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{id}/subscribe [post]
func Subscribe(c *gin.Context) {
	viewer := viewerID(c)
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author ID"})
		return
	}

	if err := validation.ValidateSubscription(*viewer, uint(authorID)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var author models.User
	if err := database.DB.First(&author, uint(authorID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
		return
	}

	var existing models.Subscription
	err = database.DB.Where("user_id = ? AND author_id = ?", *viewer, authorID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": validation.ErrDuplicateSubscription.Error()})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check subscription"})
		return
	}

	subscription := models.Subscription{
		UserID:   *viewer,
		AuthorID: uint(authorID),
	}
	if err := database.DB.Create(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusCreated, newSubscriptionResponse(database.DB, author, viewer, nil))
}

// Unsubscribe godoc
// @Summary      Unsubscribe from an author
// @Description  Removes the follow relationship from the current user to the author.
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Author ID"
// @Success      204  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Subscription not found"
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{id}/subscribe [delete]
func Unsubscribe(c *gin.Context) {
	viewer := viewerID(c)
	authorID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author ID"})
		return
	}

	result := database.DB.Where("user_id = ? AND author_id = ?", *viewer, authorID).Delete(&models.Subscription{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove subscription"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// FeedEvents godoc
// @Summary      Stream the subscription feed
// @Description  Server-sent events with publications from followed authors.
// @Tags         subscriptions
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me/feed [get]
func FeedEvents(c *gin.Context) {
	viewer := viewerID(c)

	client := make(feed.Client, 16)
	feed.GlobalHub.Subscribe(*viewer, client)
	defer feed.GlobalHub.Unsubscribe(*viewer, client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// notifyFollowers pushes a publication event to everyone subscribed to the
// author. Failures here never affect the request that triggered it.
func notifyFollowers(authorID uint, recipe models.Recipe) {
	var followerIDs []uint
	if err := database.DB.Model(&models.Subscription{}).
		Where("author_id = ?", authorID).
		Pluck("user_id", &followerIDs).Error; err != nil {
		return
	}
	if len(followerIDs) == 0 {
		return
	}

	feed.GlobalHub.Notify(followerIDs, feed.Event{
		Type:    feed.EventTypeRecipePublished,
		Payload: newCompactRecipeResponse(recipe),
	})
}
