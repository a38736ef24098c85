package main

import (
	"fmt"
	"log"
	"net/http"

	"foodgram/backend/internal/auth"
	"foodgram/backend/internal/config"
	"foodgram/backend/internal/database"
	"foodgram/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "foodgram/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Foodgram API
// @version         1.0
// @description     This is the API for the Foodgram recipe-sharing service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Stored recipe images
	router.Static("/media", config.AppConfig.MediaRoot)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (reads are public, viewer-dependent fields use the
		// optional token)
		userRoutes := apiV1.Group("/users")
		{
			userRoutes.GET("", auth.OptionalAuthMiddleware(), handler.ListUsers)

			// /me must be registered before /:id
			me := userRoutes.Group("/me")
			me.Use(auth.AuthMiddleware())
			{
				me.GET("", handler.GetMe)
				me.GET("/subscriptions", handler.GetSubscriptions)
				me.GET("/feed", handler.FeedEvents)
			}

			userRoutes.GET("/:id", auth.OptionalAuthMiddleware(), handler.GetUserByID)
			userRoutes.POST("/:id/subscribe", auth.AuthMiddleware(), handler.Subscribe)
			userRoutes.DELETE("/:id/subscribe", auth.AuthMiddleware(), handler.Unsubscribe)
		}

		// Tag routes (read-only for everyone)
		tagRoutes := apiV1.Group("/tags")
		{
			tagRoutes.GET("", handler.GetTags)
			tagRoutes.GET("/:id", handler.GetTagByID)
		}

		// Ingredient catalog routes (read-only for everyone)
		ingredientRoutes := apiV1.Group("/ingredients")
		{
			ingredientRoutes.GET("", handler.GetIngredients)
			ingredientRoutes.GET("/:id", handler.GetIngredientByID)
		}

		// Recipe routes
		recipeRoutes := apiV1.Group("/recipes")
		{
			recipeRoutes.GET("", auth.OptionalAuthMiddleware(), handler.GetRecipes)
			recipeRoutes.GET("/download_shopping_cart", auth.AuthMiddleware(), handler.DownloadShoppingCart)
			recipeRoutes.GET("/:id", auth.OptionalAuthMiddleware(), handler.GetRecipeByID)

			protected := recipeRoutes.Group("")
			protected.Use(auth.AuthMiddleware())
			{
				protected.POST("", handler.CreateRecipe)
				protected.PATCH("/:id", handler.UpdateRecipe)
				protected.DELETE("/:id", handler.DeleteRecipe)
				protected.POST("/:id/favorite", handler.AddFavorite)
				protected.DELETE("/:id/favorite", handler.RemoveFavorite)
				protected.POST("/:id/shopping_cart", handler.AddToShoppingCart)
				protected.DELETE("/:id/shopping_cart", handler.RemoveFromShoppingCart)
			}
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			// Tags CRUD
			tags := adminRoutes.Group("/tags")
			{
				tags.POST("", handler.CreateTag)
				tags.PUT("/:id", handler.UpdateTag)
				tags.DELETE("/:id", handler.DeleteTag)
			}

			// Ingredient catalog CRUD
			ingredients := adminRoutes.Group("/ingredients")
			{
				ingredients.POST("", handler.CreateIngredient)
				ingredients.PUT("/:id", handler.UpdateIngredient)
				ingredients.DELETE("/:id", handler.DeleteIngredient)
			}
		}
	}

	addr := ":" + config.AppConfig.Port
	fmt.Printf("Server is running on %s\n", addr)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", addr)
	log.Fatal(router.Run(addr))
}
