package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/kitchenlink-backend/internal/handlers"
	"github.com/yungbote/kitchenlink-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName    string
	AllowOrigins   []string
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handlers.UserHandler
	CatalogHandler *handlers.CatalogHandler
	RecipeHandler  *handlers.RecipeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	// Cors
	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{
			"http://localhost:80",
			"http://localhost:3000",
		}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/tags", cfg.CatalogHandler.ListTags)
		api.GET("/tags/:id", cfg.CatalogHandler.GetTag)
		api.GET("/ingredients", cfg.CatalogHandler.ListIngredients)
		api.GET("/ingredients/:id", cfg.CatalogHandler.GetIngredient)
	}

	// ===============
	// || Optional  ||
	// ===============
	// Listings and detail views render membership flags for authenticated
	// callers and plain false for anonymous ones.
	optional := api.Group("/")
	optional.Use(cfg.AuthMiddleware.OptionalAuth())
	optional.GET("/recipes", cfg.RecipeHandler.List)
	optional.GET("/recipes/:id", cfg.RecipeHandler.Get)
	optional.GET("/users", cfg.UserHandler.List)
	optional.GET("/users/:id", cfg.UserHandler.GetByID)

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// User
	// /users/me and /users/subscriptions must register before /users/:id.
	protected.GET("/users/me", cfg.UserHandler.GetMe)
	protected.PATCH("/users/me", cfg.UserHandler.UpdateMe)
	protected.GET("/users/subscriptions", cfg.UserHandler.Subscriptions)
	protected.POST("/users/:id/subscribe", cfg.UserHandler.Subscribe)
	protected.DELETE("/users/:id/subscribe", cfg.UserHandler.Unsubscribe)
	// Recipes
	protected.POST("/recipes", cfg.RecipeHandler.Create)
	protected.PATCH("/recipes/:id", cfg.RecipeHandler.Update)
	protected.DELETE("/recipes/:id", cfg.RecipeHandler.Delete)
	protected.POST("/recipes/:id/favorite", cfg.RecipeHandler.AddFavorite)
	protected.DELETE("/recipes/:id/favorite", cfg.RecipeHandler.RemoveFavorite)
	protected.POST("/recipes/:id/shopping_cart", cfg.RecipeHandler.AddToCart)
	protected.DELETE("/recipes/:id/shopping_cart", cfg.RecipeHandler.RemoveFromCart)
	protected.GET("/recipes/download_shopping_cart", cfg.RecipeHandler.DownloadShoppingCart)

	return router
}
