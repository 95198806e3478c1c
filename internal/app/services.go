package app

import (
	"os"

	"gorm.io/gorm"

	redisclient "github.com/yungbote/kitchenlink-backend/internal/clients/redis"
	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/services"
	"github.com/yungbote/kitchenlink-backend/internal/utils"
)

type Services struct {
	Identity     services.IdentityService
	User         services.UserService
	Catalog      services.CatalogService
	Recipe       services.RecipeService
	Favorite     services.FavoriteService
	Cart         services.CartService
	Subscription services.SubscriptionService
	ShoppingList services.ShoppingListService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	// Redis is optional: without it the catalog just reads through to
	// the database on every request.
	var cache redisclient.CatalogCache
	if os.Getenv("REDIS_ADDR") != "" {
		var err error
		cache, err = redisclient.NewCatalogCache(log)
		if err != nil {
			log.Warn("catalog cache unavailable, continuing without it", "error", err)
			cache = nil
		}
	}

	imageStore, err := services.NewGCSImageStore(log)
	if err != nil {
		log.Warn("gcs image store unavailable, falling back to local disk", "error", err)
		imageStore = services.NewLocalImageStore(
			log,
			utils.GetEnv("LOCAL_MEDIA_DIR", "media", log),
			utils.GetEnv("MEDIA_BASE_URL", "", log),
		)
	}

	return Services{
		Identity:     services.NewIdentityService(log, r.User, cfg.JWTSecretKey),
		User:         services.NewUserService(db, log, r.User, r.Subscription),
		Catalog:      services.NewCatalogService(db, log, r.Tag, r.Ingredient, cache),
		Recipe:       services.NewRecipeService(db, log, r.Recipe, r.Tag, r.Ingredient, r.Favorite, r.Cart, r.Subscription, imageStore),
		Favorite:     services.NewFavoriteService(log, r.Favorite, r.Recipe),
		Cart:         services.NewCartService(log, r.Cart, r.Recipe),
		Subscription: services.NewSubscriptionService(log, r.Subscription, r.User, r.Recipe),
		ShoppingList: services.NewShoppingListService(log, r.Cart),
	}, nil
}
