package app

import (
	"github.com/yungbote/kitchenlink-backend/internal/handlers"
	"github.com/yungbote/kitchenlink-backend/internal/logger"
)

type Handlers struct {
	User    *handlers.UserHandler
	Catalog *handlers.CatalogHandler
	Recipe  *handlers.RecipeHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	pageConfig := handlers.PageConfig{DefaultSize: cfg.PageSize, MaxSize: cfg.MaxPageSize}
	return Handlers{
		User:    handlers.NewUserHandler(services.User, services.Subscription, pageConfig),
		Catalog: handlers.NewCatalogHandler(services.Catalog),
		Recipe: handlers.NewRecipeHandler(
			services.Recipe,
			services.Favorite,
			services.Cart,
			services.ShoppingList,
			pageConfig,
		),
	}
}
