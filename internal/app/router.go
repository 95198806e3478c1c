package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/kitchenlink-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:    cfg.ServiceName,
		AllowOrigins:   cfg.AllowOrigins,
		AuthMiddleware: middleware.Auth,
		UserHandler:    handlers.User,
		CatalogHandler: handlers.Catalog,
		RecipeHandler:  handlers.Recipe,
	})
}
