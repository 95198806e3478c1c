package app

import (
	"strings"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/utils"
)

type Config struct {
	ServiceName  string
	Environment  string
	Version      string
	JWTSecretKey string
	PageSize     int
	MaxPageSize  int
	AllowOrigins []string
	SeedDataDir  string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		ServiceName:  utils.GetEnv("SERVICE_NAME", "kitchenlink", log),
		Environment:  utils.GetEnv("ENVIRONMENT", "development", log),
		Version:      utils.GetEnv("SERVICE_VERSION", "dev", log),
		JWTSecretKey: utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		PageSize:     utils.GetEnvAsInt("PAGE_SIZE", 6, log),
		MaxPageSize:  utils.GetEnvAsInt("MAX_PAGE_SIZE", 100, log),
		SeedDataDir:  utils.GetEnv("SEED_DATA_DIR", "", log),
	}
	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)
	if origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
			}
		}
	}
	return cfg
}
