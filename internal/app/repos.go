package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	Tag          repos.TagRepo
	Ingredient   repos.IngredientRepo
	Recipe       repos.RecipeRepo
	Favorite     repos.FavoriteRepo
	Cart         repos.CartRepo
	Subscription repos.SubscriptionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Tag:          repos.NewTagRepo(db, log),
		Ingredient:   repos.NewIngredientRepo(db, log),
		Recipe:       repos.NewRecipeRepo(db, log),
		Favorite:     repos.NewFavoriteRepo(db, log),
		Cart:         repos.NewCartRepo(db, log),
		Subscription: repos.NewSubscriptionRepo(db, log),
	}
}
