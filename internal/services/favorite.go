package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/repos"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

// FavoriteService maintains the per-user favorite membership set. Double
// add and double remove are reported as errors, not absorbed: the caller
// is told their view of the state was stale.
type FavoriteService interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeView, error)
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
}

type favoriteService struct {
	log          *logger.Logger
	favoriteRepo repos.FavoriteRepo
	recipeRepo   repos.RecipeRepo
}

func NewFavoriteService(log *logger.Logger, favoriteRepo repos.FavoriteRepo, recipeRepo repos.RecipeRepo) FavoriteService {
	return &favoriteService{
		log:          log.With("service", "FavoriteService"),
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
	}
}

func (fs *favoriteService) Add(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeView, error) {
	exists, err := fs.favoriteRepo.Exists(ctx, nil, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Conflict("recipe is already in favorites")
	}
	recipe, err := fs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apierr.NotFoundBadRequest("recipe %s does not exist", recipeID)
	}

	favorite := &types.Favorite{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	if err := fs.favoriteRepo.Create(ctx, nil, favorite); err != nil {
		// Two concurrent adds race on the unique index; the loser reports
		// Conflict just like a stale double-add.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("recipe is already in favorites")
		}
		return nil, err
	}

	view := types.ShortRecipe(recipe)
	return &view, nil
}

func (fs *favoriteService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	exists, err := fs.recipeRepo.Exists(ctx, nil, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return apierr.NotFound("recipe %s does not exist", recipeID)
	}
	deleted, err := fs.favoriteRepo.Delete(ctx, nil, userID, recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apierr.Conflict("recipe is not in favorites")
	}
	return nil
}
