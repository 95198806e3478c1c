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

// CartService maintains the per-user shopping cart membership set, with
// the same non-idempotent add/remove policy as favorites.
type CartService interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeView, error)
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
}

type cartService struct {
	log        *logger.Logger
	cartRepo   repos.CartRepo
	recipeRepo repos.RecipeRepo
}

func NewCartService(log *logger.Logger, cartRepo repos.CartRepo, recipeRepo repos.RecipeRepo) CartService {
	return &cartService{
		log:        log.With("service", "CartService"),
		cartRepo:   cartRepo,
		recipeRepo: recipeRepo,
	}
}

func (cs *cartService) Add(ctx context.Context, userID, recipeID uuid.UUID) (*types.ShortRecipeView, error) {
	exists, err := cs.cartRepo.Exists(ctx, nil, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Conflict("recipe is already in the shopping cart")
	}
	recipe, err := cs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apierr.NotFoundBadRequest("recipe %s does not exist", recipeID)
	}

	item := &types.CartItem{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	if err := cs.cartRepo.Create(ctx, nil, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("recipe is already in the shopping cart")
		}
		return nil, err
	}

	view := types.ShortRecipe(recipe)
	return &view, nil
}

func (cs *cartService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	exists, err := cs.recipeRepo.Exists(ctx, nil, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return apierr.NotFound("recipe %s does not exist", recipeID)
	}
	deleted, err := cs.cartRepo.Delete(ctx, nil, userID, recipeID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apierr.Conflict("recipe is not in the shopping cart")
	}
	return nil
}
