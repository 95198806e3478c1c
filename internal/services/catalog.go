package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	redisclient "github.com/yungbote/kitchenlink-backend/internal/clients/redis"
	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/repos"
	"github.com/yungbote/kitchenlink-backend/internal/types"
	"github.com/yungbote/kitchenlink-backend/internal/validation"
)

// CatalogService serves the immutable ingredient/tag reference data.
type CatalogService interface {
	ListIngredients(ctx context.Context, namePrefix string) ([]*types.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*types.Ingredient, error)
	ListTags(ctx context.Context) ([]*types.Tag, error)
	GetTag(ctx context.Context, id uuid.UUID) (*types.Tag, error)
	Seed(ctx context.Context, tags []*types.Tag, ingredients []*types.Ingredient) error
}

type catalogService struct {
	db             *gorm.DB
	log            *logger.Logger
	tagRepo        repos.TagRepo
	ingredientRepo repos.IngredientRepo
	cache          redisclient.CatalogCache
}

func NewCatalogService(
	db *gorm.DB,
	log *logger.Logger,
	tagRepo repos.TagRepo,
	ingredientRepo repos.IngredientRepo,
	cache redisclient.CatalogCache,
) CatalogService {
	return &catalogService{
		db:             db,
		log:            log.With("service", "CatalogService"),
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		cache:          cache,
	}
}

func (cs *catalogService) ListIngredients(ctx context.Context, namePrefix string) ([]*types.Ingredient, error) {
	return cs.ingredientRepo.List(ctx, nil, namePrefix)
}

func (cs *catalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*types.Ingredient, error) {
	if cs.cache != nil {
		if ingredient, ok := cs.cache.GetIngredient(ctx, id); ok {
			return ingredient, nil
		}
	}
	ingredient, err := cs.ingredientRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, apierr.NotFound("ingredient %s does not exist", id)
	}
	if cs.cache != nil {
		cs.cache.SetIngredient(ctx, ingredient)
	}
	return ingredient, nil
}

func (cs *catalogService) ListTags(ctx context.Context) ([]*types.Tag, error) {
	if cs.cache != nil {
		if tags, ok := cs.cache.GetTags(ctx); ok {
			return tags, nil
		}
	}
	tags, err := cs.tagRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	if cs.cache != nil {
		cs.cache.SetTags(ctx, tags)
	}
	return tags, nil
}

func (cs *catalogService) GetTag(ctx context.Context, id uuid.UUID) (*types.Tag, error) {
	tag, err := cs.tagRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apierr.NotFound("tag %s does not exist", id)
	}
	return tag, nil
}

// Seed installs initial reference data once; it is a no-op when the
// catalog tables already hold rows.
func (cs *catalogService) Seed(ctx context.Context, tags []*types.Tag, ingredients []*types.Ingredient) error {
	for _, tag := range tags {
		if vErr := validation.TagSlug(tag.Slug); vErr != nil {
			return fmt.Errorf("seed tag %q: %w", tag.Name, vErr)
		}
		if vErr := validation.HexColor(tag.Color); vErr != nil {
			return fmt.Errorf("seed tag %q: %w", tag.Name, vErr)
		}
	}
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tagCount, err := cs.tagRepo.Count(ctx, tx)
		if err != nil {
			return err
		}
		if tagCount == 0 {
			for _, tag := range tags {
				if tag.ID == uuid.Nil {
					tag.ID = uuid.New()
				}
			}
			if err := cs.tagRepo.Create(ctx, tx, tags); err != nil {
				return err
			}
		}
		ingredientCount, err := cs.ingredientRepo.Count(ctx, tx)
		if err != nil {
			return err
		}
		if ingredientCount == 0 {
			for _, ingredient := range ingredients {
				if ingredient.ID == uuid.Nil {
					ingredient.ID = uuid.New()
				}
			}
			if err := cs.ingredientRepo.Create(ctx, tx, ingredients); err != nil {
				return err
			}
		}
		return nil
	})
}
