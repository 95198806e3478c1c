package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

type IngredientRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) error
	List(ctx context.Context, tx *gorm.DB, namePrefix string) ([]*types.Ingredient, error)
	GetByID(ctx context.Context, tx *gorm.DB, ingredientID uuid.UUID) (*types.Ingredient, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uuid.UUID) ([]*types.Ingredient, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return &ingredientRepo{db: db, log: baseLog.With("repo", "IngredientRepo")}
}

func (ir *ingredientRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ir.db
}

func (ir *ingredientRepo) Create(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	return ir.conn(tx).WithContext(ctx).Create(&ingredients).Error
}

// List returns the catalog ordered by name, optionally restricted to a
// case-insensitive name prefix.
func (ir *ingredientRepo) List(ctx context.Context, tx *gorm.DB, namePrefix string) ([]*types.Ingredient, error) {
	var results []*types.Ingredient
	q := ir.conn(tx).WithContext(ctx).Order("name ASC")
	if namePrefix != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", escapeLike(strings.ToLower(namePrefix))+"%")
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// escapeLike neutralizes LIKE wildcards in user-supplied prefixes.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (ir *ingredientRepo) GetByID(ctx context.Context, tx *gorm.DB, ingredientID uuid.UUID) (*types.Ingredient, error) {
	var ingredient types.Ingredient
	err := ir.conn(tx).WithContext(ctx).
		Where("id = ?", ingredientID).
		First(&ingredient).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (ir *ingredientRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uuid.UUID) ([]*types.Ingredient, error) {
	var results []*types.Ingredient
	if len(ingredientIDs) == 0 {
		return results, nil
	}
	if err := ir.conn(tx).WithContext(ctx).
		Where("id IN ?", ingredientIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *ingredientRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := ir.conn(tx).WithContext(ctx).
		Model(&types.Ingredient{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
