package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

// AggregatedIngredient is one consolidated line of a shopping list:
// amounts summed across every carted recipe, grouped by name and unit.
type AggregatedIngredient struct {
	Name            string
	MeasurementUnit string
	Total           int
}

type CartRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.CartItem) error
	Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (bool, error)
	HasAny(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error)
	RecipeIDSet(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)
	AggregateIngredients(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]AggregatedIngredient, error)
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return &cartRepo{db: db, log: baseLog.With("repo", "CartRepo")}
}

func (cr *cartRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return cr.db
}

func (cr *cartRepo) Create(ctx context.Context, tx *gorm.DB, item *types.CartItem) error {
	return cr.conn(tx).WithContext(ctx).Create(item).Error
}

func (cr *cartRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error) {
	result := cr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&types.CartItem{})
	return result.RowsAffected, result.Error
}

func (cr *cartRepo) Exists(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := cr.conn(tx).WithContext(ctx).
		Model(&types.CartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *cartRepo) HasAny(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	if err := cr.conn(tx).WithContext(ctx).
		Model(&types.CartItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *cartRepo) RecipeIDSet(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	set := make(map[uuid.UUID]struct{}, len(recipeIDs))
	if userID == uuid.Nil || len(recipeIDs) == 0 {
		return set, nil
	}
	var ids []uuid.UUID
	if err := cr.conn(tx).WithContext(ctx).
		Model(&types.CartItem{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// AggregateIngredients sums ingredient amounts across every recipe in the
// user's cart, grouped by (name, unit), ordered alphabetically.
func (cr *cartRepo) AggregateIngredients(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]AggregatedIngredient, error) {
	var results []AggregatedIngredient
	err := cr.conn(tx).WithContext(ctx).
		Table("ingredient_line").
		Select("ingredient.name AS name, ingredient.measurement_unit AS measurement_unit, SUM(ingredient_line.amount) AS total").
		Joins("JOIN ingredient ON ingredient.id = ingredient_line.ingredient_id").
		Joins("JOIN cart_item ON cart_item.recipe_id = ingredient_line.recipe_id").
		Where("cart_item.user_id = ?", userID).
		Group("ingredient.name, ingredient.measurement_unit").
		Order("ingredient.name ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
