package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

type FavoriteRepo interface {
	// Create relies on the composite unique index; a duplicate insert
	// surfaces as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, tx *gorm.DB, favorite *types.Favorite) error
	Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (bool, error)
	RecipeIDSet(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	return &favoriteRepo{db: db, log: baseLog.With("repo", "FavoriteRepo")}
}

func (fr *favoriteRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return fr.db
}

func (fr *favoriteRepo) Create(ctx context.Context, tx *gorm.DB, favorite *types.Favorite) error {
	return fr.conn(tx).WithContext(ctx).Create(favorite).Error
}

func (fr *favoriteRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error) {
	result := fr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&types.Favorite{})
	return result.RowsAffected, result.Error
}

func (fr *favoriteRepo) Exists(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := fr.conn(tx).WithContext(ctx).
		Model(&types.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecipeIDSet bulk-resolves which of the given recipes the user has
// favorited, so listing pages compute is_favorited without an N+1.
func (fr *favoriteRepo) RecipeIDSet(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	set := make(map[uuid.UUID]struct{}, len(recipeIDs))
	if userID == uuid.Nil || len(recipeIDs) == 0 {
		return set, nil
	}
	var ids []uuid.UUID
	if err := fr.conn(tx).WithContext(ctx).
		Model(&types.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
