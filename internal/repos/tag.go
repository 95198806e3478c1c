package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

type TagRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tags []*types.Tag) error
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Tag, error)
	GetByID(ctx context.Context, tx *gorm.DB, tagID uuid.UUID) (*types.Tag, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) ([]*types.Tag, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (tr *tagRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return tr.db
}

func (tr *tagRepo) Create(ctx context.Context, tx *gorm.DB, tags []*types.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	return tr.conn(tx).WithContext(ctx).Create(&tags).Error
}

func (tr *tagRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Tag, error) {
	var results []*types.Tag
	if err := tr.conn(tx).WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) GetByID(ctx context.Context, tx *gorm.DB, tagID uuid.UUID) (*types.Tag, error) {
	var tag types.Tag
	err := tr.conn(tx).WithContext(ctx).
		Where("id = ?", tagID).
		First(&tag).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (tr *tagRepo) GetByIDs(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) ([]*types.Tag, error) {
	var results []*types.Tag
	if len(tagIDs) == 0 {
		return results, nil
	}
	if err := tr.conn(tx).WithContext(ctx).
		Where("id IN ?", tagIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	if err := tr.conn(tx).WithContext(ctx).
		Model(&types.Tag{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
