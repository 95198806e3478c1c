package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

type SubscriptionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, subscription *types.Subscription) error
	Delete(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (int64, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (bool, error)
	AuthorIDSet(ctx context.Context, tx *gorm.DB, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]struct{}, error)
	ListAuthors(ctx context.Context, tx *gorm.DB, userID uuid.UUID, offset, limit int) ([]*types.User, error)
	CountAuthors(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return &subscriptionRepo{db: db, log: baseLog.With("repo", "SubscriptionRepo")}
}

func (sr *subscriptionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return sr.db
}

func (sr *subscriptionRepo) Create(ctx context.Context, tx *gorm.DB, subscription *types.Subscription) error {
	return sr.conn(tx).WithContext(ctx).Create(subscription).Error
}

func (sr *subscriptionRepo) Delete(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (int64, error) {
	result := sr.conn(tx).WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&types.Subscription{})
	return result.RowsAffected, result.Error
}

func (sr *subscriptionRepo) Exists(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := sr.conn(tx).WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AuthorIDSet bulk-resolves which of the given authors the user follows,
// for is_subscribed flags on listing pages.
func (sr *subscriptionRepo) AuthorIDSet(ctx context.Context, tx *gorm.DB, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	set := make(map[uuid.UUID]struct{}, len(authorIDs))
	if userID == uuid.Nil || len(authorIDs) == 0 {
		return set, nil
	}
	var ids []uuid.UUID
	if err := sr.conn(tx).WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (sr *subscriptionRepo) ListAuthors(ctx context.Context, tx *gorm.DB, userID uuid.UUID, offset, limit int) ([]*types.User, error) {
	var results []*types.User
	q := sr.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Joins(`JOIN subscription ON subscription.author_id = "user".id`).
		Where("subscription.user_id = ?", userID).
		Order("subscription.created_at DESC").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *subscriptionRepo) CountAuthors(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	if err := sr.conn(tx).WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
