package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

// RecipeFilter holds the independent AND-combined listing filters.
// Zero values mean "not filtered".
type RecipeFilter struct {
	TagSlugs    []string
	AuthorIDs   []uuid.UUID
	FavoritedBy uuid.UUID
	InCartOf    uuid.UUID
	Offset      int
	Limit       int
}

type RecipeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error
	Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error
	Delete(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error
	GetByID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.Recipe, error)
	Exists(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (bool, error)
	List(ctx context.Context, tx *gorm.DB, filter RecipeFilter) ([]*types.Recipe, error)
	Count(ctx context.Context, tx *gorm.DB, filter RecipeFilter) (int64, error)
	ReplaceTags(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, tags []*types.Tag) error
	CreateLines(ctx context.Context, tx *gorm.DB, lines []*types.IngredientLine) error
	DeleteLines(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error
	GetLines(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) ([]*types.IngredientLine, error)
	ListByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID, limit int) ([]*types.Recipe, error)
	CountByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID) (int64, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (rr *recipeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *recipeRepo) Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error {
	// Associations are written through ReplaceTags/CreateLines inside the
	// caller's transaction, never implicitly.
	return rr.conn(tx).WithContext(ctx).
		Omit("Tags", "Lines", "Author").
		Create(recipe).Error
}

func (rr *recipeRepo) Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error {
	return rr.conn(tx).WithContext(ctx).
		Omit("Tags", "Lines", "Author").
		Save(recipe).Error
}

// Delete removes the recipe and everything hanging off it: ingredient
// lines, tag associations and favorite/cart memberships. The store also
// carries ON DELETE CASCADE, but the dependents are deleted explicitly so
// the invariant does not depend on driver pragma settings.
func (rr *recipeRepo) Delete(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error {
	conn := rr.conn(tx).WithContext(ctx)
	if err := conn.Where("recipe_id = ?", recipeID).Delete(&types.IngredientLine{}).Error; err != nil {
		return err
	}
	if err := conn.Where("recipe_id = ?", recipeID).Delete(&types.Favorite{}).Error; err != nil {
		return err
	}
	if err := conn.Where("recipe_id = ?", recipeID).Delete(&types.CartItem{}).Error; err != nil {
		return err
	}
	if err := conn.Exec("DELETE FROM recipe_tags WHERE recipe_id = ?", recipeID).Error; err != nil {
		return err
	}
	return conn.Where("id = ?", recipeID).Delete(&types.Recipe{}).Error
}

func (rr *recipeRepo) GetByID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.Recipe, error) {
	var recipe types.Recipe
	err := rr.conn(tx).WithContext(ctx).
		Preload("Tags").
		Preload("Lines").
		Preload("Lines.Ingredient").
		Preload("Author").
		Where("id = ?", recipeID).
		First(&recipe).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (rr *recipeRepo) Exists(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := rr.conn(tx).WithContext(ctx).
		Model(&types.Recipe{}).
		Where("id = ?", recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (rr *recipeRepo) filtered(ctx context.Context, tx *gorm.DB, filter RecipeFilter) *gorm.DB {
	q := rr.conn(tx).WithContext(ctx).Model(&types.Recipe{})
	if len(filter.TagSlugs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipe.id").
			Joins("JOIN tag ON tag.id = recipe_tags.tag_id").
			Where("tag.slug IN ?", filter.TagSlugs)
	}
	if len(filter.AuthorIDs) > 0 {
		q = q.Where("recipe.author_id IN ?", filter.AuthorIDs)
	}
	if filter.FavoritedBy != uuid.Nil {
		q = q.Joins("JOIN favorite ON favorite.recipe_id = recipe.id AND favorite.user_id = ?", filter.FavoritedBy)
	}
	if filter.InCartOf != uuid.Nil {
		q = q.Joins("JOIN cart_item ON cart_item.recipe_id = recipe.id AND cart_item.user_id = ?", filter.InCartOf)
	}
	return q
}

func (rr *recipeRepo) List(ctx context.Context, tx *gorm.DB, filter RecipeFilter) ([]*types.Recipe, error) {
	var results []*types.Recipe
	q := rr.filtered(ctx, tx, filter).
		Distinct("recipe.*").
		Preload("Tags").
		Preload("Lines").
		Preload("Lines.Ingredient").
		Preload("Author").
		Order("recipe.created_at DESC, recipe.updated_at DESC").
		Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) Count(ctx context.Context, tx *gorm.DB, filter RecipeFilter) (int64, error) {
	var count int64
	if err := rr.filtered(ctx, tx, filter).
		Distinct("recipe.id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *recipeRepo) ReplaceTags(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, tags []*types.Tag) error {
	return rr.conn(tx).WithContext(ctx).
		Model(recipe).
		Association("Tags").
		Replace(tags)
}

func (rr *recipeRepo) CreateLines(ctx context.Context, tx *gorm.DB, lines []*types.IngredientLine) error {
	if len(lines) == 0 {
		return nil
	}
	return rr.conn(tx).WithContext(ctx).Create(&lines).Error
}

func (rr *recipeRepo) DeleteLines(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error {
	return rr.conn(tx).WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.IngredientLine{}).Error
}

func (rr *recipeRepo) GetLines(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) ([]*types.IngredientLine, error) {
	var results []*types.IngredientLine
	if err := rr.conn(tx).WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) ListByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID, limit int) ([]*types.Recipe, error) {
	var results []*types.Recipe
	q := rr.conn(tx).WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, updated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) CountByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID) (int64, error) {
	var count int64
	if err := rr.conn(tx).WithContext(ctx).
		Model(&types.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
