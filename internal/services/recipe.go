package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/repos"
	"github.com/yungbote/kitchenlink-backend/internal/types"
	"github.com/yungbote/kitchenlink-backend/internal/validation"
)

// RecipeService owns the recipe aggregate: the recipe row plus its
// ingredient lines and tag associations, written as one consistency unit.
type RecipeService interface {
	Create(ctx context.Context, authorID uuid.UUID, input types.RecipeInput) (*types.RecipeView, error)
	Update(ctx context.Context, recipeID, userID uuid.UUID, input types.RecipeInput) (*types.RecipeView, error)
	Delete(ctx context.Context, recipeID, userID uuid.UUID) error
	Get(ctx context.Context, recipeID, currentUserID uuid.UUID) (*types.RecipeView, error)
	List(ctx context.Context, filter repos.RecipeFilter, currentUserID uuid.UUID) ([]types.RecipeView, int64, error)
}

type recipeService struct {
	db               *gorm.DB
	log              *logger.Logger
	recipeRepo       repos.RecipeRepo
	tagRepo          repos.TagRepo
	ingredientRepo   repos.IngredientRepo
	favoriteRepo     repos.FavoriteRepo
	cartRepo         repos.CartRepo
	subscriptionRepo repos.SubscriptionRepo
	imageStore       ImageStore
}

func NewRecipeService(
	db *gorm.DB,
	log *logger.Logger,
	recipeRepo repos.RecipeRepo,
	tagRepo repos.TagRepo,
	ingredientRepo repos.IngredientRepo,
	favoriteRepo repos.FavoriteRepo,
	cartRepo repos.CartRepo,
	subscriptionRepo repos.SubscriptionRepo,
	imageStore ImageStore,
) RecipeService {
	return &recipeService{
		db:               db,
		log:              log.With("service", "RecipeService"),
		recipeRepo:       recipeRepo,
		tagRepo:          tagRepo,
		ingredientRepo:   ingredientRepo,
		favoriteRepo:     favoriteRepo,
		cartRepo:         cartRepo,
		subscriptionRepo: subscriptionRepo,
		imageStore:       imageStore,
	}
}

func (rs *recipeService) Create(ctx context.Context, authorID uuid.UUID, input types.RecipeInput) (*types.RecipeView, error) {
	if input.Name == nil {
		return nil, apierr.Validation("name", "name is required")
	}
	if input.Text == nil {
		return nil, apierr.Validation("text", "text is required")
	}
	if input.CookingTime == nil {
		return nil, apierr.Validation("cooking_time", "cooking_time is required")
	}
	if input.Image == nil {
		return nil, apierr.Validation("image", "image is required")
	}

	if vErr := rs.validateFields(*input.Name, *input.Text, *input.CookingTime, input.Tags, input.Ingredients); vErr != nil {
		return nil, vErr
	}
	tags, err := rs.resolveTags(ctx, input.Tags)
	if err != nil {
		return nil, err
	}
	if err := rs.checkIngredientsExist(ctx, input.Ingredients); err != nil {
		return nil, err
	}

	image, vErr := ParseInlineImage(*input.Image)
	if vErr != nil {
		return nil, vErr
	}

	recipe := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        *input.Name,
		Text:        *input.Text,
		CookingTime: *input.CookingTime,
	}

	// The blob store is external to the transaction; on rollback the
	// uploaded object is removed best-effort.
	key := fmt.Sprintf("recipes/%s/%d.%s", recipe.ID, time.Now().UnixNano(), image.Ext)
	url, err := rs.imageStore.Save(ctx, key, image.Data, image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store recipe image: %w", err)
	}
	recipe.ImageKey = key
	recipe.ImageURL = url

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.recipeRepo.Create(ctx, tx, recipe); err != nil {
			return err
		}
		if err := rs.recipeRepo.ReplaceTags(ctx, tx, recipe, tags); err != nil {
			return err
		}
		return rs.recipeRepo.CreateLines(ctx, tx, buildLines(recipe.ID, input.Ingredients))
	}); err != nil {
		if delErr := rs.imageStore.Delete(ctx, key); delErr != nil {
			rs.log.Warn("orphaned recipe image after rollback", "key", key, "error", delErr)
		}
		return nil, err
	}

	return rs.Get(ctx, recipe.ID, authorID)
}

func (rs *recipeService) Update(ctx context.Context, recipeID, userID uuid.UUID, input types.RecipeInput) (*types.RecipeView, error) {
	recipe, err := rs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apierr.NotFound("recipe %s does not exist", recipeID)
	}
	if recipe.AuthorID != userID {
		return nil, apierr.PermissionDenied("only the author may modify this recipe")
	}

	// Tags and ingredients are required on every update: the aggregate is
	// replaced wholesale, never diffed. Scalars fall back to stored values.
	name := recipe.Name
	if input.Name != nil {
		name = *input.Name
	}
	text := recipe.Text
	if input.Text != nil {
		text = *input.Text
	}
	cookingTime := recipe.CookingTime
	if input.CookingTime != nil {
		cookingTime = *input.CookingTime
	}
	if vErr := rs.validateFields(name, text, cookingTime, input.Tags, input.Ingredients); vErr != nil {
		return nil, vErr
	}
	tags, err := rs.resolveTags(ctx, input.Tags)
	if err != nil {
		return nil, err
	}
	if err := rs.checkIngredientsExist(ctx, input.Ingredients); err != nil {
		return nil, err
	}

	oldKey, newKey := "", ""
	if input.Image != nil {
		image, vErr := ParseInlineImage(*input.Image)
		if vErr != nil {
			return nil, vErr
		}
		key := fmt.Sprintf("recipes/%s/%d.%s", recipe.ID, time.Now().UnixNano(), image.Ext)
		url, err := rs.imageStore.Save(ctx, key, image.Data, image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("store recipe image: %w", err)
		}
		oldKey, newKey = recipe.ImageKey, key
		recipe.ImageKey = key
		recipe.ImageURL = url
	}

	recipe.Name = name
	recipe.Text = text
	recipe.CookingTime = cookingTime

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.recipeRepo.Update(ctx, tx, recipe); err != nil {
			return err
		}
		if err := rs.recipeRepo.ReplaceTags(ctx, tx, recipe, tags); err != nil {
			return err
		}
		if err := rs.recipeRepo.DeleteLines(ctx, tx, recipe.ID); err != nil {
			return err
		}
		return rs.recipeRepo.CreateLines(ctx, tx, buildLines(recipe.ID, input.Ingredients))
	}); err != nil {
		if newKey != "" {
			if delErr := rs.imageStore.Delete(ctx, newKey); delErr != nil {
				rs.log.Warn("orphaned recipe image after rollback", "key", newKey, "error", delErr)
			}
		}
		return nil, err
	}

	if oldKey != "" {
		if delErr := rs.imageStore.Delete(ctx, oldKey); delErr != nil {
			rs.log.Warn("stale recipe image left behind", "key", oldKey, "error", delErr)
		}
	}

	return rs.Get(ctx, recipe.ID, userID)
}

func (rs *recipeService) Delete(ctx context.Context, recipeID, userID uuid.UUID) error {
	recipe, err := rs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		return apierr.NotFound("recipe %s does not exist", recipeID)
	}
	if recipe.AuthorID != userID {
		return apierr.PermissionDenied("only the author may delete this recipe")
	}

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return rs.recipeRepo.Delete(ctx, tx, recipeID)
	}); err != nil {
		return err
	}

	if recipe.ImageKey != "" {
		if delErr := rs.imageStore.Delete(ctx, recipe.ImageKey); delErr != nil {
			rs.log.Warn("recipe image left behind after delete", "key", recipe.ImageKey, "error", delErr)
		}
	}
	return nil
}

func (rs *recipeService) Get(ctx context.Context, recipeID, currentUserID uuid.UUID) (*types.RecipeView, error) {
	recipe, err := rs.recipeRepo.GetByID(ctx, nil, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, apierr.NotFound("recipe %s does not exist", recipeID)
	}
	views, err := rs.buildViews(ctx, []*types.Recipe{recipe}, currentUserID)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (rs *recipeService) List(ctx context.Context, filter repos.RecipeFilter, currentUserID uuid.UUID) ([]types.RecipeView, int64, error) {
	count, err := rs.recipeRepo.Count(ctx, nil, filter)
	if err != nil {
		return nil, 0, err
	}
	recipes, err := rs.recipeRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, 0, err
	}
	views, err := rs.buildViews(ctx, recipes, currentUserID)
	if err != nil {
		return nil, 0, err
	}
	return views, count, nil
}

func (rs *recipeService) validateFields(name, text string, cookingTime int, tagIDs []uuid.UUID, lines []types.IngredientAmountInput) *apierr.Error {
	if vErr := validation.RecipeName(name); vErr != nil {
		return vErr
	}
	if vErr := validation.RecipeText(text); vErr != nil {
		return vErr
	}
	if vErr := validation.CookingTime(cookingTime); vErr != nil {
		return vErr
	}
	if vErr := validation.TagIDs(tagIDs); vErr != nil {
		return vErr
	}
	return validation.IngredientLines(lines)
}

func (rs *recipeService) resolveTags(ctx context.Context, tagIDs []uuid.UUID) ([]*types.Tag, error) {
	tags, err := rs.tagRepo.GetByIDs(ctx, nil, tagIDs)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, apierr.NotFoundBadRequest("one or more tags do not exist")
	}
	return tags, nil
}

func (rs *recipeService) checkIngredientsExist(ctx context.Context, lines []types.IngredientAmountInput) error {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ID)
	}
	ingredients, err := rs.ingredientRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return err
	}
	if len(ingredients) != len(ids) {
		return apierr.NotFoundBadRequest("one or more ingredients do not exist")
	}
	return nil
}

func buildLines(recipeID uuid.UUID, inputs []types.IngredientAmountInput) []*types.IngredientLine {
	lines := make([]*types.IngredientLine, 0, len(inputs))
	for _, input := range inputs {
		lines = append(lines, &types.IngredientLine{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: input.ID,
			Amount:       input.Amount,
		})
	}
	return lines
}

// buildViews resolves derived flags for a page of recipes in bulk: one
// query per membership set instead of one per recipe.
func (rs *recipeService) buildViews(ctx context.Context, recipes []*types.Recipe, currentUserID uuid.UUID) ([]types.RecipeView, error) {
	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorIDs := make([]uuid.UUID, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
		authorIDs = append(authorIDs, recipe.AuthorID)
	}
	favorited, err := rs.favoriteRepo.RecipeIDSet(ctx, nil, currentUserID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := rs.cartRepo.RecipeIDSet(ctx, nil, currentUserID, recipeIDs)
	if err != nil {
		return nil, err
	}
	subscribed, err := rs.subscriptionRepo.AuthorIDSet(ctx, nil, currentUserID, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]types.RecipeView, 0, len(recipes))
	for _, recipe := range recipes {
		views = append(views, buildRecipeView(recipe, favorited, inCart, subscribed))
	}
	return views, nil
}

// buildRecipeView is a pure projection: flags depend only on the recipe
// and the caller's membership sets.
func buildRecipeView(recipe *types.Recipe, favorited, inCart, subscribed map[uuid.UUID]struct{}) types.RecipeView {
	ingredients := make([]types.IngredientLineView, 0, len(recipe.Lines))
	for _, line := range recipe.Lines {
		view := types.IngredientLineView{
			ID:     line.IngredientID,
			Amount: line.Amount,
		}
		if line.Ingredient != nil {
			view.Name = line.Ingredient.Name
			view.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		ingredients = append(ingredients, view)
	}

	author := types.UserView{}
	if recipe.Author != nil {
		_, isSubscribed := subscribed[recipe.AuthorID]
		author = types.UserView{
			ID:           recipe.Author.ID,
			Username:     recipe.Author.Username,
			Email:        recipe.Author.Email,
			FirstName:    recipe.Author.FirstName,
			LastName:     recipe.Author.LastName,
			IsSubscribed: isSubscribed,
		}
	}

	_, isFavorited := favorited[recipe.ID]
	_, isInCart := inCart[recipe.ID]
	return types.RecipeView{
		ID:               recipe.ID,
		Tags:             recipe.Tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		Image:            recipe.ImageURL,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}
