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

// SubscriptionService maintains the directed follow graph between users.
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (*types.AuthorView, error)
	Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, offset, limit, recipesLimit int) ([]types.AuthorView, int64, error)
}

type subscriptionService struct {
	log              *logger.Logger
	subscriptionRepo repos.SubscriptionRepo
	userRepo         repos.UserRepo
	recipeRepo       repos.RecipeRepo
}

func NewSubscriptionService(
	log *logger.Logger,
	subscriptionRepo repos.SubscriptionRepo,
	userRepo repos.UserRepo,
	recipeRepo repos.RecipeRepo,
) SubscriptionService {
	return &subscriptionService{
		log:              log.With("service", "SubscriptionService"),
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		recipeRepo:       recipeRepo,
	}
}

func (ss *subscriptionService) Subscribe(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (*types.AuthorView, error) {
	if userID == authorID {
		return nil, apierr.Validation("author", "cannot follow yourself")
	}
	author, err := ss.userRepo.GetByID(ctx, nil, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apierr.NotFound("user %s does not exist", authorID)
	}
	exists, err := ss.subscriptionRepo.Exists(ctx, nil, userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apierr.Conflict("already subscribed to this author")
	}

	subscription := &types.Subscription{ID: uuid.New(), UserID: userID, AuthorID: authorID}
	if err := ss.subscriptionRepo.Create(ctx, nil, subscription); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("already subscribed to this author")
		}
		return nil, err
	}

	view, err := ss.buildAuthorView(ctx, author, true, recipesLimit)
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (ss *subscriptionService) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	author, err := ss.userRepo.GetByID(ctx, nil, authorID)
	if err != nil {
		return err
	}
	if author == nil {
		return apierr.NotFound("user %s does not exist", authorID)
	}
	deleted, err := ss.subscriptionRepo.Delete(ctx, nil, userID, authorID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apierr.Conflict("not subscribed to this author")
	}
	return nil
}

func (ss *subscriptionService) List(ctx context.Context, userID uuid.UUID, offset, limit, recipesLimit int) ([]types.AuthorView, int64, error) {
	count, err := ss.subscriptionRepo.CountAuthors(ctx, nil, userID)
	if err != nil {
		return nil, 0, err
	}
	authors, err := ss.subscriptionRepo.ListAuthors(ctx, nil, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]types.AuthorView, 0, len(authors))
	for _, author := range authors {
		view, err := ss.buildAuthorView(ctx, author, true, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *view)
	}
	return views, count, nil
}

// buildAuthorView enriches a profile with the author's recipes, optionally
// truncated to recipesLimit, plus the total count.
func (ss *subscriptionService) buildAuthorView(ctx context.Context, author *types.User, isSubscribed bool, recipesLimit int) (*types.AuthorView, error) {
	recipes, err := ss.recipeRepo.ListByAuthor(ctx, nil, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := ss.recipeRepo.CountByAuthor(ctx, nil, author.ID)
	if err != nil {
		return nil, err
	}
	shorts := make([]types.ShortRecipeView, 0, len(recipes))
	for _, recipe := range recipes {
		shorts = append(shorts, types.ShortRecipe(recipe))
	}
	return &types.AuthorView{
		UserView: types.UserView{
			ID:           author.ID,
			Username:     author.Username,
			Email:        author.Email,
			FirstName:    author.FirstName,
			LastName:     author.LastName,
			IsSubscribed: isSubscribed,
		},
		Recipes:      shorts,
		RecipesCount: count,
	}, nil
}
