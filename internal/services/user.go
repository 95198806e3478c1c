package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/repos"
	"github.com/yungbote/kitchenlink-backend/internal/types"
	"github.com/yungbote/kitchenlink-backend/internal/validation"
)

// UserService serves user profiles. User records themselves are
// provisioned by the identity collaborator; this service only reads them
// and PATCHes profile fields.
type UserService interface {
	GetMe(ctx context.Context, userID uuid.UUID) (*types.UserView, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, input types.UserUpdateInput) (*types.UserView, error)
	GetByID(ctx context.Context, userID, currentUserID uuid.UUID) (*types.UserView, error)
	List(ctx context.Context, currentUserID uuid.UUID, offset, limit int) ([]types.UserView, int64, error)
}

type userService struct {
	db               *gorm.DB
	log              *logger.Logger
	userRepo         repos.UserRepo
	subscriptionRepo repos.SubscriptionRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, subscriptionRepo repos.SubscriptionRepo) UserService {
	return &userService{
		db:               db,
		log:              log.With("service", "UserService"),
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

func (us *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.UserView, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("user %s does not exist", userID)
	}
	view := userView(user, false)
	return &view, nil
}

func (us *userService) UpdateMe(ctx context.Context, userID uuid.UUID, input types.UserUpdateInput) (*types.UserView, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("user %s does not exist", userID)
	}

	if input.Username != nil {
		if vErr := validation.Username(*input.Username); vErr != nil {
			return nil, vErr
		}
		taken, err := us.userRepo.UsernameTaken(ctx, nil, *input.Username, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apierr.Conflict("username %q is already taken", *input.Username)
		}
		user.Username = *input.Username
	}
	if input.Email != nil {
		if vErr := validation.Email(*input.Email); vErr != nil {
			return nil, vErr
		}
		taken, err := us.userRepo.EmailTaken(ctx, nil, *input.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apierr.Conflict("email %q is already taken", *input.Email)
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := us.userRepo.Update(ctx, nil, user); err != nil {
		return nil, err
	}
	view := userView(user, false)
	return &view, nil
}

func (us *userService) GetByID(ctx context.Context, userID, currentUserID uuid.UUID) (*types.UserView, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierr.NotFound("user %s does not exist", userID)
	}
	subscribed, err := us.subscriptionRepo.AuthorIDSet(ctx, nil, currentUserID, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	_, isSubscribed := subscribed[userID]
	view := userView(user, isSubscribed)
	return &view, nil
}

func (us *userService) List(ctx context.Context, currentUserID uuid.UUID, offset, limit int) ([]types.UserView, int64, error) {
	count, err := us.userRepo.Count(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	users, err := us.userRepo.List(ctx, nil, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	authorIDs := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		authorIDs = append(authorIDs, user.ID)
	}
	subscribed, err := us.subscriptionRepo.AuthorIDSet(ctx, nil, currentUserID, authorIDs)
	if err != nil {
		return nil, 0, err
	}
	views := make([]types.UserView, 0, len(users))
	for _, user := range users {
		_, isSubscribed := subscribed[user.ID]
		views = append(views, userView(user, isSubscribed))
	}
	return views, count, nil
}

func userView(user *types.User, isSubscribed bool) types.UserView {
	return types.UserView{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: isSubscribed,
	}
}
