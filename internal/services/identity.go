package services

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/kitchenlink-backend/internal/apierr"
	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/repos"
)

// IdentityService is the consuming side of the identity collaborator:
// it verifies bearer tokens the collaborator issued (HS256, shared
// secret, Subject claim = user id) and resolves them to a known user.
// Token issuance and refresh live with the collaborator, not here.
type IdentityService interface {
	ResolveToken(ctx context.Context, tokenString string) (uuid.UUID, error)
}

type identityService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
}

func NewIdentityService(log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string) IdentityService {
	return &identityService{
		log:          log.With("service", "IdentityService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
	}
}

func (is *identityService) ResolveToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(is.jwtSecretKey), nil
	})
	if err != nil {
		return uuid.Nil, apierr.Unauthenticated("invalid or expired token")
	}
	claims, ok := parsedToken.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsedToken.Valid {
		return uuid.Nil, apierr.Unauthenticated("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apierr.Unauthenticated("invalid subject in token")
	}
	user, err := is.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if user == nil {
		return uuid.Nil, apierr.Unauthenticated("unknown user")
	}
	return userID, nil
}
