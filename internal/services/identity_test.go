package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func signToken(t *testing.T, secret string, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestResolveToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	tokenString := signToken(t, testJWTSecret, user.ID.String(), time.Now().Add(time.Hour))
	userID, err := env.identity.ResolveToken(ctx, tokenString)
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("want %s, got %s", user.ID, userID)
	}
}

func TestResolveTokenRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", signToken(t, "other-secret", user.ID.String(), time.Now().Add(time.Hour))},
		{"expired", signToken(t, testJWTSecret, user.ID.String(), time.Now().Add(-time.Hour))},
		{"garbage subject", signToken(t, testJWTSecret, "not-a-uuid", time.Now().Add(time.Hour))},
		{"unknown user", signToken(t, testJWTSecret, uuid.NewString(), time.Now().Add(time.Hour))},
		{"not a token", "definitely.not.jwt"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.identity.ResolveToken(ctx, tc.token)
			wantAPIError(t, err, http.StatusUnauthorized, "unauthenticated")
		})
	}
}
