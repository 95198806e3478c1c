package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/requestdata"
	"github.com/yungbote/kitchenlink-backend/internal/services"
)

type AuthMiddleware struct {
	log             *logger.Logger
	identityService services.IdentityService
}

func NewAuthMiddleware(log *logger.Logger, identityService services.IdentityService) *AuthMiddleware {
	return &AuthMiddleware{
		log:             log.With("middleware", "AuthMiddleware"),
		identityService: identityService,
	}
}

// RequireAuth rejects requests without a valid bearer token.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthenticated"},
			})
			return
		}
		userID, err := am.identityService.ResolveToken(c.Request.Context(), tokenString)
		if err != nil || userID == uuid.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthenticated"},
			})
			return
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
			TokenString: tokenString,
			UserID:      userID,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalAuth resolves identity when a valid token is present and lets
// anonymous requests through; derived flags then read false downstream.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString != "" {
			if userID, err := am.identityService.ResolveToken(c.Request.Context(), tokenString); err == nil && userID != uuid.Nil {
				ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{
					TokenString: tokenString,
					UserID:      userID,
				})
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
