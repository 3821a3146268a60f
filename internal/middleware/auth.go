package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/terravista/estate-core/internal/models"
	"github.com/terravista/estate-core/internal/pkg/response"
)

const ContextKeyUser = "auth_user"

// TokenVerifier turns a bearer token into the admin it belongs to. The
// auth service implements this; the middleware never inspects the token
// itself.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*models.User, error)
}

// Auth returns a middleware that rejects the request with 401 unless a
// valid bearer token is present. Handlers behind it can rely on
// CurrentUser returning a non-nil admin.
func Auth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := NormalizeToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Unauthorized(c)
			return
		}
		u, err := v.VerifyToken(c.Request.Context(), token)
		if err != nil || u == nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUser, u)
		c.Next()
	}
}

// CurrentUser extracts the authenticated admin from context.
func CurrentUser(c *gin.Context) *models.User {
	v, _ := c.Get(ContextKeyUser)
	u, _ := v.(*models.User)
	return u
}

// NormalizeToken trims spaces and strips the optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
