package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"worldexplorer/internal/api"
	"worldexplorer/internal/feature/auth/domain/entity"
	"worldexplorer/internal/feature/auth/usecase"
)

// ContextUser is the gin context key holding the authenticated *entity.User.
const ContextUser = "user"

// UnauthorizedMessage is the single message for every rejected request, so
// the response never tells which check failed.
const UnauthorizedMessage = "Not authorized to access this route"

const bearerPrefix = "Bearer "

// TokenParser verifies a bearer token and returns its user ID.
type TokenParser interface {
	ParseToken(tokenStr string) (string, error)
}

// UserResolver loads the user a verified token refers to.
type UserResolver interface {
	CurrentUser(ctx context.Context, id string) (*entity.User, error)
}

// AuthRequired returns a Gin middleware function that validates JWT tokens
// and restricts access to authenticated users only.
// The resolved user is stored under ContextUser and is never nil downstream.
func AuthRequired(tokens TokenParser, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			abortUnauthorized(c)
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
		if tokenStr == "" {
			abortUnauthorized(c)
			return
		}

		// 2. Verify signature and expiry
		userID, err := tokens.ParseToken(tokenStr)
		if err != nil {
			slog.Debug("token rejected", "error", err, "remote_addr", c.ClientIP())
			abortUnauthorized(c)
			return
		}

		// 3. Resolve the user the token was issued for
		user, err := users.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, usecase.ErrUserNotFound) {
				slog.Warn("token for missing user", "user_id", userID, "remote_addr", c.ClientIP())
				abortUnauthorized(c)
				return
			}
			slog.Error("failed to resolve token user", "error", err, "user_id", userID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error during authentication"})
			return
		}

		// 4. Pass control to the next handler
		c.Set(ContextUser, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Message: UnauthorizedMessage})
}
