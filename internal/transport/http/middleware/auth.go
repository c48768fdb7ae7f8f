package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-mongo-shop/internal/core/auth"
	"go-gin-mongo-shop/internal/domain"
	"go-gin-mongo-shop/internal/service"
	"go-gin-mongo-shop/internal/transport/http/ez"
	resp "go-gin-mongo-shop/internal/transport/http/response"
)

const (
	MsgTokenRequired = "Token is required"
	MsgTokenInvalid  = "Invalid or expired token"
	MsgUserNotFound  = "User not found"
)

type TokenVerifier interface {
	Parse(token string) (*auth.Claims, error)
}

type Identifier interface {
	Identify(ctx context.Context, email string) (*domain.User, error)
}

// AuthToken verifies the raw token carried in header and resolves the user
// its email claim names. On success the user, its id and role are set on
// the context.
func AuthToken(v TokenVerifier, header string, ident Identifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := v.Parse(c.GetHeader(header))
		switch {
		case errors.Is(err, auth.ErrTokenMissing):
			resp.Abort(c, http.StatusUnauthorized, MsgTokenRequired)
			return
		case err != nil:
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			resp.Abort(c, http.StatusUnauthorized, MsgTokenInvalid)
			return
		}

		u, err := ident.Identify(c.Request.Context(), claims.Email)
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			resp.Abort(c, http.StatusBadRequest, MsgUserNotFound)
			return
		case err != nil:
			ez.Fail(c, err)
			return
		}

		c.Set(ez.KeyUser, u)
		c.Set(ez.KeyUserID, u.ID)
		c.Set(ez.KeyRole, string(u.Role))
		c.Next()
	}
}

// CurrentUser returns the user set by AuthToken.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ez.KeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok && u != nil
}
