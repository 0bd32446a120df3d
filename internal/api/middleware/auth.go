// Package middleware provides HTTP middleware for the recipe API.
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-app-api/internal/api/response"
	"github.com/welldanyogia/recipe-app-api/internal/auth"
	apperrors "github.com/welldanyogia/recipe-app-api/internal/errors"
	"github.com/welldanyogia/recipe-app-api/internal/logger"
	"github.com/welldanyogia/recipe-app-api/internal/models"
)

const userContextKey = "user"

// Messages returned with 401 responses
const (
	MsgMissingCredentials = "authentication credentials were not provided"
	MsgInvalidHeader      = "invalid authorization header"
	MsgInvalidToken       = "invalid token"
	MsgInactiveUser       = "user inactive or deleted"
)

// UserLookup resolves the user a token was issued to
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// TokenAuth authenticates requests carrying "Authorization: Bearer <token>"
// (or "Token <token>") and stores the active user in the context.
func TokenAuth(tokens *auth.TokenService, users UserLookup, sec *logger.SecurityLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip, path := c.RealIP(), c.Request().URL.Path

			header := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if header == "" {
				sec.AuthFailure(ip, path, "missing_authorization_header")
				return response.Unauthorized(c, MsgMissingCredentials)
			}

			scheme, token, ok := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !ok || token == "" || !(strings.EqualFold(scheme, "Bearer") || strings.EqualFold(scheme, "Token")) {
				sec.AuthFailure(ip, path, "malformed_authorization_header")
				return response.Unauthorized(c, MsgInvalidHeader)
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				sec.InvalidToken(ip, path, err.Error())
				return response.Unauthorized(c, MsgInvalidToken)
			}
			userID, err := claims.UserID()
			if err != nil {
				sec.InvalidToken(ip, path, err.Error())
				return response.Unauthorized(c, MsgInvalidToken)
			}

			user, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					sec.AuthFailure(ip, path, "unknown_user")
					return response.Unauthorized(c, MsgInactiveUser)
				}
				return response.Error(c, err)
			}
			if !user.IsActive {
				sec.AuthFailure(ip, path, "inactive_user")
				return response.Unauthorized(c, MsgInactiveUser)
			}

			SetUser(c, user)
			return next(c)
		}
	}
}

// SetUser stores the authenticated user in the request context
func SetUser(c echo.Context, user *models.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the authenticated user, if any
func CurrentUser(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(userContextKey).(*models.User)
	return user, ok && user != nil
}
