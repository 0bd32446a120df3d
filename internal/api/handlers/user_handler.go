package handlers

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-app-api/internal/api/middleware"
	"github.com/welldanyogia/recipe-app-api/internal/api/response"
	"github.com/welldanyogia/recipe-app-api/internal/auth"
	apperrors "github.com/welldanyogia/recipe-app-api/internal/errors"
	"github.com/welldanyogia/recipe-app-api/internal/logger"
	"github.com/welldanyogia/recipe-app-api/internal/models"
	"github.com/welldanyogia/recipe-app-api/internal/repository"
	"github.com/welldanyogia/recipe-app-api/internal/validator"
)

// UserHandler handles account and token HTTP requests
type UserHandler struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	sec    *logger.SecurityLogger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repository.UserRepository, tokens *auth.TokenService, sec *logger.SecurityLogger) *UserHandler {
	return &UserHandler{users: users, tokens: tokens, sec: sec}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// TokenRequest represents the request body for obtaining a token
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest represents the request body for updating the current user.
// Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserResponse is the public representation of a user; the password is never returned
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenResponse carries an issued access token
type TokenResponse struct {
	Token string `json:"token"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// Create handles POST /api/user/create
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	email := strings.TrimSpace(req.Email)
	if err := validator.ValidateEmail(email); err != nil {
		return response.BadRequest(c, "email: "+err.Error())
	}
	if err := validator.ValidatePassword(req.Password); err != nil {
		return response.BadRequest(c, "password: "+err.Error())
	}
	name := validator.SanitizeString(req.Name, validator.MaxNameLength)

	user, err := h.users.CreateUser(c.Request().Context(), email, req.Password, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return response.Conflict(c, "user with this email already exists")
		}
		return response.Error(c, err)
	}

	return response.Created(c, newUserResponse(user))
}

// Token handles POST /api/user/token
func (h *UserHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return response.BadRequest(c, "email and password are required")
	}

	user, err := h.users.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			h.sec.LoginFailure(c.RealIP(), req.Email)
		}
		return response.Error(c, err)
	}

	token, err := h.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return response.InternalError(c, "failed to issue token")
	}

	return response.Success(c, TokenResponse{Token: token})
}

// Me handles GET /api/user/me
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, middleware.MsgMissingCredentials)
	}
	return response.Success(c, newUserResponse(user))
}

// UpdateMe handles PATCH /api/user/me
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, middleware.MsgMissingCredentials)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	updated := *user
	if req.Name != nil {
		updated.Name = validator.SanitizeString(*req.Name, validator.MaxNameLength)
	}
	if req.Password != nil {
		if err := validator.ValidatePassword(*req.Password); err != nil {
			return response.BadRequest(c, "password: "+err.Error())
		}
		if err := updated.SetPassword(*req.Password); err != nil {
			return response.InternalError(c, "failed to update password")
		}
	}

	if err := h.users.Update(c.Request().Context(), &updated); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, newUserResponse(&updated))
}
