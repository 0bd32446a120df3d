package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-app-api/internal/api/middleware"
	"github.com/welldanyogia/recipe-app-api/internal/api/response"
	"github.com/welldanyogia/recipe-app-api/internal/models"
	"github.com/welldanyogia/recipe-app-api/internal/repository"
	"github.com/welldanyogia/recipe-app-api/internal/validator"
)

// TagHandler handles tag-related HTTP requests
type TagHandler struct {
	repo repository.TagRepository
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(repo repository.TagRepository) *TagHandler {
	return &TagHandler{repo: repo}
}

// CreateTagRequest represents the request body for creating a tag
type CreateTagRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/recipe/tags
func (h *TagHandler) List(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, middleware.MsgMissingCredentials)
	}

	assignedOnly, err := validator.ParseFlag(c.QueryParam("assigned_only"))
	if err != nil {
		return response.BadRequest(c, "assigned_only: "+err.Error())
	}

	tags, err := h.repo.List(c.Request().Context(), user.ID, assignedOnly)
	if err != nil {
		return response.InternalError(c, "failed to list tags")
	}

	return response.Success(c, tags)
}

// Create handles POST /api/recipe/tags
func (h *TagHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, middleware.MsgMissingCredentials)
	}

	var req CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	name, err := validator.ValidateName(req.Name)
	if err != nil {
		return response.BadRequest(c, "name: "+err.Error())
	}

	tag := &models.Tag{Name: name, UserID: user.ID}
	if err := h.repo.Create(c.Request().Context(), tag); err != nil {
		return response.InternalError(c, "failed to create tag")
	}

	return response.Created(c, tag)
}
