package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-app-api/internal/api/middleware"
	"github.com/welldanyogia/recipe-app-api/internal/api/response"
	"github.com/welldanyogia/recipe-app-api/internal/models"
	"github.com/welldanyogia/recipe-app-api/internal/repository"
	"github.com/welldanyogia/recipe-app-api/internal/validator"
)

// IngredientHandler handles ingredient-related HTTP requests
type IngredientHandler struct {
	repo repository.IngredientRepository
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(repo repository.IngredientRepository) *IngredientHandler {
	return &IngredientHandler{repo: repo}
}

// CreateIngredientRequest represents the request body for creating an ingredient
type CreateIngredientRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/recipe/ingredients
func (h *IngredientHandler) List(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, middleware.MsgMissingCredentials)
	}

	assignedOnly, err := validator.ParseFlag(c.QueryParam("assigned_only"))
	if err != nil {
		return response.BadRequest(c, "assigned_only: "+err.Error())
	}

	ingredients, err := h.repo.List(c.Request().Context(), user.ID, assignedOnly)
	if err != nil {
		return response.InternalError(c, "failed to list ingredients")
	}

	return response.Success(c, ingredients)
}

// Create handles POST /api/recipe/ingredients
func (h *IngredientHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, middleware.MsgMissingCredentials)
	}

	var req CreateIngredientRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	name, err := validator.ValidateName(req.Name)
	if err != nil {
		return response.BadRequest(c, "name: "+err.Error())
	}

	ingredient := &models.Ingredient{Name: name, UserID: user.ID}
	if err := h.repo.Create(c.Request().Context(), ingredient); err != nil {
		return response.InternalError(c, "failed to create ingredient")
	}

	return response.Created(c, ingredient)
}
