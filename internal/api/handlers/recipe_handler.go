package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-app-api/internal/api/middleware"
	"github.com/welldanyogia/recipe-app-api/internal/api/response"
	"github.com/welldanyogia/recipe-app-api/internal/logger"
	"github.com/welldanyogia/recipe-app-api/internal/models"
	"github.com/welldanyogia/recipe-app-api/internal/repository"
	"github.com/welldanyogia/recipe-app-api/internal/storage"
	"github.com/welldanyogia/recipe-app-api/internal/validator"
)

// RecipeHandler handles read and delete requests for recipes
type RecipeHandler struct {
	repo        repository.RecipeRepository
	fileStorage storage.FileStorage
	sec         *logger.SecurityLogger
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(repo repository.RecipeRepository, fileStorage storage.FileStorage, sec *logger.SecurityLogger) *RecipeHandler {
	return &RecipeHandler{repo: repo, fileStorage: fileStorage, sec: sec}
}

// List handles GET /api/recipe/recipes
func (h *RecipeHandler) List(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, middleware.MsgMissingCredentials)
	}

	tagIDs, err := validator.ParseIDList(c.QueryParam("tags"))
	if err != nil {
		return response.BadRequest(c, "tags: "+err.Error())
	}
	ingredientIDs, err := validator.ParseIDList(c.QueryParam("ingredients"))
	if err != nil {
		return response.BadRequest(c, "ingredients: "+err.Error())
	}

	recipes, err := h.repo.List(c.Request().Context(), user.ID, repository.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		return response.InternalError(c, "failed to list recipes")
	}

	return response.Success(c, recipes)
}

// Get handles GET /api/recipe/recipes/:id
func (h *RecipeHandler) Get(c echo.Context) error {
	recipe, err := h.load(c)
	if err != nil || recipe == nil {
		return err
	}
	return response.Success(c, recipe)
}

// Image handles GET /api/recipe/recipes/:id/image
func (h *RecipeHandler) Image(c echo.Context) error {
	recipe, err := h.load(c)
	if err != nil || recipe == nil {
		return err
	}
	if recipe.Image == nil || *recipe.Image == "" {
		return response.NotFound(c, "image not found")
	}

	file, err := h.fileStorage.Get(*recipe.Image)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileNotFound):
			return response.NotFound(c, "image not found")
		case errors.Is(err, storage.ErrPathTraversal):
			h.sec.PathTraversalAttempt(c.RealIP(), c.Request().URL.Path, *recipe.Image)
			return response.NotFound(c, "image not found")
		default:
			return response.InternalError(c, "failed to retrieve image")
		}
	}
	defer file.Close()

	return c.Stream(http.StatusOK, storage.ContentType(*recipe.Image), file)
}

// Delete handles DELETE /api/recipe/recipes/:id
// The stored image is removed after the recipe row.
func (h *RecipeHandler) Delete(c echo.Context) error {
	recipe, err := h.load(c)
	if err != nil || recipe == nil {
		return err
	}

	if err := h.repo.Delete(c.Request().Context(), recipe.UserID, recipe.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.NotFound(c, "recipe not found")
		}
		return response.InternalError(c, "failed to delete recipe")
	}

	if recipe.Image != nil && *recipe.Image != "" {
		if err := h.fileStorage.Delete(*recipe.Image); err != nil {
			h.sec.Error("failed to delete recipe image",
				slog.Uint64("recipe_id", uint64(recipe.ID)),
				slog.String("error", err.Error()))
		}
	}

	return response.NoContent(c)
}

// load resolves the :id recipe for the current user. When it returns a nil
// recipe the response has already been written.
func (h *RecipeHandler) load(c echo.Context) (*models.Recipe, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, response.Unauthorized(c, middleware.MsgMissingCredentials)
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return nil, response.BadRequest(c, "invalid recipe ID")
	}

	recipe, err := h.repo.GetByID(c.Request().Context(), user.ID, uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NotFound(c, "recipe not found")
		}
		return nil, response.InternalError(c, "failed to get recipe")
	}
	return recipe, nil
}
