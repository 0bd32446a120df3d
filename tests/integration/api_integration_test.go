//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/welldanyogia/recipe-app-api/internal/api"
	"github.com/welldanyogia/recipe-app-api/internal/api/response"
	"github.com/welldanyogia/recipe-app-api/internal/auth"
	"github.com/welldanyogia/recipe-app-api/internal/models"
	"github.com/welldanyogia/recipe-app-api/internal/repository"
	"github.com/welldanyogia/recipe-app-api/internal/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// APIIntegrationTestSuite drives the full router against PostgreSQL
type APIIntegrationTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	db         *gorm.DB
	echo       *echo.Echo
	cancel     context.CancelFunc
	recipeRepo repository.RecipeRepository
	tagRepo    repository.TagRepository
}

// SetupSuite starts PostgreSQL container and builds the router
func (s *APIIntegrationTestSuite) SetupSuite() {
	models.PasswordCost = bcrypt.MinCost
	s.container, s.db = startPostgres(s.T())

	fileStorage, err := storage.NewLocalStorage(s.T().TempDir())
	require.NoError(s.T(), err)

	tokens, err := auth.NewTokenService("integration-secret-0123456789abcdef", time.Hour)
	require.NoError(s.T(), err)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.echo = api.NewRouter(&api.RouterConfig{
		DB:          s.db,
		FileStorage: fileStorage,
		Tokens:      tokens,
		Logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		RateLimit:   1000,
		RateBurst:   1000,
		Context:     ctx,
	})

	s.recipeRepo = repository.NewRecipeRepository(s.db)
	s.tagRepo = repository.NewTagRepository(s.db)
}

// TearDownSuite stops the PostgreSQL container
func (s *APIIntegrationTestSuite) TearDownSuite() {
	s.cancel()
	if s.container != nil {
		s.container.Terminate(context.Background())
	}
}

// SetupTest cleans up data before each test
func (s *APIIntegrationTestSuite) SetupTest() {
	require.NoError(s.T(), truncateAll(s.db))
}

func TestAPIIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(APIIntegrationTestSuite))
}

// ==================== Helper Methods ====================

func (s *APIIntegrationTestSuite) makeRequest(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reqBody io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewReader(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *APIIntegrationTestSuite) parseResponse(rec *httptest.ResponseRecorder, dest interface{}) {
	var resp response.APIResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(s.T(), resp.Success)
	raw, err := json.Marshal(resp.Data)
	require.NoError(s.T(), err)
	require.NoError(s.T(), json.Unmarshal(raw, dest))
}

// signUp registers a user through the API and returns its id and a token
func (s *APIIntegrationTestSuite) signUp(email string) (uint, string) {
	rec := s.makeRequest(http.MethodPost, "/api/user/create", "", map[string]string{
		"email": email, "password": "testpass123", "name": "Cook",
	})
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	rec = s.makeRequest(http.MethodPost, "/api/user/token", "", map[string]string{
		"email": email, "password": "testpass123",
	})
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var tok struct {
		Token string `json:"token"`
	}
	s.parseResponse(rec, &tok)

	var user models.User
	require.NoError(s.T(), s.db.Where("email = ?", email).First(&user).Error)
	return user.ID, tok.Token
}

// ==================== Tag and Ingredient API Tests ====================

func (s *APIIntegrationTestSuite) TestTagAPI_CreateAndList() {
	_, token := s.signUp("tags@example.com")

	for _, name := range []string{"Dessert", "Vegan"} {
		rec := s.makeRequest(http.MethodPost, "/api/recipe/tags", token, map[string]string{"name": name})
		require.Equal(s.T(), http.StatusCreated, rec.Code)
	}

	rec := s.makeRequest(http.MethodGet, "/api/recipe/tags", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var tags []models.Tag
	s.parseResponse(rec, &tags)
	require.Len(s.T(), tags, 2)
	assert.Equal(s.T(), "Vegan", tags[0].Name)
	assert.Equal(s.T(), "Dessert", tags[1].Name)
}

func (s *APIIntegrationTestSuite) TestTagAPI_IsolatedPerUser() {
	_, mine := s.signUp("mine@example.com")
	_, theirs := s.signUp("theirs@example.com")

	rec := s.makeRequest(http.MethodPost, "/api/recipe/tags", theirs, map[string]string{"name": "Fruity"})
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	rec = s.makeRequest(http.MethodGet, "/api/recipe/tags", mine, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var tags []models.Tag
	s.parseResponse(rec, &tags)
	assert.Empty(s.T(), tags)
}

func (s *APIIntegrationTestSuite) TestIngredientAPI_AssignedOnly() {
	userID, token := s.signUp("ingredients@example.com")

	rec := s.makeRequest(http.MethodPost, "/api/recipe/ingredients", token, map[string]string{"name": "Eggs"})
	require.Equal(s.T(), http.StatusCreated, rec.Code)
	var eggs models.Ingredient
	s.parseResponse(rec, &eggs)

	rec = s.makeRequest(http.MethodPost, "/api/recipe/ingredients", token, map[string]string{"name": "Cheese"})
	require.Equal(s.T(), http.StatusCreated, rec.Code)

	ctx := context.Background()
	for _, title := range []string{"Eggs benedict", "Omelette"} {
		recipe := &models.Recipe{Title: title, TimeMinutes: 10, Price: 4.5, UserID: userID}
		require.NoError(s.T(), s.recipeRepo.Create(ctx, recipe))
		require.NoError(s.T(), s.recipeRepo.AddIngredients(ctx, recipe, models.Ingredient{ID: eggs.ID}))
	}

	rec = s.makeRequest(http.MethodGet, "/api/recipe/ingredients?assigned_only=1", token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var ingredients []models.Ingredient
	s.parseResponse(rec, &ingredients)
	require.Len(s.T(), ingredients, 1)
	assert.Equal(s.T(), "Eggs", ingredients[0].Name)
}

// ==================== Recipe API Tests ====================

func (s *APIIntegrationTestSuite) TestRecipeAPI_DetailAndDelete() {
	userID, token := s.signUp("recipes@example.com")
	ctx := context.Background()

	tag := models.Tag{Name: "Dinner", UserID: userID}
	require.NoError(s.T(), s.tagRepo.Create(ctx, &tag))
	recipe := &models.Recipe{Title: "Roast", TimeMinutes: 90, Price: 12.5, UserID: userID}
	require.NoError(s.T(), s.recipeRepo.Create(ctx, recipe))
	require.NoError(s.T(), s.recipeRepo.AddTags(ctx, recipe, tag))

	rec := s.makeRequest(http.MethodGet, fmt.Sprintf("/api/recipe/recipes/%d", recipe.ID), token, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	var detail models.Recipe
	s.parseResponse(rec, &detail)
	assert.Equal(s.T(), "Roast", detail.Title)
	assert.Equal(s.T(), 12.5, detail.Price)
	require.Len(s.T(), detail.Tags, 1)

	rec = s.makeRequest(http.MethodGet, fmt.Sprintf("/api/recipe/recipes/%d/image", recipe.ID), token, nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)

	rec = s.makeRequest(http.MethodDelete, fmt.Sprintf("/api/recipe/recipes/%d", recipe.ID), token, nil)
	assert.Equal(s.T(), http.StatusNoContent, rec.Code)

	rec = s.makeRequest(http.MethodGet, fmt.Sprintf("/api/recipe/recipes/%d", recipe.ID), token, nil)
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

// ==================== Health API Tests ====================

func (s *APIIntegrationTestSuite) TestHealthAPI_Ready() {
	rec := s.makeRequest(http.MethodGet, "/ready", "", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
}

// ==================== Response Format Tests ====================

func (s *APIIntegrationTestSuite) TestAPI_ResponseFormat_Unauthorized() {
	rec := s.makeRequest(http.MethodGet, "/api/recipe/tags", "", nil)
	require.Equal(s.T(), http.StatusUnauthorized, rec.Code)

	var resp response.ErrorResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(s.T(), resp.Success)
	assert.Equal(s.T(), "UNAUTHORIZED", resp.Code)
	assert.NotEmpty(s.T(), resp.Error)
}
