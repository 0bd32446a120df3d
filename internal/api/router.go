package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-app-api/internal/api/handlers"
	"github.com/welldanyogia/recipe-app-api/internal/api/middleware"
	"github.com/welldanyogia/recipe-app-api/internal/api/response"
	"github.com/welldanyogia/recipe-app-api/internal/auth"
	apperrors "github.com/welldanyogia/recipe-app-api/internal/errors"
	"github.com/welldanyogia/recipe-app-api/internal/logger"
	"github.com/welldanyogia/recipe-app-api/internal/repository"
	"github.com/welldanyogia/recipe-app-api/internal/storage"
	"gorm.io/gorm"
)

const limiterCleanupInterval = time.Minute

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB          *gorm.DB
	FileStorage storage.FileStorage
	Tokens      *auth.TokenService
	Logger      *slog.Logger
	// Security configuration
	AllowedOrigins []string // Allowed CORS origins
	Production     bool     // Drops wildcard origins
	RateLimit      float64  // Requests per second per IP (0 = default)
	RateBurst      int      // Burst size for rate limiter (0 = default)
	// Bounds the limiter cleanup goroutine; when nil, idle limiters are never swept
	Context context.Context
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	sec := logger.FromLogger(log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	// Security Middleware (applied in correct order)
	// 1. Recover from panics
	e.Use(middleware.Recover())

	// 2. Request logging
	e.Use(middleware.RequestLogger(log))

	// 3. Security headers (applied to all responses)
	e.Use(middleware.SecureHeaders())

	// 4. CORS
	e.Use(middleware.SecureCORS(cfg.AllowedOrigins, cfg.Production))

	// 5. Rate limiting
	limiter := middleware.NewLimiterFromConfig(cfg.RateLimit, cfg.RateBurst)
	if cfg.Context != nil {
		limiter.StartCleanup(cfg.Context, limiterCleanupInterval)
	}
	e.Use(middleware.RateLimiterWithConfig(limiter, sec))

	// 6. Request size
	e.Use(middleware.BodyLimit("1M"))

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	tagRepo := repository.NewTagRepository(cfg.DB)
	ingredientRepo := repository.NewIngredientRepository(cfg.DB)
	recipeRepo := repository.NewRecipeRepository(cfg.DB)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	userHandler := handlers.NewUserHandler(userRepo, cfg.Tokens, sec)
	tagHandler := handlers.NewTagHandler(tagRepo)
	ingredientHandler := handlers.NewIngredientHandler(ingredientRepo)
	recipeHandler := handlers.NewRecipeHandler(recipeRepo, cfg.FileStorage, sec)

	requireAuth := middleware.TokenAuth(cfg.Tokens, userRepo, sec)

	// Health routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	api := e.Group("/api")

	// User routes
	user := api.Group("/user")
	user.POST("/create", userHandler.Create)
	user.POST("/token", userHandler.Token)
	user.GET("/me", userHandler.Me, requireAuth)
	user.PATCH("/me", userHandler.UpdateMe, requireAuth)

	// Recipe app routes, all authenticated
	recipe := api.Group("/recipe", requireAuth)

	recipe.GET("/tags", tagHandler.List)
	recipe.POST("/tags", tagHandler.Create)

	recipe.GET("/ingredients", ingredientHandler.List)
	recipe.POST("/ingredients", ingredientHandler.Create)

	recipe.GET("/recipes", recipeHandler.List)
	recipe.GET("/recipes/:id", recipeHandler.Get)
	recipe.GET("/recipes/:id/image", recipeHandler.Image)
	recipe.DELETE("/recipes/:id", recipeHandler.Delete)

	return e
}

// errorHandler renders framework errors (unknown routes, rate limiting,
// oversized bodies, panics) in the API error envelope.
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := apperrors.ErrInternal.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if msg, ok := he.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(status)
			}
		} else {
			log.Error("unhandled error", slog.String("error", err.Error()))
		}

		code := apperrors.CodeInternalError
		switch status {
		case http.StatusNotFound:
			code = apperrors.CodeNotFound
		case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusMethodNotAllowed:
			code = apperrors.CodeInvalidInput
		case http.StatusUnauthorized:
			code = apperrors.CodeUnauthorized
		case http.StatusForbidden:
			code = apperrors.CodeForbidden
		case http.StatusTooManyRequests:
			code = "RATE_LIMITED"
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, response.ErrorResponse{Success: false, Error: message, Code: code})
		}
		if writeErr != nil {
			log.Error("failed to write error response", slog.String("error", writeErr.Error()))
		}
	}
}
