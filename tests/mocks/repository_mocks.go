package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/welldanyogia/recipe-app-api/internal/models"
	"github.com/welldanyogia/recipe-app-api/internal/repository"
)

// MockUserRepository implements repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

// CreateUser creates a new user
func (m *MockUserRepository) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// CreateSuperuser creates a new superuser
func (m *MockUserRepository) CreateSuperuser(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// GetByID retrieves a user by its ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Authenticate checks credentials
func (m *MockUserRepository) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Update saves a user
func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockTagRepository implements repository.TagRepository
type MockTagRepository struct {
	mock.Mock
}

// Create creates a new tag
func (m *MockTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

// List retrieves a user's tags
func (m *MockTagRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]models.Tag, error) {
	args := m.Called(ctx, userID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

// MockIngredientRepository implements repository.IngredientRepository
type MockIngredientRepository struct {
	mock.Mock
}

// Create creates a new ingredient
func (m *MockIngredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

// List retrieves a user's ingredients
func (m *MockIngredientRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	args := m.Called(ctx, userID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ingredient), args.Error(1)
}

// MockRecipeRepository implements repository.RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

// Create creates a new recipe
func (m *MockRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

// AddTags links tags to a recipe
func (m *MockRecipeRepository) AddTags(ctx context.Context, recipe *models.Recipe, tags ...models.Tag) error {
	args := m.Called(ctx, recipe, tags)
	return args.Error(0)
}

// AddIngredients links ingredients to a recipe
func (m *MockRecipeRepository) AddIngredients(ctx context.Context, recipe *models.Recipe, ingredients ...models.Ingredient) error {
	args := m.Called(ctx, recipe, ingredients)
	return args.Error(0)
}

// List retrieves a user's recipes
func (m *MockRecipeRepository) List(ctx context.Context, userID uint, filter repository.RecipeFilter) ([]models.Recipe, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

// GetByID retrieves one of a user's recipes
func (m *MockRecipeRepository) GetByID(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

// Delete removes one of a user's recipes
func (m *MockRecipeRepository) Delete(ctx context.Context, userID, id uint) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

var (
	_ repository.UserRepository       = (*MockUserRepository)(nil)
	_ repository.TagRepository        = (*MockTagRepository)(nil)
	_ repository.IngredientRepository = (*MockIngredientRepository)(nil)
	_ repository.RecipeRepository     = (*MockRecipeRepository)(nil)
)
