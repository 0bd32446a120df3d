package repository

import (
	"context"
	"fmt"

	"github.com/welldanyogia/recipe-app-api/internal/models"
	"gorm.io/gorm"
)

var ingredientTable = attributeTable{name: "ingredients", joinTable: "recipe_ingredients", joinColumn: "ingredient_id"}

// IngredientRepository defines the interface for ingredient data access
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *models.Ingredient) error
	List(ctx context.Context, userID uint, assignedOnly bool) ([]models.Ingredient, error)
}

// ingredientRepository implements IngredientRepository using GORM
type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new IngredientRepository instance
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// Create creates a new ingredient
func (r *ingredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	if ingredient.Name == "" || ingredient.UserID == 0 {
		return fmt.Errorf("ingredient requires a name and an owner: %w", ErrInvalidInput)
	}
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

// List retrieves the user's ingredients, optionally only those assigned to recipes
func (r *ingredientRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]models.Ingredient, error) {
	ingredients := []models.Ingredient{}
	if err := listOwned(ctx, r.db, ingredientTable, userID, assignedOnly, &ingredients); err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}
