package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/welldanyogia/recipe-app-api/internal/models"
	"gorm.io/gorm"
)

// RecipeFilter narrows a recipe listing to recipes carrying any of the given
// tags and any of the given ingredients. Empty slices do not filter.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeRepository defines the interface for recipe data access
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	AddTags(ctx context.Context, recipe *models.Recipe, tags ...models.Tag) error
	AddIngredients(ctx context.Context, recipe *models.Recipe, ingredients ...models.Ingredient) error
	List(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error)
	GetByID(ctx context.Context, userID, id uint) (*models.Recipe, error)
	Delete(ctx context.Context, userID, id uint) error
}

// recipeRepository implements RecipeRepository using GORM
type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new RecipeRepository instance
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create creates a recipe and links the tags and ingredients it already carries.
// Linked rows must exist and belong to the recipe owner; they are referenced, not upserted.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if recipe.Title == "" || recipe.UserID == 0 {
		return fmt.Errorf("recipe requires a title and an owner: %w", ErrInvalidInput)
	}
	if err := ensureOwned(ctx, r.db, tagTable, recipe.UserID, recipe.TagIDs()); err != nil {
		return err
	}
	if err := ensureOwned(ctx, r.db, ingredientTable, recipe.UserID, recipe.IngredientIDs()); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Omit("Tags.*", "Ingredients.*", "User").Create(recipe)
	if result.Error != nil {
		return fmt.Errorf("failed to create recipe: %w", result.Error)
	}
	return nil
}

// AddTags links existing tags owned by the recipe owner to the recipe
func (r *recipeRepository) AddTags(ctx context.Context, recipe *models.Recipe, tags ...models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	owner, err := r.ownerOf(ctx, recipe.ID)
	if err != nil {
		return err
	}
	if err := ensureOwned(ctx, r.db, tagTable, owner, models.Recipe{Tags: tags}.TagIDs()); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(recipe).Omit("Tags.*").Association("Tags").Append(tags); err != nil {
		return fmt.Errorf("failed to add tags to recipe: %w", err)
	}
	return nil
}

// AddIngredients links existing ingredients owned by the recipe owner to the recipe
func (r *recipeRepository) AddIngredients(ctx context.Context, recipe *models.Recipe, ingredients ...models.Ingredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	owner, err := r.ownerOf(ctx, recipe.ID)
	if err != nil {
		return err
	}
	if err := ensureOwned(ctx, r.db, ingredientTable, owner, models.Recipe{Ingredients: ingredients}.IngredientIDs()); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(recipe).Omit("Ingredients.*").Association("Ingredients").Append(ingredients); err != nil {
		return fmt.Errorf("failed to add ingredients to recipe: %w", err)
	}
	return nil
}

// List retrieves the user's recipes, newest first, with tags and ingredients loaded
func (r *recipeRepository) List(ctx context.Context, userID uint, filter RecipeFilter) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	query := r.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name DESC") }).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("ingredients.name DESC") }).
		Where("recipes.user_id = ?", userID)

	if len(filter.TagIDs) > 0 {
		query = query.Where("recipes.id IN (?)",
			r.db.Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", filter.TagIDs))
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.Where("recipes.id IN (?)",
			r.db.Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", filter.IngredientIDs))
	}

	if err := query.Order("recipes.id DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetByID retrieves one of the user's recipes; recipes owned by others are not found
func (r *recipeRepository) GetByID(ctx context.Context, userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	result := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		First(&recipe, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", result.Error)
	}
	return &recipe, nil
}

// Delete removes one of the user's recipes along with its tag and ingredient links
func (r *recipeRepository) Delete(ctx context.Context, userID, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe := models.Recipe{ID: id}
		var count int64
		if err := tx.Model(&models.Recipe{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to unlink tags: %w", err)
		}
		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return fmt.Errorf("failed to unlink ingredients: %w", err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// ownerOf returns the owning user id of a stored recipe
func (r *recipeRepository) ownerOf(ctx context.Context, recipeID uint) (uint, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).Select("id", "user_id").First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to load recipe owner: %w", err)
	}
	return recipe.UserID, nil
}
