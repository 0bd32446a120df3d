package fixtures

import (
	"time"

	"github.com/welldanyogia/recipe-app-api/internal/models"
)

// UserBuilder creates test User instances with fluent API
type UserBuilder struct {
	user models.User
}

// NewUserBuilder creates a new UserBuilder with sensible defaults.
// The password is left unhashed; use WithPassword to set one.
func NewUserBuilder() *UserBuilder {
	now := time.Now()
	return &UserBuilder{
		user: models.User{
			ID:        1,
			Email:     "test@example.com",
			Name:      "Test User",
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// WithID sets the user ID
func (b *UserBuilder) WithID(id uint) *UserBuilder {
	b.user.ID = id
	return b
}

// WithEmail sets the user email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// WithName sets the user name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

// WithPassword hashes and sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	if err := b.user.SetPassword(password); err != nil {
		panic(err)
	}
	return b
}

// WithActive sets the active flag
func (b *UserBuilder) WithActive(active bool) *UserBuilder {
	b.user.IsActive = active
	return b
}

// Build returns the constructed User
func (b *UserBuilder) Build() *models.User {
	u := b.user
	return &u
}

// TagBuilder creates test Tag instances with fluent API
type TagBuilder struct {
	tag models.Tag
}

// NewTagBuilder creates a new TagBuilder with sensible defaults
func NewTagBuilder() *TagBuilder {
	return &TagBuilder{tag: models.Tag{ID: 1, Name: "Vegan", UserID: 1}}
}

// WithID sets the tag ID
func (b *TagBuilder) WithID(id uint) *TagBuilder {
	b.tag.ID = id
	return b
}

// WithName sets the tag name
func (b *TagBuilder) WithName(name string) *TagBuilder {
	b.tag.Name = name
	return b
}

// WithUserID sets the owning user
func (b *TagBuilder) WithUserID(userID uint) *TagBuilder {
	b.tag.UserID = userID
	return b
}

// Build returns the constructed Tag
func (b *TagBuilder) Build() *models.Tag {
	t := b.tag
	return &t
}

// BuildValue returns the constructed Tag as a value
func (b *TagBuilder) BuildValue() models.Tag {
	return b.tag
}

// IngredientBuilder creates test Ingredient instances with fluent API
type IngredientBuilder struct {
	ingredient models.Ingredient
}

// NewIngredientBuilder creates a new IngredientBuilder with sensible defaults
func NewIngredientBuilder() *IngredientBuilder {
	return &IngredientBuilder{ingredient: models.Ingredient{ID: 1, Name: "Kale", UserID: 1}}
}

// WithID sets the ingredient ID
func (b *IngredientBuilder) WithID(id uint) *IngredientBuilder {
	b.ingredient.ID = id
	return b
}

// WithName sets the ingredient name
func (b *IngredientBuilder) WithName(name string) *IngredientBuilder {
	b.ingredient.Name = name
	return b
}

// WithUserID sets the owning user
func (b *IngredientBuilder) WithUserID(userID uint) *IngredientBuilder {
	b.ingredient.UserID = userID
	return b
}

// Build returns the constructed Ingredient
func (b *IngredientBuilder) Build() *models.Ingredient {
	i := b.ingredient
	return &i
}

// BuildValue returns the constructed Ingredient as a value
func (b *IngredientBuilder) BuildValue() models.Ingredient {
	return b.ingredient
}

// RecipeBuilder creates test Recipe instances with fluent API
type RecipeBuilder struct {
	recipe models.Recipe
}

// NewRecipeBuilder creates a new RecipeBuilder with sensible defaults
func NewRecipeBuilder() *RecipeBuilder {
	return &RecipeBuilder{
		recipe: models.Recipe{
			ID:          1,
			Title:       "Steak and mushroom sauce",
			TimeMinutes: 5,
			Price:       5.00,
			UserID:      1,
			CreatedAt:   time.Now(),
			Tags:        []models.Tag{},
			Ingredients: []models.Ingredient{},
		},
	}
}

// WithID sets the recipe ID
func (b *RecipeBuilder) WithID(id uint) *RecipeBuilder {
	b.recipe.ID = id
	return b
}

// WithTitle sets the recipe title
func (b *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	b.recipe.Title = title
	return b
}

// WithUserID sets the owning user
func (b *RecipeBuilder) WithUserID(userID uint) *RecipeBuilder {
	b.recipe.UserID = userID
	return b
}

// WithImage sets the stored image path
func (b *RecipeBuilder) WithImage(path string) *RecipeBuilder {
	b.recipe.Image = &path
	return b
}

// WithTags sets the recipe tags
func (b *RecipeBuilder) WithTags(tags ...models.Tag) *RecipeBuilder {
	b.recipe.Tags = tags
	return b
}

// WithIngredients sets the recipe ingredients
func (b *RecipeBuilder) WithIngredients(ingredients ...models.Ingredient) *RecipeBuilder {
	b.recipe.Ingredients = ingredients
	return b
}

// Build returns the constructed Recipe
func (b *RecipeBuilder) Build() *models.Recipe {
	r := b.recipe
	return &r
}

// BuildValue returns the constructed Recipe as a value
func (b *RecipeBuilder) BuildValue() models.Recipe {
	return b.recipe
}

// Helper functions for creating multiple test entities

// CreateTags creates a slice of tags owned by userID with sequential IDs
func CreateTags(userID uint, names ...string) []models.Tag {
	tags := make([]models.Tag, len(names))
	for i, name := range names {
		tags[i] = NewTagBuilder().WithID(uint(i + 1)).WithName(name).WithUserID(userID).BuildValue()
	}
	return tags
}

// CreateIngredients creates a slice of ingredients owned by userID with sequential IDs
func CreateIngredients(userID uint, names ...string) []models.Ingredient {
	ingredients := make([]models.Ingredient, len(names))
	for i, name := range names {
		ingredients[i] = NewIngredientBuilder().WithID(uint(i + 1)).WithName(name).WithUserID(userID).BuildValue()
	}
	return ingredients
}

// CreateRecipes creates a slice of recipes owned by userID with sequential IDs
func CreateRecipes(userID uint, count int) []models.Recipe {
	recipes := make([]models.Recipe, count)
	for i := 0; i < count; i++ {
		recipes[i] = NewRecipeBuilder().
			WithID(uint(i + 1)).
			WithUserID(userID).
			WithTitle(generateTitle(i)).
			BuildValue()
	}
	return recipes
}

func generateTitle(index int) string {
	titles := []string{
		"Thai vegetable curry",
		"Aubergine with tahini",
		"Fish and chips",
		"Carrot cake",
		"Lentil soup",
	}
	return titles[index%len(titles)]
}
