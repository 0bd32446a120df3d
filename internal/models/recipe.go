package models

import (
	"time"
)

// Recipe is a user-owned recipe with its tags and ingredients
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;size:255" json:"title"`
	TimeMinutes int       `gorm:"not null" json:"time_minutes"`
	Price       float64   `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string    `gorm:"size:255" json:"link"`
	Image       *string   `gorm:"size:500" json:"image,omitempty"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"-"`

	// Relationships
	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE" json:"ingredients"`
}

// TableName returns the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

func (r Recipe) String() string {
	return r.Title
}

// TagIDs returns the ids of the loaded tags.
func (r Recipe) TagIDs() []uint {
	ids := make([]uint, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}

// IngredientIDs returns the ids of the loaded ingredients.
func (r Recipe) IngredientIDs() []uint {
	ids := make([]uint, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ids[i] = ing.ID
	}
	return ids
}
