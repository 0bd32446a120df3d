package repository

import (
	"context"
	"fmt"

	"github.com/welldanyogia/recipe-app-api/internal/models"
	"gorm.io/gorm"
)

var tagTable = attributeTable{name: "tags", joinTable: "recipe_tags", joinColumn: "tag_id"}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	List(ctx context.Context, userID uint, assignedOnly bool) ([]models.Tag, error)
}

// tagRepository implements TagRepository using GORM
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create creates a new tag
func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if tag.Name == "" || tag.UserID == 0 {
		return fmt.Errorf("tag requires a name and an owner: %w", ErrInvalidInput)
	}
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// List retrieves the user's tags, optionally only those assigned to recipes
func (r *tagRepository) List(ctx context.Context, userID uint, assignedOnly bool) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := listOwned(ctx, r.db, tagTable, userID, assignedOnly, &tags); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}
