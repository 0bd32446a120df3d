package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// attributeTable describes a user-owned attribute table (tags, ingredients)
// and the recipe association table that references it.
type attributeTable struct {
	name       string
	joinTable  string
	joinColumn string
}

// listOwned loads the user's rows ordered by name descending. With
// assignedOnly set, only rows referenced by at least one recipe are returned,
// each once.
func listOwned(ctx context.Context, db *gorm.DB, t attributeTable, userID uint, assignedOnly bool, dest interface{}) error {
	q := db.WithContext(ctx).Where(t.name+".user_id = ?", userID)
	if assignedOnly {
		q = q.Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.id", t.joinTable, t.joinTable, t.joinColumn, t.name)).
			Distinct(t.name + ".*")
	}
	return q.Order(t.name + ".name DESC").Order(t.name + ".id DESC").Find(dest).Error
}

// ensureOwned fails with ErrInvalidInput unless every id names a row of the
// table owned by userID.
func ensureOwned(ctx context.Context, db *gorm.DB, t attributeTable, userID uint, ids []uint) error {
	unique := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) == 0 {
		return nil
	}

	var count int64
	err := db.WithContext(ctx).Table(t.name).
		Where("id IN ? AND user_id = ?", ids, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check %s ownership: %w", t.name, err)
	}
	if count != int64(len(unique)) {
		return fmt.Errorf("%s must belong to the recipe owner: %w", t.name, ErrInvalidInput)
	}
	return nil
}
