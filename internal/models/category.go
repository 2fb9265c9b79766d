// Package models contains data structures for the application's domain models.
package models

import "time"

// Category is a top-level grouping of threads. Deleting a category cascades
// to its threads and, transitively, their posts, reactions and tag links.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	// ThreadCount is not persisted; computed at query time
	ThreadCount int `gorm:"->;-:migration" json:"thread_count"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// CreateCategoryRequest is the body of POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks field constraints before the request reaches the store.
func (r *CreateCategoryRequest) Validate() error {
	if r.Name == "" || len(r.Name) > 100 {
		return NewValidationError("Category name must be 1-100 characters")
	}
	return nil
}

// CategoryPatch is a typed partial update for a category. Nil fields are
// left untouched.
type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Validate checks the non-nil fields of the patch.
func (p *CategoryPatch) Validate() error {
	if p.Name != nil && (*p.Name == "" || len(*p.Name) > 100) {
		return NewValidationError("Category name must be 1-100 characters")
	}
	return nil
}

// Columns returns the column assignments for the non-nil fields.
func (p *CategoryPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	return cols
}
