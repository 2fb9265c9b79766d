package models

import "time"

// Thread is a discussion under a category. A thread is always created
// together with its first post, so post_count is at least 1.
type Thread struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	Title      string    `gorm:"size:300;not null" json:"title"`
	AuthorName string    `gorm:"size:50;not null" json:"author_name"`
	IsPinned   bool      `gorm:"not null;default:false" json:"is_pinned"`
	IsLocked   bool      `gorm:"not null;default:false" json:"is_locked"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// PostCount is not persisted; computed at query time
	PostCount int `gorm:"->;-:migration" json:"post_count"`
	// CategoryName is not persisted; joined at query time on detail reads
	CategoryName string   `gorm:"->;-:migration" json:"category_name,omitempty"`
	Tags         []string `gorm:"-" json:"tags"`
}

// TableName specifies the table name for GORM.
func (Thread) TableName() string {
	return "threads"
}

// CreateThreadRequest is the body of POST /api/threads. Content becomes the
// thread's first post.
type CreateThreadRequest struct {
	CategoryID uint     `json:"category_id"`
	Title      string   `json:"title"`
	AuthorName string   `json:"author_name"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
}

// Validate checks field constraints before the request reaches the store.
func (r *CreateThreadRequest) Validate() error {
	if r.CategoryID == 0 {
		return NewValidationError("category_id is required")
	}
	if r.Title == "" || len(r.Title) > 300 {
		return NewValidationError("Title must be 1-300 characters")
	}
	if r.AuthorName == "" || len(r.AuthorName) > 50 {
		return NewValidationError("Author name must be 1-50 characters")
	}
	if r.Content == "" {
		return NewValidationError("Content is required")
	}
	return nil
}

// ThreadPatch is a typed partial update for a thread. Nil fields are left
// untouched.
type ThreadPatch struct {
	Title    *string `json:"title"`
	IsPinned *bool   `json:"is_pinned"`
	IsLocked *bool   `json:"is_locked"`
}

// Validate checks the non-nil fields of the patch.
func (p *ThreadPatch) Validate() error {
	if p.Title != nil && (*p.Title == "" || len(*p.Title) > 300) {
		return NewValidationError("Title must be 1-300 characters")
	}
	return nil
}

// Columns returns the column assignments for the non-nil fields.
func (p *ThreadPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.IsPinned != nil {
		cols["is_pinned"] = *p.IsPinned
	}
	if p.IsLocked != nil {
		cols["is_locked"] = *p.IsLocked
	}
	return cols
}

// IsEmpty reports whether the patch contains no changes.
func (p *ThreadPatch) IsEmpty() bool {
	return p.Title == nil && p.IsPinned == nil && p.IsLocked == nil
}
