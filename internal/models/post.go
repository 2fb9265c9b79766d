package models

import "time"

// Post is a message inside a thread. The first post of a thread is created
// atomically with the thread itself.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ThreadID   uint      `gorm:"not null;index" json:"thread_id"`
	Thread     *Thread   `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorName string    `gorm:"size:50;not null" json:"author_name"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	// Upvotes is not persisted; computed at query time
	Upvotes int `gorm:"->;-:migration" json:"upvotes"`
	// Downvotes is not persisted; computed at query time
	Downvotes int `gorm:"->;-:migration" json:"downvotes"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	ThreadID   uint   `json:"thread_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
}

// Validate checks field constraints before the request reaches the store.
func (r *CreatePostRequest) Validate() error {
	if r.ThreadID == 0 {
		return NewValidationError("thread_id is required")
	}
	if r.AuthorName == "" || len(r.AuthorName) > 50 {
		return NewValidationError("Author name must be 1-50 characters")
	}
	if r.Content == "" {
		return NewValidationError("Content is required")
	}
	return nil
}

// UpdatePostRequest is the body of PUT /api/posts/:id. Post edits replace
// the content wholesale; there is no partial patch for posts.
type UpdatePostRequest struct {
	Content string `json:"content"`
}

// Validate checks field constraints before the request reaches the store.
func (r *UpdatePostRequest) Validate() error {
	if r.Content == "" {
		return NewValidationError("Content is required")
	}
	return nil
}

// PostPage is the response of GET /api/threads/:id/posts. It extends the
// standard pagination envelope with the thread's locked flag so clients can
// disable their reply box without a second request.
type PostPage struct {
	Items      []Post `json:"items"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
	IsLocked   bool   `json:"is_locked"`
}
