package models

import "strings"

// ThreadTag links a tag name to a thread. Tag names are stored trimmed and
// lowercased; attaching the same tag twice is a no-op.
type ThreadTag struct {
	ThreadID uint    `gorm:"primaryKey;autoIncrement:false" json:"thread_id"`
	Thread   *Thread `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE" json:"-"`
	TagName  string  `gorm:"primaryKey;size:100" json:"tag_name"`
}

// TableName specifies the table name for GORM.
func (ThreadTag) TableName() string {
	return "thread_tags"
}

// Tag is a tag name with its usage count, as returned by GET /api/tags.
type Tag struct {
	Name        string `json:"name"`
	ThreadCount int    `json:"thread_count"`
}

// AddTagsRequest is the body of POST /api/threads/:id/tags.
type AddTagsRequest struct {
	Tags []string `json:"tags"`
}

// Validate checks that at least one tag was supplied.
func (r *AddTagsRequest) Validate() error {
	if len(r.Tags) == 0 {
		return NewValidationError("At least one tag is required")
	}
	return nil
}

// NormalizeTag canonicalizes a tag name. The empty string means the tag
// should be skipped.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeTags canonicalizes a list of tag names, dropping empties and
// in-list duplicates while preserving first-seen order.
func NormalizeTags(names []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(names))
	for _, name := range names {
		n := NormalizeTag(name)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
