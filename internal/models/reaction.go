package models

import "time"

// ReactionKind enumerates the supported reaction types.
type ReactionKind string

const (
	// ReactionUpvote marks a post as helpful.
	ReactionUpvote ReactionKind = "upvote"
	// ReactionDownvote marks a post as unhelpful.
	ReactionDownvote ReactionKind = "downvote"
)

// Valid reports whether the kind is one of the supported reaction types.
func (k ReactionKind) Valid() bool {
	return k == ReactionUpvote || k == ReactionDownvote
}

// Reaction is a single vote on a post. A reactor may cast at most one
// reaction of each kind per post; the unique index enforces it at the store.
type Reaction struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	PostID      uint         `gorm:"not null;index;uniqueIndex:idx_reactions_identity,priority:1" json:"post_id"`
	Post        *Post        `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Kind        ReactionKind `gorm:"size:16;not null;uniqueIndex:idx_reactions_identity,priority:2" json:"reaction_type"`
	ReactorName string       `gorm:"size:50;not null;uniqueIndex:idx_reactions_identity,priority:3" json:"reactor_name"`
	CreatedAt   time.Time    `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Reaction) TableName() string {
	return "reactions"
}

// CreateReactionRequest is the body of POST /api/posts/:id/reactions.
type CreateReactionRequest struct {
	Kind        ReactionKind `json:"reaction_type"`
	ReactorName string       `json:"reactor_name"`
}

// Validate checks field constraints before the request reaches the store.
func (r *CreateReactionRequest) Validate() error {
	if !r.Kind.Valid() {
		return NewValidationError("reaction_type must be 'upvote' or 'downvote'")
	}
	if r.ReactorName == "" || len(r.ReactorName) > 50 {
		return NewValidationError("Reactor name must be 1-50 characters")
	}
	return nil
}
