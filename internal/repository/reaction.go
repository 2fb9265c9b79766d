package repository

import (
	"context"

	"agora/internal/models"

	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Create(ctx context.Context, reaction *models.Reaction) error
	ListByPost(ctx context.Context, postID uint) ([]models.Reaction, error)
	Delete(ctx context.Context, postID uint, kind models.ReactionKind, reactorName string) error
}

// reactionRepository implements ReactionRepository
type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	err := r.db.WithContext(ctx).Create(reaction).Error
	if isUniqueViolation(err) {
		return models.NewConflictError("Reaction already recorded for this post")
	}
	return err
}

func (r *reactionRepository) ListByPost(ctx context.Context, postID uint) ([]models.Reaction, error) {
	reactions := []models.Reaction{}
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&reactions).Error
	return reactions, err
}

// Delete removes a reaction by its natural key. The same triple that the
// unique index enforces on insert identifies the row to remove.
func (r *reactionRepository) Delete(ctx context.Context, postID uint, kind models.ReactionKind, reactorName string) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ? AND kind = ? AND reactor_name = ?", postID, kind, reactorName).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &models.AppError{Code: models.CodeNotFound, Message: "Reaction not found"}
	}
	return nil
}
