package repository

import (
	"context"

	"agora/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByThread(ctx context.Context, threadID uint, limit, offset int) ([]models.Post, int64, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.applyVoteCounts(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		return nil, translateNotFound(err, "Post", id)
	}
	return &post, nil
}

// ListByThread returns one page of a thread's posts in chronological order
// plus the thread's total post count.
func (r *postRepository) ListByThread(ctx context.Context, threadID uint, limit, offset int) ([]models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("thread_id = ?", threadID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.applyVoteCounts(r.db.WithContext(ctx)).
		Where("thread_id = ?", threadID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// applyVoteCounts adds subqueries to fetch both reaction tallies in a
// single query.
func (r *postRepository) applyVoteCounts(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, "+
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = ?) as upvotes, "+
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = ?) as downvotes",
		models.ReactionUpvote, models.ReactionDownvote)
}
