package service

import (
	"context"
	"time"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/search"

	"gorm.io/gorm"
)

type PostService struct {
	db           *gorm.DB
	postRepo     repository.PostRepository
	threadRepo   repository.ThreadRepository
	reactionRepo repository.ReactionRepository
	syncer       *search.Syncer
}

func NewPostService(
	db *gorm.DB,
	postRepo repository.PostRepository,
	threadRepo repository.ThreadRepository,
	reactionRepo repository.ReactionRepository,
	syncer *search.Syncer,
) *PostService {
	return &PostService{
		db:           db,
		postRepo:     postRepo,
		threadRepo:   threadRepo,
		reactionRepo: reactionRepo,
		syncer:       syncer,
	}
}

// CreatePost appends a reply to a thread. The post row, the thread's
// updated_at bump and the search index row commit together. Replying to a
// locked thread is forbidden.
func (s *PostService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var postID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var thread models.Thread
		if err := tx.First(&thread, req.ThreadID).Error; err != nil {
			return translateNotFound(err, "Thread", req.ThreadID)
		}
		if thread.IsLocked {
			return models.NewForbiddenError("Thread is locked")
		}

		post := models.Post{
			ThreadID:   req.ThreadID,
			AuthorName: req.AuthorName,
			Content:    req.Content,
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		postID = post.ID

		if err := tx.Model(&models.Thread{}).
			Where("id = ?", thread.ID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}
		return s.syncer.IndexPost(tx, post.ID, post.Content)
	})
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts returns one page of a thread's posts in chronological order,
// along with the thread's locked flag.
func (s *PostService) ListPosts(ctx context.Context, threadID uint, page, pageSize int) (*models.PostPage, error) {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	posts, total, err := s.postRepo.ListByThread(ctx, threadID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	envelope := models.NewPage(posts, total, page, pageSize)
	return &models.PostPage{
		Items:      envelope.Items,
		Total:      envelope.Total,
		Page:       envelope.Page,
		PageSize:   envelope.PageSize,
		TotalPages: envelope.TotalPages,
		IsLocked:   thread.IsLocked,
	}, nil
}

// UpdatePost replaces a post's content and reindexes it in the same
// transaction, so a search can never observe the old text after the edit
// commits.
func (s *PostService) UpdatePost(ctx context.Context, id uint, req *models.UpdatePostRequest) (*models.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			return translateNotFound(err, "Post", id)
		}
		if err := tx.Model(&post).Update("content", req.Content).Error; err != nil {
			return err
		}
		return s.syncer.ReindexPost(tx, id, req.Content)
	})
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes a post, its reactions and its search row together.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			return translateNotFound(err, "Post", id)
		}
		if err := s.syncer.DeletePost(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// AddReaction records a vote on a post. The same reactor casting the same
// kind twice is a conflict.
func (s *PostService) AddReaction(ctx context.Context, postID uint, req *models.CreateReactionRequest) (*models.Reaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	reaction := &models.Reaction{
		PostID:      postID,
		Kind:        req.Kind,
		ReactorName: req.ReactorName,
	}
	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		return nil, err
	}
	return reaction, nil
}

func (s *PostService) ListReactions(ctx context.Context, postID uint) ([]models.Reaction, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.reactionRepo.ListByPost(ctx, postID)
}

// DeleteReaction removes one reactor's vote of the given kind from a post.
// The triple identifies the reaction; a triple with no matching row is a 404.
func (s *PostService) DeleteReaction(ctx context.Context, postID uint, kind models.ReactionKind, reactorName string) error {
	return s.reactionRepo.Delete(ctx, postID, kind, reactorName)
}
