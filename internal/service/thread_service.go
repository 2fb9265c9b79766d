package service

import (
	"context"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/search"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThreadService struct {
	db         *gorm.DB
	threadRepo repository.ThreadRepository
	tagRepo    repository.TagRepository
	syncer     *search.Syncer
}

func NewThreadService(
	db *gorm.DB,
	threadRepo repository.ThreadRepository,
	tagRepo repository.TagRepository,
	syncer *search.Syncer,
) *ThreadService {
	return &ThreadService{
		db:         db,
		threadRepo: threadRepo,
		tagRepo:    tagRepo,
		syncer:     syncer,
	}
}

// CreateThread creates a thread together with its first post, its tag links
// and both search index rows, all in one transaction. A thread therefore
// never exists without a post or without being searchable.
func (s *ThreadService) CreateThread(ctx context.Context, req *models.CreateThreadRequest) (*models.Thread, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var threadID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, req.CategoryID).Error; err != nil {
			return translateNotFound(err, "Category", req.CategoryID)
		}

		thread := models.Thread{
			CategoryID: req.CategoryID,
			Title:      req.Title,
			AuthorName: req.AuthorName,
		}
		if err := tx.Create(&thread).Error; err != nil {
			return err
		}
		threadID = thread.ID

		post := models.Post{
			ThreadID:   thread.ID,
			AuthorName: req.AuthorName,
			Content:    req.Content,
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}

		if links := tagLinks(thread.ID, req.Tags); len(links) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
				return err
			}
		}

		if err := s.syncer.IndexThread(tx, thread.ID, thread.Title, post.Content); err != nil {
			return err
		}
		return s.syncer.IndexPost(tx, post.ID, post.Content)
	})
	if err != nil {
		return nil, err
	}
	return s.threadRepo.GetByID(ctx, threadID)
}

func (s *ThreadService) GetThread(ctx context.Context, id uint) (*models.Thread, error) {
	return s.threadRepo.GetByID(ctx, id)
}

func (s *ThreadService) ListThreads(ctx context.Context, categoryID uint, sort string, page, pageSize int) (*models.Page[models.Thread], error) {
	if categoryID != 0 {
		// A bad category id should read as 404, not an empty page.
		var category models.Category
		if err := s.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
			return nil, translateNotFound(err, "Category", categoryID)
		}
	}

	offset := (page - 1) * pageSize
	threads, total, err := s.threadRepo.List(ctx, categoryID, sort, pageSize, offset)
	if err != nil {
		return nil, err
	}
	return models.NewPage(threads, total, page, pageSize), nil
}

// ListThreadsByTag returns one page of threads carrying the given tag,
// newest first. An unknown tag reads as 404.
func (s *ThreadService) ListThreadsByTag(ctx context.Context, name string, page, pageSize int) (*models.Page[models.Thread], error) {
	offset := (page - 1) * pageSize
	threads, total, err := s.threadRepo.ListByTag(ctx, models.NormalizeTag(name), pageSize, offset)
	if err != nil {
		return nil, err
	}
	return models.NewPage(threads, total, page, pageSize), nil
}

// UpdateThread applies a partial update. A title change is mirrored into the
// thread search index within the same transaction.
func (s *ThreadService) UpdateThread(ctx context.Context, id uint, patch *models.ThreadPatch) (*models.Thread, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return s.threadRepo.GetByID(ctx, id)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var thread models.Thread
		if err := tx.First(&thread, id).Error; err != nil {
			return translateNotFound(err, "Thread", id)
		}
		if err := tx.Model(&thread).Updates(patch.Columns()).Error; err != nil {
			return err
		}
		if patch.Title != nil {
			return s.syncer.UpdateThreadTitle(tx, id, *patch.Title)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.threadRepo.GetByID(ctx, id)
}

// DeleteThread removes a thread, its posts, reactions and tag links. The
// search rows go first, in the same transaction, while the posts still exist
// for the index cleanup subquery.
func (s *ThreadService) DeleteThread(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var thread models.Thread
		if err := tx.First(&thread, id).Error; err != nil {
			return translateNotFound(err, "Thread", id)
		}
		if err := s.syncer.DeleteThread(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.Thread{}, id).Error
	})
}

// AddTags attaches tags to a thread and returns the full tag list.
func (s *ThreadService) AddTags(ctx context.Context, threadID uint, req *models.AddTagsRequest) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
		return nil, err
	}
	return s.tagRepo.Attach(ctx, threadID, req.Tags)
}

// RemoveTag detaches one tag from a thread.
func (s *ThreadService) RemoveTag(ctx context.Context, threadID uint, name string) error {
	if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
		return err
	}
	return s.tagRepo.Detach(ctx, threadID, name)
}

// ListTags returns every tag in use across the forum.
func (s *ThreadService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

// tagLinks builds the link rows created alongside a new thread.
func tagLinks(threadID uint, names []string) []models.ThreadTag {
	normalized := models.NormalizeTags(names)
	links := make([]models.ThreadTag, 0, len(normalized))
	for _, n := range normalized {
		links = append(links, models.ThreadTag{ThreadID: threadID, TagName: n})
	}
	return links
}
