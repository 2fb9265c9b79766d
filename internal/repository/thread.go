package repository

import (
	"context"

	"agora/internal/models"

	"gorm.io/gorm"
)

// ThreadRepository defines the interface for thread data operations
type ThreadRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Thread, error)
	List(ctx context.Context, categoryID uint, sort string, limit, offset int) ([]models.Thread, int64, error)
	ListByTag(ctx context.Context, name string, limit, offset int) ([]models.Thread, int64, error)
	UpdateColumns(ctx context.Context, id uint, cols map[string]interface{}) error
	TagsFor(ctx context.Context, threadID uint) ([]string, error)
}

// threadRepository implements ThreadRepository
type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new thread repository
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	var thread models.Thread
	err := r.applyThreadDetails(r.db.WithContext(ctx)).
		Joins("JOIN categories ON categories.id = threads.category_id").
		First(&thread, "threads.id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, "Thread", id)
	}

	tags, err := r.TagsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	thread.Tags = tags
	return &thread, nil
}

// List returns one page of threads plus the total matching count. Pinned
// threads always sort ahead of the rest regardless of the sort key.
func (r *threadRepository) List(ctx context.Context, categoryID uint, sort string, limit, offset int) ([]models.Thread, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Thread{})
	if categoryID != 0 {
		base = base.Where("threads.category_id = ?", categoryID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var threads []models.Thread
	q := r.applyThreadDetails(base.Session(&gorm.Session{})).
		Joins("JOIN categories ON categories.id = threads.category_id")
	err := r.applySort(q, sort).
		Limit(limit).
		Offset(offset).
		Find(&threads).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachTags(ctx, threads); err != nil {
		return nil, 0, err
	}
	return threads, total, nil
}

// ListByTag returns one page of the threads carrying the given tag, newest
// first. A tag with no links at all is a not-found, not an empty page.
func (r *threadRepository) ListByTag(ctx context.Context, name string, limit, offset int) ([]models.Thread, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.ThreadTag{}).
		Where("tag_name = ?", name).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, models.NewNotFoundError("Tag", name)
	}

	var threads []models.Thread
	err = r.applyThreadDetails(r.db.WithContext(ctx).Model(&models.Thread{})).
		Joins("JOIN categories ON categories.id = threads.category_id").
		Joins("JOIN thread_tags ON thread_tags.thread_id = threads.id").
		Where("thread_tags.tag_name = ?", name).
		Order("threads.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&threads).Error
	if err != nil {
		return nil, 0, err
	}

	if err := r.attachTags(ctx, threads); err != nil {
		return nil, 0, err
	}
	return threads, total, nil
}

func (r *threadRepository) UpdateColumns(ctx context.Context, id uint, cols map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&models.Thread{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Thread", id)
	}
	return nil
}

func (r *threadRepository) TagsFor(ctx context.Context, threadID uint) ([]string, error) {
	tags := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.ThreadTag{}).
		Where("thread_id = ?", threadID).
		Order("tag_name ASC").
		Pluck("tag_name", &tags).Error
	return tags, err
}

// attachTags loads tag names for a page of threads in one query.
func (r *threadRepository) attachTags(ctx context.Context, threads []models.Thread) error {
	if len(threads) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(threads))
	for i := range threads {
		threads[i].Tags = []string{}
		ids = append(ids, threads[i].ID)
	}

	var links []models.ThreadTag
	if err := r.db.WithContext(ctx).
		Where("thread_id IN ?", ids).
		Order("tag_name ASC").
		Find(&links).Error; err != nil {
		return err
	}

	byThread := make(map[uint][]string, len(threads))
	for _, l := range links {
		byThread[l.ThreadID] = append(byThread[l.ThreadID], l.TagName)
	}
	for i := range threads {
		if tags, ok := byThread[threads[i].ID]; ok {
			threads[i].Tags = tags
		}
	}
	return nil
}

// applySort appends the ORDER BY clause for the requested sort key.
// post_count is a SELECT alias from applyThreadDetails; SQLite allows
// referencing it in ORDER BY within the same query level.
func (r *threadRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "updated_at":
		return db.Order("threads.is_pinned DESC, threads.updated_at DESC")
	case "post_count":
		return db.Order("threads.is_pinned DESC, post_count DESC, threads.created_at DESC")
	default: // "created_at" and anything unrecognized
		return db.Order("threads.is_pinned DESC, threads.created_at DESC")
	}
}

// applyThreadDetails adds subqueries to fetch the post count and category
// name in a single query.
func (r *threadRepository) applyThreadDetails(db *gorm.DB) *gorm.DB {
	return db.Select("threads.*, categories.name as category_name, " +
		"(SELECT COUNT(*) FROM posts WHERE posts.thread_id = threads.id) as post_count")
}
