package repository

import (
	"context"

	"agora/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Attach(ctx context.Context, threadID uint, names []string) ([]string, error)
	Detach(ctx context.Context, threadID uint, name string) error
	List(ctx context.Context) ([]models.Tag, error)
}

// tagRepository implements TagRepository
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Attach links the given tag names to a thread and returns the thread's full
// tag list afterwards. Names are normalized first; duplicates and tags the
// thread already carries are skipped without error.
func (r *tagRepository) Attach(ctx context.Context, threadID uint, names []string) ([]string, error) {
	links := normalizeLinks(threadID, names)
	if len(links) > 0 {
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&links).Error
		if err != nil {
			return nil, err
		}
	}

	tags := []string{}
	err := r.db.WithContext(ctx).
		Model(&models.ThreadTag{}).
		Where("thread_id = ?", threadID).
		Order("tag_name ASC").
		Pluck("tag_name", &tags).Error
	return tags, err
}

func (r *tagRepository) Detach(ctx context.Context, threadID uint, name string) error {
	res := r.db.WithContext(ctx).
		Where("thread_id = ? AND tag_name = ?", threadID, models.NormalizeTag(name)).
		Delete(&models.ThreadTag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Tag", name)
	}
	return nil
}

// List returns every tag in use with its thread count, most used first.
func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := r.db.WithContext(ctx).
		Model(&models.ThreadTag{}).
		Select("tag_name as name, COUNT(*) as thread_count").
		Group("tag_name").
		Order("thread_count DESC, tag_name ASC").
		Scan(&tags).Error
	return tags, err
}

// normalizeLinks builds the link rows for a tag attach.
func normalizeLinks(threadID uint, names []string) []models.ThreadTag {
	normalized := models.NormalizeTags(names)
	links := make([]models.ThreadTag, 0, len(normalized))
	for _, n := range normalized {
		links = append(links, models.ThreadTag{ThreadID: threadID, TagName: n})
	}
	return links
}
