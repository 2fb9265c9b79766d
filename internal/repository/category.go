package repository

import (
	"context"

	"agora/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	UpdateColumns(ctx context.Context, id uint, cols map[string]interface{}) error
}

// categoryRepository implements CategoryRepository
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if isUniqueViolation(err) {
		return models.NewConflictError("Category name already exists")
	}
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.applyThreadCount(r.db.WithContext(ctx)).First(&category, id).Error
	if err != nil {
		return nil, translateNotFound(err, "Category", id)
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.applyThreadCount(r.db.WithContext(ctx)).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) UpdateColumns(ctx context.Context, id uint, cols map[string]interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Updates(cols)
	if isUniqueViolation(res.Error) {
		return models.NewConflictError("Category name already exists")
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Category", id)
	}
	return nil
}

// applyThreadCount adds the per-category thread count in a single query.
func (r *categoryRepository) applyThreadCount(db *gorm.DB) *gorm.DB {
	return db.Select("categories.*, " +
		"(SELECT COUNT(*) FROM threads WHERE threads.category_id = categories.id) as thread_count")
}
