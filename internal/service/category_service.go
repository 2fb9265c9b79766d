// Package service holds the business logic between the HTTP handlers and the
// repositories. Multi-step writes run inside a single transaction together
// with their search index updates.
package service

import (
	"context"

	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/search"

	"gorm.io/gorm"
)

type CategoryService struct {
	db           *gorm.DB
	categoryRepo repository.CategoryRepository
	syncer       *search.Syncer
}

func NewCategoryService(
	db *gorm.DB,
	categoryRepo repository.CategoryRepository,
	syncer *search.Syncer,
) *CategoryService {
	return &CategoryService{
		db:           db,
		categoryRepo: categoryRepo,
		syncer:       syncer,
	}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByID(ctx, category.ID)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, patch *models.CategoryPatch) (*models.Category, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	cols := patch.Columns()
	if len(cols) == 0 {
		return s.categoryRepo.GetByID(ctx, id)
	}
	if err := s.categoryRepo.UpdateColumns(ctx, id, cols); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByID(ctx, id)
}

// DeleteCategory removes a category and everything under it. The search
// index rows for the category's threads and posts are removed in the same
// transaction as the content rows, which then cascade through the foreign
// keys.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return translateNotFound(err, "Category", id)
		}
		if err := s.syncer.DeleteCategoryThreads(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}
