package repository

import (
	"context"
	"testing"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepositoryCreateDuplicateNameConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Category{Name: "General"}))

	err := repo.Create(ctx, &models.Category{Name: "General"})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestCategoryRepositoryGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestCategoryRepositoryListIncludesThreadCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	busy := mustCategory(t, db, "Busy")
	quiet := mustCategory(t, db, "Quiet")
	mustThread(t, db, busy.ID, "one")
	mustThread(t, db, busy.ID, "two")

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	byName := map[string]models.Category{}
	for _, c := range categories {
		byName[c.Name] = c
	}
	assert.Equal(t, 2, byName["Busy"].ThreadCount)
	assert.Equal(t, 0, byName["Quiet"].ThreadCount)
	_ = quiet
}

func TestCategoryRepositoryUpdateColumns(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := mustCategory(t, db, "Before")

	err := repo.UpdateColumns(ctx, category.ID, map[string]interface{}{"name": "After"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)

	err = repo.UpdateColumns(ctx, 9999, map[string]interface{}{"name": "Ghost"})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
