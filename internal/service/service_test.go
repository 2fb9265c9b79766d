package service

import (
	"context"
	"testing"

	"agora/internal/database"
	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/search"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the services against a fresh in-memory database so the
// transactional flows run against the real schema, FTS tables included.
type testEnv struct {
	db         *gorm.DB
	categories *CategoryService
	threads    *ThreadService
	posts      *PostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	syncer := search.NewSyncer()
	categoryRepo := repository.NewCategoryRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	postRepo := repository.NewPostRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	tagRepo := repository.NewTagRepository(db)

	return &testEnv{
		db:         db,
		categories: NewCategoryService(db, categoryRepo, syncer),
		threads:    NewThreadService(db, threadRepo, tagRepo, syncer),
		posts:      NewPostService(db, postRepo, threadRepo, reactionRepo, syncer),
	}
}

func (e *testEnv) mustCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	category, err := e.categories.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return category
}

func (e *testEnv) mustThread(t *testing.T, categoryID uint, title string, tags ...string) *models.Thread {
	t.Helper()
	thread, err := e.threads.CreateThread(context.Background(), &models.CreateThreadRequest{
		CategoryID: categoryID,
		Title:      title,
		AuthorName: "author",
		Content:    "opening post",
		Tags:       tags,
	})
	require.NoError(t, err)
	return thread
}

// indexRows counts rows in one of the FTS tables, optionally narrowed by a
// MATCH query.
func (e *testEnv) indexRows(t *testing.T, table, match string) int {
	t.Helper()
	var n int
	q := "SELECT COUNT(*) FROM " + table
	if match == "" {
		require.NoError(t, e.db.Raw(q).Scan(&n).Error)
		return n
	}
	require.NoError(t, e.db.Raw(q+" WHERE "+table+" MATCH ?", match).Scan(&n).Error)
	return n
}
