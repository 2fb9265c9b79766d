package search

import (
	"testing"

	"agora/internal/database"
	"agora/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// mustSeedThread inserts a category, thread and first post with index rows
// and returns the thread and post IDs.
func mustSeedThread(t *testing.T, db *gorm.DB, s *Syncer, title, content string) (uint, uint) {
	t.Helper()

	category := models.Category{Name: "cat-" + title}
	require.NoError(t, db.Create(&category).Error)

	var threadID, postID uint
	err := db.Transaction(func(tx *gorm.DB) error {
		thread := models.Thread{CategoryID: category.ID, Title: title, AuthorName: "author"}
		if err := tx.Create(&thread).Error; err != nil {
			return err
		}
		post := models.Post{ThreadID: thread.ID, AuthorName: "author", Content: content}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		threadID, postID = thread.ID, post.ID
		if err := s.IndexThread(tx, thread.ID, title, content); err != nil {
			return err
		}
		return s.IndexPost(tx, post.ID, content)
	})
	require.NoError(t, err)
	return threadID, postID
}

func countRows(t *testing.T, db *gorm.DB, query string, args ...interface{}) int {
	t.Helper()
	var n int
	require.NoError(t, db.Raw(query, args...).Scan(&n).Error)
	return n
}
