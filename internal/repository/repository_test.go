package repository

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

func mustCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func mustThread(t *testing.T, db *gorm.DB, categoryID uint, title string) *models.Thread {
	t.Helper()
	thread := &models.Thread{CategoryID: categoryID, Title: title, AuthorName: "author"}
	require.NoError(t, db.Create(thread).Error)
	return thread
}

func mustPost(t *testing.T, db *gorm.DB, threadID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{ThreadID: threadID, AuthorName: "author", Content: content}
	require.NoError(t, db.Create(post).Error)
	return post
}

func mustReaction(t *testing.T, db *gorm.DB, postID uint, kind models.ReactionKind, reactor string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Reaction{
		PostID: postID, Kind: kind, ReactorName: reactor,
	}).Error)
}
