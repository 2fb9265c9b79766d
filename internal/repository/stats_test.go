package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"agora/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// The sqlite driver probes the engine version during Initialize.
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(regexp.QuoteMeta(`select sqlite_version()`)).
		WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.45.0"))

	gormDB, err := gorm.Open(sqlite.Dialector{Conn: db}, &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestStatsRepositoryOverview(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	category := mustCategory(t, db, "General")
	a := mustThread(t, db, category.ID, "a")
	b := mustThread(t, db, category.ID, "b")
	post := mustPost(t, db, a.ID, "content")
	mustPost(t, db, b.ID, "content")
	mustPost(t, db, b.ID, "more")
	mustReaction(t, db, post.ID, models.ReactionUpvote, "alice")

	// "go" on both threads must count once in total_tags.
	require.NoError(t, db.Create(&models.ThreadTag{ThreadID: a.ID, TagName: "go"}).Error)
	require.NoError(t, db.Create(&models.ThreadTag{ThreadID: b.ID, TagName: "go"}).Error)
	require.NoError(t, db.Create(&models.ThreadTag{ThreadID: b.ID, TagName: "web"}).Error)

	stats, err := repo.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalCategories)
	assert.Equal(t, int64(2), stats.TotalThreads)
	assert.Equal(t, int64(3), stats.TotalPosts)
	assert.Equal(t, int64(1), stats.TotalReactions)
	assert.Equal(t, int64(2), stats.TotalTags)
}

func TestStatsRepositoryOverviewPropagatesQueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "categories"`)).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Overview(context.Background())
	assert.Error(t, err)
}

func TestStatsRepositoryTrendingScoreAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	category := mustCategory(t, db, "General")

	// 2 posts, 1 reaction: score 5.
	strong := mustThread(t, db, category.ID, "strong")
	p1 := mustPost(t, db, strong.ID, "a")
	mustPost(t, db, strong.ID, "b")
	mustReaction(t, db, p1.ID, models.ReactionUpvote, "alice")

	// 1 post, 2 reactions: score 4.
	weak := mustThread(t, db, category.ID, "weak")
	p2 := mustPost(t, db, weak.ID, "a")
	mustReaction(t, db, p2.ID, models.ReactionUpvote, "alice")
	mustReaction(t, db, p2.ID, models.ReactionDownvote, "bob")

	// No posts at all: score 0.
	mustThread(t, db, category.ID, "empty")

	rows, err := repo.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, strong.ID, rows[0].ID)
	assert.Equal(t, 2, rows[0].PostCount)
	assert.Equal(t, 1, rows[0].ReactionCount)
	assert.Equal(t, 5, rows[0].Score)
	assert.Equal(t, "General", rows[0].CategoryName)

	assert.Equal(t, weak.ID, rows[1].ID)
	assert.Equal(t, 4, rows[1].Score)

	assert.Equal(t, 0, rows[2].Score)
}

func TestStatsRepositoryTrendingTieBreaksOnNewest(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	category := mustCategory(t, db, "General")
	older := mustThread(t, db, category.ID, "older")
	require.NoError(t, db.Model(older).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := mustThread(t, db, category.ID, "newer")
	mustPost(t, db, older.ID, "a")
	mustPost(t, db, newer.ID, "a")

	rows, err := repo.Trending(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)
}

func TestStatsRepositoryTrendingCapsAtTen(t *testing.T) {
	db := newTestDB(t)
	repo := NewStatsRepository(db)
	ctx := context.Background()

	category := mustCategory(t, db, "General")
	for i := 0; i < 12; i++ {
		mustThread(t, db, category.ID, "thread")
	}

	rows, err := repo.Trending(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, trendingLimit)
}
