package seed

import (
	"testing"

	"agora/internal/database"
	"agora/internal/models"
	"agora/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestRunSeedsStarterContent(t *testing.T) {
	db := newTestDB(t)
	syncer := search.NewSyncer()

	require.NoError(t, Run(db, syncer))

	assert.Equal(t, int64(len(starterCategories)), count(t, db, &models.Category{}))
	assert.Equal(t, int64(len(starterThreads)), count(t, db, &models.Thread{}))
	// Every thread carries its first post plus the starter replies.
	assert.Equal(t, int64(len(starterThreads)+len(starterReplies)), count(t, db, &models.Post{}))
	assert.Equal(t, int64(len(starterReactions)), count(t, db, &models.Reaction{}))

	// Seeded content is searchable right away.
	var indexed int
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM thread_search").Scan(&indexed).Error)
	assert.Equal(t, len(starterThreads), indexed)
}

func TestRunIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	syncer := search.NewSyncer()

	require.NoError(t, Run(db, syncer))
	threads := count(t, db, &models.Thread{})

	require.NoError(t, Run(db, syncer))
	assert.Equal(t, threads, count(t, db, &models.Thread{}))
}

func TestFactoryGenerate(t *testing.T) {
	db := newTestDB(t)
	syncer := search.NewSyncer()
	require.NoError(t, Run(db, syncer))

	before := count(t, db, &models.Thread{})

	factory := NewFactory(db, syncer, Options{
		NumThreads:        4,
		RepliesPerThread:  2,
		ReactionsPerReply: 1,
	})
	require.NoError(t, factory.Generate())

	assert.Equal(t, before+4, count(t, db, &models.Thread{}))

	// Generated threads are indexed like any other write.
	var indexed int
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM thread_search").Scan(&indexed).Error)
	assert.Equal(t, int(before)+4, indexed)
}

func TestFactoryGenerateRequiresCategories(t *testing.T) {
	db := newTestDB(t)

	factory := NewFactory(db, search.NewSyncer(), Options{NumThreads: 1})
	assert.Error(t, factory.Generate())
}
