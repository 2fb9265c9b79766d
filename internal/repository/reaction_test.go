package repository

import (
	"context"
	"testing"

	"agora/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReactionRepositoryDuplicateIsConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	category := mustCategory(t, db, "General")
	thread := mustThread(t, db, category.ID, "Hello")
	post := mustPost(t, db, thread.ID, "content")

	first := &models.Reaction{PostID: post.ID, Kind: models.ReactionUpvote, ReactorName: "alice"}
	require.NoError(t, repo.Create(ctx, first))

	dup := &models.Reaction{PostID: post.ID, Kind: models.ReactionUpvote, ReactorName: "alice"}
	err := repo.Create(ctx, dup)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)

	// Same reactor, other kind is allowed.
	other := &models.Reaction{PostID: post.ID, Kind: models.ReactionDownvote, ReactorName: "alice"}
	assert.NoError(t, repo.Create(ctx, other))
}

func TestReactionRepositoryListByPost(t *testing.T) {
	db := newTestDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	category := mustCategory(t, db, "General")
	thread := mustThread(t, db, category.ID, "Hello")
	post := mustPost(t, db, thread.ID, "content")
	other := mustPost(t, db, thread.ID, "other")
	mustReaction(t, db, post.ID, models.ReactionUpvote, "alice")
	mustReaction(t, db, post.ID, models.ReactionDownvote, "bob")
	mustReaction(t, db, other.ID, models.ReactionUpvote, "carol")

	reactions, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 2)
	assert.Equal(t, "alice", reactions[0].ReactorName)
	assert.Equal(t, "bob", reactions[1].ReactorName)
}

func TestReactionRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	category := mustCategory(t, db, "General")
	thread := mustThread(t, db, category.ID, "Hello")
	post := mustPost(t, db, thread.ID, "content")

	reaction := &models.Reaction{PostID: post.ID, Kind: models.ReactionUpvote, ReactorName: "alice"}
	require.NoError(t, repo.Create(ctx, reaction))
	require.NoError(t, repo.Delete(ctx, post.ID, models.ReactionUpvote, "alice"))

	err := repo.Delete(ctx, post.ID, models.ReactionUpvote, "alice")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestReactionRepositoryDeleteMatchesFullTriple(t *testing.T) {
	db := newTestDB(t)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	category := mustCategory(t, db, "General")
	thread := mustThread(t, db, category.ID, "Hello")
	post := mustPost(t, db, thread.ID, "content")
	mustReaction(t, db, post.ID, models.ReactionUpvote, "alice")

	// Any mismatched component of the triple leaves the row alone.
	for _, tc := range []struct {
		name    string
		postID  uint
		kind    models.ReactionKind
		reactor string
	}{
		{"wrong kind", post.ID, models.ReactionDownvote, "alice"},
		{"wrong reactor", post.ID, models.ReactionUpvote, "bob"},
		{"wrong post", post.ID + 1, models.ReactionUpvote, "alice"},
	} {
		err := repo.Delete(ctx, tc.postID, tc.kind, tc.reactor)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr, tc.name)
		assert.Equal(t, models.CodeNotFound, appErr.Code, tc.name)
	}

	reactions, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, reactions, 1)
}
