// Package search owns the full-text index: the write-path synchronization
// that keeps the FTS5 tables mirroring thread/post content, and the merger
// that turns matches from both indexes into one ranked result list.
package search

import (
	"agora/internal/observability"

	"gorm.io/gorm"
)

// Syncer applies search index deltas for content mutations. Every method
// takes the transaction of the triggering content write, so the index row
// and the content row commit or roll back together. All index maintenance in
// the application funnels through this type.
type Syncer struct{}

// NewSyncer creates a Syncer.
func NewSyncer() *Syncer {
	return &Syncer{}
}

// IndexThread inserts the search row for a newly created thread. The row
// carries the title and the body of the thread's first post.
func (s *Syncer) IndexThread(tx *gorm.DB, threadID uint, title, firstPostBody string) error {
	err := tx.Exec(
		"INSERT INTO thread_search (thread_id, title, content) VALUES (?, ?, ?)",
		threadID, title, firstPostBody,
	).Error
	if err == nil {
		observability.IndexMutations.WithLabelValues("thread_index").Inc()
	}
	return err
}

// UpdateThreadTitle overwrites the indexed title in place. The indexed body
// is untouched; it always reflects the first post, which a title edit does
// not change.
func (s *Syncer) UpdateThreadTitle(tx *gorm.DB, threadID uint, title string) error {
	err := tx.Exec(
		"UPDATE thread_search SET title = ? WHERE thread_id = ?",
		title, threadID,
	).Error
	if err == nil {
		observability.IndexMutations.WithLabelValues("thread_retitle").Inc()
	}
	return err
}

// DeleteThread removes the thread's search row and the search rows of every
// post under it. It must run before the content rows are deleted, while the
// posts subquery still resolves.
func (s *Syncer) DeleteThread(tx *gorm.DB, threadID uint) error {
	if err := tx.Exec(
		"DELETE FROM post_search WHERE post_id IN (SELECT id FROM posts WHERE thread_id = ?)",
		threadID,
	).Error; err != nil {
		return err
	}
	err := tx.Exec("DELETE FROM thread_search WHERE thread_id = ?", threadID).Error
	if err == nil {
		observability.IndexMutations.WithLabelValues("thread_delete").Inc()
	}
	return err
}

// DeleteCategoryThreads removes the search rows for every thread in a
// category and every post under those threads. Called before a category
// delete cascades through the content tables.
func (s *Syncer) DeleteCategoryThreads(tx *gorm.DB, categoryID uint) error {
	if err := tx.Exec(
		`DELETE FROM post_search WHERE post_id IN (
			SELECT p.id FROM posts p
			JOIN threads t ON t.id = p.thread_id
			WHERE t.category_id = ?
		)`, categoryID,
	).Error; err != nil {
		return err
	}
	err := tx.Exec(
		"DELETE FROM thread_search WHERE thread_id IN (SELECT id FROM threads WHERE category_id = ?)",
		categoryID,
	).Error
	if err == nil {
		observability.IndexMutations.WithLabelValues("category_delete").Inc()
	}
	return err
}

// IndexPost inserts the search row for a new post.
func (s *Syncer) IndexPost(tx *gorm.DB, postID uint, content string) error {
	err := tx.Exec(
		"INSERT INTO post_search (post_id, content) VALUES (?, ?)",
		postID, content,
	).Error
	if err == nil {
		observability.IndexMutations.WithLabelValues("post_index").Inc()
	}
	return err
}

// ReindexPost replaces the search row for an edited post. Delete-then-insert
// rather than update: FTS5 keeps per-row token state, and replacing the row
// wholesale cannot leave a partially patched entry behind.
func (s *Syncer) ReindexPost(tx *gorm.DB, postID uint, content string) error {
	if err := tx.Exec("DELETE FROM post_search WHERE post_id = ?", postID).Error; err != nil {
		return err
	}
	err := tx.Exec(
		"INSERT INTO post_search (post_id, content) VALUES (?, ?)",
		postID, content,
	).Error
	if err == nil {
		observability.IndexMutations.WithLabelValues("post_reindex").Inc()
	}
	return err
}

// DeletePost removes a post's search row.
func (s *Syncer) DeletePost(tx *gorm.DB, postID uint) error {
	err := tx.Exec("DELETE FROM post_search WHERE post_id = ?", postID).Error
	if err == nil {
		observability.IndexMutations.WithLabelValues("post_delete").Inc()
	}
	return err
}
