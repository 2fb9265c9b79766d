package database

import (
	"fmt"

	"agora/internal/models"

	"gorm.io/gorm"
)

// ftsDDL creates the two full-text indexes. They are plain (non-contentless)
// FTS5 tables maintained by the write path, not by triggers: every content
// mutation and its index delta commit in the same transaction, so the index
// can never drift from the tables it mirrors.
const ftsDDL = `
CREATE VIRTUAL TABLE IF NOT EXISTS thread_search USING fts5(
	title, content, thread_id UNINDEXED
);
CREATE VIRTUAL TABLE IF NOT EXISTS post_search USING fts5(
	content, post_id UNINDEXED
);
`

// Migrate creates the relational schema and the FTS5 virtual tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.Thread{},
		&models.Post{},
		&models.Reaction{},
		&models.ThreadTag{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := db.Exec(ftsDDL).Error; err != nil {
		return fmt.Errorf("failed to create full-text search tables: %w", err)
	}

	return nil
}
