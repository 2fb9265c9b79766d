package repository

import (
	"context"
	"time"

	"agora/internal/models"
	"agora/internal/observability"

	"gorm.io/gorm"
)

// trendingLimit is the fixed size of the trending feed.
const trendingLimit = 10

// StatsRepository defines the interface for forum-wide aggregate queries
type StatsRepository interface {
	Overview(ctx context.Context) (*models.ForumStats, error)
	Trending(ctx context.Context) ([]models.TrendingThread, error)
}

// statsRepository implements StatsRepository
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Overview(ctx context.Context) (*models.ForumStats, error) {
	db := r.db.WithContext(ctx)
	var stats models.ForumStats

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Category{}, &stats.TotalCategories},
		{&models.Thread{}, &stats.TotalThreads},
		{&models.Post{}, &stats.TotalPosts},
		{&models.Reaction{}, &stats.TotalReactions},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	err := db.Model(&models.ThreadTag{}).
		Distinct("tag_name").
		Count(&stats.TotalTags).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Trending computes the trending feed from live data on every call. The
// score weights a reply at twice a reaction; ties fall back to the newer
// thread. Always at most trendingLimit rows, never cached.
func (r *statsRepository) Trending(ctx context.Context) ([]models.TrendingThread, error) {
	start := time.Now()
	defer func() {
		observability.TrendingComputeLatency.Observe(time.Since(start).Seconds())
	}()

	rows := []models.TrendingThread{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT t.id, t.title, t.author_name, c.name AS category_name, t.created_at,
		       COUNT(DISTINCT p.id) AS post_count,
		       COUNT(r.id) AS reaction_count,
		       COUNT(DISTINCT p.id) * 2 + COUNT(r.id) AS score
		FROM threads t
		JOIN categories c ON c.id = t.category_id
		LEFT JOIN posts p ON p.thread_id = t.id
		LEFT JOIN reactions r ON r.post_id = p.id
		GROUP BY t.id, t.title, t.author_name, c.name, t.created_at
		ORDER BY score DESC, t.created_at DESC
		LIMIT ?`, trendingLimit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
