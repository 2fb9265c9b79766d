package service

import (
	"context"

	"agora/internal/cache"
	"agora/internal/models"
	"agora/internal/repository"

	"github.com/redis/go-redis/v9"
)

type StatsService struct {
	statsRepo repository.StatsRepository
	rdb       *redis.Client
}

func NewStatsService(statsRepo repository.StatsRepository, rdb *redis.Client) *StatsService {
	return &StatsService{
		statsRepo: statsRepo,
		rdb:       rdb,
	}
}

// Overview returns forum-wide totals. The result is cached briefly since the
// counts move slowly and the query touches every table.
func (s *StatsService) Overview(ctx context.Context) (*models.ForumStats, error) {
	var stats models.ForumStats
	err := cache.Aside(ctx, s.rdb, cache.StatsKey(), &stats, cache.StatsTTL, func() error {
		fresh, err := s.statsRepo.Overview(ctx)
		if err != nil {
			return err
		}
		stats = *fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Trending returns the current trending feed. Never cached: the feed must
// reflect every committed write immediately.
func (s *StatsService) Trending(ctx context.Context) ([]models.TrendingThread, error) {
	return s.statsRepo.Trending(ctx)
}
