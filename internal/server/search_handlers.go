package server

import (
	"agora/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Search runs a full-text query over threads, posts or both. A query that
// matches nothing returns an empty result list, not an error.
func (s *Server) Search(c *fiber.Ctx) error {
	scope := c.Query("type", models.SearchScopeThreads)

	resp, err := s.merger.Search(c.UserContext(), c.Query("q"), scope)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(resp)
}

// GetStats returns forum-wide totals.
func (s *Server) GetStats(c *fiber.Ctx) error {
	stats, err := s.statsService.Overview(c.UserContext())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(stats)
}

// GetTrending returns the trending feed as a bare ordered list, computed
// from live data on every request.
func (s *Server) GetTrending(c *fiber.Ctx) error {
	trending, err := s.statsService.Trending(c.UserContext())
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(trending)
}
