package models

import "time"

// ForumStats is the response of GET /api/stats.
type ForumStats struct {
	TotalCategories int64 `json:"total_categories"`
	TotalThreads    int64 `json:"total_threads"`
	TotalPosts      int64 `json:"total_posts"`
	TotalReactions  int64 `json:"total_reactions"`
	TotalTags       int64 `json:"total_tags"`
}

// TrendingThread is one row of GET /api/stats/trending. Score is
// post_count*2 + reaction_count; a reply counts double because it signals
// more engagement than a one-click reaction.
type TrendingThread struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	AuthorName    string    `json:"author_name"`
	CategoryName  string    `json:"category_name"`
	PostCount     int       `json:"post_count"`
	ReactionCount int       `json:"reaction_count"`
	Score         int       `json:"score"`
	CreatedAt     time.Time `json:"created_at"`
}
