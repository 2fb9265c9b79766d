package search

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"agora/internal/models"
	"agora/internal/observability"

	"gorm.io/gorm"
)

const (
	// maxQueryLen bounds the query length in runes; longer input is
	// rejected before the index is consulted.
	maxQueryLen = 200
	// perIndexLimit caps the raw hits taken from each index before merging.
	perIndexLimit = 50
	// excerptLen is the number of characters of body text carried in a result.
	excerptLen = 300
)

// Merger runs relevance-ranked queries against both full-text indexes and
// folds the hits into a single list ordered by normalized relevance.
type Merger struct {
	db *gorm.DB
}

// NewMerger creates a Merger bound to the given database handle.
func NewMerger(db *gorm.DB) *Merger {
	return &Merger{db: db}
}

type threadHit struct {
	ThreadID   uint
	Title      string
	Content    string
	AuthorName string
	Rank       float64
}

type postHit struct {
	PostID     uint
	ThreadID   uint
	Content    string
	AuthorName string
	Rank       float64
}

// Search executes a full-text query over the scope's index(es) and returns
// the merged, ranked results. A query matching nothing yields an empty list.
func (m *Merger) Search(ctx context.Context, query, scope string) (*models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" || utf8.RuneCountInString(query) > maxQueryLen {
		return nil, models.NewValidationError("Query must be 1-200 characters")
	}
	switch scope {
	case models.SearchScopeThreads, models.SearchScopePosts, models.SearchScopeAll:
	default:
		return nil, models.NewValidationError("type must be 'threads', 'posts' or 'all'")
	}

	defer observability.ObserveSearch(scope, time.Now())

	results := []models.SearchResult{}

	if scope == models.SearchScopeThreads || scope == models.SearchScopeAll {
		hits, err := m.matchThreads(ctx, query)
		if err != nil {
			return nil, err
		}
		for _, h := range hits {
			results = append(results, models.SearchResult{
				Type:           models.SearchResultThread,
				ID:             h.ThreadID,
				Title:          h.Title,
				Content:        excerpt(h.Content),
				AuthorName:     h.AuthorName,
				RelevanceScore: normalizeRank(h.Rank),
			})
		}
	}

	if scope == models.SearchScopePosts || scope == models.SearchScopeAll {
		hits, err := m.matchPosts(ctx, query)
		if err != nil {
			return nil, err
		}
		for _, h := range hits {
			results = append(results, models.SearchResult{
				Type:           models.SearchResultPost,
				ID:             h.PostID,
				Content:        excerpt(h.Content),
				AuthorName:     h.AuthorName,
				ThreadID:       h.ThreadID,
				RelevanceScore: normalizeRank(h.Rank),
			})
		}
	}

	// Each branch is already ranked by its own index; a stable sort keeps
	// that per-index order for equal scores while interleaving the types.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	return &models.SearchResponse{
		Query:   query,
		Type:    scope,
		Total:   len(results),
		Results: results,
	}, nil
}

func (m *Merger) matchThreads(ctx context.Context, query string) ([]threadHit, error) {
	var hits []threadHit
	err := m.db.WithContext(ctx).Raw(`
		SELECT s.thread_id, s.title, s.content, t.author_name, rank
		FROM thread_search s
		JOIN threads t ON t.id = s.thread_id
		WHERE thread_search MATCH ?
		ORDER BY rank
		LIMIT ?`, query, perIndexLimit).Scan(&hits).Error
	if err != nil {
		if isQuerySyntaxError(err) {
			return nil, nil
		}
		return nil, err
	}
	return hits, nil
}

func (m *Merger) matchPosts(ctx context.Context, query string) ([]postHit, error) {
	var hits []postHit
	err := m.db.WithContext(ctx).Raw(`
		SELECT s.post_id, s.content, p.author_name, p.thread_id, rank
		FROM post_search s
		JOIN posts p ON p.id = s.post_id
		WHERE post_search MATCH ?
		ORDER BY rank
		LIMIT ?`, query, perIndexLimit).Scan(&hits).Error
	if err != nil {
		if isQuerySyntaxError(err) {
			return nil, nil
		}
		return nil, err
	}
	return hits, nil
}

// normalizeRank converts the index's native rank into the output contract:
// higher value = better match. FTS5 bm25 ranks are negative with more
// negative meaning more relevant, so the magnitude is the score.
func normalizeRank(rank float64) float64 {
	return math.Abs(rank)
}

// excerpt returns the first excerptLen characters of the body.
func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLen {
		return content
	}
	return string(runes[:excerptLen])
}

// isQuerySyntaxError reports whether the error came from FTS5 failing to
// parse the user's match expression (unbalanced quotes and the like). Those
// degrade to an empty result instead of a server error.
func isQuerySyntaxError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "fts5: syntax error") ||
		strings.Contains(msg, "unterminated string") ||
		strings.Contains(msg, "unknown special query") ||
		strings.Contains(msg, "malformed MATCH") ||
		strings.Contains(msg, "no such column")
}
