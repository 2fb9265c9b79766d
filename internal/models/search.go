package models

// Search scopes selecting which full-text index is consulted.
const (
	SearchScopeThreads = "threads"
	SearchScopePosts   = "posts"
	SearchScopeAll     = "all"
)

// SearchResultThread and SearchResultPost identify the entity type of a hit.
const (
	SearchResultThread = "thread"
	SearchResultPost   = "post"
)

// SearchResult is one hit from the full-text search. Title and ThreadID are
// only set for thread and post hits respectively. RelevanceScore is
// normalized so that a higher value is a better match, regardless of the
// index's native rank convention.
type SearchResult struct {
	Type           string  `json:"type"`
	ID             uint    `json:"id"`
	Title          string  `json:"title,omitempty"`
	Content        string  `json:"content"`
	AuthorName     string  `json:"author_name"`
	ThreadID       uint    `json:"thread_id,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
}

// SearchResponse is the envelope of GET /api/search.
type SearchResponse struct {
	Query   string         `json:"query"`
	Type    string         `json:"type"`
	Total   int            `json:"total"`
	Results []SearchResult `json:"results"`
}
