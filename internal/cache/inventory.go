package cache

import (
	"fmt"
	"time"
)

// Cache key templates. Trending is deliberately absent: the trending feed is
// recomputed from live data on every request.
const (
	statsKey      = "stats:overview"
	docFilePrefix = "ghdocs:%s:%s:file:%s"
	manifestKey   = "ghdocs:%s:%s:manifest"
)

// TTLs per concern.
const (
	StatsTTL = 30 * time.Second
	DocsTTL  = 5 * time.Minute
)

// StatsKey returns the cache key for the forum-wide stats overview.
func StatsKey() string {
	return statsKey
}

// DocFileKey returns the cache key for a proxied documentation file.
func DocFileKey(repo, branch, path string) string {
	return fmt.Sprintf(docFilePrefix, repo, branch, path)
}

// ManifestKey returns the cache key for the proxied docs manifest.
func ManifestKey(repo, branch string) string {
	return fmt.Sprintf(manifestKey, repo, branch)
}
