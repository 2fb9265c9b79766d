package ghdocs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at a local fake GitHub API.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("acme/docs", "main", nil)
	c.base = srv.URL
	return c
}

func TestGetFileForwardsHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		assert.Equal(t, "/repos/acme/docs/contents/guide.md", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		w.Write([]byte("# Guide"))
	}))

	content, found, err := c.GetFile(context.Background(), "guide.md", "tok123")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "# Guide", content)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "application/vnd.github.v3.raw", gotAccept)
}

func TestGetFileMissingIsNotAnError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	content, found, err := c.GetFile(context.Background(), "nope.md", "tok")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, content)
}

func TestGetFileUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("cached content"))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("acme/docs", "main", rdb)
	c.base = srv.URL

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		content, found, err := c.GetFile(ctx, "guide.md", "tok")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "cached content", content)
	}
	assert.Equal(t, 1, calls)
}

func TestListDirAndGetDirFiles(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/acme/docs/contents/payments":
			w.Write([]byte(`[
				{"name": "api.md", "path": "payments/api.md", "type": "file"},
				{"name": "notes.txt", "path": "payments/notes.txt", "type": "file"},
				{"name": "archive", "path": "payments/archive", "type": "dir"}
			]`))
		case "/repos/acme/docs/contents/payments/api.md":
			w.Write([]byte("# Payments API"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	ctx := context.Background()

	entries, err := c.ListDir(ctx, "payments", "tok")
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// Only markdown files come back, and only one fetch for them.
	files, err := c.GetDirFiles(ctx, "payments", "tok")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "payments/api.md", files[0].Path)
	assert.Equal(t, "# Payments API", files[0].Content)

	// A missing directory is an empty list.
	entries, err = c.ListDir(ctx, "ghost", "tok")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetManifest(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/acme/docs/contents/manifest.json" {
			w.Write([]byte(`{"services": {"payments": "payments"}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	manifest, err := c.GetManifest(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, manifest)
	assert.Contains(t, manifest, "services")
}

func TestGetManifestMissingIsNil(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	manifest, err := c.GetManifest(context.Background(), "tok")
	require.NoError(t, err)
	assert.Nil(t, manifest)
}

func TestSearchDocs(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/code", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("q"), "repo:acme/docs")
		w.Write([]byte(`{"items": [{"path": "payments/api.md", "name": "api.md", "html_url": "https://example.com/api.md"}]}`))
	}))

	hits, err := c.SearchDocs(context.Background(), "refunds", "tok")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "payments/api.md", hits[0].Path)
	assert.Equal(t, "https://example.com/api.md", hits[0].URL)
}

func TestSearchDocsDegradesOnForbidden(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	hits, err := c.SearchDocs(context.Background(), "refunds", "tok")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestVerifyToken(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/docs", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	c := newTestClient(t, ok)

	valid, err := c.VerifyToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, valid)

	c = newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	valid, err = c.VerifyToken(context.Background(), "bad")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestNewClientDefaultsBranch(t *testing.T) {
	c := NewClient("acme/docs", "", nil)
	assert.Equal(t, "main", c.Branch())
	assert.Equal(t, "acme/docs", c.Repo())
}
