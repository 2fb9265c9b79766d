package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadLifecycle(t *testing.T) {
	app, _ := newTestApp(t)

	category := createCategory(t, app, "General")
	thread := createThread(t, app, category["id"].(float64), "Hello world")
	assert.Equal(t, "General", thread["category_name"])
	assert.Equal(t, float64(1), thread["post_count"])

	var got map[string]any
	status := doJSON(t, app, http.MethodGet, "/api/threads/1", nil, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hello world", got["title"])

	status = doJSON(t, app, http.MethodPut, "/api/threads/1",
		fiber.Map{"is_pinned": true, "title": "Hello again"}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, got["is_pinned"])
	assert.Equal(t, "Hello again", got["title"])

	status = doJSON(t, app, http.MethodDelete, "/api/threads/1", nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status = doJSON(t, app, http.MethodGet, "/api/threads/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateThreadRejectsUnknownCategory(t *testing.T) {
	app, _ := newTestApp(t)

	status := doJSON(t, app, http.MethodPost, "/api/threads", fiber.Map{
		"category_id": 42,
		"title":       "orphan",
		"author_name": "alice",
		"content":     "content",
	}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestThreadTagsEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	category := createCategory(t, app, "General")
	createThread(t, app, category["id"].(float64), "Tagged")

	var body map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/threads/1/tags",
		fiber.Map{"tags": []string{"Go", "web", "go"}}, &body)
	require.Equal(t, http.StatusOK, status)
	assert.ElementsMatch(t, []any{"go", "web"}, body["tags"])

	status = doJSON(t, app, http.MethodDelete, "/api/threads/1/tags/go", nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status = doJSON(t, app, http.MethodDelete, "/api/threads/1/tags/go", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	var tags []map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/tags", nil, &tags)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, tags, 1)
	assert.Equal(t, "web", tags[0]["name"])
	assert.Equal(t, float64(1), tags[0]["thread_count"])
}

func TestTagThreadsEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	category := createCategory(t, app, "General")
	createThread(t, app, category["id"].(float64), "first")
	createThread(t, app, category["id"].(float64), "second")
	createThread(t, app, category["id"].(float64), "plain")

	for _, id := range []string{"1", "2"} {
		status := doJSON(t, app, http.MethodPost, "/api/threads/"+id+"/tags",
			fiber.Map{"tags": []string{"go"}}, nil)
		require.Equal(t, http.StatusOK, status)
	}

	var page map[string]any
	status := doJSON(t, app, http.MethodGet, "/api/tags/go/threads", nil, &page)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), page["total"])
	items := page["items"].([]any)
	require.Len(t, items, 2)
	newest := items[0].(map[string]any)
	assert.Equal(t, "second", newest["title"])
	assert.Equal(t, []any{"go"}, newest["tags"])

	status = doJSON(t, app, http.MethodGet, "/api/tags/go/threads?page=2&page_size=1", nil, &page)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), page["total_pages"])
	require.Len(t, page["items"].([]any), 1)

	status = doJSON(t, app, http.MethodGet, "/api/tags/ghost/threads", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestThreadListSortParam(t *testing.T) {
	app, _ := newTestApp(t)

	category := createCategory(t, app, "General")
	createThread(t, app, category["id"].(float64), "first")
	createThread(t, app, category["id"].(float64), "second")

	var page map[string]any
	status := doJSON(t, app, http.MethodGet, "/api/threads?sort=post_count", nil, &page)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), page["total"])
}
