package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	app, _ := newTestApp(t)

	category := createCategory(t, app, "General")
	id := category["id"].(float64)
	assert.Equal(t, "General", category["name"])

	// Duplicate name conflicts.
	var errBody map[string]any
	status := doJSON(t, app, http.MethodPost, "/api/categories",
		fiber.Map{"name": "General"}, &errBody)
	assert.Equal(t, http.StatusConflict, status)

	// Empty name fails validation.
	status = doJSON(t, app, http.MethodPost, "/api/categories",
		fiber.Map{"name": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var got map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/categories/1", nil, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, got["id"])

	status = doJSON(t, app, http.MethodPut, "/api/categories/1",
		fiber.Map{"description": "chatter"}, &got)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "chatter", got["description"])

	var list []map[string]any
	status = doJSON(t, app, http.MethodGet, "/api/categories", nil, &list)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, list, 1)

	status = doJSON(t, app, http.MethodDelete, "/api/categories/1", nil, nil)
	assert.Equal(t, http.StatusOK, status)

	status = doJSON(t, app, http.MethodGet, "/api/categories/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCategoryBadID(t *testing.T) {
	app, _ := newTestApp(t)

	status := doJSON(t, app, http.MethodGet, "/api/categories/banana", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCategoryThreadsListing(t *testing.T) {
	app, _ := newTestApp(t)

	category := createCategory(t, app, "General")
	id := category["id"].(float64)
	createThread(t, app, id, "first")
	createThread(t, app, id, "second")

	var page map[string]any
	status := doJSON(t, app, http.MethodGet, "/api/categories/1/threads?page_size=1", nil, &page)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), page["total"])
	assert.Equal(t, float64(2), page["total_pages"])
	assert.Len(t, page["items"], 1)

	status = doJSON(t, app, http.MethodGet, "/api/categories/999/threads", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
