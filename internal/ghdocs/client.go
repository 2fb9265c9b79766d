// Package ghdocs proxies a documentation repository hosted on GitHub. The
// proxy is stateless: the caller's token is forwarded on every request and
// never stored or logged.
package ghdocs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"agora/internal/cache"

	"github.com/redis/go-redis/v9"
)

const apiBase = "https://api.github.com"

// Entry is one item of a directory listing. Type is "file" or "dir" as
// reported by the GitHub contents API.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// File is a fetched document with its repo-relative path.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// SearchHit is one result of a code search across the docs repo.
type SearchHit struct {
	Path string `json:"path"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Client talks to the GitHub API for one docs repo and branch. Responses for
// file and manifest reads are cached briefly in Redis when a cache client is
// provided; cached entries are keyed by repo, branch and path only.
type Client struct {
	repo   string
	branch string
	base   string
	http   *http.Client
	rdb    *redis.Client
}

// NewClient creates a Client for the given "owner/repo" and branch.
func NewClient(repo, branch string, rdb *redis.Client) *Client {
	if branch == "" {
		branch = "main"
	}
	return &Client{
		repo:   repo,
		branch: branch,
		base:   apiBase,
		http:   &http.Client{Timeout: 30 * time.Second},
		rdb:    rdb,
	}
}

// Repo returns the configured "owner/repo" slug.
func (c *Client) Repo() string { return c.repo }

// Branch returns the configured branch.
func (c *Client) Branch() string { return c.branch }

func (c *Client) headers(req *http.Request, token string, raw bool) {
	req.Header.Set("Authorization", "Bearer "+token)
	if raw {
		req.Header.Set("Accept", "application/vnd.github.v3.raw")
	} else {
		req.Header.Set("Accept", "application/vnd.github.v3+json")
	}
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
}

func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s",
		c.base, c.repo, path, url.QueryEscape(c.branch))
}

// GetFile fetches the raw content of a single file. A missing file returns
// ("", false, nil) rather than an error.
func (c *Client) GetFile(ctx context.Context, path, token string) (string, bool, error) {
	key := cache.DocFileKey(c.repo, c.branch, path)
	var cached string
	if found, err := cache.GetJSON(ctx, c.rdb, key, &cached); err == nil && found {
		return cached, true, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentsURL(path), nil)
	if err != nil {
		return "", false, err
	}
	c.headers(req, token, true)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("github contents %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, err
	}
	content := string(body)
	_ = cache.SetJSON(ctx, c.rdb, key, content, cache.DocsTTL)
	return content, true, nil
}

// ListDir lists the entries of a directory. A missing directory returns an
// empty list.
func (c *Client) ListDir(ctx context.Context, path, token string) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentsURL(path), nil)
	if err != nil {
		return nil, err
	}
	c.headers(req, token, false)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return []Entry{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github contents %s: unexpected status %d", path, resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		// A file path returns an object instead of an array; treat it as
		// an empty directory.
		return []Entry{}, nil
	}
	return entries, nil
}

// GetManifest fetches and parses manifest.json from the repo root. A missing
// manifest returns (nil, nil).
func (c *Client) GetManifest(ctx context.Context, token string) (map[string]interface{}, error) {
	key := cache.ManifestKey(c.repo, c.branch)
	var cached map[string]interface{}
	if found, err := cache.GetJSON(ctx, c.rdb, key, &cached); err == nil && found {
		return cached, nil
	}

	content, found, err := c.GetFile(ctx, "manifest.json", token)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var manifest map[string]interface{}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest.json: %w", err)
	}
	_ = cache.SetJSON(ctx, c.rdb, key, manifest, cache.DocsTTL)
	return manifest, nil
}

// GetDirFiles fetches every markdown file in a directory, non-recursively.
func (c *Client) GetDirFiles(ctx context.Context, path, token string) ([]File, error) {
	entries, err := c.ListDir(ctx, path, token)
	if err != nil {
		return nil, err
	}

	files := []File{}
	for _, e := range entries {
		if e.Type != "file" || !strings.HasSuffix(e.Name, ".md") {
			continue
		}
		content, found, err := c.GetFile(ctx, e.Path, token)
		if err != nil {
			return nil, err
		}
		if found {
			files = append(files, File{Path: e.Path, Content: content})
		}
	}
	return files, nil
}

// SearchDocs runs a GitHub code search scoped to the docs repo. Any non-OK
// response degrades to an empty result; code search availability varies by
// token type.
func (c *Client) SearchDocs(ctx context.Context, query, token string) ([]SearchHit, error) {
	u := fmt.Sprintf("%s/search/code?q=%s", c.base,
		url.QueryEscape(fmt.Sprintf("%s repo:%s", query, c.repo)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.headers(req, token, false)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return []SearchHit{}, nil
	}

	var payload struct {
		Items []struct {
			Path    string `json:"path"`
			Name    string `json:"name"`
			HTMLURL string `json:"html_url"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(payload.Items))
	for _, item := range payload.Items {
		hits = append(hits, SearchHit{Path: item.Path, Name: item.Name, URL: item.HTMLURL})
	}
	return hits, nil
}

// VerifyToken checks that the token can read the docs repo.
func (c *Client) VerifyToken(ctx context.Context, token string) (bool, error) {
	u := fmt.Sprintf("%s/repos/%s", c.base, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	c.headers(req, token, false)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
