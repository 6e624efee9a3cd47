package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/jonathan/portfolio/internal/build"
	"github.com/jonathan/portfolio/internal/content"
	"github.com/jonathan/portfolio/internal/server/ratelimit"
	"github.com/jonathan/portfolio/internal/sitemap"
	"github.com/jonathan/portfolio/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func caseStudy(title, date string, order int) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(fmt.Sprintf(`---
title: %s
role: PM
company: Acme
date: %q
summary: About %s
order: %d
---
## Overview

Body of %s.
`, title, date, title, order, title))}
}

func writing(title, date string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(fmt.Sprintf("---\ntitle: %s\ndate: %q\nsummary: s\n---\nText.\n", title, date))}
}

func newTestServer(t *testing.T, files fstest.MapFS) *Server {
	t.Helper()
	return New(content.NewStore(files), Config{
		Identity: types.SiteIdentity{
			BaseURL:  "https://example.com",
			Name:     "Jane Doe",
			JobTitle: "AI Product Manager",
		},
		Sitemap:   sitemap.DefaultOptions(),
		RateLimit: ratelimit.Config{Enabled: false},
		Logger:    zerolog.Nop(),
	})
}

func defaultFS() fstest.MapFS {
	return fstest.MapFS{
		"case-studies/robots.mdx":   caseStudy("Robots", "2024-2025", 2),
		"case-studies/hydrogen.mdx": caseStudy("Hydrogen", "2023-01-01", 1),
		"writing/newer.md":          writing("Newer", "2025-03-01"),
		"writing/older.md":          writing("Older", "2022-03-01"),
	}
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := get(t, newTestServer(t, defaultFS()), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestListCaseStudies(t *testing.T) {
	w := get(t, newTestServer(t, defaultFS()), "/api/case-studies")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CollectionResponse[types.CaseStudyMeta]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "hydrogen", resp.Items[0].Slug)
	assert.Equal(t, "robots", resp.Items[1].Slug)
}

func TestGetCaseStudy(t *testing.T) {
	w := get(t, newTestServer(t, defaultFS()), "/api/case-studies/robots")
	require.Equal(t, http.StatusOK, w.Code)

	var page build.CaseStudyPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, "Robots", page.Meta.Title)
	assert.Contains(t, page.HTML, `<h2 id="overview">Overview</h2>`)
	assert.Contains(t, page.HTML, "<p>Body of Robots.</p>")
	assert.NotContains(t, page.HTML, "<hr>")
	assert.NotContains(t, page.HTML, "title:")
	assert.Equal(t, "2025-01-01T00:00:00.000Z", page.Article.DatePublished)
	assert.Len(t, page.Breadcrumbs.ItemListElement, 3)
	assert.Equal(t, "https://example.com/case-studies/robots", page.Metadata.Canonical)
}

func TestGetCaseStudy_NotFound(t *testing.T) {
	s := newTestServer(t, defaultFS())

	for _, path := range []string{"/api/case-studies/missing", "/api/case-studies/missing/page", "/api/writing/missing"} {
		w := get(t, s, path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), `"error"`)
	}
}

func TestCaseStudyPage(t *testing.T) {
	w := get(t, newTestServer(t, defaultFS()), "/api/case-studies/hydrogen/page")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<title>Hydrogen | Jane Doe</title>")
	assert.Contains(t, w.Body.String(), `application/ld+json`)
	assert.Contains(t, w.Body.String(), `<h2 id="overview">Overview</h2>`)
	assert.NotContains(t, w.Body.String(), "<hr>")
	assert.NotContains(t, w.Body.String(), "company: Acme")
}

func TestWritingEndpoints(t *testing.T) {
	s := newTestServer(t, defaultFS())

	w := get(t, s, "/api/writing")
	require.Equal(t, http.StatusOK, w.Code)
	var list CollectionResponse[types.WritingMeta]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 2)
	assert.Equal(t, "newer", list.Items[0].Slug)
	assert.Equal(t, []string{}, list.Items[0].Tags)

	w = get(t, s, "/api/writing/older")
	require.Equal(t, http.StatusOK, w.Code)
	var entry WritingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "Older", entry.Meta.Title)
	assert.Equal(t, "<p>Text.</p>\n", entry.HTML)
}

func TestPerson(t *testing.T) {
	w := get(t, newTestServer(t, defaultFS()), "/api/person")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "application/ld+json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"@type":"Person"`)
}

func TestSitemap(t *testing.T) {
	w := get(t, newTestServer(t, defaultFS()), "/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "<?xml"))
	assert.Equal(t, 5, strings.Count(body, "<url>"))
}

func TestCollectionFailureIs500(t *testing.T) {
	files := defaultFS()
	files["writing/bad.md"] = writing("Bad", "someday")
	s := newTestServer(t, files)

	w := get(t, s, "/api/writing")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "someday")

	files["case-studies/broken.mdx"] = &fstest.MapFile{Data: []byte("no frontmatter")}
	w = get(t, s, "/api/case-studies")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	w := httptest.NewRecorder()
	newTestServer(t, defaultFS()).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/person", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestHTTPStatus(t *testing.T) {
	notFound := &content.DocumentNotFoundError{Category: types.CategoryWriting, Slug: "x"}

	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(notFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("wrapped: %w", notFound)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(&content.MissingRequiredFieldError{Field: "title"}))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := newTestServer(t, defaultFS())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:gosec,noctx
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
