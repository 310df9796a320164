// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/database"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/moderation"
	"github.com/tomtom215/curio/internal/recommend"
)

// testDBSemaphore allows one DuckDB instance at a time across tests.
var testDBSemaphore = make(chan struct{}, 1)

type testEnv struct {
	db      *database.DB
	handler *Handler
	router  http.Handler
}

func setupTestEnv(t *testing.T, cacheTTL time.Duration) *testEnv {
	t.Helper()
	return setupTestEnvWithEngine(t, cacheTTL, nil)
}

func setupTestEnvWithEngine(t *testing.T, cacheTTL time.Duration, engineCfg *recommend.Config) *testEnv {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{Path: database.InMemoryPath, MaxMemory: "256MB", Threads: 1})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("close: %v", err)
		}
	})

	logger := logging.NewTestLogger(io.Discard)
	engine, err := recommend.NewEngine(engineCfg, db, nil, logger)
	require.NoError(t, err)

	h, err := NewHandler(HandlerConfig{
		Engine:        engine,
		Catalog:       db,
		Moderator:     moderation.NewBlocklist([]string{"spoiler"}),
		GraphCacheTTL: cacheTTL,
		Version:       "test",
	}, logger)
	require.NoError(t, err)

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return &testEnv{db: db, handler: h, router: NewRouter(h, NewChiMiddleware(cfg))}
}

// seedDune stores the Dune book and film and Tetris with fixed tag counts.
func (e *testEnv) seedDune(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	book, _, err := e.db.AddBook(ctx, "Dune", "1965", "dune.jpg", catalog.BookDetails{Author: "Frank Herbert", Publisher: "Chilton Books"})
	require.NoError(t, err)
	film, _, err := e.db.AddFilm(ctx, "Dune", "2021", "dune-film.jpg", catalog.FilmDetails{Director: "Denis Villeneuve", ProductionCompany: "Legendary"})
	require.NoError(t, err)
	game, _, err := e.db.AddGame(ctx, "Tetris", "1985", "tetris.jpg", catalog.GameDetails{Developer: "Alexey Pajitnov"})
	require.NoError(t, err)

	require.NoError(t, e.db.SetTagCount(ctx, book.Ref(), "scifi", 3))
	require.NoError(t, e.db.SetTagCount(ctx, book.Ref(), "adventure", 1))
	require.NoError(t, e.db.SetTagCount(ctx, film.Ref(), "scifi", 2))
	require.NoError(t, e.db.SetTagCount(ctx, game.Ref(), "puzzle", 5))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func (e *testEnv) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestGraph_DuneScenario(t *testing.T) {
	env := setupTestEnv(t, 0)
	env.seedDune(t)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/graph?type=book&id=1&weighting=3&top_n=5", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, resp.Success)

	var res recommend.Result
	require.NoError(t, json.Unmarshal(resp.Data, &res))
	assert.Equal(t, "1 book", res.Seed)
	assert.Equal(t, []string{"1 book", "1 film"}, res.Graph.NodeIDs())
	require.Len(t, res.Graph.Links, 1)
	assert.Equal(t, "1 book", res.Graph.Links[0].Source)
	assert.Equal(t, "1 film", res.Graph.Links[0].Target)
	assert.Equal(t, 9, res.Graph.Links[0].Weight)

	assert.Equal(t, "Frank Herbert", res.Metadata["1 book"][catalog.FieldAuthor])
	assert.Equal(t, "Denis Villeneuve", res.Metadata["1 film"][catalog.FieldDirector])
	assert.NotContains(t, res.Metadata, "1 game")
}

func TestGraph_RequestDeadlineIsTimeout(t *testing.T) {
	cfg := recommend.DefaultConfig()
	cfg.Limits.RequestTimeout = time.Nanosecond
	env := setupTestEnvWithEngine(t, 0, cfg)
	env.seedDune(t)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/graph?type=book&id=1&weighting=3&top_n=5", "")
	require.Equal(t, http.StatusGatewayTimeout, rec.Code, rec.Body.String())
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTimeout, resp.Error.Code)
}

func TestGraph_ByTitle(t *testing.T) {
	env := setupTestEnv(t, 0)
	env.seedDune(t)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/graph?type=film&title=dune", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res recommend.Result
	require.NoError(t, json.Unmarshal(resp.Data, &res))
	assert.Equal(t, "1 film", res.Seed)
	assert.Contains(t, res.Graph.NodeIDs(), "1 book")
}

func TestGraph_BadRequests(t *testing.T) {
	env := setupTestEnv(t, 0)
	env.seedDune(t)

	tests := []struct {
		name   string
		query  string
		status int
		code   string
	}{
		{"missing type", "id=1", http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown type", "type=album&id=1", http.StatusBadRequest, ErrCodeBadRequest},
		{"no id or title", "type=book", http.StatusBadRequest, ErrCodeValidationFailed},
		{"bad id", "type=book&id=abc", http.StatusBadRequest, ErrCodeBadRequest},
		{"weighting too high", "type=book&id=1&weighting=11", http.StatusBadRequest, ErrCodeValidationFailed},
		{"weighting not a number", "type=book&id=1&weighting=high", http.StatusBadRequest, ErrCodeValidationFailed},
		{"top_n zero", "type=book&id=1&top_n=0", http.StatusBadRequest, ErrCodeValidationFailed},
		{"top_n too high", "type=book&id=1&top_n=11", http.StatusBadRequest, ErrCodeValidationFailed},
		{"unknown seed", "type=book&id=42", http.StatusNotFound, ErrCodeNotFound},
		{"unknown title", "type=game&title=zork", http.StatusNotFound, ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := env.do(t, http.MethodGet, "/api/v1/graph?"+tt.query, "")
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestGraph_CacheHitAndInvalidation(t *testing.T) {
	env := setupTestEnv(t, time.Minute)
	env.seedDune(t)
	target := "/api/v1/graph?type=book&id=1&weighting=3&top_n=5"

	_, first := env.do(t, http.MethodGet, target, "")
	require.NotNil(t, first.Meta)
	assert.False(t, first.Meta.Cached)

	_, second := env.do(t, http.MethodGet, target, "")
	require.NotNil(t, second.Meta)
	assert.True(t, second.Meta.Cached)
	assert.JSONEq(t, string(first.Data), string(second.Data))
	assert.Equal(t, 1, env.handler.GraphCache().Len())

	rec, _ := env.do(t, http.MethodPost, "/api/v1/items/game/1/tags", `{"user_id": 1, "tags": "scifi"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Zero(t, env.handler.GraphCache().Len())

	_, third := env.do(t, http.MethodGet, target, "")
	require.NotNil(t, third.Meta)
	assert.False(t, third.Meta.Cached)
}

func TestGraphCache_WriteDuringBuildIsNotCached(t *testing.T) {
	env := setupTestEnv(t, time.Minute)
	h := env.handler
	res := &recommend.Result{Seed: "1 book"}

	gen := h.graphGeneration()
	h.invalidateGraphs()
	assert.False(t, h.storeGraph("stale", res, gen))
	_, ok := h.GraphCache().Get("stale")
	assert.False(t, ok)

	gen = h.graphGeneration()
	assert.True(t, h.storeGraph("fresh", res, gen))
	cached, ok := h.GraphCache().Get("fresh")
	require.True(t, ok)
	assert.Equal(t, "1 book", cached.Seed)
}

func TestGraphCache_DisabledStoresNothing(t *testing.T) {
	env := setupTestEnv(t, 0)
	assert.Nil(t, env.handler.GraphCache())
	assert.False(t, env.handler.storeGraph("k", &recommend.Result{}, env.handler.graphGeneration()))
	env.handler.invalidateGraphs()
}

func TestGetItem(t *testing.T) {
	env := setupTestEnv(t, 0)
	env.seedDune(t)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/items/film/1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var item itemResponse
	require.NoError(t, json.Unmarshal(resp.Data, &item))
	assert.Equal(t, "1 film", item.Ref)
	assert.Equal(t, "Dune", item.Item.Title)
	assert.Equal(t, "Denis Villeneuve", item.Fields[catalog.FieldDirector])
	require.Len(t, item.Tags, 1)
	assert.Equal(t, "scifi", item.Tags[0].Name)

	rec, resp = env.do(t, http.MethodGet, "/api/v1/items/film/7", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/items/vinyl/1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItem(t *testing.T) {
	env := setupTestEnv(t, 0)

	body := `{"title": "Neuromancer", "year": "1984", "author": "William Gibson", "publisher": "Ace"}`
	rec, resp := env.do(t, http.MethodPost, "/api/v1/items/book", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var added addItemResponse
	require.NoError(t, json.Unmarshal(resp.Data, &added))
	assert.True(t, added.Created)
	assert.Equal(t, "1 book", added.Ref)
	require.NotNil(t, added.Item.Book)
	assert.Equal(t, "William Gibson", added.Item.Book.Author)

	rec, resp = env.do(t, http.MethodPost, "/api/v1/items/book", `{"title": "neuromancer"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, &added))
	assert.False(t, added.Created)
	assert.Equal(t, "1 book", added.Ref)
}

func TestAddItem_Invalid(t *testing.T) {
	env := setupTestEnv(t, 0)

	tests := []struct {
		name string
		path string
		body string
		code string
	}{
		{"missing title", "/api/v1/items/film", `{"director": "Ridley Scott"}`, ErrCodeValidationFailed},
		{"bad year", "/api/v1/items/film", `{"title": "Alien", "year": "79"}`, ErrCodeValidationFailed},
		{"unknown field", "/api/v1/items/film", `{"title": "Alien", "rating": 5}`, ErrCodeBadRequest},
		{"malformed json", "/api/v1/items/film", `{"title": `, ErrCodeBadRequest},
		{"unknown kind", "/api/v1/items/podcast", `{"title": "Alien"}`, ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := env.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestAddTags(t *testing.T) {
	env := setupTestEnv(t, 0)
	env.seedDune(t)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/items/book/1/tags", `{"user_id": 7, "tags": "desert scifi"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var added addTagsResponse
	require.NoError(t, json.Unmarshal(resp.Data, &added))
	assert.Equal(t, []string{"desert", "scifi"}, added.Added)
	assert.Empty(t, added.Duplicates)

	counts := make(map[string]int)
	for _, tag := range added.Tags {
		counts[tag.Name] = tag.Count
	}
	assert.Equal(t, 4, counts["scifi"])
	assert.Equal(t, 1, counts["desert"])

	rec, resp = env.do(t, http.MethodPost, "/api/v1/items/book/1/tags", `{"user_id": 7, "tags": "no spoilers here"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, ErrCodeFlagged, resp.Error.Code)

	rec, resp = env.do(t, http.MethodPost, "/api/v1/items/book/1/tags", `{"tags": "desert"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrCodeValidationFailed, resp.Error.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/v1/items/book/9/tags", `{"user_id": 7, "tags": "desert"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleUpvote(t *testing.T) {
	env := setupTestEnv(t, 0)
	env.seedDune(t)

	_, resp := env.do(t, http.MethodPost, "/api/v1/items/film/1/tags", `{"user_id": 1, "tags": "desert"}`)
	var added addTagsResponse
	require.NoError(t, json.Unmarshal(resp.Data, &added))

	var tagID int64
	for _, tag := range added.Tags {
		if tag.Name == "desert" {
			tagID = tag.ID
		}
	}
	require.NotZero(t, tagID)
	target := "/api/v1/items/film/1/tags/" + itoa(tagID) + "/upvote"

	steps := []struct {
		user int
		want int
	}{
		{2, 2}, // second user upvotes
		{2, 1}, // and takes it back
		{1, 0}, // original tagger removes it, detaching the tag
	}
	for _, step := range steps {
		rec, resp := env.do(t, http.MethodPost, target, `{"user_id": `+itoa(int64(step.user))+`}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var up upvoteResponse
		require.NoError(t, json.Unmarshal(resp.Data, &up))
		assert.Equal(t, step.want, up.Count)
	}

	rec, _ := env.do(t, http.MethodPost, target, `{"user_id": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = env.do(t, http.MethodPost, "/api/v1/items/film/1/tags/x/upvote", `{"user_id": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchAndRecent(t *testing.T) {
	env := setupTestEnv(t, 0)
	env.seedDune(t)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/search?q=dune", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var results []database.SearchResult
	require.NoError(t, json.Unmarshal(resp.Data, &results))
	require.Len(t, results, 2)
	assert.Equal(t, catalog.KindBook, results[0].Kind)
	assert.Equal(t, catalog.KindFilm, results[1].Kind)
	require.NotNil(t, resp.Meta.Count)
	assert.Equal(t, 2, *resp.Meta.Count)

	rec, resp = env.do(t, http.MethodGet, "/api/v1/search?q=puzzle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Tetris", results[0].Item.Title)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp = env.do(t, http.MethodGet, "/api/v1/recent?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var items []catalog.Item
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "Tetris", items[0].Title)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/recent?limit=many", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	env := setupTestEnv(t, 0)

	rec, resp := env.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var status HealthStatus
	require.NoError(t, json.Unmarshal(resp.Data, &status))
	assert.Equal(t, "healthy", status.Status)
	assert.True(t, status.DatabaseConnected)
	assert.Equal(t, "test", status.Version)

	rec, _ = env.do(t, http.MethodGet, "/api/v1/recent", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "api_requests_total")
}

type stubBreaker string

func (s stubBreaker) State() string { return string(s) }

func TestHealth_DegradedWhenBreakerOpen(t *testing.T) {
	env := setupTestEnv(t, 0)
	env.handler.breaker = stubBreaker("open")

	rec, resp := env.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeServiceUnavailable, resp.Error.Code)
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	env := setupTestEnv(t, 0)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)

	rec, resp = env.do(t, http.MethodDelete, "/api/v1/graph", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, ErrCodeMethodNotAllowed, resp.Error.Code)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_SecurityHeadersAndRequestID(t *testing.T) {
	env := setupTestEnv(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recent", nil)
	req.Header.Set("X-Request-ID", "trace-abc")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "trace-abc", rec.Header().Get("X-Request-ID"))

	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, "trace-abc", resp.Meta.RequestID)
}

func TestNewHandler_RequiresDependencies(t *testing.T) {
	_, err := NewHandler(HandlerConfig{}, logging.NewTestLogger(io.Discard))
	assert.Error(t, err)
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
