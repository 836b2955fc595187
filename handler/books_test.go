package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emzola/bookshelf/config"
	"github.com/emzola/bookshelf/data"
	"github.com/emzola/bookshelf/internal/jsonlog"
	"github.com/emzola/bookshelf/repository/memory"
	"github.com/emzola/bookshelf/service"
	"github.com/jellydator/ttlcache/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type listBooksResponse struct {
	Data       []data.Book   `json:"data"`
	Pagination data.Metadata `json:"pagination"`
}

type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

func newTestRoutes(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	logger := jsonlog.New(io.Discard, jsonlog.LevelOff)
	cache := ttlcache.New(ttlcache.WithTTL[string, *rate.Limiter](time.Minute))
	svc := service.New(cfg, logger, memory.New())
	return New(cfg, logger, cache, svc).Routes()
}

func do(t *testing.T, routes http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		js, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(js)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func postBook(t *testing.T, routes http.Handler, title, author string, year int, isbn string) data.Book {
	t.Helper()
	rec := do(t, routes, http.MethodPost, "/books", map[string]interface{}{
		"title":  title,
		"author": author,
		"year":   year,
		"isbn":   isbn,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var book data.Book
	decodeInto(t, rec, &book)
	return book
}

func TestHealthcheck(t *testing.T) {
	routes := newTestRoutes(t, config.Config{})
	rec := do(t, routes, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestCreateBook(t *testing.T) {
	routes := newTestRoutes(t, config.Config{})

	t.Run("round trip with default availability", func(t *testing.T) {
		created := postBook(t, routes, "Clean Code", "Robert Martin", 2008, "978-0132350884")
		assert.Equal(t, int64(1), created.ID)
		assert.False(t, created.Available)

		rec := do(t, routes, http.MethodGet, fmt.Sprintf("/books/%d", created.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var got data.Book
		decodeInto(t, rec, &got)
		assert.Equal(t, created, got)
	})

	t.Run("validation failures are a 400 naming every field", func(t *testing.T) {
		rec := do(t, routes, http.MethodPost, "/books", map[string]interface{}{
			"title":  "",
			"author": "Jane Doe",
			"year":   3000,
			"isbn":   "978-013235088",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			Error map[string]string `json:"error"`
		}
		decodeInto(t, rec, &resp)
		assert.Contains(t, resp.Error, "title")
		assert.Contains(t, resp.Error, "year")
		assert.Contains(t, resp.Error, "isbn")
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/books", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		routes.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListBooks(t *testing.T) {
	routes := newTestRoutes(t, config.Config{})
	for i := 1; i <= 15; i++ {
		postBook(t, routes, fmt.Sprintf("Book %d", i), "Robert Martin", 2008, "9780132350884")
	}

	t.Run("second page holds the remainder", func(t *testing.T) {
		rec := do(t, routes, http.MethodGet, "/books?page=2&limit=10", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp listBooksResponse
		decodeInto(t, rec, &resp)
		assert.Len(t, resp.Data, 5)
		assert.Equal(t, 2, resp.Pagination.Page)
		assert.Equal(t, 15, resp.Pagination.TotalItems)
		assert.Equal(t, 2, resp.Pagination.TotalPages)
	})

	t.Run("page past the end is empty with intact metadata", func(t *testing.T) {
		rec := do(t, routes, http.MethodGet, "/books?page=9&limit=10", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp listBooksResponse
		decodeInto(t, rec, &resp)
		assert.Empty(t, resp.Data)
		assert.Equal(t, 15, resp.Pagination.TotalItems)
		assert.Equal(t, 2, resp.Pagination.TotalPages)
	})

	t.Run("limit is clamped into range", func(t *testing.T) {
		rec := do(t, routes, http.MethodGet, "/books?limit=500", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp listBooksResponse
		decodeInto(t, rec, &resp)
		assert.Equal(t, 100, resp.Pagination.Limit)

		rec = do(t, routes, http.MethodGet, "/books?page=0&limit=0", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		decodeInto(t, rec, &resp)
		assert.Equal(t, 1, resp.Pagination.Page)
		assert.Equal(t, 1, resp.Pagination.Limit)
	})

	t.Run("author filter matches case-insensitive substrings", func(t *testing.T) {
		postBook(t, routes, "Some Novel", "Jane Doe", 2010, "9780132350884")
		rec := do(t, routes, http.MethodGet, "/books?author=doe", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp listBooksResponse
		decodeInto(t, rec, &resp)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "Jane Doe", resp.Data[0].Author)
	})

	t.Run("bad query parameters are a 400", func(t *testing.T) {
		for _, path := range []string{
			"/books?available=maybe",
			"/books?year=abc",
			"/books?page=abc",
			"/books?limit=abc",
		} {
			rec := do(t, routes, http.MethodGet, path, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		}
	})
}

func TestUpdateBook(t *testing.T) {
	routes := newTestRoutes(t, config.Config{})
	created := postBook(t, routes, "Clean Code", "Robert Martin", 2008, "9780132350884")

	t.Run("only supplied fields change", func(t *testing.T) {
		rec := do(t, routes, http.MethodPut, fmt.Sprintf("/books/%d", created.ID), map[string]interface{}{
			"available": true,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		var got data.Book
		decodeInto(t, rec, &got)
		assert.True(t, got.Available)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Author, got.Author)
		assert.Equal(t, created.Year, got.Year)
		assert.Equal(t, created.ISBN, got.ISBN)
	})

	t.Run("invalid supplied field is a 400", func(t *testing.T) {
		rec := do(t, routes, http.MethodPut, fmt.Sprintf("/books/%d", created.ID), map[string]interface{}{
			"year": 3000,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		rec := do(t, routes, http.MethodPut, "/books/99", map[string]interface{}{
			"title": "Renamed",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
		var resp errorResponse
		decodeInto(t, rec, &resp)
		assert.Contains(t, string(resp.Error), "99")
	})
}

func TestDeleteBook(t *testing.T) {
	routes := newTestRoutes(t, config.Config{})
	created := postBook(t, routes, "Clean Code", "Robert Martin", 2008, "9780132350884")
	path := fmt.Sprintf("/books/%d", created.ID)

	rec := do(t, routes, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())

	rec = do(t, routes, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, routes, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := config.Config{}
	cfg.Limiter.Enabled = true
	cfg.Limiter.RPS = 2
	cfg.Limiter.Burst = 4
	routes := newTestRoutes(t, cfg)

	var lastCode int
	for i := 0; i < 10; i++ {
		rec := do(t, routes, http.MethodGet, "/health", nil)
		lastCode = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
