package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agricli/internal/dataprocessing"
	"agricli/internal/services"
	"agricli/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupRouter(t *testing.T) chi.Router {
	t.Helper()

	s, err := store.Open(":memory:", "district_crop_data", testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	table := dataprocessing.NewTable([]string{"year", "state_name", "dist_name", "maize_yield_yield_kg_per_ha"})
	table.Rows = [][]dataprocessing.Cell{
		{dataprocessing.NumCell(2010), dataprocessing.TextCell("Punjab"), dataprocessing.TextCell("Amritsar"), dataprocessing.NumCell(1200)},
	}
	require.NoError(t, s.LoadTable(context.Background(), table))

	queryService := services.NewQueryService(s, testLogger())
	healthService := services.NewHealthService("test", s, testLogger())

	r := chi.NewRouter()
	queryHandler := NewQueryHandler(queryService, testLogger())
	healthHandler := NewHealthHandler(healthService, testLogger())
	r.Mount("/api/queries", queryHandler.Routes())
	r.Get("/api/summary", queryHandler.Summary)
	r.Get("/api/health", healthHandler.HealthCheck)
	return r
}

func TestQueryHandler_ListQueries(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/queries", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Queries []store.Query `json:"queries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Queries, 9)
	for _, q := range body.Queries {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Title)
		assert.NotEmpty(t, q.SQL)
	}
}

func TestQueryHandler_ExecuteQuery(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/queries/maize-annual-yield", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var result store.ResultSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "maize-annual-yield", result.Query.ID)
	assert.Equal(t, []string{"Year", "Annual_Average_Maize_Yield_kg_per_ha"}, result.Columns)
	require.Len(t, result.Rows, 1)
}

func TestQueryHandler_ExecuteQuery_Unknown(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/queries/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "QUERY_NOT_FOUND")
}

func TestQueryHandler_Summary(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var sum store.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, 1, sum.Rows)
	assert.Equal(t, 2010, sum.MaxYear)
}

func TestHealthHandler_HealthCheck(t *testing.T) {
	router := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)
}
