package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sincov/airq-ingest-service/internal/domain"
)

type fakePipeline struct {
	readyErr error
	summary  domain.CycleSummary
	hasRun   bool
}

func (f *fakePipeline) CheckReadiness(_ context.Context) error {
	return f.readyErr
}

func (f *fakePipeline) LastSummary() (domain.CycleSummary, bool) {
	return f.summary, f.hasRun
}

func TestServer_Healthz(t *testing.T) {
	srv := NewServer(":0", &fakePipeline{}, &fakePipeline{}, slog.Default())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestServer_Readyz(t *testing.T) {
	t.Run("not ready before first cycle", func(t *testing.T) {
		p := &fakePipeline{readyErr: errors.New("no ingestion cycle has completed yet")}
		srv := NewServer(":0", p, p, slog.Default())

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("ready after a cycle", func(t *testing.T) {
		p := &fakePipeline{}
		srv := NewServer(":0", p, p, slog.Default())

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestServer_Cycle(t *testing.T) {
	t.Run("404 before first cycle", func(t *testing.T) {
		p := &fakePipeline{}
		srv := NewServer(":0", p, p, slog.Default())

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cycle", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns the last summary", func(t *testing.T) {
		p := &fakePipeline{
			hasRun: true,
			summary: domain.CycleSummary{
				StationsProcessed:   3,
				RowsPersisted:       42,
				StationsWithoutData: 1,
			},
		}
		srv := NewServer(":0", p, p, slog.Default())

		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cycle", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"stations_processed":3,"rows_persisted":42,"stations_without_data":1,"errors":0}`,
			rec.Body.String())
	})
}

func TestServer_Metrics(t *testing.T) {
	srv := NewServer(":0", &fakePipeline{}, &fakePipeline{}, slog.Default())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
