package ops

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flightdash/adapters/dataset"
	"flightdash/domain/flight"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	table := flight.NewTable(flight.RequiredFields, []flight.Record{
		{Airline: "Indigo", Price: 100},
		{Airline: "Vistara", Price: 200},
	})
	handler := NewRouter(dataset.NewStoreFromTable(table), time.Now().Add(-time.Minute))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var h Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, 2, h.Rows)
	assert.Equal(t, "memory", h.Dataset)
	assert.Equal(t, "1m0s", h.Uptime)
}

func TestProfilerMounted(t *testing.T) {
	handler := NewRouter(dataset.NewStoreFromTable(flight.NewTable(nil, nil)), time.Now())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutine")

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
