package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/ideaforge-api/internal/generation"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderObserver(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	rateLimited := generation.NewProviderError(generation.KindRateLimit, nil)

	r.ObserveAttempt("openai", 1, 200*time.Millisecond, rateLimited)
	r.ObserveBackoff("openai", time.Second)
	r.ObserveAttempt("openai", 2, 300*time.Millisecond, nil)
	r.ObserveGeneration("openai", nil)
	r.ObserveGeneration("openai", generation.NewProviderError(generation.KindAuth, nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.attempts.WithLabelValues("openai", "RATE_LIMIT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.attempts.WithLabelValues("openai", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.backoffs.WithLabelValues("openai")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.backoffSeconds.WithLabelValues("openai")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.generations.WithLabelValues("openai", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.generations.WithLabelValues("openai", "AUTH")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.attemptDuration))
}

func TestMiddlewareAndHandler(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	router := chi.NewRouter()
	router.Use(r.Middleware)
	router.Get("/api/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router.Handle("/metrics", r.Handler())

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(r.httpRequests.WithLabelValues("GET", "/api/items/{id}", "418")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "ideaforge_http_requests_total"))
	assert.Contains(t, body, "go_goroutines")
}
