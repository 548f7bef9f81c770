package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()
	m.CardMoved("ok")
	m.CardMoved("ok")
	m.CardMoved("error")
	m.EventDropped()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cardMoves.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cardMoves.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsDropped))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CardMoved("ok")
		m.EventPublished("card:move")
		m.EventDropped()
		m.ReminderSent("sent")
		m.SessionOpened()
		m.SessionClosed()
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/clients/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/clients/42", nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `crmboard_http_request_duration_seconds_count{method="GET",route="/api/clients/{id}",status="404"} 1`)
}
