package observability_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bluewhale/internal/adapters/observability"
)

func TestMetricsExposition(t *testing.T) {
	reg := observability.InitRegistry()

	observability.ObserveHTTP("/v1/summary", http.MethodGet, 200, 5*time.Millisecond)
	observability.ObserveMutation("create_booking", "ok")
	observability.ObserveMutation("create_booking", "rejected")
	observability.ObserveRecordWrite("rooms", nil)
	observability.ObserveRecordWrite("bookings", errors.New("disk full"))
	observability.ObserveCache("redis", "hit")

	w := httptest.NewRecorder()
	observability.MetricsHandler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `bluewhale_http_requests_total{method="GET",route="/v1/summary",status="200"}`)
	assert.Contains(t, body, `bluewhale_registry_mutations_total{op="create_booking",outcome="ok"}`)
	assert.Contains(t, body, `bluewhale_registry_mutations_total{op="create_booking",outcome="rejected"}`)
	assert.Contains(t, body, `bluewhale_record_writes_total{outcome="ok",set="rooms"}`)
	assert.Contains(t, body, `bluewhale_record_writes_total{outcome="error",set="bookings"}`)
	assert.Contains(t, body, `bluewhale_cache_events_total{cache="redis",event="hit"}`)
}
