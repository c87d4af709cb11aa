package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "bluewhale/internal/adapters/http_server"
	"bluewhale/internal/app"
	"bluewhale/internal/domain"
	"bluewhale/internal/storage/flatfile"
)

// ---- fakes ----

type fakeCache struct {
	store map[string]any
	sets  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*domain.Summary); ok {
		*d = v.(domain.Summary)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

// ---- helpers ----

func newAPI(t *testing.T, cache domain.Cache, rps int) http.Handler {
	t.Helper()
	dir := t.TempDir()
	st, err := flatfile.New(dir)
	require.NoError(t, err)
	reg, err := app.Open(st, dir, zerolog.Nop())
	require.NoError(t, err)

	srv := server.New(rps)
	srv.MountHandlers(&server.Handlers{Reg: reg, Cache: cache, CacheTTL: time.Minute})
	return srv.Mux()
}

func get(h http.Handler, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestHealthz(t *testing.T) {
	h := newAPI(t, nil, 100)
	w := get(h, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestSummary_FreshRegistry(t *testing.T) {
	h := newAPI(t, nil, 100)
	w := get(h, "/v1/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var s domain.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	assert.Equal(t, 9, s.Rooms.Total)
	assert.Equal(t, 9, s.Rooms.Available)
	assert.Len(t, s.RoomTypeRevenue, 3)
}

func TestSummary_ETagShortCircuit(t *testing.T) {
	h := newAPI(t, nil, 100)

	w1 := get(h, "/v1/summary", nil)
	require.Equal(t, http.StatusOK, w1.Code)
	etag := w1.Header().Get("ETag")
	require.NotEmpty(t, etag)

	w2 := get(h, "/v1/summary", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, w2.Code)
	assert.Equal(t, etag, w2.Header().Get("ETag"))
	assert.Zero(t, w2.Body.Len())
}

func TestSummary_UsesCache(t *testing.T) {
	cache := &fakeCache{}
	h := newAPI(t, cache, 100)

	w := get(h, "/v1/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, cache.sets)

	// A pre-seeded cache value is served without recomputation.
	var canned domain.Summary
	canned.Rooms.Total = 42
	cache.store["summary:v1"] = canned

	w2 := get(h, "/v1/summary", nil)
	require.Equal(t, http.StatusOK, w2.Code)
	var s domain.Summary
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &s))
	assert.Equal(t, 42, s.Rooms.Total)
}

func TestListRooms(t *testing.T) {
	h := newAPI(t, nil, 100)
	w := get(h, "/v1/rooms", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rooms []domain.RoomView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 9)
	assert.Equal(t, "Standard", rooms[0].TypeName)
	assert.Equal(t, "Available", rooms[0].Status)
	assert.Equal(t, 1500.0, rooms[0].Price)
}

func TestListBookings_EmptyRegistry(t *testing.T) {
	h := newAPI(t, nil, 100)
	w := get(h, "/v1/bookings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var bookings []domain.BookingView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Empty(t, bookings)
}

func TestRateLimit(t *testing.T) {
	h := newAPI(t, nil, 1)

	w1 := get(h, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w1.Code)

	w2 := get(h, "/healthz", nil)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}
