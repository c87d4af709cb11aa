package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"bluewhale/internal/app"
	"bluewhale/internal/domain"
)

const summaryKey = "summary:v1"

// Handlers serves read-only views over an opened registry. The registry
// itself is single-actor by contract, so all access goes through one mutex;
// summary rebuilds are additionally collapsed with singleflight and cached.
type Handlers struct {
	Reg      *app.Registry
	Cache    domain.Cache // optional
	CacheTTL time.Duration

	mu sync.Mutex
	sf singleflight.Group
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/summary", h.getSummary)
	s.mux.Get("/v1/rooms", h.listRooms)
	s.mux.Get("/v1/bookings", h.listBookings)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Encoding failed", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func (h *Handlers) getSummary(w http.ResponseWriter, r *http.Request) {
	if h.Cache != nil {
		var cached domain.Summary
		if ok, _ := h.Cache.Get(r.Context(), summaryKey, &cached); ok {
			writeJSON(w, r, cached)
			return
		}
	}

	v, err, _ := h.sf.Do(summaryKey, func() (any, error) {
		h.mu.Lock()
		s := h.Reg.Summary()
		h.mu.Unlock()
		return s, nil
	})
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Summary failed", err.Error())
		return
	}
	s := v.(domain.Summary)

	if h.Cache != nil {
		_ = h.Cache.Set(r.Context(), summaryKey, s, int(h.CacheTTL.Seconds()))
	}
	writeJSON(w, r, s)
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	rooms := h.Reg.RoomViews()
	h.mu.Unlock()
	writeJSON(w, r, rooms)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	bookings := h.Reg.BookingViews()
	h.mu.Unlock()
	writeJSON(w, r, bookings)
}
