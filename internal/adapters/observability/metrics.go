package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bluewhale", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bluewhale", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	RegistryMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bluewhale", Name: "registry_mutations_total", Help: "Registry state changes."},
		[]string{"op", "outcome"}, // outcome: ok|rejected|error
	)
	RecordWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bluewhale", Name: "record_writes_total", Help: "Record set rewrites."},
		[]string{"set", "outcome"}, // outcome: ok|error
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bluewhale", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, RegistryMutations, RecordWrites, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveMutation(op, outcome string) {
	RegistryMutations.WithLabelValues(op, outcome).Inc()
}

func ObserveRecordWrite(set string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RecordWrites.WithLabelValues(set, outcome).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
