package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bilemo_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bilemo_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	CacheResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bilemo_cache_results_total",
		Help: "List cache lookups by backend and result (hit, miss, error).",
	}, []string{"backend", "result"})

	CacheInvalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bilemo_cache_invalidations_total",
		Help: "Tag invalidations by tag.",
	}, []string{"tag"})
)

var once sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(HTTPRequests, HTTPDuration, CacheResults, CacheInvalidations)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
