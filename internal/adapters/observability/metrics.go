package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reviews"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	SourceFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "source_fetches_total", Help: "Review source fetches by outcome."},
		[]string{"source", "outcome"},
	)
	SourceReviews = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "source_reviews", Help: "Reviews returned by the last fetch of a source."},
		[]string{"source"},
	)
	SourceLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "source_fetch_duration_seconds",
			Help:    "Review source fetch duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)
	StatusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "status_transitions_total", Help: "Moderation transitions by target status."},
		[]string{"status"},
	)
)

// Serve starts a standalone metrics listener on addr. Empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		HTTPRequests, HTTPLatency,
		ExternalRequests, ExternalLatency,
		CacheEvents,
		SourceFetches, SourceReviews, SourceLatency,
		StatusTransitions,
	)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

// ObserveSource records one aggregation fetch. outcome: ok|not_found|bad_format|unavailable|error
func ObserveSource(source, outcome string, count int, dur time.Duration) {
	SourceFetches.WithLabelValues(source, outcome).Inc()
	SourceReviews.WithLabelValues(source).Set(float64(count))
	SourceLatency.WithLabelValues(source).Observe(dur.Seconds())
}

func ObserveTransition(status string) {
	StatusTransitions.WithLabelValues(status).Inc()
}
