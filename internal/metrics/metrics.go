package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checkout outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeTimeout  = "timeout"
	OutcomeSession  = "session_invalid"
	OutcomePrecheck = "precondition_failed"
	OutcomeInFlight = "in_flight"
	OutcomeError    = "error"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)

	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current Number of HTTP requests being processed.",
		},
	)

	checkoutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_checkout_total",
			Help: "Checkout attempts by outcome.",
		},
		[]string{"outcome"},
	)

	checkoutDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pos_checkout_duration_seconds",
			Help:    "Time from checkout request to outcome, including the session check.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		},
	)

	cartLinesAdded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_cart_lines_added_total",
			Help: "Successful add-to-cart operations.",
		},
	)

	catalogLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_catalog_lookups_total",
			Help: "Catalog lookups by cache result.",
		},
		[]string{"result"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

func ObserveCheckout(outcome string, elapsed time.Duration) {
	checkoutTotal.WithLabelValues(outcome).Inc()
	checkoutDuration.Observe(elapsed.Seconds())
}

func CartLineAdded() {
	cartLinesAdded.Inc()
}

// CatalogLookup records "hit", "miss" or "error".
func CatalogLookup(result string) {
	catalogLookups.WithLabelValues(result).Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		defer func() {
			// r.Pattern is only set once the mux has routed the request
			path := r.Pattern
			if path == "" {
				path = "unmatched"
			}

			httpRequestsTotal.WithLabelValues(strconv.Itoa(rw.statusCode), r.Method, path).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
			httpRequestsInFlight.Dec()
		}()

		next.ServeHTTP(rw, r)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
