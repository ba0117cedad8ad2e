package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reviews", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	Queries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "queries_total", Help: "Aggregation queries served."},
		[]string{"operation"},
	)
	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "reviews", Name: "exports_total", Help: "Report exports."},
		[]string{"format", "status"}, // status: ok|error
	)
	DatasetRows = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "reviews", Name: "dataset_rows", Help: "Rows loaded from the dataset."},
	)
)

// Serve starts a standalone metrics listener when METRICS_ADDR is set.
func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

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
	reg.MustRegister(HTTPRequests, HTTPLatency, Queries, Exports, DatasetRows)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveQuery(operation string) {
	Queries.WithLabelValues(operation).Inc()
}

func ObserveExport(format string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	Exports.WithLabelValues(format, status).Inc()
}

func SetDatasetRows(n int) {
	DatasetRows.Set(float64(n))
}
