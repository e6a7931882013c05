// Package metrics provides Prometheus metrics for storage provider operations.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storage_provider"

// Outcomes recorded for each operation.
const (
	OutcomeSuccess     = "success"
	OutcomeError       = "error"
	OutcomeUnsupported = "unsupported"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of provider operations by outcome",
		},
		[]string{"provider", "operation", "outcome"},
	)

	uploadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_duration_seconds",
			Help:      "Time to publish a folder and receive its content identifier",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"provider", "outcome"},
	)
)

// RecordOperation counts one finished operation.
func RecordOperation(provider, operation, outcome string) {
	operationsTotal.WithLabelValues(provider, operation, outcome).Inc()
}

// RecordUpload records the duration of one upload.
func RecordUpload(provider, outcome string, duration time.Duration) {
	uploadDuration.WithLabelValues(provider, outcome).Observe(duration.Seconds())
}

// MetricsServer serves the Prometheus registry on its own listener.
type MetricsServer struct {
	srv *http.Server
}

// New creates a metrics server for listenAddr. It does not start listening.
func New(listenAddr string) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &MetricsServer{
		srv: &http.Server{
			Addr:              listenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe blocks serving metrics until Shutdown is called.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Shutdown stops the metrics server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
