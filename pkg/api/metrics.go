package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API. A nil *Metrics records nothing.
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Codec metrics
	codecOperationsTotal   *prometheus.CounterVec
	codecOperationDuration *prometheus.HistogramVec
	encodedBytes           *prometheus.HistogramVec
	bufferGrowths          prometheus.Histogram

	// Catalog metrics
	catalogItemsTotal prometheus.Gauge
	catalogBytesTotal prometheus.Gauge

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec

	// Health check metrics
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all Prometheus metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itemcodec_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "itemcodec_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "itemcodec_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		codecOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itemcodec_codec_operations_total",
				Help: "Total number of encode and decode operations",
			},
			[]string{"operation", "format", "status"},
		),

		codecOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "itemcodec_codec_operation_duration_seconds",
				Help:    "Encode and decode duration in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
			},
			[]string{"operation"},
		),

		encodedBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "itemcodec_encoded_bytes",
				Help:    "Size of encoded items in bytes",
				Buckets: prometheus.ExponentialBuckets(16, 2, 10),
			},
			[]string{"format"},
		),

		bufferGrowths: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "itemcodec_buffer_growths",
				Help:    "Number of capacity doublings per encode buffer",
				Buckets: prometheus.LinearBuckets(0, 1, 8),
			},
		),

		catalogItemsTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "itemcodec_catalog_items_total",
				Help: "Total number of items in the catalog",
			},
		),

		catalogBytesTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "itemcodec_catalog_bytes_total",
				Help: "Total encoded size of catalog items in bytes",
			},
		),

		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itemcodec_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),

		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itemcodec_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}
}

func statusLabel(success bool) string {
	if success {
		return statusSuccess
	}
	return statusError
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCodecOperation records an encode or decode
func (m *Metrics) RecordCodecOperation(operation, format string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.codecOperationsTotal.WithLabelValues(operation, format, statusLabel(success)).Inc()
	m.codecOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordEncodeBuffer records the size of an encoded item and how often its
// buffer had to grow
func (m *Metrics) RecordEncodeBuffer(format string, size, growths int) {
	if m == nil {
		return
	}
	m.encodedBytes.WithLabelValues(format).Observe(float64(size))
	m.bufferGrowths.Observe(float64(growths))
}

// UpdateCatalogStats updates catalog statistics
func (m *Metrics) UpdateCatalogStats(items int, size int64) {
	if m == nil {
		return
	}
	m.catalogItemsTotal.Set(float64(items))
	m.catalogBytesTotal.Set(float64(size))
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	if m == nil {
		return
	}
	m.authRequestsTotal.WithLabelValues(statusLabel(success)).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	if m == nil {
		return
	}
	m.healthChecksTotal.WithLabelValues(statusLabel(success)).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	if m == nil {
		return handler
	}
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// InstrumentAuthMiddleware instruments the authentication middleware
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		authed := next(h)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasAPIKey := r.Header.Get("X-API-Key") != ""

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			authed.ServeHTTP(rw, r)

			if hasAPIKey {
				m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
