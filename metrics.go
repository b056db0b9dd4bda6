package typo

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exposed on /metrics. Each App
// owns its own registry so multiple instances (and tests) never collide
// on registration.
type Metrics struct {
	registry       *prometheus.Registry
	requestCount   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	errorCount     *prometheus.CounterVec
}

// NewMetrics creates and registers the application collectors.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typo_request_count",
			Help: "Total Request Count",
		},
		[]string{"method", "endpoint", "http_status"},
	)
	m.requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "typo_request_latency_seconds",
			Help: "Request latency",
		},
		[]string{"endpoint"},
	)
	m.errorCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "typo_error_count",
			Help: "Total error count",
		},
		[]string{"endpoint"},
	)
	m.registry.MustRegister(m.requestCount, m.requestLatency, m.errorCount)
	return m
}

// Middleware records request count and latency for every handled request.
func (m *Metrics) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		endpoint := c.Request().URL.Path
		m.requestLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		status := c.Response().Status
		if err != nil {
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			} else {
				status = http.StatusInternalServerError
			}
		}
		m.requestCount.WithLabelValues(c.Request().Method, endpoint, strconv.Itoa(status)).Inc()
		return err
	}
}

// RecordError counts an error surfaced by the umbrella error handler.
func (m *Metrics) RecordError(endpoint string) {
	m.errorCount.WithLabelValues(endpoint).Inc()
}

// Handler serves the registry in Prometheus text exposition format.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
