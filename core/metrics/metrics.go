package metrics

import (
	"strconv"
	"strings"
	"time"

	"autocomplete/core/router"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector manages the Prometheus metrics of the service
type Collector struct {
	serviceName string
	registry    *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	autocompleteRows   *prometheus.HistogramVec
	autocompleteErrors *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry
func NewCollector(serviceName, version string) *Collector {
	name := strings.ReplaceAll(serviceName, "-", "_")
	c := &Collector{
		serviceName: name,
		registry:    prometheus.NewRegistry(),
	}

	c.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)
	c.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name + "_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	c.autocompleteRows = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name + "_autocomplete_rows",
			Help:    "Rows returned per autocomplete request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"handler"},
	)
	c.autocompleteErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name + "_autocomplete_errors_total",
			Help: "Failed autocomplete requests by error kind",
		},
		[]string{"handler", "kind"},
	)
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name + "_service_info",
			Help: "Service information",
		},
		[]string{"version"},
	)

	c.registry.MustRegister(
		c.httpRequestsTotal,
		c.httpRequestDuration,
		c.autocompleteRows,
		c.autocompleteErrors,
		info,
	)
	info.WithLabelValues(version).Set(1)

	return c
}

// Middleware records request counts and durations
func (c *Collector) Middleware() router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx *router.Context) error {
			start := time.Now()
			err := next(ctx)

			method := ctx.Request.Method
			status := strconv.Itoa(ctx.Writer.Status())
			c.httpRequestsTotal.WithLabelValues(method, status).Inc()
			c.httpRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// ObserveRows records how many rows an autocomplete handler returned
func (c *Collector) ObserveRows(handler string, rows int) {
	if c == nil {
		return
	}
	c.autocompleteRows.WithLabelValues(handler).Observe(float64(rows))
}

// IncError counts a failed autocomplete request
func (c *Collector) IncError(handler, kind string) {
	if c == nil {
		return
	}
	c.autocompleteErrors.WithLabelValues(handler, kind).Inc()
}

// Routes mounts the exposition endpoint
func (c *Collector) Routes(r *router.Router) {
	r.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
