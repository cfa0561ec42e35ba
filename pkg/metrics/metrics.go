// Package metrics exposes the Prometheus collectors shared by the feed service:
// standard HTTP metrics plus the counters recorded by feed composition.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	feedPagesTotal   *prometheus.CounterVec
	feedPageItems    *prometheus.HistogramVec
	feedDroppedTotal *prometheus.CounterVec
	dropsPublished   prometheus.Counter
}

// NewCollector builds a collector on its own registry.
func NewCollector(serviceName string) *Collector {
	prefix := strings.ReplaceAll(serviceName, "-", "_")
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		feedPagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_feed_pages_total",
				Help: "Feed pages composed, by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		feedPageItems: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_feed_page_items",
				Help:    "Number of items surfaced per feed page",
				Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
			},
			[]string{"mode"},
		),
		feedDroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_feed_candidates_dropped_total",
				Help: "Candidates removed during composition, by reason",
			},
			[]string{"reason"},
		),
		dropsPublished: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_drops_published_total",
				Help: "Scheduled posts promoted to published",
			},
		),
	}

	registry.MustRegister(
		c.httpRequestsTotal,
		c.httpRequestDuration,
		c.feedPagesTotal,
		c.feedPageItems,
		c.feedDroppedTotal,
		c.dropsPublished,
	)

	return c
}

// Middleware records request count and latency per route template.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		endpoint := ctx.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		method := ctx.Request.Method
		status := strconv.Itoa(ctx.Writer.Status())

		c.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
		c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}

func (c *Collector) Handler() gin.HandlerFunc {
	handler := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return func(ctx *gin.Context) {
		handler.ServeHTTP(ctx.Writer, ctx.Request)
	}
}

// The recording helpers below are nil-safe so callers can run without metrics.

func (c *Collector) FeedPage(mode, outcome string, items int) {
	if c == nil {
		return
	}
	c.feedPagesTotal.WithLabelValues(mode, outcome).Inc()
	if outcome == "ok" {
		c.feedPageItems.WithLabelValues(mode).Observe(float64(items))
	}
}

func (c *Collector) CandidatesDropped(reason string, n int) {
	if c == nil || n <= 0 {
		return
	}
	c.feedDroppedTotal.WithLabelValues(reason).Add(float64(n))
}

func (c *Collector) DropsPublished(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.dropsPublished.Add(float64(n))
}
