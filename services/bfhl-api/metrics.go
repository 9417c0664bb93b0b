package main

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"puresearch/bfhl-api/common/classifier"
)

// Metrics collects request and classification metrics on its own registry
type Metrics struct {
	registry        *prometheus.Registry
	requestCounter  *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	tokenCounter    *prometheus.CounterVec
	inputSize       prometheus.Histogram
}

// NewMetrics creates the service metrics on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bfhl",
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total number of API requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bfhl",
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"method", "path"},
		),
		tokenCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bfhl",
				Name:      "classified_tokens_total",
				Help:      "Tokens classified, by destination bucket",
			},
			[]string{"bucket"},
		),
		inputSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "bfhl",
				Name:      "input_tokens",
				Help:      "Number of tokens per classification request",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
	}
}

// Registry exposes the registry backing /metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request count and latency per route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.requestCounter.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveClassification records one classifier run
func (m *Metrics) ObserveClassification(tokens int, stats map[classifier.Bucket]int) {
	m.inputSize.Observe(float64(tokens))
	for bucket, n := range stats {
		m.tokenCounter.WithLabelValues(string(bucket)).Add(float64(n))
	}
}
