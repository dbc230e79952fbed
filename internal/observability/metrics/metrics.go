package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recipe"

type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	recommendTotal    *prometheus.CounterVec
	recommendDuration prometheus.Histogram
	recommendResults  prometheus.Histogram
	modelAvailable    prometheus.Gauge
	modelReloads      *prometheus.CounterVec
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "Total HTTP requests processed.",
			ConstLabels: constLabels,
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "in_flight_requests",
			Help:        "Number of in-flight HTTP requests.",
			ConstLabels: constLabels,
		},
	)
	recommendTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "recommend",
			Name:        "requests_total",
			Help:        "Recommendation computations by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"outcome"},
	)
	recommendDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "recommend",
			Name:        "duration_seconds",
			Help:        "Recommendation duration in seconds including resolution.",
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			ConstLabels: constLabels,
		},
	)
	recommendResults := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "recommend",
			Name:        "results",
			Help:        "Distribution of returned recipes per successful recommendation.",
			Buckets:     []float64{0, 1, 2, 5, 10, 15, 20},
			ConstLabels: constLabels,
		},
	)
	modelAvailable := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "model",
			Name:        "available",
			Help:        "1 when a similarity model snapshot is loaded.",
			ConstLabels: constLabels,
		},
	)
	modelReloads := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "model",
			Name:        "reloads_total",
			Help:        "Model reload attempts by status.",
			ConstLabels: constLabels,
		},
		[]string{"status"},
	)

	registry.MustRegister(
		requestTotal, requestDuration, requestInFlight,
		recommendTotal, recommendDuration, recommendResults,
		modelAvailable, modelReloads,
	)

	return &Metrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		recommendTotal:    recommendTotal,
		recommendDuration: recommendDuration,
		recommendResults:  recommendResults,
		modelAvailable:    modelAvailable,
		modelReloads:      modelReloads,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware 以路由樣板（而非實際路徑）作為 path 標籤
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		m.requestTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveRecommendation outcome: error, cache_hit, empty, ok
func (m *Metrics) ObserveRecommendation(resultCount int, cacheHit bool, duration time.Duration, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case cacheHit:
		outcome = "cache_hit"
	case resultCount == 0:
		outcome = "empty"
	}
	m.recommendTotal.WithLabelValues(outcome).Inc()
	m.recommendDuration.Observe(duration.Seconds())
	if err == nil {
		m.recommendResults.Observe(float64(resultCount))
	}
}

func (m *Metrics) SetModelAvailable(ok bool) {
	if ok {
		m.modelAvailable.Set(1)
		return
	}
	m.modelAvailable.Set(0)
}

func (m *Metrics) ObserveReload(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.modelReloads.WithLabelValues(status).Inc()
}
