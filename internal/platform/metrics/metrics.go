package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	renders         *prometheus.CounterVec
	renderDuration  *prometheus.HistogramVec
}

func New() *Collector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)
	return &Collector{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "utamahr_http_requests_total",
			Help: "HTTP requests by method and status.",
		}, []string{"method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "utamahr_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "utamahr_documents_rendered_total",
			Help: "Rendered documents by kind, format and outcome.",
		}, []string{"kind", "format", "outcome"}),
		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "utamahr_document_render_duration_seconds",
			Help:    "Document render latency by kind and format.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind", "format"}),
	}
}

func (c *Collector) Record(method string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveRender satisfies the render observer used by the document services.
func (c *Collector) ObserveRender(kind, format string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.renders.WithLabelValues(kind, format, outcome).Inc()
	c.renderDuration.WithLabelValues(kind, format).Observe(duration.Seconds())
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
