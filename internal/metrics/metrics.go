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

type Handler struct {
	registry *prometheus.Registry

	RequestsReceived      *prometheus.CounterVec
	GenerateRecordsTotal  *prometheus.CounterVec
	GenerateRejectedTotal *prometheus.CounterVec
	GenerateLatency       *prometheus.HistogramVec
	GenerateCacheTotal    *prometheus.CounterVec
	GRPCRequestsTotal     *prometheus.CounterVec
}

type Options struct {
	// Additional labels necessary
}

// New creates a metrics handler backed by its own registry, so several
// handlers can coexist in one process.
func New(name string) (*Handler, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}

	factory := promauto.With(registry)
	constLabels := prometheus.Labels{"app": name}

	return &Handler{
		registry: registry,
		RequestsReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_received",
			ConstLabels: constLabels,
			Help:        "The total number of http requests received",
		}, []string{"status"}),
		GenerateRecordsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "generate_records_total",
			ConstLabels: constLabels,
			Help:        "The total number of records generated",
		}, []string{"type"}),
		GenerateRejectedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "generate_rejected_total",
			ConstLabels: constLabels,
			Help:        "The total number of generate requests rejected",
		}, []string{"reason"}),
		GenerateLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "generate_latency_seconds",
			ConstLabels: constLabels,
			Help:        "The latency of generating one batch",
			Buckets:     prometheus.DefBuckets,
		}, []string{"type", "success"}),
		GenerateCacheTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "generate_cache_total",
			ConstLabels: constLabels,
			Help:        "Replay cache lookups for seeded requests",
		}, []string{"result"}),
		GRPCRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "grpc_requests_total",
			ConstLabels: constLabels,
			Help:        "The total number of gRPC requests handled",
		}, []string{"method", "status"}),
	}, nil
}

// IncRequestsReceived increments the http requests counter
func (h *Handler) IncRequestsReceived(status int) {
	h.RequestsReceived.WithLabelValues(strconv.Itoa(status)).Inc()
}

// AddGenerateRecordsTotal adds n to the generated records counter
func (h *Handler) AddGenerateRecordsTotal(logType string, n int) {
	h.GenerateRecordsTotal.WithLabelValues(logType).Add(float64(n))
}

// IncGenerateRejectedTotal increments the rejected requests counter
func (h *Handler) IncGenerateRejectedTotal(reason string) {
	h.GenerateRejectedTotal.WithLabelValues(reason).Inc()
}

// ObserveGenerateLatency records the latency of a generate call
func (h *Handler) ObserveGenerateLatency(duration time.Duration, logType string, success bool) {
	successStr := "true"
	if !success {
		successStr = "false"
	}
	h.GenerateLatency.WithLabelValues(logType, successStr).Observe(duration.Seconds())
}

// IncGenerateCache counts a replay cache hit or miss
func (h *Handler) IncGenerateCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	h.GenerateCacheTotal.WithLabelValues(result).Inc()
}

// IncGRPCRequestsTotal increments the gRPC requests counter
func (h *Handler) IncGRPCRequestsTotal(method, status string) {
	h.GRPCRequestsTotal.WithLabelValues(method, status).Inc()
}

// HTTPHandler serves the exposition format for this handler's registry
func (h *Handler) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{Registry: h.registry})
}
