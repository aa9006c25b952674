package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the
// scheduling engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	regenerations   prometheus.Counter
	scheduledItems  prometheus.Histogram
	producerErrors  prometheus.Counter
	conflicts       prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	regenerations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "itinerary_regenerations_total",
		Help: "Total trip schedule regenerations",
	})

	scheduledItems := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "itinerary_scheduled_items",
		Help:    "Agenda items produced per regeneration",
		Buckets: []float64{0, 5, 10, 20, 30, 50},
	})

	producerErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommender_errors_total",
		Help: "Producer calls that fell back to the heuristic",
	})

	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agenda_conflicts_total",
		Help: "Scheduling requests rejected for overlapping an agenda item",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, regenerations, scheduledItems, producerErrors, conflicts, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		regenerations:   regenerations,
		scheduledItems:  scheduledItems,
		producerErrors:  producerErrors,
		conflicts:       conflicts,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveRegeneration records one completed trip regeneration.
func (m *MetricsService) ObserveRegeneration(items int) {
	if m == nil {
		return
	}
	m.regenerations.Inc()
	m.scheduledItems.Observe(float64(items))
}

// RecordProducerError counts a failed producer call.
func (m *MetricsService) RecordProducerError() {
	if m == nil {
		return
	}
	m.producerErrors.Inc()
}

// RecordConflict counts a scheduling request rejected with a time conflict.
func (m *MetricsService) RecordConflict() {
	if m == nil {
		return
	}
	m.conflicts.Inc()
}
