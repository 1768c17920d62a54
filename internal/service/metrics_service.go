package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the generation pipeline.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	generationDuration *prometheus.HistogramVec
	generationTotal    *prometheus.CounterVec
	candidateScore     *prometheus.HistogramVec
	conflictsTotal     *prometheus.CounterVec
	shortfallsTotal    *prometheus.CounterVec
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

	generationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_generation_duration_seconds",
		Help:    "Duration of timetable generation runs",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})

	generationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_generations_total",
		Help: "Total candidates generated per strategy",
	}, []string{"strategy"})

	candidateScore := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timetable_candidate_score",
		Help:    "Composite score distribution of generated candidates",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{"strategy"})

	conflictsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_conflicts_total",
		Help: "Instructor conflicts accepted during generation",
	}, []string{"strategy"})

	shortfallsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_shortfalls_total",
		Help: "Subjects left short of their weekly session demand",
	}, []string{"strategy"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, generationDuration, generationTotal, candidateScore, conflictsTotal, shortfallsTotal, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:           registry,
		handler:            handler,
		requestDuration:    requestDuration,
		requestTotal:       requestTotal,
		generationDuration: generationDuration,
		generationTotal:    generationTotal,
		candidateScore:     candidateScore,
		conflictsTotal:     conflictsTotal,
		shortfallsTotal:    shortfallsTotal,
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
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveGeneration records one candidate's generation outcome.
func (m *MetricsService) ObserveGeneration(strategy string, score, conflicts, shortfalls int, duration time.Duration) {
	if m == nil {
		return
	}
	m.generationDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	m.generationTotal.WithLabelValues(strategy).Inc()
	m.candidateScore.WithLabelValues(strategy).Observe(float64(score))
	if conflicts > 0 {
		m.conflictsTotal.WithLabelValues(strategy).Add(float64(conflicts))
	}
	if shortfalls > 0 {
		m.shortfallsTotal.WithLabelValues(strategy).Add(float64(shortfalls))
	}
}
