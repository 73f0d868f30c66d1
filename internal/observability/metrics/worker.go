package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vkarpenko/freightgate/internal/core/domain"
)

// WorkerMetrics covers the intake pipeline: per-document outcomes plus the
// classification and validation breakdowns operations dashboards group by.
type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal        *prometheus.CounterVec
	processDuration     *prometheus.HistogramVec
	processInFlight     prometheus.Gauge
	queueLag            *prometheus.HistogramVec
	classificationTotal *prometheus.CounterVec
	validationTotal     *prometheus.CounterVec
	visionCallsTotal    *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightgate",
			Subsystem: "worker",
			Name:      "document_process_total",
			Help:      "Total processed documents by status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "freightgate",
			Subsystem: "worker",
			Name:      "document_process_duration_seconds",
			Help:      "Document processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "freightgate",
			Subsystem: "worker",
			Name:      "document_process_in_flight",
			Help:      "Number of in-flight document processing tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queueLag := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "freightgate",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document upload and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	classificationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightgate",
			Subsystem: "classify",
			Name:      "documents_total",
			Help:      "Total classified documents by resolution method and document type.",
		},
		[]string{"service", "method", "doc_type"},
	)
	validationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightgate",
			Subsystem: "validate",
			Name:      "verdicts_total",
			Help:      "Total validation verdicts by status.",
		},
		[]string{"service", "status"},
	)
	visionCallsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freightgate",
			Subsystem: "classify",
			Name:      "vision_calls_total",
			Help:      "Total vision model invocations by outcome.",
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(
		processTotal,
		processDuration,
		processInFlight,
		queueLag,
		classificationTotal,
		validationTotal,
		visionCallsTotal,
	)

	return &WorkerMetrics{
		registry:            registry,
		processTotal:        processTotal,
		processDuration:     processDuration,
		processInFlight:     processInFlight,
		queueLag:            queueLag,
		classificationTotal: classificationTotal,
		validationTotal:     validationTotal,
		visionCallsTotal:    visionCallsTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishDocument(service string, duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.processTotal.WithLabelValues(service, status).Inc()
	m.processDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(service string, lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.WithLabelValues(service).Observe(lag.Seconds())
}

// RecordOutcome breaks one successful pipeline run down by classification
// method and validation verdict.
func (m *WorkerMetrics) RecordOutcome(service string, outcome *domain.ProcessOutcome) {
	if outcome == nil {
		return
	}
	method := outcome.Method
	if method == "" {
		method = "unknown"
	}
	m.classificationTotal.WithLabelValues(service, method, string(outcome.DocType)).Inc()
	m.validationTotal.WithLabelValues(service, string(outcome.ValidationStatus)).Inc()
}

func (m *WorkerMetrics) RecordVisionCall(service string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.visionCallsTotal.WithLabelValues(service, outcome).Inc()
}
