package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal       *prometheus.CounterVec
	processDuration    *prometheus.HistogramVec
	processInFlight    prometheus.Gauge
	queueLag           *prometheus.HistogramVec
	classifiedTotal    *prometheus.CounterVec
	transcriptChars    *prometheus.HistogramVec
	nameCollisionTotal *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docfiler",
			Subsystem: "worker",
			Name:      "document_process_total",
			Help:      "Total processed documents by status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docfiler",
			Subsystem: "worker",
			Name:      "document_process_duration_seconds",
			Help:      "Document processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docfiler",
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
			Namespace: "docfiler",
			Subsystem: "worker",
			Name:      "queue_lag_seconds",
			Help:      "Delay between document upload and processing start.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"service"},
	)
	classifiedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docfiler",
			Subsystem: "worker",
			Name:      "documents_classified_total",
			Help:      "Total classified documents by category.",
		},
		[]string{"service", "category"},
	)
	transcriptChars := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docfiler",
			Subsystem: "worker",
			Name:      "transcript_chars",
			Help:      "Distribution of recognized text length per document.",
			Buckets:   []float64{0, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"service", "source"},
	)
	nameCollisionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docfiler",
			Subsystem: "worker",
			Name:      "filename_collisions_total",
			Help:      "Total filings that needed a versioned filename.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		processTotal,
		processDuration,
		processInFlight,
		queueLag,
		classifiedTotal,
		transcriptChars,
		nameCollisionTotal,
	)

	return &WorkerMetrics{
		registry:           registry,
		processTotal:       processTotal,
		processDuration:    processDuration,
		processInFlight:    processInFlight,
		queueLag:           queueLag,
		classifiedTotal:    classifiedTotal,
		transcriptChars:    transcriptChars,
		nameCollisionTotal: nameCollisionTotal,
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

func (m *WorkerMetrics) RecordClassification(service, category string) {
	if category == "" {
		category = "unknown"
	}
	m.classifiedTotal.WithLabelValues(service, category).Inc()
}

func (m *WorkerMetrics) ObserveTranscript(service, source string, chars int) {
	if source == "" {
		source = "unknown"
	}
	m.transcriptChars.WithLabelValues(service, source).Observe(float64(chars))
}

func (m *WorkerMetrics) RecordNameCollision(service string) {
	m.nameCollisionTotal.WithLabelValues(service).Inc()
}
