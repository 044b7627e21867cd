package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment pipeline.
type Metrics struct {
	RequestsConsumed prometheus.Counter
	ReportsProduced  prometheus.Counter
	AssessmentErrors *prometheus.CounterVec // labels: reason={decode,validation,internal}
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Simulation metrics.
	SimulationDuration prometheus.Histogram
	SegmentsPerRequest prometheus.Histogram
	RiskBandTotal      *prometheus.CounterVec // label: band
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RequestsConsumed,
		m.ReportsProduced,
		m.AssessmentErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.SimulationDuration,
		m.SegmentsPerRequest,
		m.RiskBandTotal,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RequestsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "road_risk",
			Name:      "requests_consumed_total",
			Help:      "Total assessment requests read from the source topic.",
		}),
		ReportsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "road_risk",
			Name:      "reports_produced_total",
			Help:      "Total risk reports written to the sink topic.",
		}),
		AssessmentErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "road_risk",
			Name:      "assessment_errors_total",
			Help:      "Assessment failures by reason.",
		}, []string{"reason"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "road_risk",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "road_risk",
			Name:      "batch_size",
			Help:      "Number of requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "road_risk",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-assess-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "road_risk",
			Name:      "simulation_duration_seconds",
			Help:      "Duration of one road traversal simulation.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		SegmentsPerRequest: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "road_risk",
			Name:      "segments_per_request",
			Help:      "Number of road segments per assessment request.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		RiskBandTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "road_risk",
			Name:      "risk_band_total",
			Help:      "Classified segments by risk band.",
		}, []string{"band"}),
	}
}
