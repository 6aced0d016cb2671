package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "docgate"

// Metrics records pipeline outcomes on a private registry.
type Metrics struct {
	registry           *prometheus.Registry
	verdicts           *prometheus.CounterVec
	conversions        *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec
	extractions        *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolution_verdicts_total",
			Help:      "Resolution checks by outcome.",
		}, []string{"outcome"}),
		conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Document conversions by outcome.",
		}, []string{"outcome"}),
		conversionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Wall time of document conversions.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"outcome"}),
		extractions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "field_extractions_total",
			Help:      "OCR field extractions by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveVerdict(outcome string) {
	m.verdicts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveConversion(outcome string, elapsed time.Duration) {
	m.conversions.WithLabelValues(outcome).Inc()
	m.conversionDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveExtraction(outcome string) {
	m.extractions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
