package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/normalize"
)

// Metrics holds the counters of one normalization run on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	// EventsTotal is the number of audit events normalized.
	EventsTotal prometheus.Counter

	// RecordsTotal is the number of records normalized, by category.
	RecordsTotal *prometheus.CounterVec

	// SkippedLinesTotal is the number of malformed input lines ignored.
	SkippedLinesTotal prometheus.Counter
}

// New creates and registers the run metrics.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		EventsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "auditnorm",
				Name:      "events_total",
				Help:      "Total audit events normalized.",
			},
		),
		RecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "auditnorm",
				Name:      "records_total",
				Help:      "Total audit records normalized, by category.",
			},
			[]string{"category"},
		),
		SkippedLinesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "auditnorm",
				Name:      "skipped_lines_total",
				Help:      "Malformed input lines ignored by the source.",
			},
		),
	}
	m.Registry.MustRegister(m.EventsTotal, m.RecordsTotal, m.SkippedLinesTotal)
	// every category is exported, even at zero
	for _, c := range normalize.Categories() {
		m.RecordsTotal.WithLabelValues(c.String())
	}
	return m
}

// ObserveRecord counts one normalized line.
func (m *Metrics) ObserveRecord(l normalize.Line) {
	m.RecordsTotal.WithLabelValues(l.Category.String()).Inc()
	if l.RecordOrdinal == 1 {
		m.EventsTotal.Inc()
	}
}

// WriteTextfile writes the registry in the Prometheus text format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
