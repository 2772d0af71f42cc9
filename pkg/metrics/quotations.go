package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// QuotationMetrics tracks quotation creation and lifecycle activity.
type QuotationMetrics struct {
	created     prometheus.Counter
	transitions *prometheus.CounterVec
	chargeable  prometheus.Histogram
}

// NewQuotationMetrics registers the quotation metrics on the provided
// registerer. A nil registerer yields a no-op recorder.
func NewQuotationMetrics(reg prometheus.Registerer) *QuotationMetrics {
	if reg == nil {
		return &QuotationMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quotations_created_total",
		Help: "Quotations persisted.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotation_status_transitions_total",
		Help: "Quotation status transitions by target status.",
	}, []string{"status"})
	chargeable := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quotation_chargeable_weight_kg",
		Help:    "Chargeable weight of created quotations in kilograms.",
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
	reg.MustRegister(created, transitions, chargeable)
	return &QuotationMetrics{
		created:     created,
		transitions: transitions,
		chargeable:  chargeable,
	}
}

// ObserveCreated counts a stored quotation and its chargeable weight.
func (m *QuotationMetrics) ObserveCreated(chargeableKg float64) {
	if m == nil || m.created == nil {
		return
	}
	m.created.Inc()
	m.chargeable.Observe(chargeableKg)
}

// IncTransition counts a status change into status.
func (m *QuotationMetrics) IncTransition(status string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
