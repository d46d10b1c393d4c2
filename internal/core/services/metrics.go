package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts domain events. A nil *Metrics is a no-op.
type Metrics struct {
	workLogsSaved   *prometheus.CounterVec
	invoicesDrafted prometheus.Counter
	invoiceStatus   *prometheus.CounterVec
	draftedCents    prometheus.Counter
}

// NewMetrics registers the domain collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		workLogsSaved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opahours",
			Name:      "work_logs_saved_total",
			Help:      "Work logs created or updated.",
		}, []string{"operation"}),
		invoicesDrafted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "opahours",
			Name:      "invoices_drafted_total",
			Help:      "Invoice drafts built from work logs.",
		}),
		invoiceStatus: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "opahours",
			Name:      "invoice_transitions_total",
			Help:      "Invoice lifecycle transitions by target status.",
		}, []string{"status"}),
		draftedCents: f.NewCounter(prometheus.CounterOpts{
			Namespace: "opahours",
			Name:      "invoiced_cents_total",
			Help:      "Sum of drafted invoice totals in cents.",
		}),
	}
}

func (m *Metrics) workLogSaved(operation string) {
	if m == nil {
		return
	}
	m.workLogsSaved.WithLabelValues(operation).Inc()
}

func (m *Metrics) invoiceDrafted(totalCents int64) {
	if m == nil {
		return
	}
	m.invoicesDrafted.Inc()
	m.draftedCents.Add(float64(totalCents))
}

func (m *Metrics) invoiceTransitioned(status string) {
	if m == nil {
		return
	}
	m.invoiceStatus.WithLabelValues(status).Inc()
}
