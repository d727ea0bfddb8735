package service

import (
	"alliance-bank/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Payment outcomes recorded by the settlement engine.
const (
	outcomePaid      = "paid"
	outcomeFailed    = "failed"
	outcomeUnknown   = "unknown"
	outcomeNoCreds   = "no_credentials"
	outcomeReconcile = "reconcile"
)

// Metrics holds the service counters. A nil *Metrics records nothing.
type Metrics struct {
	payments    *prometheus.CounterVec
	withdrawals *prometheus.CounterVec
	taxRecords  prometheus.Counter
	taxCredited *prometheus.CounterVec
	bankRecords prometheus.Counter
	feedPages   *prometheus.CounterVec
}

// NewMetrics registers the service counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		payments: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alliance_bank",
			Name:      "payments_total",
			Help:      "External payment attempts by outcome.",
		}, []string{"outcome"}),
		withdrawals: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alliance_bank",
			Name:      "withdrawal_transitions_total",
			Help:      "Withdrawal request status changes.",
		}, []string{"status"}),
		taxRecords: f.NewCounter(prometheus.CounterOpts{
			Namespace: "alliance_bank",
			Name:      "tax_records_applied_total",
			Help:      "External records credited to alliance treasuries.",
		}),
		taxCredited: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alliance_bank",
			Name:      "tax_credited_total",
			Help:      "Quantity credited to alliance treasuries per resource.",
		}, []string{"resource"}),
		bankRecords: f.NewCounter(prometheus.CounterOpts{
			Namespace: "alliance_bank",
			Name:      "bank_records_cached_total",
			Help:      "Bank records newly inserted into the cache.",
		}),
		feedPages: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alliance_bank",
			Name:      "feed_pages_total",
			Help:      "Feed pages fetched by purpose.",
		}, []string{"purpose"}),
	}
}

func (m *Metrics) payment(outcome string) {
	if m == nil {
		return
	}
	m.payments.WithLabelValues(outcome).Inc()
}

func (m *Metrics) transition(status domain.WithdrawalStatus) {
	if m == nil {
		return
	}
	m.withdrawals.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) taxApplied(count int, delta domain.Bag) {
	if m == nil {
		return
	}
	m.taxRecords.Add(float64(count))
	for _, r := range delta.Resources() {
		if v := delta[r]; v.IsPositive() {
			m.taxCredited.WithLabelValues(string(r)).Add(v.InexactFloat64())
		}
	}
}

func (m *Metrics) cached(inserted int) {
	if m == nil {
		return
	}
	m.bankRecords.Add(float64(inserted))
}

func (m *Metrics) pages(purpose string, n int) {
	if m == nil {
		return
	}
	m.feedPages.WithLabelValues(purpose).Add(float64(n))
}
