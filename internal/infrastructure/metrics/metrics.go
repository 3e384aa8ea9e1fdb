package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// Transaction metrics
	TransactionsApplied  *prometheus.CounterVec
	TransactionsRejected *prometheus.CounterVec

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsLocked  prometheus.Counter

	// Replay metrics
	ReplayDuration prometheus.Histogram
	ReplayFailures prometheus.Counter
}

// New creates all metrics on a fresh registry owned by the returned value.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		// Transaction metrics
		TransactionsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_transactions_applied_total",
				Help: "Total number of transactions committed to the ledger by type",
			},
			[]string{"type"},
		),
		TransactionsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_transactions_rejected_total",
				Help: "Total number of transactions discarded by a business rule",
			},
			[]string{"type", "reason"},
		),

		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_accounts_created_total",
			Help: "Total number of client accounts created",
		}),
		AccountsLocked: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_accounts_locked_total",
			Help: "Total number of accounts locked by a chargeback",
		}),

		// Replay metrics
		ReplayDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "payments_replay_duration_seconds",
			Help:    "Duration of a full replay of the input stream",
			Buckets: prometheus.DefBuckets,
		}),
		ReplayFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "payments_replay_failures_total",
			Help: "Total number of replays aborted by a fatal error",
		}),
	}
}

// WriteText writes every gathered metric family in Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
