package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const DefaultJob = "wormhole-admin"

// PromMetrics collects per-run metrics. Commands are short lived so the
// registry is pushed to a Pushgateway instead of being scraped.
type PromMetrics struct {
	Registry *prometheus.Registry

	Operations        *prometheus.CounterVec
	Transactions      *prometheus.CounterVec
	PayerBalance      *prometheus.GaugeVec
	OperationDuration *prometheus.HistogramVec
}

func InitPromMetrics() *PromMetrics {
	reg := prometheus.NewRegistry()

	// labels
	var (
		operationLabels   = []string{"operation", "status"}
		transactionLabels = []string{"operation", "status"}
		balanceLabels     = []string{"address"}
		durationLabels    = []string{"operation"}
	)

	m := &PromMetrics{
		Registry: reg,
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wormhole_admin_operations_total",
			Help: "Completed admin operations by outcome: success, skipped, filtered, failed",
		}, operationLabels),
		Transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wormhole_admin_transactions_total",
			Help: "Solana transactions sent. Failures are counted AFTER `broadcast-retries` attempts.",
		}, transactionLabels),
		PayerBalance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "wormhole_admin_payer_balance_sol",
			Help: "SOL balance of the fee payer at the end of the run",
		}, balanceLabels),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wormhole_admin_operation_duration_seconds",
			Help:    "Wall time of an admin operation",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 60, 120},
		}, durationLabels),
	}

	reg.MustRegister(m.Operations)
	reg.MustRegister(m.Transactions)
	reg.MustRegister(m.PayerBalance)
	reg.MustRegister(m.OperationDuration)

	return m
}

func (m *PromMetrics) IncOperation(operation, status string) {
	m.Operations.WithLabelValues(operation, status).Inc()
}

func (m *PromMetrics) IncTransaction(operation, status string) {
	m.Transactions.WithLabelValues(operation, status).Inc()
}

func (m *PromMetrics) SetPayerBalance(address string, balance float64) {
	m.PayerBalance.WithLabelValues(address).Set(balance)
}

func (m *PromMetrics) ObserveDuration(operation string, d time.Duration) {
	m.OperationDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// Push sends the registry to a Pushgateway, replacing metrics for job
func (m *PromMetrics) Push(url, job string) error {
	if job == "" {
		job = DefaultJob
	}
	if err := push.New(url, job).Gatherer(m.Registry).Push(); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
