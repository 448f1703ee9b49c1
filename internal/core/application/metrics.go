package application

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vulpemventures/reef/internal/core/domain"
)

const metricsNamespace = "reef"

var (
	coinSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "coin_selections_total",
			Help:      "Number of coin selections by strategy and result.",
		},
		[]string{"strategy", "change_strategy", "result"},
	)
	selectedInputs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "coin_selection_inputs",
			Help:      "Number of utxos selected by a successful coin selection.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		},
	)
	changeOutputs = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "coin_selection_change_outputs",
			Help:      "Number of change outputs built by a successful coin selection.",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		},
	)
	utxosLockedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "utxos_locked_total",
			Help:      "Number of utxos locked after a coin selection.",
		},
	)
	utxosUnlockedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "utxos_unlocked_total",
			Help:      "Number of utxos unlocked, either expired or on request.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		coinSelectionsTotal, selectedInputs, changeOutputs,
		utxosLockedTotal, utxosUnlockedTotal,
	)
}

func observeCoinSelection(
	coinSelectionStrategy, changeCreationStrategy int,
	cs *domain.CoinSelection, err error,
) {
	result := "success"
	if err != nil {
		result = "failure"
		if errors.Is(err, domain.ErrInsufficientBalance) {
			result = "insufficient_balance"
		}
	}
	coinSelectionsTotal.WithLabelValues(
		coinSelectionStrategyNames[coinSelectionStrategy],
		changeCreationStrategyNames[changeCreationStrategy],
		result,
	).Inc()

	if cs != nil {
		selectedInputs.Observe(float64(len(cs.SelectedUtxos)))
		changeOutputs.Observe(float64(len(cs.ChangeOutputs)))
	}
}
