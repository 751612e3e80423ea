package transactionvalidator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	verdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gcoind",
		Subsystem: "txvalidator",
		Name:      "verdicts_total",
		Help:      "Validation verdicts by transaction type and result",
	}, []string{"tx_type", "result"})

	validationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gcoind",
		Subsystem: "txvalidator",
		Name:      "validation_duration_seconds",
		Help:      "Time to run a transaction through format and validity checks",
		Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
	}, []string{"tx_type"})

	misbehaviorScoreTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gcoind",
		Subsystem: "txvalidator",
		Name:      "misbehavior_score_total",
		Help:      "Sum of the misbehavior scores of rejected transactions",
	})
)

const (
	resultAccepted = "accepted"
	resultRejected = "rejected"
)
