package blocktemplatebuilder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	templatesBuiltTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gcoind",
		Subsystem: "blocktemplate",
		Name:      "templates_built_total",
		Help:      "Number of block templates built",
	})

	templateTransactions = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gcoind",
		Subsystem: "blocktemplate",
		Name:      "transactions",
		Help:      "Number of transactions in a built template, the coinbase excluded",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})

	skippedCandidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gcoind",
		Subsystem: "blocktemplate",
		Name:      "skipped_candidates_total",
		Help:      "Candidate transactions left out of a template, by reason",
	}, []string{"reason"})
)

const (
	skipReasonSize      = "size"
	skipReasonSigOps    = "sigops"
	skipReasonLowFee    = "low_fee"
	skipReasonInvalid   = "invalid"
	skipReasonMissing   = "missing_inputs"
	skipReasonDuplicate = "duplicate"
)
