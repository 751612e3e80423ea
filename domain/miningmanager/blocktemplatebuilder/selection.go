package blocktemplatebuilder

import (
	"container/heap"

	consensusmodel "github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/serialization"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/transactionhelper"
	"github.com/gcoinproject/gcoind/util"
	"github.com/pkg/errors"
)

const (
	// blockSizeReserve is the room kept for the header and the coinbase
	blockSizeReserve = 1000

	// blockSigOpsReserve is the number of signature operations kept for
	// the coinbase
	blockSigOpsReserve = 100
)

type txsForBlockTemplate struct {
	selectedTxs   []*externalapi.DomainTransaction
	txFees        []*externalapi.ColorAmount
	txSigOpCounts []int64
	blockSize     uint64
	blockSigOps   int64
	totalFees     *externalapi.ColorAmount
}

// selectTransactions picks candidates in priority order and applies each
// pick to overlay
func (btb *blockTemplateBuilder) selectTransactions(overlay consensusmodel.ChainStateOverlay,
	candidates []*externalapi.DomainTransaction) (*txsForBlockTemplate, error) {

	result := &txsForBlockTemplate{
		selectedTxs:   make([]*externalapi.DomainTransaction, 0, len(candidates)),
		txFees:        make([]*externalapi.ColorAmount, 0, len(candidates)),
		txSigOpCounts: make([]int64, 0, len(candidates)),
		blockSize:     blockSizeReserve,
		blockSigOps:   blockSigOpsReserve,
		totalFees:     externalapi.NewEmptyColorAmount(),
	}

	items := make([]*txPrioItem, 0, len(candidates))
	candidateIDs := make(map[externalapi.DomainTransactionID]struct{}, len(candidates))
	for _, tx := range candidates {
		if transactionhelper.IsCoinBase(tx) {
			skippedCandidatesTotal.WithLabelValues(skipReasonInvalid).Inc()
			continue
		}
		id := consensushashing.TransactionID(tx)
		if _, exists := candidateIDs[*id]; exists {
			skippedCandidatesTotal.WithLabelValues(skipReasonDuplicate).Inc()
			continue
		}
		candidateIDs[*id] = struct{}{}
		items = append(items, &txPrioItem{tx: tx, id: id})
	}

	sortedByFee := btb.policy.BlockPrioritySize == 0
	priorityQueue := newTxPriorityQueue(len(items), sortedByFee)

	// dependers maps a candidate to the candidates that spend its outputs
	dependers := make(map[externalapi.DomainTransactionID][]*txPrioItem)
	blockHeight := overlay.BlockHeight()
	for _, item := range items {
		hasInputs, err := prioritize(overlay, item, candidateIDs, blockHeight)
		if err != nil {
			return nil, err
		}
		if !hasInputs {
			log.Debugf("Skipping transaction %s: missing inputs", item.id)
			skippedCandidatesTotal.WithLabelValues(skipReasonMissing).Inc()
			continue
		}
		if len(item.dependsOn) == 0 {
			heap.Push(priorityQueue, item)
			continue
		}
		for parentID := range item.dependsOn {
			dependers[parentID] = append(dependers[parentID], item)
		}
	}

	for priorityQueue.Len() > 0 {
		item := heap.Pop(priorityQueue).(*txPrioItem)

		if result.blockSize+item.size >= btb.policy.BlockMaxSize {
			log.Tracef("Skipping transaction %s: it would exceed the maximum block size", item.id)
			skippedCandidatesTotal.WithLabelValues(skipReasonSize).Inc()
			continue
		}

		sigOps := int64(len(item.tx.Inputs))
		if result.blockSigOps+sigOps >= constants.MaxBlockSigOps {
			log.Tracef("Skipping transaction %s: it would exceed the maximum signature operations", item.id)
			skippedCandidatesTotal.WithLabelValues(skipReasonSigOps).Inc()
			continue
		}

		if sortedByFee && item.feeRate.Less(btb.policy.MinRelayTxFee) &&
			result.blockSize+item.size >= btb.policy.BlockMinSize {

			log.Tracef("Skipping transaction %s with fee rate %s: below the minimum relay fee rate %s",
				item.id, item.feeRate, btb.policy.MinRelayTxFee)
			skippedCandidatesTotal.WithLabelValues(skipReasonLowFee).Inc()
			continue
		}

		// Prioritize by fee once the priority area is full. The item is put
		// back since it might no longer be the highest fee one.
		if !sortedByFee && result.blockSize+item.size >= btb.policy.BlockPrioritySize {
			log.Tracef("Switching to sort by fees per kilobyte: block size %d, priority size %d",
				result.blockSize+item.size, btb.policy.BlockPrioritySize)
			sortedByFee = true
			priorityQueue.SetLessFunc(txPQByFee)
			heap.Push(priorityQueue, item)
			continue
		}

		applied, err := btb.apply(overlay, item)
		if err != nil {
			return nil, err
		}
		if !applied {
			skippedCandidatesTotal.WithLabelValues(skipReasonInvalid).Inc()
			continue
		}

		result.selectedTxs = append(result.selectedTxs, item.tx)
		result.txFees = append(result.txFees, item.fee)
		result.txSigOpCounts = append(result.txSigOpCounts, sigOps)
		result.blockSize += item.size
		result.blockSigOps += sigOps
		result.totalFees.Add(item.fee)

		for _, depender := range dependers[*item.id] {
			delete(depender.dependsOn, *item.id)
			if len(depender.dependsOn) == 0 {
				heap.Push(priorityQueue, depender)
			}
		}
		delete(dependers, *item.id)
	}

	return result, nil
}

// prioritize fills the size, fee and priority of item, and records which
// other candidates it spends from. It returns false if an input is neither
// in the UTXO set nor created by another candidate.
func prioritize(view consensusmodel.ChainStateView, item *txPrioItem,
	candidateIDs map[externalapi.DomainTransactionID]struct{}, blockHeight uint64) (bool, error) {

	item.size = serialization.TransactionSerializeSize(item.tx)
	item.fee = externalapi.NewEmptyColorAmount()
	if item.tx.Fee != nil {
		item.fee = item.tx.Fee.Clone()
	}
	item.feeRate = util.NewFeeRateFromFee(item.fee, item.size)
	item.feePerKB = item.feeRate.PerK().TotalValue()

	var inputPriority float64
	for _, input := range item.tx.Inputs {
		if input.PreviousOutpoint.IsNull() {
			continue
		}
		parentID := input.PreviousOutpoint.TransactionID
		if _, isCandidate := candidateIDs[parentID]; isCandidate && !parentID.Equal(item.id) {
			if item.dependsOn == nil {
				item.dependsOn = make(map[externalapi.DomainTransactionID]struct{})
			}
			item.dependsOn[parentID] = struct{}{}
			continue
		}

		entry, exists, err := view.UTXOEntry(&input.PreviousOutpoint)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, nil
		}
		var confirmations uint64
		if blockHeight > entry.BlockHeight() {
			confirmations = blockHeight - entry.BlockHeight()
		}
		inputPriority += float64(entry.Amount().TotalValue()) * float64(confirmations)
	}
	if item.size > 0 {
		item.priority = inputPriority / float64(item.size)
	}
	return true, nil
}

// apply validates a copy of item's transaction against overlay and applies
// it. It returns false if the transaction is rejected.
func (btb *blockTemplateBuilder) apply(overlay consensusmodel.ChainState, item *txPrioItem) (bool, error) {
	tx := item.tx.Clone()
	verdict, err := btb.validator.ValidateTransaction(tx, overlay)
	if err != nil {
		return false, err
	}
	if !verdict.Accepted {
		log.Debugf("Skipping transaction %s: %s", item.id, verdict.Reason)
		return false, nil
	}

	verdict, err = btb.validator.ApplyTransaction(tx, overlay)
	if err != nil {
		return false, err
	}
	if !verdict.Accepted {
		return false, errors.Errorf("transaction %s was valid but could not be applied: %s",
			item.id, verdict.Reason)
	}
	return true, nil
}
