package blocktemplatebuilder

import (
	"github.com/gcoinproject/gcoind/domain/consensus"
	consensusmodel "github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/processes/transactionhandler"
	"github.com/gcoinproject/gcoind/domain/consensus/processes/transactionvalidator"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/merkle"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/transactionhelper"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxo"
	miningmanagermodel "github.com/gcoinproject/gcoind/domain/miningmanager/model"
	"github.com/gcoinproject/gcoind/infrastructure/logger"
	"github.com/gcoinproject/gcoind/util"
	"github.com/gcoinproject/gcoind/util/mstime"
	"github.com/pkg/errors"
)

// blockTemplateBuilder creates block templates for a miner to consume
type blockTemplateBuilder struct {
	consensus consensus.Consensus
	policy    *Policy
	validator consensusmodel.TransactionValidator
}

// New creates a new blockTemplateBuilder
func New(consensus consensus.Consensus, policy *Policy) miningmanagermodel.BlockTemplateBuilder {
	if policy == nil {
		policy = DefaultPolicy()
	}
	dispatcher := transactionhandler.New(consensus.Params().AddressPrefix)
	return &blockTemplateBuilder{
		consensus: consensus,
		policy:    policy.normalized(),
		validator: transactionvalidator.New(dispatcher, 1),
	}
}

// CreateBlockTemplate returns a block template on top of the current tip
// that pays the collected fees to coinbaseAddress.
//
// Candidates are selected into the block with the following layout:
//
//   -----------------------------------  --  --
//  |      Coinbase Transaction         |   |   |
//  |-----------------------------------|   |   |
//  |                                   |   |   | ----- policy.BlockPrioritySize
//  |   High-priority Transactions      |   |   |
//  |                                   |   |   |
//  |-----------------------------------|   | --
//  |                                   |   |
//  |                                   |   |
//  |                                   |   |--- policy.BlockMaxSize
//  |  Transactions prioritized by fee  |   |
//  |  until <= policy.MinRelayTxFee or |   |
//  |  the block is full                |   |
//  |                                   |   |
//  |                                   |   |
//  |                                   |   |
//  |-----------------------------------|   |
//  |  Low-fee transactions (while      |   |
//  |  block size <= policy.BlockMinSize)   |
//   -----------------------------------  --
//
// The priority of a candidate is the sum over its inputs of value times
// confirmations, divided by its size. A candidate that spends outputs of
// other candidates waits until all of them are selected. Every selected
// transaction is fully validated against the UTXO set as it stands after
// the transactions selected before it, so the template is always valid.
func (btb *blockTemplateBuilder) CreateBlockTemplate(coinbaseAddress externalapi.DomainAddress,
	candidates []*externalapi.DomainTransaction) (*externalapi.DomainBlockTemplate, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "CreateBlockTemplate")
	defer onEnd()

	_, err := util.DecodeAddress(coinbaseAddress, btb.consensus.Params().AddressPrefix)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid coinbase address %s", coinbaseAddress)
	}

	var template *externalapi.DomainBlockTemplate
	err = btb.consensus.WithOverlay(func(overlay consensusmodel.ChainStateOverlay) error {
		txsForBlockTemplate, err := btb.selectTransactions(overlay, candidates)
		if err != nil {
			return errors.Wrap(err, "failed to select transactions")
		}
		template, err = btb.buildTemplate(overlay, coinbaseAddress, txsForBlockTemplate)
		return err
	})
	if err != nil {
		return nil, err
	}

	templatesBuiltTotal.Inc()
	templateTransactions.Observe(float64(len(template.Block.Transactions) - 1))
	log.Debugf("Created new block template at height %d (%d transactions, %s in fees)",
		template.Block.Header.Height, len(template.Block.Transactions), template.Fees[0].Negate())
	return template, nil
}

// buildTemplate puts the coinbase in front of the selected transactions and
// fills the header from the overlay the transactions were applied to
func (btb *blockTemplateBuilder) buildTemplate(overlay consensusmodel.ChainStateOverlay,
	coinbaseAddress externalapi.DomainAddress, txs *txsForBlockTemplate) (*externalapi.DomainBlockTemplate, error) {

	tipHeight, tipHash := overlay.Tip()
	if tipHash == nil {
		return nil, errors.New("the chain has no tip")
	}
	blockHeight := tipHeight + 1

	coinbase := transactionhelper.NewCoinbaseTransaction(coinbaseAddress, txs.totalFees, blockHeight)
	coinbaseID := consensushashing.TransactionID(coinbase)
	for _, pair := range utxo.EntriesForTransaction(coinbase, coinbaseID, blockHeight) {
		err := overlay.AddUTXO(pair.Outpoint, pair.UTXOEntry)
		if err != nil {
			return nil, err
		}
	}

	transactions := make([]*externalapi.DomainTransaction, 0, len(txs.selectedTxs)+1)
	transactions = append(transactions, coinbase)
	transactions = append(transactions, txs.selectedTxs...)

	fees := make([]*externalapi.ColorAmount, 0, len(transactions))
	fees = append(fees, txs.totalFees.Negate())
	fees = append(fees, txs.txFees...)

	sigOpCounts := make([]int64, 0, len(transactions))
	sigOpCounts = append(sigOpCounts, int64(len(coinbase.Inputs)))
	sigOpCounts = append(sigOpCounts, txs.txSigOpCounts...)

	header := &externalapi.DomainBlockHeader{
		Version:            constants.BlockVersion,
		ParentHash:         *tipHash,
		HashMerkleRoot:     *merkle.CalculateHashMerkleRoot(transactions),
		UTXOCommitment:     *overlay.UTXOCommitment(),
		TimeInMilliseconds: mstime.Now(),
		Height:             blockHeight,
	}

	return &externalapi.DomainBlockTemplate{
		Block: &externalapi.DomainBlock{
			Header:       header,
			Transactions: transactions,
		},
		Fees:        fees,
		SigOpCounts: sigOpCounts,
	}, nil
}
