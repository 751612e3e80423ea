package consensus

import (
	"fmt"

	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/ruleerrors"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/merkle"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/serialization"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/transactionhelper"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxo"
	"github.com/gcoinproject/gcoind/infrastructure/logger"
	"github.com/gcoinproject/gcoind/util"
	"github.com/pkg/errors"
)

// ValidateAndInsertBlock validates block on top of the current tip and, if
// it is valid, applies all of its transactions and makes it the new tip.
// An invalid block leaves the state unchanged.
func (s *consensus) ValidateAndInsertBlock(block *externalapi.DomainBlock) (*externalapi.Verdict, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateAndInsertBlock")
	defer onEnd()

	s.lock.HighPriorityLock()
	defer s.lock.HighPriorityUnlock()

	stagingArea := model.NewStagingArea()
	verdict, err := s.applyBlock(stagingArea, block)
	if err != nil {
		score, ok := ruleerrors.MisbehaviorScore(err)
		if !ok {
			return nil, err
		}
		log.Infof("Rejected block at height %d: %s", block.Header.Height, err)
		return externalapi.NewRejectedVerdict(score, err.Error()), nil
	}
	if !verdict.Accepted {
		log.Infof("Rejected block at height %d: %s", block.Header.Height, verdict.Reason)
		return verdict, nil
	}

	err = s.commitAllChanges(stagingArea)
	if err != nil {
		return nil, err
	}
	log.Infof("Accepted block %s at height %d with %d transactions",
		consensushashing.BlockHash(block), block.Header.Height, len(block.Transactions))
	return verdict, nil
}

// applyBlock stages the effects of block in stagingArea. Block level rule
// violations are returned as errors, while a rejected transaction yields a
// rejected verdict carrying the transaction's score.
func (s *consensus) applyBlock(stagingArea *model.StagingArea,
	block *externalapi.DomainBlock) (*externalapi.Verdict, error) {

	err := s.checkBlockInIsolation(block)
	if err != nil {
		return nil, err
	}
	err = s.checkBlockParent(stagingArea, block.Header)
	if err != nil {
		return nil, err
	}

	header := block.Header
	state := s.newStagedChainState(stagingArea, header.Height)

	totalFees := externalapi.NewEmptyColorAmount()
	for i, tx := range block.Transactions[1:] {
		verdict, err := s.transactionValidator.ApplyTransaction(tx, state)
		if err != nil {
			return nil, err
		}
		if !verdict.Accepted {
			return externalapi.NewRejectedVerdict(verdict.MisbehaviorScore,
				fmt.Sprintf("transaction %s at index %d: %s",
					consensushashing.TransactionID(tx), i+1, verdict.Reason)), nil
		}
		if tx.Fee != nil {
			totalFees.Add(tx.Fee)
		}
	}

	coinbase := block.Transactions[0]
	err = s.checkCoinbaseOutputs(coinbase, header.Height, totalFees)
	if err != nil {
		return nil, err
	}
	coinbaseID := consensushashing.TransactionID(coinbase)
	for _, pair := range utxo.EntriesForTransaction(coinbase, coinbaseID, header.Height) {
		err = state.AddUTXO(pair.Outpoint, pair.UTXOEntry)
		if err != nil {
			return nil, err
		}
	}

	commitment := state.UTXOCommitment()
	if !commitment.Equal(&header.UTXOCommitment) {
		return nil, errors.Wrapf(ruleerrors.ErrBadUTXOCommitment, "block UTXO commitment is %s "+
			"but the UTXO set after the block commits to %s", header.UTXOCommitment, commitment)
	}

	s.utxoSetStore.StageTip(stagingArea, header.Height, consensushashing.BlockHash(block))
	return externalapi.NewAcceptedVerdict(), nil
}

// checkBlockInIsolation performs the checks that do not depend on the chain
// state
func (s *consensus) checkBlockInIsolation(block *externalapi.DomainBlock) error {
	if len(block.Transactions) == 0 {
		return errors.WithStack(ruleerrors.ErrNoTransactions)
	}

	blockSize := len(serialization.BlockToBytes(block))
	if blockSize > constants.MaxBlockSize {
		return errors.Wrapf(ruleerrors.ErrBlockTooBig, "serialized block is %d bytes, "+
			"the maximum is %d", blockSize, constants.MaxBlockSize)
	}

	if !transactionhelper.IsCoinBase(block.Transactions[0]) {
		return errors.Wrapf(ruleerrors.ErrFirstTxNotCoinbase, "first transaction in "+
			"block is not a coinbase")
	}
	for i, tx := range block.Transactions[1:] {
		if transactionhelper.IsCoinBase(tx) {
			return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction, "block contains a "+
				"second coinbase at index %d", i+1)
		}
	}

	sigOps := 0
	for _, tx := range block.Transactions {
		sigOps += len(tx.Inputs)
	}
	if sigOps > constants.MaxBlockSigOps {
		return errors.Wrapf(ruleerrors.ErrTooManySigOps, "block contains %d signature "+
			"operations, the maximum is %d", sigOps, constants.MaxBlockSigOps)
	}

	merkleRoot := merkle.CalculateHashMerkleRoot(block.Transactions)
	if !merkleRoot.Equal(&block.Header.HashMerkleRoot) {
		return errors.Wrapf(ruleerrors.ErrBadMerkleRoot, "block hash merkle root is invalid - block "+
			"header indicates %s, but calculated value is %s",
			block.Header.HashMerkleRoot, merkleRoot)
	}
	return nil
}

func (s *consensus) checkBlockParent(stagingArea *model.StagingArea, header *externalapi.DomainBlockHeader) error {
	tipHeight, tipHash := s.utxoSetStore.Tip(stagingArea)
	if header.Height != tipHeight+1 {
		return errors.Wrapf(ruleerrors.ErrBadHeight, "block height is %d, expected %d",
			header.Height, tipHeight+1)
	}
	if tipHash == nil || !header.ParentHash.Equal(tipHash) {
		return errors.Wrapf(ruleerrors.ErrWrongParent, "block parent is %s, the tip is %s",
			header.ParentHash, tipHash)
	}
	return nil
}

// checkCoinbaseOutputs requires the coinbase to pay exactly the collected
// fees, in the layout the block template builder produces. The lock time
// must be the block height, which keeps coinbase IDs unique.
func (s *consensus) checkCoinbaseOutputs(coinbase *externalapi.DomainTransaction, blockHeight uint64,
	totalFees *externalapi.ColorAmount) error {

	if coinbase.LockTime != blockHeight {
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction, "coinbase lock time is %d, "+
			"expected the block height %d", coinbase.LockTime, blockHeight)
	}

	expectedOutputs := 1
	if !totalFees.IsEmpty() {
		expectedOutputs = 2
	}
	if len(coinbase.Outputs) != expectedOutputs {
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction, "coinbase has %d outputs, "+
			"expected %d", len(coinbase.Outputs), expectedOutputs)
	}
	if coinbase.Fee != nil && !coinbase.Fee.IsEmpty() {
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction, "coinbase declares a fee of %s",
			coinbase.Fee)
	}

	first := coinbase.Outputs[0]
	if first.Value == nil || !first.Value.Equal(externalapi.NewColorAmount(constants.CoinbaseColor, 0)) {
		return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction, "first coinbase output is %s",
			first.Value)
	}
	for _, output := range coinbase.Outputs {
		_, err := util.DecodeAddress(output.Address, s.params.AddressPrefix)
		if err != nil {
			return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction, "coinbase pays to "+
				"invalid address %s: %s", output.Address, err)
		}
	}

	if expectedOutputs == 2 {
		feeOutput := coinbase.Outputs[1]
		if feeOutput.Value == nil || !feeOutput.Value.Equal(totalFees) {
			return errors.Wrapf(ruleerrors.ErrBadCoinbaseTransaction, "coinbase pays %s "+
				"but the block collected %s in fees", feeOutput.Value, totalFees)
		}
	}
	return nil
}
