package transactionhelper

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
)

// IsCoinBase determines whether or not a transaction is a coinbase transaction. A coinbase
// transaction is a special transaction created by miners that distributes fees. A coinbase
// is a normal transaction with a single input spending the null outpoint without a key.
func IsCoinBase(tx *externalapi.DomainTransaction) bool {
	return tx.Type == externalapi.TxTypeNormal &&
		len(tx.Inputs) == 1 &&
		tx.Inputs[0].PreviousOutpoint.IsNull() &&
		len(tx.Inputs[0].PublicKey) == 0
}

// NewCoinbaseTransaction returns the coinbase of a block at blockHeight.
// Its first output carries the coinbase color with no value; a second one
// carries totalFees when the block collected any. blockHeight goes in the
// lock time so that coinbases of different blocks have different IDs.
func NewCoinbaseTransaction(address externalapi.DomainAddress, totalFees *externalapi.ColorAmount,
	blockHeight uint64) *externalapi.DomainTransaction {

	outputs := []*externalapi.DomainTransactionOutput{{
		Value:   externalapi.NewColorAmount(constants.CoinbaseColor, 0),
		Address: address,
	}}
	if !totalFees.IsEmpty() {
		outputs = append(outputs, &externalapi.DomainTransactionOutput{
			Value:   totalFees.Clone(),
			Address: address,
		})
	}

	return &externalapi.DomainTransaction{
		Version: constants.TransactionVersion,
		Type:    externalapi.TxTypeNormal,
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousOutpoint: externalapi.NewNullOutpoint(),
		}},
		Outputs:  outputs,
		Fee:      externalapi.NewEmptyColorAmount(),
		LockTime: blockHeight,
		Payload:  []byte{},
	}
}
