package utxo

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

type utxoEntry struct {
	amount      *externalapi.ColorAmount
	address     externalapi.DomainAddress
	blockHeight uint64
	txType      externalapi.TxType
}

// NewUTXOEntry creates a new utxoEntry representing the given txOut. The
// amount is cloned.
func NewUTXOEntry(amount *externalapi.ColorAmount, address externalapi.DomainAddress,
	blockHeight uint64, txType externalapi.TxType) externalapi.UTXOEntry {

	return &utxoEntry{
		amount:      amount.Clone(),
		address:     address,
		blockHeight: blockHeight,
		txType:      txType,
	}
}

// Amount returns a copy of the amount held by the entry
func (u *utxoEntry) Amount() *externalapi.ColorAmount {
	return u.amount.Clone()
}

func (u *utxoEntry) Address() externalapi.DomainAddress {
	return u.address
}

func (u *utxoEntry) BlockHeight() uint64 {
	return u.blockHeight
}

func (u *utxoEntry) TxType() externalapi.TxType {
	return u.txType
}

// Equal returns whether entry equals to other
func (u *utxoEntry) Equal(other externalapi.UTXOEntry) bool {
	if u == nil || other == nil {
		return u == nil && other == nil
	}

	return u.amount.Equal(other.Amount()) &&
		u.address == other.Address() &&
		u.blockHeight == other.BlockHeight() &&
		u.txType == other.TxType()
}

// EntriesForTransaction returns the UTXO entries created by tx when it is
// accepted at blockHeight, keyed by their outpoints.
func EntriesForTransaction(tx *externalapi.DomainTransaction, transactionID *externalapi.DomainTransactionID,
	blockHeight uint64) []*externalapi.OutpointAndUTXOEntryPair {

	pairs := make([]*externalapi.OutpointAndUTXOEntryPair, len(tx.Outputs))
	for i, output := range tx.Outputs {
		pairs[i] = &externalapi.OutpointAndUTXOEntryPair{
			Outpoint: &externalapi.DomainOutpoint{
				TransactionID: *transactionID,
				Index:         uint32(i),
			},
			UTXOEntry: NewUTXOEntry(output.Value, output.Address, blockHeight, tx.Type),
		}
	}
	return pairs
}
