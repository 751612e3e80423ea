package model

import "github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"

// TransactionHandler validates and applies the transactions of a single
// TxType
type TransactionHandler interface {
	// CheckFormat checks everything that can be checked without chain state
	CheckFormat(tx *externalapi.DomainTransaction) error

	// CheckValid checks tx against the outputs it spends and the license
	// registry
	CheckValid(tx *externalapi.DomainTransaction, view ChainStateView) error

	// Apply writes the effects of a valid tx to state. Input UTXO entries
	// must be populated.
	Apply(tx *externalapi.DomainTransaction, state ChainState) error

	// Undo reverses Apply. Input UTXO entries must be populated.
	Undo(tx *externalapi.DomainTransaction, state ChainState) error
}

// TransactionHandlerDispatcher routes a transaction type tag to its handler
type TransactionHandlerDispatcher interface {
	GetHandler(txType externalapi.TxType) (TransactionHandler, bool)
}
