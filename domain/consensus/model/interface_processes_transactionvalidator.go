package model

import "github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"

// TransactionValidator runs transactions through dispatch, format checks,
// validity checks and application
type TransactionValidator interface {
	ValidateTransaction(tx *externalapi.DomainTransaction, view ChainStateView) (*externalapi.Verdict, error)
	ValidateTransactions(txs []*externalapi.DomainTransaction, view ChainStateView) ([]*externalapi.Verdict, error)
	ApplyTransaction(tx *externalapi.DomainTransaction, state ChainState) (*externalapi.Verdict, error)
	UndoTransaction(tx *externalapi.DomainTransaction, state ChainState) error
	PopulateInputs(tx *externalapi.DomainTransaction, view ChainStateView) error
}
