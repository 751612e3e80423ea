package transactionvalidator

import (
	"time"

	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/ruleerrors"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// transactionValidator runs transactions through handler dispatch, format
// checks, validity checks and application
type transactionValidator struct {
	dispatcher model.TransactionHandlerDispatcher
	workers    int
}

// New instantiates a new TransactionValidator. ValidateTransactions runs
// at most workers checks at a time.
func New(dispatcher model.TransactionHandlerDispatcher, workers int) model.TransactionValidator {
	if workers < 1 {
		workers = 1
	}
	return &transactionValidator{
		dispatcher: dispatcher,
		workers:    workers,
	}
}

// ValidateTransaction checks tx against view. Rule violations are reported
// as a rejected verdict; any other error is internal and returned as is.
func (v *transactionValidator) ValidateTransaction(tx *externalapi.DomainTransaction,
	view model.ChainStateView) (*externalapi.Verdict, error) {

	start := time.Now()
	err := v.checkTransaction(tx, view)
	validationDuration.WithLabelValues(tx.Type.String()).Observe(time.Since(start).Seconds())

	verdict, err := verdictFromError(tx, err)
	if err != nil {
		return nil, err
	}
	recordVerdict(tx, verdict)
	return verdict, nil
}

func (v *transactionValidator) checkTransaction(tx *externalapi.DomainTransaction, view model.ChainStateView) error {
	handler, err := v.handler(tx)
	if err != nil {
		return err
	}
	err = handler.CheckFormat(tx)
	if err != nil {
		return err
	}
	err = handler.CheckValid(tx, view)
	if err != nil {
		return err
	}
	return checkNoOverwrite(tx, view)
}

// checkNoOverwrite rejects a transaction whose outputs would replace
// unspent outputs of an earlier transaction with the same ID, such as a
// repeated mint
func checkNoOverwrite(tx *externalapi.DomainTransaction, view model.ChainStateView) error {
	transactionID := consensushashing.TransactionID(tx)
	for i := range tx.Outputs {
		outpoint := externalapi.DomainOutpoint{TransactionID: *transactionID, Index: uint32(i)}
		_, exists, err := view.UTXOEntry(&outpoint)
		if err != nil {
			return err
		}
		if exists {
			return errors.Wrapf(ruleerrors.ErrOverwriteTx, "output %s is unspent", outpoint)
		}
	}
	return nil
}

func (v *transactionValidator) handler(tx *externalapi.DomainTransaction) (model.TransactionHandler, error) {
	handler, ok := v.dispatcher.GetHandler(tx.Type)
	if !ok {
		return nil, errors.Wrapf(ruleerrors.ErrUnknownTxType, "no handler for transaction type %s", tx.Type)
	}
	return handler, nil
}

// ApplyTransaction validates tx against state and, if it is accepted,
// populates its inputs and applies it. state is left partially modified
// when application fails, so the caller must discard it.
func (v *transactionValidator) ApplyTransaction(tx *externalapi.DomainTransaction,
	state model.ChainState) (*externalapi.Verdict, error) {

	verdict, err := v.ValidateTransaction(tx, state)
	if err != nil || !verdict.Accepted {
		return verdict, err
	}

	err = v.PopulateInputs(tx, state)
	if err != nil {
		return verdictFromError(tx, err)
	}

	handler, err := v.handler(tx)
	if err != nil {
		return verdictFromError(tx, err)
	}
	err = handler.Apply(tx, state)
	if err != nil {
		return verdictFromError(tx, err)
	}

	log.Debugf("Applied transaction %s", consensushashing.TransactionID(tx))
	return verdict, nil
}

// UndoTransaction reverses an applied transaction. The inputs of tx must
// have been populated when it was applied.
func (v *transactionValidator) UndoTransaction(tx *externalapi.DomainTransaction, state model.ChainState) error {
	handler, err := v.handler(tx)
	if err != nil {
		return err
	}
	err = handler.Undo(tx, state)
	if err != nil {
		return err
	}
	log.Debugf("Undid transaction %s", consensushashing.TransactionID(tx))
	return nil
}

// PopulateInputs fills the UTXOEntry of every input of tx that spends a
// previous output
func (v *transactionValidator) PopulateInputs(tx *externalapi.DomainTransaction, view model.ChainStateView) error {
	var missingOutpoints []*externalapi.DomainOutpoint
	for _, input := range tx.Inputs {
		if input.PreviousOutpoint.IsNull() {
			continue
		}
		entry, exists, err := view.UTXOEntry(&input.PreviousOutpoint)
		if err != nil {
			return err
		}
		if !exists {
			outpoint := input.PreviousOutpoint
			missingOutpoints = append(missingOutpoints, &outpoint)
			continue
		}
		input.UTXOEntry = entry
	}
	if len(missingOutpoints) > 0 {
		return ruleerrors.NewErrMissingTxOut(missingOutpoints)
	}
	return nil
}

// verdictFromError maps the outcome of a check to a verdict. Errors that
// are not rule violations are returned unchanged.
func verdictFromError(tx *externalapi.DomainTransaction, err error) (*externalapi.Verdict, error) {
	if err == nil {
		return externalapi.NewAcceptedVerdict(), nil
	}
	score, ok := ruleerrors.MisbehaviorScore(err)
	if !ok {
		return nil, err
	}
	log.Debugf("Rejected %s transaction %s: %s", tx.Type, consensushashing.TransactionID(tx), err)
	return externalapi.NewRejectedVerdict(score, err.Error()), nil
}

func recordVerdict(tx *externalapi.DomainTransaction, verdict *externalapi.Verdict) {
	if verdict.Accepted {
		verdictsTotal.WithLabelValues(tx.Type.String(), resultAccepted).Inc()
		return
	}
	verdictsTotal.WithLabelValues(tx.Type.String(), resultRejected).Inc()
	misbehaviorScoreTotal.Add(float64(verdict.MisbehaviorScore))
}
