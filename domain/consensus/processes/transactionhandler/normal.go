package transactionhandler

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

// normalHandler moves colored coins between addresses
type normalHandler struct {
	*baseHandler
}

func (h *normalHandler) CheckFormat(tx *externalapi.DomainTransaction) error {
	err := h.checkCommonFormat(tx)
	if err != nil {
		return err
	}
	return checkSpendingInputs(tx)
}

func (h *normalHandler) CheckValid(tx *externalapi.DomainTransaction, view model.ChainStateView) error {
	resolved, err := h.resolveInputs(tx, view)
	if err != nil {
		return err
	}
	inputs, err := sumInputs(resolved)
	if err != nil {
		return err
	}

	registry := view.LicenseRegistry()
	err = checkColorsRegistered(tx, inputs, registry)
	if err != nil {
		return err
	}
	err = checkNoLicenseTokens(resolved)
	if err != nil {
		return err
	}
	err = checkBalance(tx, inputs)
	if err != nil {
		return err
	}
	return checkReceiversActivated(tx, registry)
}

func (h *normalHandler) Apply(tx *externalapi.DomainTransaction, state model.ChainState) error {
	return moveUTXOs(tx, state)
}

func (h *normalHandler) Undo(tx *externalapi.DomainTransaction, state model.ChainState) error {
	return restoreUTXOs(tx, state)
}
