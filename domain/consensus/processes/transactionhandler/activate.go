package transactionhandler

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// activateHandler lets the owner of a member controlled color activate the
// addresses it pays
type activateHandler struct {
	*baseHandler
}

func (h *activateHandler) CheckFormat(tx *externalapi.DomainTransaction) error {
	err := h.checkCommonFormat(tx)
	if err != nil {
		return err
	}
	return checkSpendingInputs(tx)
}

func (h *activateHandler) CheckValid(tx *externalapi.DomainTransaction, view model.ChainStateView) error {
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

	spender := resolved[0].entry.Address()
	for _, in := range resolved[1:] {
		if in.entry.Address() != spender {
			return errors.Wrapf(ruleerrors.ErrNotLicenseOwner, "activation inputs are held by both %s and %s",
				spender, in.entry.Address())
		}
	}

	for _, color := range sumOutputs(tx).Colors() {
		record, ok := registry.Record(color)
		if !ok {
			return errors.Wrapf(ruleerrors.ErrUnknownColor, "color %d is not licensed", color)
		}
		if record.Owner != spender {
			return errors.Wrapf(ruleerrors.ErrNotLicenseOwner, "%s does not own color %d", spender, color)
		}
		if record.Info == nil || !record.Info.MemberControl {
			return errors.Wrapf(ruleerrors.ErrColorNotMemberControlled, "color %d is not member controlled", color)
		}
	}
	return nil
}

func (h *activateHandler) Apply(tx *externalapi.DomainTransaction, state model.ChainState) error {
	err := moveUTXOs(tx, state)
	if err != nil {
		return err
	}
	registry := state.MutableLicenseRegistry()
	for _, output := range tx.Outputs {
		for _, color := range output.Value.Colors() {
			err := registry.Activate(color, output.Address)
			if err != nil {
				return err
			}
			log.Debugf("Activated %s for color %d", output.Address, color)
		}
	}
	return nil
}

func (h *activateHandler) Undo(tx *externalapi.DomainTransaction, state model.ChainState) error {
	registry := state.MutableLicenseRegistry()
	for _, output := range tx.Outputs {
		for _, color := range output.Value.Colors() {
			err := registry.Deactivate(color, output.Address)
			if err != nil {
				return err
			}
		}
	}
	return restoreUTXOs(tx, state)
}
