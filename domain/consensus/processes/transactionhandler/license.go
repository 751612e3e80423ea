package transactionhandler

import (
	"bytes"
	"encoding/json"

	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/ruleerrors"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/pkg/errors"
)

// LicenseInfoVersion is the highest license info version this node
// understands
const LicenseInfoVersion = 1

// licenseHandler creates licenses of new colors and transfers existing
// ones
type licenseHandler struct {
	*baseHandler
}

// DecodeLicenseInfo parses the JSON payload of a license creation
func DecodeLicenseInfo(payload []byte) (*externalapi.LicenseInfo, error) {
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()
	info := &externalapi.LicenseInfo{}
	err := decoder.Decode(info)
	if err != nil {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidLicenseInfo, "%s", err)
	}
	if decoder.More() {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidLicenseInfo, "trailing data after license info")
	}
	if info.Version > LicenseInfoVersion {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidLicenseInfo, "unknown license info version %d", info.Version)
	}
	if info.Name == "" {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidLicenseInfo, "license info has no name")
	}
	if info.MaxSupply < 0 || info.MaxSupply > constants.MaxMoney {
		return nil, errors.Wrapf(ruleerrors.ErrInvalidLicenseInfo, "max supply %d is outside [0, %d]",
			info.MaxSupply, int64(constants.MaxMoney))
	}
	return info, nil
}

// EncodeLicenseInfo serializes info into a license creation payload
func EncodeLicenseInfo(info *externalapi.LicenseInfo) ([]byte, error) {
	payload, err := json.Marshal(info)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return payload, nil
}

func (h *licenseHandler) CheckFormat(tx *externalapi.DomainTransaction) error {
	err := h.checkCommonFormat(tx)
	if err != nil {
		return err
	}
	err = checkSpendingInputs(tx)
	if err != nil {
		return err
	}

	if len(tx.Outputs) != 1 {
		return errors.Wrapf(ruleerrors.ErrBadLicenseFormat, "a license transaction must have a single output, "+
			"got %d", len(tx.Outputs))
	}
	_, err = licensedColor(tx)
	if err != nil {
		return err
	}
	if !feeOf(tx).IsEmpty() {
		return errors.Wrapf(ruleerrors.ErrBadLicenseFormat, "a license transaction cannot carry a fee")
	}
	return nil
}

// licensedColor returns the color of the single license token output of tx
func licensedColor(tx *externalapi.DomainTransaction) (externalapi.Color, error) {
	value := tx.Outputs[0].Value
	color, err := value.SingleColor()
	if err != nil {
		return 0, errors.Wrapf(ruleerrors.ErrBadLicenseFormat, "%s", err)
	}
	amount, _ := value.Get(color)
	if amount != constants.LicenseTokenAmount {
		return 0, errors.Wrapf(ruleerrors.ErrBadLicenseFormat, "license token carries %d, expected %d",
			amount, int64(constants.LicenseTokenAmount))
	}
	return color, nil
}

// isCreation reports whether the resolved inputs authorize a new license:
// one of them must be admin color held by the license authority
func isCreation(resolved []*resolvedInput, authority externalapi.DomainAddress) bool {
	for _, in := range resolved {
		if in.entry.Address() == authority && in.entry.Amount().Has(constants.AdminColor) {
			return true
		}
	}
	return false
}

func isCreationInput(input *externalapi.DomainTransactionInput, authority externalapi.DomainAddress) bool {
	return input.UTXOEntry != nil && input.UTXOEntry.Address() == authority &&
		input.UTXOEntry.Amount().Has(constants.AdminColor)
}

// licenseTokenInput returns the input that spends a license token of color
func licenseTokenInput(resolved []*resolvedInput, color externalapi.Color) (*resolvedInput, bool) {
	for _, in := range resolved {
		if in.entry.TxType() == externalapi.TxTypeLicense && in.entry.Amount().Has(color) {
			return in, true
		}
	}
	return nil, false
}

func (h *licenseHandler) CheckValid(tx *externalapi.DomainTransaction, view model.ChainStateView) error {
	color, err := licensedColor(tx)
	if err != nil {
		return err
	}
	resolved, err := h.resolveInputs(tx, view)
	if err != nil {
		return err
	}

	registry := view.LicenseRegistry()
	if isCreation(resolved, view.LicenseAuthority()) {
		if registry.IsRegistered(color) {
			return errors.Wrapf(ruleerrors.ErrColorAlreadyLicensed, "color %d is already licensed", color)
		}
		_, err = DecodeLicenseInfo(tx.Payload)
		return err
	}

	owner, ok := registry.GetOwner(color)
	if !ok {
		return errors.Wrapf(ruleerrors.ErrUnknownColor, "cannot transfer the license of unlicensed color %d", color)
	}
	token, ok := licenseTokenInput(resolved, color)
	if !ok {
		return errors.Wrapf(ruleerrors.ErrNotLicenseOwner, "no input spends the license token of color %d", color)
	}
	if token.entry.Address() != owner {
		return errors.Wrapf(ruleerrors.ErrNotLicenseOwner, "license token of color %d is held by %s, owner is %s",
			color, token.entry.Address(), owner)
	}
	return nil
}

func (h *licenseHandler) Apply(tx *externalapi.DomainTransaction, state model.ChainState) error {
	color, err := licensedColor(tx)
	if err != nil {
		return err
	}
	creation, err := h.populatedCreation(tx, state)
	if err != nil {
		return err
	}

	err = moveUTXOs(tx, state)
	if err != nil {
		return err
	}

	newOwner := tx.Outputs[0].Address
	registry := state.MutableLicenseRegistry()
	if !creation {
		log.Debugf("Transferring the license of color %d to %s", color, newOwner)
		return registry.TransferOwner(color, newOwner)
	}

	info, err := DecodeLicenseInfo(tx.Payload)
	if err != nil {
		return err
	}
	ok, err := registry.SetOwner(color, newOwner, info)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ruleerrors.ErrColorAlreadyLicensed, "color %d is already licensed", color)
	}
	log.Debugf("Licensed color %d to %s", color, newOwner)
	return nil
}

func (h *licenseHandler) Undo(tx *externalapi.DomainTransaction, state model.ChainState) error {
	color, err := licensedColor(tx)
	if err != nil {
		return err
	}
	creation, err := h.populatedCreation(tx, state)
	if err != nil {
		return err
	}

	err = restoreUTXOs(tx, state)
	if err != nil {
		return err
	}

	registry := state.MutableLicenseRegistry()
	if creation {
		return registry.RemoveColor(color)
	}
	for _, input := range tx.Inputs {
		entry := input.UTXOEntry
		if entry.TxType() == externalapi.TxTypeLicense && entry.Amount().Has(color) {
			return registry.TransferOwner(color, entry.Address())
		}
	}
	return errors.Errorf("cannot undo the license transfer of color %d: no license token input", color)
}

// populatedCreation decides creation versus transfer from the populated
// input entries
func (h *licenseHandler) populatedCreation(tx *externalapi.DomainTransaction, state model.ChainState) (bool, error) {
	for i, input := range tx.Inputs {
		if input.UTXOEntry == nil {
			return false, errors.Errorf("input %d is not populated", i)
		}
		if isCreationInput(input, state.LicenseAuthority()) {
			return true, nil
		}
	}
	return false, nil
}
