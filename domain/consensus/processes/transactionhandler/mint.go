package transactionhandler

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/ruleerrors"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/util"
	"github.com/pkg/errors"
)

// mintHandler creates new coins of a color on behalf of its issuer
type mintHandler struct {
	*baseHandler
}

func (h *mintHandler) CheckFormat(tx *externalapi.DomainTransaction) error {
	err := h.checkCommonFormat(tx)
	if err != nil {
		return err
	}

	if len(tx.Inputs) != 1 || !tx.Inputs[0].PreviousOutpoint.IsNull() {
		return errors.Wrapf(ruleerrors.ErrBadMintFormat, "a mint must have a single null input")
	}
	if !feeOf(tx).IsEmpty() {
		return errors.Wrapf(ruleerrors.ErrBadMintFormat, "a mint cannot carry a fee")
	}
	_, err = mintedColor(tx)
	return err
}

// mintedColor returns the single color carried by every output of tx
func mintedColor(tx *externalapi.DomainTransaction) (externalapi.Color, error) {
	var color externalapi.Color
	for i, output := range tx.Outputs {
		outputColor, err := output.Value.SingleColor()
		if err != nil {
			return 0, errors.Wrapf(ruleerrors.ErrBadMintFormat, "output %d: %s", i, err)
		}
		if i > 0 && outputColor != color {
			return 0, errors.Wrapf(ruleerrors.ErrBadMintFormat, "output %d mints color %d, "+
				"expected %d", i, outputColor, color)
		}
		color = outputColor
	}
	return color, nil
}

func (h *mintHandler) CheckValid(tx *externalapi.DomainTransaction, view model.ChainStateView) error {
	color, err := mintedColor(tx)
	if err != nil {
		return err
	}

	signer := util.AddressFromPublicKey(tx.Inputs[0].PublicKey, h.addressPrefix)
	err = verifySignature(tx, 0)
	if err != nil {
		return err
	}

	record, ok := view.LicenseRegistry().Record(color)
	if !ok || record.Owner != signer {
		return errors.Wrapf(ruleerrors.ErrUnauthorizedIssuer, "%s cannot mint color %d", signer, color)
	}

	// A mint spends nothing, so its ID is the only thing tying it to a
	// single issuance
	mintID := consensushashing.TransactionID(tx)
	if view.LicenseRegistry().HasMinted(color, mintID) {
		return errors.Wrapf(ruleerrors.ErrMintReplayed, "mint %s of color %d", mintID, color)
	}

	maxSupply := int64(constants.MaxMoney)
	if record.Info != nil && record.Info.MaxSupply > 0 && record.Info.MaxSupply < maxSupply {
		maxSupply = record.Info.MaxSupply
	}
	minted := sumOutputs(tx).Value()
	if minted > maxSupply-record.MintedSupply {
		return errors.Wrapf(ruleerrors.ErrSupplyExceeded, "minting %d of color %d on top of %d "+
			"exceeds the maximum supply of %d", minted, color, record.MintedSupply, maxSupply)
	}
	return nil
}

func (h *mintHandler) Apply(tx *externalapi.DomainTransaction, state model.ChainState) error {
	color, err := mintedColor(tx)
	if err != nil {
		return err
	}
	err = addOutputs(tx, state)
	if err != nil {
		return err
	}
	registry := state.MutableLicenseRegistry()
	err = registry.AddMint(color, consensushashing.TransactionID(tx))
	if err != nil {
		return err
	}
	minted := sumOutputs(tx).Value()
	log.Debugf("Minted %d of color %d", minted, color)
	return registry.AddMintedSupply(color, minted)
}

func (h *mintHandler) Undo(tx *externalapi.DomainTransaction, state model.ChainState) error {
	color, err := mintedColor(tx)
	if err != nil {
		return err
	}
	err = removeOutputs(tx, state)
	if err != nil {
		return err
	}
	registry := state.MutableLicenseRegistry()
	err = registry.RemoveMint(color, consensushashing.TransactionID(tx))
	if err != nil {
		return err
	}
	return registry.AddMintedSupply(color, -sumOutputs(tx).Value())
}
