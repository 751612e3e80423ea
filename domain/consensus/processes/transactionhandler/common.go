package transactionhandler

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/ruleerrors"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/txsign"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxo"
	"github.com/gcoinproject/gcoind/util"
	"github.com/pkg/errors"
)

// baseHandler holds the checks shared by every transaction type
type baseHandler struct {
	addressPrefix byte
}

// resolvedInput is an input together with the output it spends
type resolvedInput struct {
	index int
	input *externalapi.DomainTransactionInput
	entry externalapi.UTXOEntry
}

func (h *baseHandler) checkCommonFormat(tx *externalapi.DomainTransaction) error {
	if tx.Version > constants.TransactionVersion {
		return errors.Wrapf(ruleerrors.ErrTransactionVersionIsUnknown,
			"transaction version %d is above the maximum known version %d", tx.Version, constants.TransactionVersion)
	}
	if len(tx.Inputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoTxInputs, "transaction has no inputs")
	}
	if len(tx.Outputs) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoTxOutputs, "transaction has no outputs")
	}

	err := checkDuplicateTransactionInputs(tx)
	if err != nil {
		return err
	}
	err = checkTransactionAmountRanges(tx)
	if err != nil {
		return err
	}
	err = checkFee(tx)
	if err != nil {
		return err
	}
	err = h.checkAddresses(tx)
	if err != nil {
		return err
	}
	if len(tx.Payload) > constants.MaxPayloadSize {
		return errors.Wrapf(ruleerrors.ErrPayloadTooLarge, "payload of %d bytes is above the maximum of %d",
			len(tx.Payload), constants.MaxPayloadSize)
	}
	return checkSignatureSizes(tx)
}

func checkDuplicateTransactionInputs(tx *externalapi.DomainTransaction) error {
	existingTxOut := make(map[externalapi.DomainOutpoint]struct{})
	for _, input := range tx.Inputs {
		if _, exists := existingTxOut[input.PreviousOutpoint]; exists {
			return errors.Wrapf(ruleerrors.ErrDuplicateTxInputs, "transaction "+
				"contains duplicate input %s", input.PreviousOutpoint)
		}
		existingTxOut[input.PreviousOutpoint] = struct{}{}
	}
	return nil
}

// checkTransactionAmountRanges ensures every output carries at least one
// color, every amount lies in [0, MaxMoney], and the per-color total of all
// outputs does not exceed MaxMoney
func checkTransactionAmountRanges(tx *externalapi.DomainTransaction) error {
	totals := make(map[externalapi.Color]int64)
	for i, output := range tx.Outputs {
		if output.Value == nil || output.Value.IsEmpty() {
			return errors.Wrapf(ruleerrors.ErrBadTxOutValue, "output %d carries no value", i)
		}
		for _, entry := range output.Value.Entries() {
			if entry.Color == constants.CoinbaseColor {
				return errors.Wrapf(ruleerrors.ErrReservedColor, "output %d carries color %d", i, entry.Color)
			}
			if entry.Value < 0 || entry.Value > constants.MaxMoney {
				return errors.Wrapf(ruleerrors.ErrBadTxOutValue, "output %d value %d of color %d "+
					"is outside [0, %d]", i, entry.Value, entry.Color, int64(constants.MaxMoney))
			}
			totals[entry.Color] += entry.Value
			if totals[entry.Color] > constants.MaxMoney {
				return errors.Wrapf(ruleerrors.ErrBadTxOutValue, "total output value of color %d "+
					"is higher than max allowed value of %d", entry.Color, int64(constants.MaxMoney))
			}
		}
	}
	return nil
}

func checkFee(tx *externalapi.DomainTransaction) error {
	if tx.Fee == nil {
		return nil
	}
	for _, entry := range tx.Fee.Entries() {
		if entry.Color == constants.CoinbaseColor {
			return errors.Wrapf(ruleerrors.ErrReservedColor, "fee carries color %d", entry.Color)
		}
		if entry.Value < 0 || entry.Value > constants.MaxMoney {
			return errors.Wrapf(ruleerrors.ErrBadFee, "fee %d of color %d is outside [0, %d]",
				entry.Value, entry.Color, int64(constants.MaxMoney))
		}
	}
	return nil
}

func (h *baseHandler) checkAddresses(tx *externalapi.DomainTransaction) error {
	for i, output := range tx.Outputs {
		_, err := util.DecodeAddress(output.Address, h.addressPrefix)
		if err != nil {
			return errors.Wrapf(ruleerrors.ErrBadAddress, "output %d: %s", i, err)
		}
	}
	return nil
}

func checkSignatureSizes(tx *externalapi.DomainTransaction) error {
	for i, input := range tx.Inputs {
		if len(input.PublicKey) != txsign.PublicKeySize {
			return errors.Wrapf(ruleerrors.ErrMalformedSignature, "input %d public key is %d bytes, expected %d",
				i, len(input.PublicKey), txsign.PublicKeySize)
		}
		if len(input.Signature) != txsign.SignatureSize {
			return errors.Wrapf(ruleerrors.ErrMalformedSignature, "input %d signature is %d bytes, expected %d",
				i, len(input.Signature), txsign.SignatureSize)
		}
	}
	return nil
}

// checkSpendingInputs rejects null outpoints in transactions that spend
// previous outputs
func checkSpendingInputs(tx *externalapi.DomainTransaction) error {
	for i, input := range tx.Inputs {
		if input.PreviousOutpoint.IsNull() {
			return errors.Wrapf(ruleerrors.ErrNullOutpointSpend, "input %d spends the null outpoint", i)
		}
	}
	return nil
}

// resolveInputs looks up the output spent by every input and checks that
// the input is signed by its holder
func (h *baseHandler) resolveInputs(tx *externalapi.DomainTransaction, view model.ChainStateView) ([]*resolvedInput, error) {
	resolved := make([]*resolvedInput, 0, len(tx.Inputs))
	var missingOutpoints []*externalapi.DomainOutpoint
	for i, input := range tx.Inputs {
		entry, exists, err := view.UTXOEntry(&input.PreviousOutpoint)
		if err != nil {
			return nil, err
		}
		if !exists {
			outpoint := input.PreviousOutpoint
			missingOutpoints = append(missingOutpoints, &outpoint)
			continue
		}
		resolved = append(resolved, &resolvedInput{index: i, input: input, entry: entry})
	}
	if len(missingOutpoints) > 0 {
		return nil, ruleerrors.NewErrMissingTxOut(missingOutpoints)
	}

	for _, in := range resolved {
		signer := util.AddressFromPublicKey(in.input.PublicKey, h.addressPrefix)
		if signer != in.entry.Address() {
			return nil, errors.Wrapf(ruleerrors.ErrWrongSigner, "input %d is signed by %s but spends an output of %s",
				in.index, signer, in.entry.Address())
		}
		err := verifySignature(tx, in.index)
		if err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

func verifySignature(tx *externalapi.DomainTransaction, index int) error {
	err := txsign.VerifyInput(tx, index)
	if err != nil {
		if errors.Is(err, txsign.ErrInvalidSignature) {
			return errors.Wrapf(ruleerrors.ErrInvalidSignature, "input %d: %s", index, err)
		}
		return err
	}
	return nil
}

func sumInputs(resolved []*resolvedInput) (*externalapi.ColorAmount, error) {
	total := externalapi.NewEmptyColorAmount()
	for _, in := range resolved {
		for _, entry := range in.entry.Amount().Entries() {
			current, _ := total.Get(entry.Color)
			if entry.Value < 0 || current+entry.Value > constants.MaxMoney {
				return nil, errors.Wrapf(ruleerrors.ErrBadTxOutValue, "total input value of color %d "+
					"is out of range", entry.Color)
			}
		}
		total.Add(in.entry.Amount())
	}
	return total, nil
}

// sumOutputs returns the sum of the outputs of tx. Output ranges must
// already have been checked.
func sumOutputs(tx *externalapi.DomainTransaction) *externalapi.ColorAmount {
	total := externalapi.NewEmptyColorAmount()
	for _, output := range tx.Outputs {
		total.Add(output.Value)
	}
	return total
}

func feeOf(tx *externalapi.DomainTransaction) *externalapi.ColorAmount {
	if tx.Fee == nil {
		return externalapi.NewEmptyColorAmount()
	}
	return tx.Fee
}

// checkBalance requires the inputs to cover outputs plus fee in every color,
// and then to match them exactly
func checkBalance(tx *externalapi.DomainTransaction, inputs *externalapi.ColorAmount) error {
	spent := sumOutputs(tx).Plus(feeOf(tx))
	if !inputs.Dominates(spent) {
		return errors.Wrapf(ruleerrors.ErrSpendTooHigh, "inputs %s do not cover outputs and fee %s", inputs, spent)
	}
	if !inputs.Equal(spent) {
		return errors.Wrapf(ruleerrors.ErrUnbalancedTransaction, "inputs %s differ from outputs and fee %s",
			inputs, spent)
	}
	return nil
}

// checkColorsRegistered requires every color moved by tx to be licensed
func checkColorsRegistered(tx *externalapi.DomainTransaction, inputs *externalapi.ColorAmount,
	registry model.ReadOnlyLicenseRegistry) error {

	amounts := []*externalapi.ColorAmount{inputs, feeOf(tx)}
	for _, output := range tx.Outputs {
		amounts = append(amounts, output.Value)
	}
	for _, amount := range amounts {
		for _, color := range amount.Colors() {
			if !registry.IsRegistered(color) {
				return errors.Wrapf(ruleerrors.ErrUnknownColor, "color %d is not licensed", color)
			}
		}
	}
	return nil
}

func checkNoLicenseTokens(resolved []*resolvedInput) error {
	for _, in := range resolved {
		if in.entry.TxType() == externalapi.TxTypeLicense {
			return errors.Wrapf(ruleerrors.ErrLicenseTokenSpend, "input %d spends a license token", in.index)
		}
	}
	return nil
}

// checkReceiversActivated requires every receiver of a member controlled
// color, other than its owner, to be activated
func checkReceiversActivated(tx *externalapi.DomainTransaction, registry model.ReadOnlyLicenseRegistry) error {
	for i, output := range tx.Outputs {
		for _, color := range output.Value.Colors() {
			record, ok := registry.Record(color)
			if !ok || record.Info == nil || !record.Info.MemberControl {
				continue
			}
			if output.Address == record.Owner {
				continue
			}
			if !registry.IsActivated(color, output.Address) {
				return errors.Wrapf(ruleerrors.ErrMemberNotActivated, "output %d: %s is not activated for color %d",
					i, output.Address, color)
			}
		}
	}
	return nil
}

// moveUTXOs spends the inputs of tx and creates its outputs
func moveUTXOs(tx *externalapi.DomainTransaction, state model.ChainState) error {
	for _, input := range tx.Inputs {
		if input.PreviousOutpoint.IsNull() {
			continue
		}
		err := state.RemoveUTXO(&input.PreviousOutpoint)
		if err != nil {
			return err
		}
	}
	return addOutputs(tx, state)
}

func addOutputs(tx *externalapi.DomainTransaction, state model.ChainState) error {
	txID := consensushashing.TransactionID(tx)
	for _, pair := range utxo.EntriesForTransaction(tx, txID, state.BlockHeight()) {
		err := state.AddUTXO(pair.Outpoint, pair.UTXOEntry)
		if err != nil {
			return err
		}
	}
	return nil
}

// restoreUTXOs reverses moveUTXOs using the populated input entries
func restoreUTXOs(tx *externalapi.DomainTransaction, state model.ChainState) error {
	err := removeOutputs(tx, state)
	if err != nil {
		return err
	}
	for i, input := range tx.Inputs {
		if input.PreviousOutpoint.IsNull() {
			continue
		}
		if input.UTXOEntry == nil {
			return errors.Errorf("cannot undo transaction %s: input %d is not populated",
				consensushashing.TransactionID(tx), i)
		}
		err := state.AddUTXO(&input.PreviousOutpoint, input.UTXOEntry)
		if err != nil {
			return err
		}
	}
	return nil
}

func removeOutputs(tx *externalapi.DomainTransaction, state model.ChainState) error {
	txID := consensushashing.TransactionID(tx)
	for i := range tx.Outputs {
		outpoint := &externalapi.DomainOutpoint{TransactionID: *txID, Index: uint32(i)}
		err := state.RemoveUTXO(outpoint)
		if err != nil {
			return err
		}
	}
	return nil
}
