package transactionhandler

import (
	"bytes"
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/ruleerrors"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/testutils"
)

func TestGetHandler(t *testing.T) {
	dispatcher := New(testPrefix)
	for _, txType := range []externalapi.TxType{externalapi.TxTypeNormal, externalapi.TxTypeMint,
		externalapi.TxTypeLicense, externalapi.TxTypeActivate} {

		if _, ok := dispatcher.GetHandler(txType); !ok {
			t.Fatalf("no handler for %s", txType)
		}
	}
	if _, ok := dispatcher.GetHandler(externalapi.TxType(42)); ok {
		t.Fatalf("got a handler for an unknown type")
	}
}

func TestCheckFormat(t *testing.T) {
	alice := testutils.SeededTestKey(0x22)
	bob := testutils.SeededTestKey(0x33)
	state := newTestState()
	funded := state.Fund(externalapi.NewColorAmount(5, 100), alice.Address, externalapi.TxTypeNormal)

	tests := []struct {
		name          string
		modify        func(tx *externalapi.DomainTransaction)
		resign        bool
		expectedError error
	}{
		{"valid", func(tx *externalapi.DomainTransaction) {}, false, nil},
		{"unknown version", func(tx *externalapi.DomainTransaction) {
			tx.Version = constants.TransactionVersion + 1
		}, true, ruleerrors.ErrTransactionVersionIsUnknown},
		{"no inputs", func(tx *externalapi.DomainTransaction) {
			tx.Inputs = nil
		}, false, ruleerrors.ErrNoTxInputs},
		{"no outputs", func(tx *externalapi.DomainTransaction) {
			tx.Outputs = nil
		}, true, ruleerrors.ErrNoTxOutputs},
		{"duplicate inputs", func(tx *externalapi.DomainTransaction) {
			tx.Inputs = append(tx.Inputs, tx.Inputs[0].Clone())
		}, true, ruleerrors.ErrDuplicateTxInputs},
		{"empty output", func(tx *externalapi.DomainTransaction) {
			tx.Outputs[0].Value = externalapi.NewEmptyColorAmount()
		}, true, ruleerrors.ErrBadTxOutValue},
		{"negative output", func(tx *externalapi.DomainTransaction) {
			tx.Outputs[0].Value = externalapi.NewColorAmount(5, -1)
		}, true, ruleerrors.ErrBadTxOutValue},
		{"output above max money", func(tx *externalapi.DomainTransaction) {
			tx.Outputs[0].Value = externalapi.NewColorAmount(5, constants.MaxMoney+1)
		}, true, ruleerrors.ErrBadTxOutValue},
		{"output total above max money", func(tx *externalapi.DomainTransaction) {
			tx.Outputs[0].Value = externalapi.NewColorAmount(5, constants.MaxMoney)
			tx.Outputs = append(tx.Outputs, output(externalapi.NewColorAmount(5, 1), bob.Address))
		}, true, ruleerrors.ErrBadTxOutValue},
		{"reserved color", func(tx *externalapi.DomainTransaction) {
			tx.Outputs[0].Value = externalapi.NewColorAmount(constants.CoinbaseColor, 1)
		}, true, ruleerrors.ErrReservedColor},
		{"negative fee", func(tx *externalapi.DomainTransaction) {
			tx.Fee = externalapi.NewColorAmount(5, -10)
		}, true, ruleerrors.ErrBadFee},
		{"bad address", func(tx *externalapi.DomainTransaction) {
			tx.Outputs[0].Address = "not-an-address"
		}, true, ruleerrors.ErrBadAddress},
		{"payload too large", func(tx *externalapi.DomainTransaction) {
			tx.Payload = bytes.Repeat([]byte{1}, constants.MaxPayloadSize+1)
		}, true, ruleerrors.ErrPayloadTooLarge},
		{"short signature", func(tx *externalapi.DomainTransaction) {
			tx.Inputs[0].Signature = tx.Inputs[0].Signature[:10]
		}, false, ruleerrors.ErrMalformedSignature},
		{"null outpoint", func(tx *externalapi.DomainTransaction) {
			tx.Inputs[0].PreviousOutpoint = externalapi.NewNullOutpoint()
		}, true, ruleerrors.ErrNullOutpointSpend},
	}

	handler := handlerFor(t, externalapi.TxTypeNormal)
	for _, test := range tests {
		tx := signedTx(t, alice, externalapi.TxTypeNormal, []externalapi.DomainOutpoint{funded},
			[]*externalapi.DomainTransactionOutput{output(externalapi.NewColorAmount(5, 90), bob.Address)},
			externalapi.NewColorAmount(5, 10), nil)
		test.modify(tx)
		if test.resign {
			resign(t, tx, alice)
		}
		checkRuleError(t, test.name, handler.CheckFormat(tx), test.expectedError)
	}
}
