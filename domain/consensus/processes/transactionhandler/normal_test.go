package transactionhandler

import (
	"strings"
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/ruleerrors"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/testutils"
	"github.com/pkg/errors"
)

type normalFixture struct {
	state  *testutils.MemoryChainState
	issuer *testutils.TestKey
	alice  *testutils.TestKey
	bob    *testutils.TestKey
	funded externalapi.DomainOutpoint
}

func newNormalFixture(t *testing.T, memberControl bool) *normalFixture {
	f := &normalFixture{
		state:  newTestState(),
		issuer: testutils.SeededTestKey(0x11),
		alice:  testutils.SeededTestKey(0x22),
		bob:    testutils.SeededTestKey(0x33),
	}
	f.state.License(5, f.issuer.Address, &externalapi.LicenseInfo{Name: "gold", MemberControl: memberControl})
	f.funded = f.state.Fund(externalapi.NewColorAmount(5, 100), f.alice.Address, externalapi.TxTypeNormal)
	return f
}

func (f *normalFixture) tx(t *testing.T, outputs ...*externalapi.DomainTransactionOutput) *externalapi.DomainTransaction {
	return signedTx(t, f.alice, externalapi.TxTypeNormal, []externalapi.DomainOutpoint{f.funded}, outputs,
		externalapi.NewColorAmount(5, 10), nil)
}

func TestNormalCheckValid(t *testing.T) {
	handler := handlerFor(t, externalapi.TxTypeNormal)

	f := newNormalFixture(t, false)
	tx := f.tx(t, output(externalapi.NewColorAmount(5, 90), f.bob.Address))
	checkRuleError(t, "valid", handler.CheckValid(tx, f.state), nil)

	// Split over two outputs
	tx = f.tx(t, output(externalapi.NewColorAmount(5, 40), f.bob.Address),
		output(externalapi.NewColorAmount(5, 50), f.alice.Address))
	checkRuleError(t, "split", handler.CheckValid(tx, f.state), nil)

	tx = f.tx(t, output(externalapi.NewColorAmount(5, 95), f.bob.Address))
	err := handler.CheckValid(tx, f.state)
	checkRuleError(t, "spend too high", err, ruleerrors.ErrSpendTooHigh)
	if !strings.Contains(err.Error(), "insufficient dominance") {
		t.Fatalf("unexpected reason: %s", err)
	}

	tx = f.tx(t, output(externalapi.NewColorAmount(5, 80), f.bob.Address))
	checkRuleError(t, "unbalanced", handler.CheckValid(tx, f.state), ruleerrors.ErrUnbalancedTransaction)

	f.state.License(6, f.issuer.Address, &externalapi.LicenseInfo{Name: "silver"})
	tx = f.tx(t, output(externalapi.NewColorAmountFromEntries(
		externalapi.ColorAmountEntry{Color: 5, Value: 90},
		externalapi.ColorAmountEntry{Color: 6, Value: 1},
	), f.bob.Address))
	checkRuleError(t, "color missing from inputs", handler.CheckValid(tx, f.state), ruleerrors.ErrSpendTooHigh)

	tx = f.tx(t, output(externalapi.NewColorAmount(7, 90), f.bob.Address))
	checkRuleError(t, "unknown color", handler.CheckValid(tx, f.state), ruleerrors.ErrUnknownColor)

	tx = signedTx(t, f.bob, externalapi.TxTypeNormal, []externalapi.DomainOutpoint{f.funded},
		[]*externalapi.DomainTransactionOutput{output(externalapi.NewColorAmount(5, 90), f.bob.Address)},
		externalapi.NewColorAmount(5, 10), nil)
	checkRuleError(t, "wrong signer", handler.CheckValid(tx, f.state), ruleerrors.ErrWrongSigner)

	tx = f.tx(t, output(externalapi.NewColorAmount(5, 90), f.bob.Address))
	tx.LockTime = 77
	checkRuleError(t, "invalid signature", handler.CheckValid(tx, f.state), ruleerrors.ErrInvalidSignature)

	token := f.state.Fund(externalapi.NewColorAmount(5, 100), f.alice.Address, externalapi.TxTypeLicense)
	tx = signedTx(t, f.alice, externalapi.TxTypeNormal, []externalapi.DomainOutpoint{token},
		[]*externalapi.DomainTransactionOutput{output(externalapi.NewColorAmount(5, 100), f.bob.Address)},
		nil, nil)
	checkRuleError(t, "license token spend", handler.CheckValid(tx, f.state), ruleerrors.ErrLicenseTokenSpend)
}

func TestNormalMissingInput(t *testing.T) {
	handler := handlerFor(t, externalapi.TxTypeNormal)
	f := newNormalFixture(t, false)
	tx := f.tx(t, output(externalapi.NewColorAmount(5, 90), f.bob.Address))
	delete(f.state.UTXOs, f.funded)

	err := handler.CheckValid(tx, f.state)
	var missing ruleerrors.ErrMissingTxOut
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingTxOut, got %v", err)
	}
	if len(missing.MissingOutpoints) != 1 || *missing.MissingOutpoints[0] != f.funded {
		t.Fatalf("unexpected missing outpoints %v", missing.MissingOutpoints)
	}
	score, ok := ruleerrors.MisbehaviorScore(err)
	if !ok || score != 0 {
		t.Fatalf("expected misbehavior score 0, got %d (%t)", score, ok)
	}
}

func TestNormalMemberControl(t *testing.T) {
	handler := handlerFor(t, externalapi.TxTypeNormal)
	f := newNormalFixture(t, true)

	tx := f.tx(t, output(externalapi.NewColorAmount(5, 90), f.bob.Address))
	err := handler.CheckValid(tx, f.state)
	checkRuleError(t, "not activated", err, ruleerrors.ErrMemberNotActivated)
	score, _ := ruleerrors.MisbehaviorScore(err)
	if score != 30 {
		t.Fatalf("expected misbehavior score 30, got %d", score)
	}

	tx = f.tx(t, output(externalapi.NewColorAmount(5, 90), f.issuer.Address))
	checkRuleError(t, "paying the issuer", handler.CheckValid(tx, f.state), nil)

	f.state.Registry.Activate(5, f.bob.Address)
	tx = f.tx(t, output(externalapi.NewColorAmount(5, 90), f.bob.Address))
	checkRuleError(t, "activated", handler.CheckValid(tx, f.state), nil)
}

func TestNormalApplyAndUndo(t *testing.T) {
	handler := handlerFor(t, externalapi.TxTypeNormal)
	f := newNormalFixture(t, false)
	tx := f.tx(t, output(externalapi.NewColorAmount(5, 90), f.bob.Address))
	f.state.Populate(tx)

	err := handler.Apply(tx, f.state)
	if err != nil {
		t.Fatalf("Apply: %+v", err)
	}
	if _, ok := f.state.UTXOs[f.funded]; ok {
		t.Fatalf("the spent output still exists")
	}
	if len(f.state.UTXOs) != 1 {
		t.Fatalf("expected a single UTXO, got %d", len(f.state.UTXOs))
	}
	for _, entry := range f.state.UTXOs {
		if entry.Address() != f.bob.Address || entry.BlockHeight() != f.state.Height {
			t.Fatalf("unexpected created entry %+v", entry)
		}
	}

	err = handler.Undo(tx, f.state)
	if err != nil {
		t.Fatalf("Undo: %+v", err)
	}
	if _, ok := f.state.UTXOs[f.funded]; !ok || len(f.state.UTXOs) != 1 {
		t.Fatalf("Undo did not restore the spent output")
	}
}
