package transactionhandler

import (
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/testutils"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/txsign"
	"github.com/gcoinproject/gcoind/domain/dagconfig"
	"github.com/pkg/errors"
)

var testPrefix = dagconfig.RegtestParams.AddressPrefix

var output = testutils.Output

func newTestState() *testutils.MemoryChainState {
	return testutils.NewMemoryChainState(testutils.AuthorityTestKey().Address)
}

func signedTx(t *testing.T, key *testutils.TestKey, txType externalapi.TxType, outpoints []externalapi.DomainOutpoint,
	outputs []*externalapi.DomainTransactionOutput, fee *externalapi.ColorAmount,
	payload []byte) *externalapi.DomainTransaction {

	tx, err := testutils.SignedTransaction(key, txType, outpoints, outputs, fee, payload)
	if err != nil {
		t.Fatalf("SignedTransaction: %s", err)
	}
	return tx
}

func resign(t *testing.T, tx *externalapi.DomainTransaction, key *testutils.TestKey) {
	err := txsign.SignAllInputs(tx, key.KeyPair)
	if err != nil {
		t.Fatalf("SignAllInputs: %s", err)
	}
}

func handlerFor(t *testing.T, txType externalapi.TxType) model.TransactionHandler {
	handler, ok := New(testPrefix).GetHandler(txType)
	if !ok {
		t.Fatalf("no handler for %s", txType)
	}
	return handler
}

func checkRuleError(t *testing.T, name string, err error, expected error) {
	if expected == nil {
		if err != nil {
			t.Fatalf("%s: unexpected error: %+v", name, err)
		}
		return
	}
	if !errors.Is(err, expected) {
		t.Fatalf("%s: expected %v, got %v", name, expected, err)
	}
}
