package transactionhelper

import (
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
)

func TestNewCoinbaseTransaction(t *testing.T) {
	address := externalapi.DomainAddress("miner")

	coinbase := NewCoinbaseTransaction(address, externalapi.NewEmptyColorAmount(), 7)
	if !IsCoinBase(coinbase) {
		t.Fatalf("NewCoinbaseTransaction did not produce a coinbase")
	}
	if len(coinbase.Outputs) != 1 {
		t.Fatalf("expected a single output without fees, got %d", len(coinbase.Outputs))
	}
	if !coinbase.Outputs[0].Value.Equal(externalapi.NewColorAmount(constants.CoinbaseColor, 0)) {
		t.Fatalf("unexpected coinbase output %s", coinbase.Outputs[0].Value)
	}

	fees := externalapi.NewColorAmount(5, 10)
	fees.Add(externalapi.NewColorAmount(6, 3))
	withFees := NewCoinbaseTransaction(address, fees, 7)
	if len(withFees.Outputs) != 2 || !withFees.Outputs[1].Value.Equal(fees) {
		t.Fatalf("expected the fees in a second output")
	}
	fees.Add(externalapi.NewColorAmount(5, 1))
	if withFees.Outputs[1].Value.Equal(fees) {
		t.Fatalf("the coinbase shares its fee amount with the caller")
	}

	other := NewCoinbaseTransaction(address, externalapi.NewEmptyColorAmount(), 8)
	if consensushashing.TransactionID(coinbase).Equal(consensushashing.TransactionID(other)) {
		t.Fatalf("coinbases at different heights have the same ID")
	}
}

func TestIsCoinBase(t *testing.T) {
	coinbase := NewCoinbaseTransaction("miner", externalapi.NewEmptyColorAmount(), 1)

	withKey := coinbase.Clone()
	withKey.Inputs[0].PublicKey = []byte{1}
	if IsCoinBase(withKey) {
		t.Fatalf("an input with a public key is not a coinbase input")
	}

	mint := coinbase.Clone()
	mint.Type = externalapi.TxTypeMint
	if IsCoinBase(mint) {
		t.Fatalf("a mint is not a coinbase")
	}

	twoInputs := coinbase.Clone()
	twoInputs.Inputs = append(twoInputs.Inputs, coinbase.Inputs[0])
	if IsCoinBase(twoInputs) {
		t.Fatalf("a coinbase has a single input")
	}
}
