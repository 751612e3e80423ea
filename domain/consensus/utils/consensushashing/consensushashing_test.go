package consensushashing

import (
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

func testTransaction() *externalapi.DomainTransaction {
	return &externalapi.DomainTransaction{
		Version: 1,
		Type:    externalapi.TxTypeNormal,
		Inputs: []*externalapi.DomainTransactionInput{
			{
				PreviousOutpoint: externalapi.DomainOutpoint{Index: 2},
				PublicKey:        []byte{1, 2, 3},
				Signature:        []byte{4, 5, 6},
			},
			{
				PreviousOutpoint: externalapi.DomainOutpoint{Index: 3},
				PublicKey:        []byte{1, 2, 3},
			},
		},
		Outputs: []*externalapi.DomainTransactionOutput{
			{Value: externalapi.NewColorAmount(3, 1564), Address: "address"},
		},
		Fee: externalapi.NewEmptyColorAmount(),
	}
}

func TestTransactionIDIgnoresSignatures(t *testing.T) {
	tx := testTransaction()
	id := TransactionID(tx)
	hash := TransactionHash(tx)

	signed := tx.Clone()
	signed.Inputs[1].Signature = []byte{7, 8, 9}
	if !TransactionID(signed).Equal(id) {
		t.Fatalf("adding a signature changed the transaction ID")
	}
	if TransactionHash(signed).Equal(hash) {
		t.Fatalf("adding a signature did not change the transaction hash")
	}

	modified := tx.Clone()
	modified.Outputs[0].Value = externalapi.NewColorAmount(3, 1565)
	if TransactionID(modified).Equal(id) {
		t.Fatalf("changing an output did not change the transaction ID")
	}
}

func TestCalculateSignatureHash(t *testing.T) {
	tx := testTransaction()
	first, err := CalculateSignatureHash(tx, 0)
	if err != nil {
		t.Fatalf("CalculateSignatureHash: %s", err)
	}
	second, err := CalculateSignatureHash(tx, 1)
	if err != nil {
		t.Fatalf("CalculateSignatureHash: %s", err)
	}
	if first.Equal(second) {
		t.Fatalf("signature hashes of different inputs should differ")
	}

	signed := tx.Clone()
	signed.Inputs[0].Signature = []byte{0xff}
	firstAfterSigning, err := CalculateSignatureHash(signed, 0)
	if err != nil {
		t.Fatalf("CalculateSignatureHash: %s", err)
	}
	if !first.Equal(firstAfterSigning) {
		t.Fatalf("the signature hash should not commit to signatures")
	}

	_, err = CalculateSignatureHash(tx, 2)
	if err == nil {
		t.Fatalf("expected an error for an out of range input index")
	}
}

func TestHeaderHash(t *testing.T) {
	header := &externalapi.DomainBlockHeader{Version: 1, Height: 10, Nonce: 5}
	hash := HeaderHash(header)

	other := header.Clone()
	other.Nonce++
	if HeaderHash(other).Equal(hash) {
		t.Fatalf("changing the nonce did not change the header hash")
	}
	if !HeaderHash(header.Clone()).Equal(hash) {
		t.Fatalf("hashing a clone produced a different hash")
	}
}
