package txsign

import (
	"bytes"
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

func testKeyPairBytes(seed byte) []byte {
	privateKeyBytes := bytes.Repeat([]byte{seed}, 32)
	privateKeyBytes[0] = 0x01
	return privateKeyBytes
}

func unsignedTransaction() *externalapi.DomainTransaction {
	return &externalapi.DomainTransaction{
		Version: 1,
		Type:    externalapi.TxTypeNormal,
		Inputs: []*externalapi.DomainTransactionInput{
			{PreviousOutpoint: externalapi.DomainOutpoint{Index: 0}},
			{PreviousOutpoint: externalapi.DomainOutpoint{Index: 1}},
		},
		Outputs: []*externalapi.DomainTransactionOutput{
			{Value: externalapi.NewColorAmount(4, 100), Address: "receiver"},
		},
		Fee: externalapi.NewEmptyColorAmount(),
	}
}

func TestSignAndVerify(t *testing.T) {
	keyPair, err := KeyPairFromBytes(testKeyPairBytes(0x11))
	if err != nil {
		t.Fatalf("KeyPairFromBytes: %s", err)
	}

	tx := unsignedTransaction()
	err = SignAllInputs(tx, keyPair)
	if err != nil {
		t.Fatalf("SignAllInputs: %s", err)
	}
	for i, input := range tx.Inputs {
		if len(input.PublicKey) != PublicKeySize {
			t.Fatalf("input %d: expected a %d-byte public key, got %d", i, PublicKeySize, len(input.PublicKey))
		}
		if len(input.Signature) != SignatureSize {
			t.Fatalf("input %d: expected a %d-byte signature, got %d", i, SignatureSize, len(input.Signature))
		}
		err = VerifyInput(tx, i)
		if err != nil {
			t.Fatalf("input %d: VerifyInput: %s", i, err)
		}
	}

	tx.Outputs[0].Value = externalapi.NewColorAmount(4, 101)
	err = VerifyInput(tx, 0)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature after changing an output, got %v", err)
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	signer, err := KeyPairFromBytes(testKeyPairBytes(0x22))
	if err != nil {
		t.Fatalf("KeyPairFromBytes: %s", err)
	}
	other, err := KeyPairFromBytes(testKeyPairBytes(0x33))
	if err != nil {
		t.Fatalf("KeyPairFromBytes: %s", err)
	}

	tx := unsignedTransaction()
	err = SignInput(tx, 0, signer)
	if err != nil {
		t.Fatalf("SignInput: %s", err)
	}
	otherPublicKey, err := SerializePublicKey(other)
	if err != nil {
		t.Fatalf("SerializePublicKey: %s", err)
	}
	tx.Inputs[0].PublicKey = otherPublicKey

	err = VerifyInput(tx, 0)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	tx := unsignedTransaction()
	tx.Inputs[0].PublicKey = []byte{1, 2, 3}
	tx.Inputs[0].Signature = []byte{4, 5, 6}
	err := VerifyInput(tx, 0)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for a malformed key, got %v", err)
	}

	err = VerifyInput(tx, 5)
	if err == nil {
		t.Fatalf("expected an error for an out of range index")
	}
}
