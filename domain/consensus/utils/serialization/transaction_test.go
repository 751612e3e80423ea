package serialization

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

func testTransaction() *externalapi.DomainTransaction {
	var prevTxIDBytes [externalapi.DomainHashSize]byte
	prevTxIDBytes[0] = 0xaa
	prevTxID := externalapi.DomainTransactionID(*externalapi.NewDomainHashFromByteArray(&prevTxIDBytes))

	return &externalapi.DomainTransaction{
		Version: 1,
		Type:    externalapi.TxTypeNormal,
		Inputs: []*externalapi.DomainTransactionInput{
			{
				PreviousOutpoint: externalapi.DomainOutpoint{TransactionID: prevTxID, Index: 3},
				PublicKey:        bytes.Repeat([]byte{0x02}, 32),
				Signature:        bytes.Repeat([]byte{0x03}, 64),
			},
		},
		Outputs: []*externalapi.DomainTransactionOutput{
			{
				Value:   externalapi.NewColorAmount(5, 1000),
				Address: "receiver",
			},
			{
				Value: externalapi.NewColorAmountFromEntries(
					externalapi.ColorAmountEntry{Color: 5, Value: 10},
					externalapi.ColorAmountEntry{Color: 8, Value: 20},
				),
				Address: "change",
			},
		},
		Fee:      externalapi.NewColorAmount(5, 7),
		LockTime: 42,
		Payload:  []byte("payload"),
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	tx := testTransaction()
	serialized := TransactionToBytes(tx)
	if uint64(len(serialized)) != TransactionSerializeSize(tx) {
		t.Fatalf("TransactionSerializeSize: got %d, want %d", TransactionSerializeSize(tx), len(serialized))
	}

	deserialized, err := TransactionFromBytes(serialized)
	if err != nil {
		t.Fatalf("TransactionFromBytes: %s", err)
	}
	if !deserialized.Equal(tx) {
		t.Fatalf("round trip mismatch:\n got: %s\nwant: %s", spew.Sdump(deserialized), spew.Sdump(tx))
	}
	if !bytes.Equal(TransactionToBytes(deserialized), serialized) {
		t.Fatalf("deserialize then serialize is not byte identical")
	}
}

func TestSerializeTransactionWithoutSignatures(t *testing.T) {
	tx := testTransaction()
	withoutSignatures := &bytes.Buffer{}
	err := SerializeTransactionWithoutSignatures(withoutSignatures, tx)
	if err != nil {
		t.Fatalf("SerializeTransactionWithoutSignatures: %s", err)
	}

	unsigned := tx.Clone()
	unsigned.Inputs[0].Signature = nil
	if !bytes.Equal(withoutSignatures.Bytes(), TransactionToBytes(unsigned)) {
		t.Fatalf("signature exclusion should match serializing an unsigned transaction")
	}

	tx.Inputs[0].Signature[0] ^= 0xff
	otherWithoutSignatures := &bytes.Buffer{}
	err = SerializeTransactionWithoutSignatures(otherWithoutSignatures, tx)
	if err != nil {
		t.Fatalf("SerializeTransactionWithoutSignatures: %s", err)
	}
	if !bytes.Equal(withoutSignatures.Bytes(), otherWithoutSignatures.Bytes()) {
		t.Fatalf("changing a signature changed the signature-less serialization")
	}
}

func TestDeserializeTransactionErrors(t *testing.T) {
	serialized := TransactionToBytes(testTransaction())
	for cut := 0; cut < len(serialized); cut++ {
		_, err := TransactionFromBytes(serialized[:cut])
		if err == nil {
			t.Fatalf("truncation at %d: expected an error", cut)
		}
		if !IsMalformedError(err) {
			t.Fatalf("truncation at %d: expected a malformed error, got %s", cut, err)
		}
	}

	_, err := TransactionFromBytes(append(serialized, 0x00))
	if !IsMalformedError(err) {
		t.Fatalf("trailing byte: expected a malformed error, got %v", err)
	}
}

func TestOutpointBytes(t *testing.T) {
	outpoint := testTransaction().Inputs[0].PreviousOutpoint
	outpointBytes := OutpointToBytes(&outpoint)
	if len(outpointBytes) != OutpointSize {
		t.Fatalf("expected %d bytes, got %d", OutpointSize, len(outpointBytes))
	}
	deserialized, err := OutpointFromBytes(outpointBytes)
	if err != nil {
		t.Fatalf("OutpointFromBytes: %s", err)
	}
	if *deserialized != outpoint {
		t.Fatalf("expected %s, got %s", outpoint, deserialized)
	}
}
