package utxo

import (
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

func TestUTXOSerializationRoundTrip(t *testing.T) {
	entry := NewUTXOEntry(externalapi.NewColorAmountFromEntries(
		externalapi.ColorAmountEntry{Color: 2, Value: 500},
		externalapi.ColorAmountEntry{Color: 3, Value: 7},
	), "owner", 12, externalapi.TxTypeMint)
	outpoint := &externalapi.DomainOutpoint{Index: 4}

	serialized, err := SerializeUTXO(entry, outpoint)
	if err != nil {
		t.Fatalf("SerializeUTXO: %s", err)
	}
	deserializedEntry, deserializedOutpoint, err := DeserializeUTXO(serialized)
	if err != nil {
		t.Fatalf("DeserializeUTXO: %s", err)
	}
	if !deserializedEntry.Equal(entry) {
		t.Fatalf("entry mismatch: got %+v, want %+v", deserializedEntry, entry)
	}
	if *deserializedOutpoint != *outpoint {
		t.Fatalf("outpoint mismatch: got %s, want %s", deserializedOutpoint, outpoint)
	}

	entryBytes, err := EntryToBytes(entry)
	if err != nil {
		t.Fatalf("EntryToBytes: %s", err)
	}
	_, err = EntryFromBytes(append(entryBytes, 0))
	if err == nil {
		t.Fatalf("expected an error for trailing data")
	}
}

func TestEntryAmountIsCloned(t *testing.T) {
	amount := externalapi.NewColorAmount(2, 10)
	entry := NewUTXOEntry(amount, "owner", 0, externalapi.TxTypeNormal)
	amount.AddValue(5)
	entry.Amount().AddValue(5)
	if !entry.Amount().Equal(externalapi.NewColorAmount(2, 10)) {
		t.Fatalf("entry amount was modified through an alias: %s", entry.Amount())
	}
}

func TestEntriesForTransactionAndIterator(t *testing.T) {
	tx := &externalapi.DomainTransaction{
		Type: externalapi.TxTypeNormal,
		Outputs: []*externalapi.DomainTransactionOutput{
			{Value: externalapi.NewColorAmount(2, 1), Address: "a"},
			{Value: externalapi.NewColorAmount(2, 2), Address: "b"},
		},
	}
	txID := externalapi.DomainTransactionID{}
	pairs := EntriesForTransaction(tx, &txID, 3)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(pairs))
	}

	collection := make(Collection)
	for i := len(pairs) - 1; i >= 0; i-- {
		collection.Add(pairs[i].Outpoint, pairs[i].UTXOEntry)
	}

	iterator := CollectionIterator(collection)
	defer iterator.Close()
	index := uint32(0)
	for ok := iterator.First(); ok; ok = iterator.Next() {
		outpoint, entry, err := iterator.Get()
		if err != nil {
			t.Fatalf("Get: %s", err)
		}
		if outpoint.Index != index {
			t.Fatalf("iterator out of order: expected index %d, got %d", index, outpoint.Index)
		}
		if entry.BlockHeight() != 3 || entry.Address() != tx.Outputs[index].Address {
			t.Fatalf("unexpected entry at index %d", index)
		}
		index++
	}
	if index != 2 {
		t.Fatalf("expected to iterate over 2 entries, got %d", index)
	}

	if total := collection.TotalAmount(); !total.Equal(externalapi.NewColorAmount(2, 3)) {
		t.Fatalf("unexpected total amount %s", total)
	}

	collection.Remove(pairs[0].Outpoint)
	if _, ok := collection.Get(pairs[0].Outpoint); ok {
		t.Fatalf("removed entry is still present")
	}
}
