package multiset

import (
	"testing"
)

func TestMultisetIsOrderIndependent(t *testing.T) {
	first := New()
	first.Add([]byte("a"))
	first.Add([]byte("b"))

	second := New()
	second.Add([]byte("b"))
	second.Add([]byte("a"))

	if !first.Hash().Equal(second.Hash()) {
		t.Fatalf("insertion order changed the multiset hash")
	}

	emptyHash := New().Hash()
	second.Remove([]byte("a"))
	second.Remove([]byte("b"))
	if !second.Hash().Equal(emptyHash) {
		t.Fatalf("removing every element did not restore the empty hash")
	}
}

func TestMultisetSerialization(t *testing.T) {
	ms := New()
	ms.Add([]byte("utxo"))

	deserialized, err := FromBytes(ms.Serialize())
	if err != nil {
		t.Fatalf("FromBytes: %s", err)
	}
	if !deserialized.Hash().Equal(ms.Hash()) {
		t.Fatalf("deserialized multiset has a different hash")
	}

	clone := ms.Clone()
	clone.Add([]byte("other"))
	if clone.Hash().Equal(ms.Hash()) {
		t.Fatalf("modifying a clone changed the original")
	}

	_, err = FromBytes([]byte{1, 2, 3})
	if err == nil {
		t.Fatalf("expected an error for a short serialization")
	}
}
