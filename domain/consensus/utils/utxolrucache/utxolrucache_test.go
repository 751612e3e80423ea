package utxolrucache

import (
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxo"
)

func TestLRUCacheCapacity(t *testing.T) {
	cache := New(2)
	entry := utxo.NewUTXOEntry(externalapi.NewColorAmount(2, 10), "address", 1, externalapi.TxTypeNormal)

	for i := uint32(0); i < 5; i++ {
		cache.Add(&externalapi.DomainOutpoint{Index: i}, entry)
		if cache.Len() > 2 {
			t.Fatalf("cache holds %d entries above its capacity", cache.Len())
		}
	}

	last := &externalapi.DomainOutpoint{Index: 4}
	if !cache.Has(last) {
		t.Fatalf("the most recently added entry was evicted")
	}
	got, ok := cache.Get(last)
	if !ok || !got.Equal(entry) {
		t.Fatalf("Get returned an unexpected entry")
	}

	cache.Remove(last)
	if cache.Has(last) {
		t.Fatalf("Remove did not remove the entry")
	}
}
