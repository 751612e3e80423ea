package utxo

import (
	"sort"

	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

// Collection is an in-memory set of UTXO entries keyed by outpoint
type Collection map[externalapi.DomainOutpoint]externalapi.UTXOEntry

// Get returns the entry of outpoint and whether it exists
func (c Collection) Get(outpoint *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool) {
	entry, ok := c[*outpoint]
	return entry, ok
}

// Add adds entry under outpoint, replacing any existing entry
func (c Collection) Add(outpoint *externalapi.DomainOutpoint, entry externalapi.UTXOEntry) {
	c[*outpoint] = entry
}

// Remove removes the entry of outpoint if it exists
func (c Collection) Remove(outpoint *externalapi.DomainOutpoint) {
	delete(c, *outpoint)
}

// TotalAmount sums the amounts of all entries in the collection
func (c Collection) TotalAmount() *externalapi.ColorAmount {
	total := externalapi.NewEmptyColorAmount()
	for _, entry := range c {
		total.Add(entry.Amount())
	}
	return total
}

type utxoOutpointEntryPair struct {
	outpoint externalapi.DomainOutpoint
	entry    externalapi.UTXOEntry
}

type utxoCollectionIterator struct {
	index int
	pairs []utxoOutpointEntryPair
}

// CollectionIterator returns an iterator over collection in outpoint order
func CollectionIterator(collection Collection) model.ReadOnlyUTXOSetIterator {
	pairs := make([]utxoOutpointEntryPair, 0, len(collection))
	for outpoint, entry := range collection {
		pairs = append(pairs, utxoOutpointEntryPair{
			outpoint: outpoint,
			entry:    entry,
		})
	}
	sort.Slice(pairs, func(i, j int) bool {
		iID := externalapi.DomainHash(pairs[i].outpoint.TransactionID)
		jID := externalapi.DomainHash(pairs[j].outpoint.TransactionID)
		if !iID.Equal(&jID) {
			return iID.Less(&jID)
		}
		return pairs[i].outpoint.Index < pairs[j].outpoint.Index
	})
	return &utxoCollectionIterator{index: -1, pairs: pairs}
}

func (u *utxoCollectionIterator) First() bool {
	u.index = 0
	return len(u.pairs) > 0
}

func (u *utxoCollectionIterator) Next() bool {
	u.index++
	return u.index < len(u.pairs)
}

func (u *utxoCollectionIterator) Get() (outpoint *externalapi.DomainOutpoint, utxoEntry externalapi.UTXOEntry, err error) {
	pair := u.pairs[u.index]
	return &pair.outpoint, pair.entry, nil
}

func (u *utxoCollectionIterator) Close() error {
	u.pairs = nil
	return nil
}
