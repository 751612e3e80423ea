package model

import "github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"

// ReadOnlyUTXOSetIterator is an iterator over all entries in a
// read-only UTXO set
type ReadOnlyUTXOSetIterator interface {
	First() bool
	Next() bool
	Get() (outpoint *externalapi.DomainOutpoint, utxoEntry externalapi.UTXOEntry, err error)
	Close() error
}
