package utxosetstore

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/serialization"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxo"
)

type utxoSetIterator struct {
	cursor model.DBCursor
}

// Iterator returns an iterator over the committed UTXO set. Staged
// changes are not visible to it.
func (uss *utxoSetStore) Iterator(dbContext model.DBReader) (model.ReadOnlyUTXOSetIterator, error) {
	cursor, err := dbContext.Cursor(utxoSetBucket)
	if err != nil {
		return nil, err
	}
	return &utxoSetIterator{cursor: cursor}, nil
}

func (u *utxoSetIterator) First() bool {
	return u.cursor.First()
}

func (u *utxoSetIterator) Next() bool {
	return u.cursor.Next()
}

func (u *utxoSetIterator) Get() (outpoint *externalapi.DomainOutpoint, utxoEntry externalapi.UTXOEntry, err error) {
	key, err := u.cursor.Key()
	if err != nil {
		return nil, nil, err
	}

	utxoEntryBytes, err := u.cursor.Value()
	if err != nil {
		return nil, nil, err
	}

	outpoint, err = serialization.OutpointFromBytes(key.Suffix())
	if err != nil {
		return nil, nil, err
	}

	utxoEntry, err = utxo.EntryFromBytes(utxoEntryBytes)
	if err != nil {
		return nil, nil, err
	}

	return outpoint, utxoEntry, nil
}

func (u *utxoSetIterator) Close() error {
	return u.cursor.Close()
}
