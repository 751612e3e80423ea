package utxo

import (
	"bytes"
	"io"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

const maxAddressSize = 256

// SerializeUTXO returns the byte-slice representation for given UTXOEntry-outpoint pair
func SerializeUTXO(entry externalapi.UTXOEntry, outpoint *externalapi.DomainOutpoint) ([]byte, error) {
	w := &bytes.Buffer{}

	err := serialization.SerializeOutpoint(w, outpoint)
	if err != nil {
		return nil, err
	}

	err = SerializeUTXOEntry(w, entry)
	if err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// DeserializeUTXO deserializes the given byte slice to UTXOEntry-outpoint pair
func DeserializeUTXO(utxoBytes []byte) (entry externalapi.UTXOEntry, outpoint *externalapi.DomainOutpoint, err error) {
	r := bytes.NewReader(utxoBytes)
	outpoint, err = serialization.DeserializeOutpoint(r)
	if err != nil {
		return nil, nil, err
	}

	entry, err = DeserializeUTXOEntry(r)
	if err != nil {
		return nil, nil, err
	}

	return entry, outpoint, nil
}

// SerializeUTXOEntry writes the block height, the creating transaction type,
// the amount and the address of entry to w.
func SerializeUTXOEntry(w io.Writer, entry externalapi.UTXOEntry) error {
	err := serialization.WriteElements(w, entry.BlockHeight(), entry.TxType())
	if err != nil {
		return err
	}

	err = serialization.SerializeColorAmount(w, entry.Amount())
	if err != nil {
		return err
	}

	return serialization.WriteVarBytes(w, []byte(entry.Address()))
}

// DeserializeUTXOEntry reads an entry written by SerializeUTXOEntry
func DeserializeUTXOEntry(r io.Reader) (externalapi.UTXOEntry, error) {
	var blockHeight uint64
	var txType externalapi.TxType
	err := serialization.ReadElements(r, &blockHeight, &txType)
	if err != nil {
		return nil, err
	}

	amount, err := serialization.DeserializeColorAmount(r)
	if err != nil {
		return nil, err
	}

	address, err := serialization.ReadVarBytes(r, maxAddressSize, "address")
	if err != nil {
		return nil, err
	}

	return NewUTXOEntry(amount, externalapi.DomainAddress(address), blockHeight, txType), nil
}

// EntryToBytes returns the serialization of entry
func EntryToBytes(entry externalapi.UTXOEntry) ([]byte, error) {
	w := &bytes.Buffer{}
	err := SerializeUTXOEntry(w, entry)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EntryFromBytes deserializes an entry and rejects trailing data
func EntryFromBytes(entryBytes []byte) (externalapi.UTXOEntry, error) {
	r := bytes.NewReader(entryBytes)
	entry, err := DeserializeUTXOEntry(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.Errorf("%d trailing bytes after UTXO entry", r.Len())
	}
	return entry, nil
}
