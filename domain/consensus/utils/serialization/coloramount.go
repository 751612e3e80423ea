package serialization

import (
	"bytes"
	"io"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// colorAmountEntrySize is the serialized size of a single (color, value) pair
const colorAmountEntrySize = 4 + 8

// SerializeColorAmount writes ca to w as a varint entry count followed by
// every (uint32 color, int64 value) pair in ascending color order.
// A nil amount is written as an empty one.
func SerializeColorAmount(w io.Writer, ca *externalapi.ColorAmount) error {
	entries := ca.Entries()
	err := WriteVarInt(w, uint64(len(entries)))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		err = WriteElements(w, entry.Color, entry.Value)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeColorAmount reads a ColorAmount written by SerializeColorAmount.
// Colors must be strictly ascending, so every valid encoding is the unique
// encoding of its amount. Explicit zero entries are preserved.
func DeserializeColorAmount(r io.Reader) (*externalapi.ColorAmount, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	entries := make([]externalapi.ColorAmountEntry, 0)
	for i := uint64(0); i < count; i++ {
		var entry externalapi.ColorAmountEntry
		err = ReadElements(r, &entry.Color, &entry.Value)
		if err != nil {
			return nil, err
		}
		if i > 0 && entry.Color <= entries[len(entries)-1].Color {
			return nil, errors.Wrapf(errMalformed, "color amount entries are not in strictly ascending "+
				"color order: %d follows %d", entry.Color, entries[len(entries)-1].Color)
		}
		entries = append(entries, entry)
	}
	return externalapi.NewColorAmountFromEntries(entries...), nil
}

// ColorAmountSerializeSize returns the number of bytes SerializeColorAmount
// writes for ca.
func ColorAmountSerializeSize(ca *externalapi.ColorAmount) int {
	return VarIntSerializeSize(uint64(ca.Len())) + ca.Len()*colorAmountEntrySize
}

// ColorAmountToBytes returns the serialization of ca
func ColorAmountToBytes(ca *externalapi.ColorAmount) []byte {
	w := bytes.NewBuffer(make([]byte, 0, ColorAmountSerializeSize(ca)))
	err := SerializeColorAmount(w, ca)
	if err != nil {
		// bytes.Buffer never fails a write
		panic(errors.Wrap(err, "this should never happen. bytes.Buffer writes can't fail"))
	}
	return w.Bytes()
}

// ColorAmountFromBytes deserializes a ColorAmount and rejects trailing data
func ColorAmountFromBytes(colorAmountBytes []byte) (*externalapi.ColorAmount, error) {
	r := bytes.NewReader(colorAmountBytes)
	ca, err := DeserializeColorAmount(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.Wrapf(errMalformed, "%d trailing bytes after color amount", r.Len())
	}
	return ca, nil
}
