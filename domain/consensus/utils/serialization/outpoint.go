package serialization

import (
	"bytes"
	"io"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// OutpointSize is the serialized size of an outpoint
const OutpointSize = externalapi.DomainHashSize + 4

// SerializeOutpoint writes the transaction ID followed by the little endian
// output index.
func SerializeOutpoint(w io.Writer, outpoint *externalapi.DomainOutpoint) error {
	return WriteElements(w, outpoint.TransactionID, outpoint.Index)
}

// DeserializeOutpoint reads an outpoint written by SerializeOutpoint
func DeserializeOutpoint(r io.Reader) (*externalapi.DomainOutpoint, error) {
	outpoint := &externalapi.DomainOutpoint{}
	err := ReadElements(r, &outpoint.TransactionID, &outpoint.Index)
	if err != nil {
		return nil, err
	}
	return outpoint, nil
}

// OutpointToBytes returns the fixed size serialization of outpoint, suitable
// as a database key.
func OutpointToBytes(outpoint *externalapi.DomainOutpoint) []byte {
	w := bytes.NewBuffer(make([]byte, 0, OutpointSize))
	err := SerializeOutpoint(w, outpoint)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. bytes.Buffer writes can't fail"))
	}
	return w.Bytes()
}

// OutpointFromBytes deserializes an outpoint produced by OutpointToBytes
func OutpointFromBytes(outpointBytes []byte) (*externalapi.DomainOutpoint, error) {
	if len(outpointBytes) != OutpointSize {
		return nil, errors.Wrapf(errMalformed, "outpoint must be %d bytes, got %d",
			OutpointSize, len(outpointBytes))
	}
	return DeserializeOutpoint(bytes.NewReader(outpointBytes))
}
