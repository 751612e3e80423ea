package serialization

import (
	"bytes"
	"io"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// SerializeBlockHeader writes header to w
func SerializeBlockHeader(w io.Writer, header *externalapi.DomainBlockHeader) error {
	return WriteElements(w, header.Version, &header.ParentHash, &header.HashMerkleRoot, &header.UTXOCommitment,
		header.TimeInMilliseconds, header.Height, header.Nonce)
}

// DeserializeBlockHeader reads a header written by SerializeBlockHeader
func DeserializeBlockHeader(r io.Reader) (*externalapi.DomainBlockHeader, error) {
	header := &externalapi.DomainBlockHeader{}
	err := ReadElements(r, &header.Version, &header.ParentHash, &header.HashMerkleRoot, &header.UTXOCommitment,
		&header.TimeInMilliseconds, &header.Height, &header.Nonce)
	if err != nil {
		return nil, err
	}
	return header, nil
}

// SerializeBlock writes the header followed by a varint transaction count and
// every transaction.
func SerializeBlock(w io.Writer, block *externalapi.DomainBlock) error {
	err := SerializeBlockHeader(w, block.Header)
	if err != nil {
		return err
	}
	err = WriteVarInt(w, uint64(len(block.Transactions)))
	if err != nil {
		return err
	}
	for _, tx := range block.Transactions {
		err = SerializeTransaction(w, tx)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeBlock reads a block written by SerializeBlock
func DeserializeBlock(r io.Reader) (*externalapi.DomainBlock, error) {
	header, err := DeserializeBlockHeader(r)
	if err != nil {
		return nil, err
	}
	count, err := readCount(r, "transaction")
	if err != nil {
		return nil, err
	}
	transactions := make([]*externalapi.DomainTransaction, 0, minCount(count))
	for i := uint64(0); i < count; i++ {
		tx, err := DeserializeTransaction(r)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return &externalapi.DomainBlock{Header: header, Transactions: transactions}, nil
}

// BlockToBytes returns the serialization of block
func BlockToBytes(block *externalapi.DomainBlock) []byte {
	w := &bytes.Buffer{}
	err := SerializeBlock(w, block)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. bytes.Buffer writes can't fail"))
	}
	return w.Bytes()
}
