package serialization

import (
	"bytes"
	"io"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/pkg/errors"
)

// txEncoding is a bitmask defining which transaction fields we
// want to encode and which to ignore.
type txEncoding uint8

const (
	txEncodingFull txEncoding = 0

	txEncodingExcludeSignature txEncoding = 1 << iota
)

const (
	// minTxInputSize is the smallest possible input: an outpoint and two
	// empty var byte fields.
	minTxInputSize = OutpointSize + 2

	// minTxOutputSize is the smallest possible output: an empty color amount
	// and an empty address.
	minTxOutputSize = 2

	// maxTxInOutPerTx bounds the number of inputs or outputs that can be
	// decoded from a single transaction.
	maxTxInOutPerTx = constants.MaxBlockSize / minTxOutputSize

	maxKeyOrSignatureSize = 1024
	maxAddressSize        = 256
)

// SerializeTransaction writes the full wire serialization of tx to w
func SerializeTransaction(w io.Writer, tx *externalapi.DomainTransaction) error {
	return serializeTransaction(w, tx, txEncodingFull)
}

// SerializeTransactionWithoutSignatures writes tx to w with every signature
// replaced by an empty one. This is the encoding the transaction ID and the
// signature hashes are computed over.
func SerializeTransactionWithoutSignatures(w io.Writer, tx *externalapi.DomainTransaction) error {
	return serializeTransaction(w, tx, txEncodingExcludeSignature)
}

func serializeTransaction(w io.Writer, tx *externalapi.DomainTransaction, encodingFlags txEncoding) error {
	err := WriteElements(w, tx.Version, tx.Type)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		err = writeTransactionInput(w, input, encodingFlags)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}
	for _, output := range tx.Outputs {
		err = writeTransactionOutput(w, output)
		if err != nil {
			return err
		}
	}

	err = SerializeColorAmount(w, tx.Fee)
	if err != nil {
		return err
	}

	err = WriteElement(w, tx.LockTime)
	if err != nil {
		return err
	}

	return WriteVarBytes(w, tx.Payload)
}

func writeTransactionInput(w io.Writer, input *externalapi.DomainTransactionInput, encodingFlags txEncoding) error {
	err := SerializeOutpoint(w, &input.PreviousOutpoint)
	if err != nil {
		return err
	}

	err = WriteVarBytes(w, input.PublicKey)
	if err != nil {
		return err
	}

	if encodingFlags&txEncodingExcludeSignature == txEncodingExcludeSignature {
		return WriteVarBytes(w, []byte{})
	}
	return WriteVarBytes(w, input.Signature)
}

func writeTransactionOutput(w io.Writer, output *externalapi.DomainTransactionOutput) error {
	err := SerializeColorAmount(w, output.Value)
	if err != nil {
		return err
	}
	return WriteVarBytes(w, []byte(output.Address))
}

// DeserializeTransaction reads a transaction written by SerializeTransaction
func DeserializeTransaction(r io.Reader) (*externalapi.DomainTransaction, error) {
	tx := &externalapi.DomainTransaction{}
	err := ReadElements(r, &tx.Version, &tx.Type)
	if err != nil {
		return nil, err
	}

	inputCount, err := readCount(r, "input")
	if err != nil {
		return nil, err
	}
	tx.Inputs = make([]*externalapi.DomainTransactionInput, 0, minCount(inputCount))
	for i := uint64(0); i < inputCount; i++ {
		input, err := readTransactionInput(r)
		if err != nil {
			return nil, err
		}
		tx.Inputs = append(tx.Inputs, input)
	}

	outputCount, err := readCount(r, "output")
	if err != nil {
		return nil, err
	}
	tx.Outputs = make([]*externalapi.DomainTransactionOutput, 0, minCount(outputCount))
	for i := uint64(0); i < outputCount; i++ {
		output, err := readTransactionOutput(r)
		if err != nil {
			return nil, err
		}
		tx.Outputs = append(tx.Outputs, output)
	}

	tx.Fee, err = DeserializeColorAmount(r)
	if err != nil {
		return nil, err
	}

	err = ReadElement(r, &tx.LockTime)
	if err != nil {
		return nil, err
	}

	tx.Payload, err = ReadVarBytes(r, constants.MaxBlockSize, "payload")
	if err != nil {
		return nil, err
	}

	return tx, nil
}

func readCount(r io.Reader, fieldName string) (uint64, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return 0, err
	}
	if count > maxTxInOutPerTx {
		return 0, errors.Wrapf(errMalformed, "too many %ss to fit into a block [count %d, max %d]",
			fieldName, count, maxTxInOutPerTx)
	}
	return count, nil
}

// minCount caps the preallocation done for a count read from untrusted data
func minCount(count uint64) uint64 {
	const maxPreallocation = 256
	if count > maxPreallocation {
		return maxPreallocation
	}
	return count
}

func readTransactionInput(r io.Reader) (*externalapi.DomainTransactionInput, error) {
	outpoint, err := DeserializeOutpoint(r)
	if err != nil {
		return nil, err
	}

	publicKey, err := ReadVarBytes(r, maxKeyOrSignatureSize, "public key")
	if err != nil {
		return nil, err
	}

	signature, err := ReadVarBytes(r, maxKeyOrSignatureSize, "signature")
	if err != nil {
		return nil, err
	}

	return &externalapi.DomainTransactionInput{
		PreviousOutpoint: *outpoint,
		PublicKey:        publicKey,
		Signature:        signature,
	}, nil
}

func readTransactionOutput(r io.Reader) (*externalapi.DomainTransactionOutput, error) {
	value, err := DeserializeColorAmount(r)
	if err != nil {
		return nil, err
	}

	address, err := ReadVarBytes(r, maxAddressSize, "address")
	if err != nil {
		return nil, err
	}

	return &externalapi.DomainTransactionOutput{
		Value:   value,
		Address: externalapi.DomainAddress(address),
	}, nil
}

// TransactionToBytes returns the full serialization of tx
func TransactionToBytes(tx *externalapi.DomainTransaction) []byte {
	w := &bytes.Buffer{}
	err := SerializeTransaction(w, tx)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. bytes.Buffer writes can't fail"))
	}
	return w.Bytes()
}

// TransactionFromBytes deserializes a transaction and rejects trailing data
func TransactionFromBytes(transactionBytes []byte) (*externalapi.DomainTransaction, error) {
	r := bytes.NewReader(transactionBytes)
	tx, err := DeserializeTransaction(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.Wrapf(errMalformed, "%d trailing bytes after transaction", r.Len())
	}
	return tx, nil
}

// TransactionSerializeSize returns the size of the full serialization of tx
func TransactionSerializeSize(tx *externalapi.DomainTransaction) uint64 {
	counter := &countingWriter{}
	err := SerializeTransaction(counter, tx)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. countingWriter writes can't fail"))
	}
	return counter.count
}

type countingWriter struct {
	count uint64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	cw.count += uint64(len(p))
	return len(p), nil
}
