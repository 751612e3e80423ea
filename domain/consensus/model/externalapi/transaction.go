package externalapi

import (
	"bytes"
	"fmt"
	"math"
)

// TxType is the tag that selects how a transaction is validated and applied
type TxType uint32

// Transaction types. The set is closed: any other tag is rejected.
const (
	TxTypeNormal TxType = iota
	TxTypeMint
	TxTypeLicense
	TxTypeActivate
)

var txTypeStrings = map[TxType]string{
	TxTypeNormal:   "normal",
	TxTypeMint:     "mint",
	TxTypeLicense:  "license",
	TxTypeActivate: "activate",
}

func (txType TxType) String() string {
	if str, ok := txTypeStrings[txType]; ok {
		return str
	}
	return fmt.Sprintf("unknown(%d)", uint32(txType))
}

// DomainAddress is a base58check encoded public key hash
type DomainAddress string

// DomainTransaction represents a colored-coin transaction
type DomainTransaction struct {
	Version  uint16
	Type     TxType
	Inputs   []*DomainTransactionInput
	Outputs  []*DomainTransactionOutput
	Fee      *ColorAmount
	LockTime uint64
	Payload  []byte
}

// Clone returns a clone of DomainTransaction
func (tx *DomainTransaction) Clone() *DomainTransaction {
	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}

	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}

	var payloadClone []byte
	if tx.Payload != nil {
		payloadClone = make([]byte, len(tx.Payload))
		copy(payloadClone, tx.Payload)
	}

	return &DomainTransaction{
		Version:  tx.Version,
		Type:     tx.Type,
		Inputs:   inputsClone,
		Outputs:  outputsClone,
		Fee:      tx.Fee.Clone(),
		LockTime: tx.LockTime,
		Payload:  payloadClone,
	}
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = DomainTransaction{0, 0, []*DomainTransactionInput{}, []*DomainTransactionOutput{},
	&ColorAmount{}, 0, []byte{}}

// Equal returns whether tx equals to other. Populated UTXO entries are
// ignored.
func (tx *DomainTransaction) Equal(other *DomainTransaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	if tx.Version != other.Version || tx.Type != other.Type || tx.LockTime != other.LockTime {
		return false
	}

	if len(tx.Inputs) != len(other.Inputs) || len(tx.Outputs) != len(other.Outputs) {
		return false
	}

	for i, input := range tx.Inputs {
		if !input.Equal(other.Inputs[i]) {
			return false
		}
	}

	for i, output := range tx.Outputs {
		if !output.Equal(other.Outputs[i]) {
			return false
		}
	}

	if !tx.Fee.Equal(other.Fee) {
		return false
	}

	return bytes.Equal(tx.Payload, other.Payload)
}

// DomainTransactionInput represents a transaction input
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	PublicKey        []byte
	Signature        []byte

	UTXOEntry UTXOEntry
}

// Clone returns a clone of DomainTransactionInput
func (input *DomainTransactionInput) Clone() *DomainTransactionInput {
	publicKeyClone := make([]byte, len(input.PublicKey))
	copy(publicKeyClone, input.PublicKey)

	signatureClone := make([]byte, len(input.Signature))
	copy(signatureClone, input.Signature)

	return &DomainTransactionInput{
		PreviousOutpoint: input.PreviousOutpoint,
		PublicKey:        publicKeyClone,
		Signature:        signatureClone,
		UTXOEntry:        input.UTXOEntry,
	}
}

// Equal returns whether input equals to other
func (input *DomainTransactionInput) Equal(other *DomainTransactionInput) bool {
	if input == nil || other == nil {
		return input == other
	}

	return input.PreviousOutpoint == other.PreviousOutpoint &&
		bytes.Equal(input.PublicKey, other.PublicKey) &&
		bytes.Equal(input.Signature, other.Signature)
}

// DomainOutpoint represents a transaction outpoint
type DomainOutpoint struct {
	TransactionID DomainTransactionID
	Index         uint32
}

// NullOutpointIndex is the index of the null outpoint
const NullOutpointIndex = math.MaxUint32

// NewNullOutpoint returns the outpoint used by mint and coinbase inputs,
// which do not spend a previous output.
func NewNullOutpoint() DomainOutpoint {
	return DomainOutpoint{Index: NullOutpointIndex}
}

// IsNull returns true if the outpoint is the null outpoint
func (op DomainOutpoint) IsNull() bool {
	return op.Index == NullOutpointIndex && DomainHash(op.TransactionID).IsZero()
}

// String stringifies an outpoint.
func (op DomainOutpoint) String() string {
	return fmt.Sprintf("%s:%d", op.TransactionID, op.Index)
}

// DomainTransactionOutput represents a transaction output
type DomainTransactionOutput struct {
	Value   *ColorAmount
	Address DomainAddress
}

// Clone returns a clone of DomainTransactionOutput
func (output *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	return &DomainTransactionOutput{
		Value:   output.Value.Clone(),
		Address: output.Address,
	}
}

// Equal returns whether output equals to other
func (output *DomainTransactionOutput) Equal(other *DomainTransactionOutput) bool {
	if output == nil || other == nil {
		return output == other
	}

	return output.Address == other.Address && output.Value.Equal(other.Value)
}

// DomainTransactionID represents the ID of a transaction
type DomainTransactionID DomainHash

// String stringifies a transaction ID.
func (id DomainTransactionID) String() string {
	return DomainHash(id).String()
}

// Equal returns whether id equals to other
func (id *DomainTransactionID) Equal(other *DomainTransactionID) bool {
	return (*DomainHash)(id).Equal((*DomainHash)(other))
}
