package testutils

import (
	"bytes"
	"encoding/hex"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/txsign"
	"github.com/gcoinproject/gcoind/domain/dagconfig"
	"github.com/gcoinproject/gcoind/util"
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
)

// TestKey is a key pair together with the address it controls on regtest
type TestKey struct {
	KeyPair *secp256k1.SchnorrKeyPair
	Address externalapi.DomainAddress
}

// NewTestKey returns the TestKey of the given private key
func NewTestKey(privateKeyBytes []byte) *TestKey {
	keyPair, err := txsign.KeyPairFromBytes(privateKeyBytes)
	if err != nil {
		panic(errors.Wrapf(err, "invalid test private key"))
	}
	publicKey, err := txsign.SerializePublicKey(keyPair)
	if err != nil {
		panic(errors.Wrapf(err, "couldn't serialize a test public key"))
	}
	return &TestKey{
		KeyPair: keyPair,
		Address: util.AddressFromPublicKey(publicKey, dagconfig.RegtestParams.AddressPrefix),
	}
}

// SeededTestKey returns a deterministic TestKey derived from seed
func SeededTestKey(seed byte) *TestKey {
	privateKeyBytes := bytes.Repeat([]byte{seed}, 32)
	privateKeyBytes[0] = 0x01
	return NewTestKey(privateKeyBytes)
}

// AuthorityTestKey returns the key of the regtest license authority
func AuthorityTestKey() *TestKey {
	privateKeyBytes, err := hex.DecodeString(dagconfig.RegtestLicenseAuthorityPrivateKey)
	if err != nil {
		panic(errors.Wrapf(err, "couldn't decode the regtest license authority key"))
	}
	return NewTestKey(privateKeyBytes)
}

// Output builds a transaction output
func Output(amount *externalapi.ColorAmount, address externalapi.DomainAddress) *externalapi.DomainTransactionOutput {
	return &externalapi.DomainTransactionOutput{Value: amount, Address: address}
}

// SignedTransaction builds a transaction spending outpoints and signs all of
// its inputs with key
func SignedTransaction(key *TestKey, txType externalapi.TxType, outpoints []externalapi.DomainOutpoint,
	outputs []*externalapi.DomainTransactionOutput, fee *externalapi.ColorAmount,
	payload []byte) (*externalapi.DomainTransaction, error) {

	tx := &externalapi.DomainTransaction{
		Version: constants.TransactionVersion,
		Type:    txType,
		Outputs: outputs,
		Fee:     fee,
		Payload: payload,
	}
	for _, outpoint := range outpoints {
		tx.Inputs = append(tx.Inputs, &externalapi.DomainTransactionInput{PreviousOutpoint: outpoint})
	}
	err := txsign.SignAllInputs(tx, key.KeyPair)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
