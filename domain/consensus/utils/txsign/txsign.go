// Package txsign signs and verifies transaction inputs with Schnorr
// signatures over secp256k1.
package txsign

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
)

const (
	// PublicKeySize is the size of a serialized Schnorr public key
	PublicKeySize = 32

	// SignatureSize is the size of a serialized Schnorr signature
	SignatureSize = secp256k1.SerializedSchnorrSignatureSize
)

// ErrInvalidSignature is returned by VerifyInput when a signature does not
// verify against the input's public key.
var ErrInvalidSignature = errors.New("signature verification failed")

// SerializePublicKey returns the serialized Schnorr public key of keyPair
func SerializePublicKey(keyPair *secp256k1.SchnorrKeyPair) ([]byte, error) {
	publicKey, err := keyPair.SchnorrPublicKey()
	if err != nil {
		return nil, err
	}
	serializedPublicKey, err := publicKey.Serialize()
	if err != nil {
		return nil, err
	}
	return serializedPublicKey[:], nil
}

// RawInputSignature returns the Schnorr signature of the signature hash of
// input idx of tx.
func RawInputSignature(tx *externalapi.DomainTransaction, idx int, keyPair *secp256k1.SchnorrKeyPair) ([]byte, error) {
	hash, err := consensushashing.CalculateSignatureHash(tx, idx)
	if err != nil {
		return nil, err
	}
	secpHash := secp256k1.Hash(*hash.ByteArray())
	signature, err := keyPair.SchnorrSign(&secpHash)
	if err != nil {
		return nil, errors.Errorf("cannot sign tx input: %s", err)
	}
	return signature.Serialize()[:], nil
}

// SignInput fills the public key and signature of input idx of tx
func SignInput(tx *externalapi.DomainTransaction, idx int, keyPair *secp256k1.SchnorrKeyPair) error {
	if idx < 0 || idx >= len(tx.Inputs) {
		return errors.Errorf("input index %d is out of range", idx)
	}
	publicKey, err := SerializePublicKey(keyPair)
	if err != nil {
		return err
	}
	// The public key is part of the signed data, so it goes in first.
	tx.Inputs[idx].PublicKey = publicKey

	signature, err := RawInputSignature(tx, idx, keyPair)
	if err != nil {
		return err
	}
	tx.Inputs[idx].Signature = signature
	return nil
}

// SignAllInputs signs every input of tx with keyPair
func SignAllInputs(tx *externalapi.DomainTransaction, keyPair *secp256k1.SchnorrKeyPair) error {
	publicKey, err := SerializePublicKey(keyPair)
	if err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		input.PublicKey = publicKey
	}
	for i := range tx.Inputs {
		signature, err := RawInputSignature(tx, i, keyPair)
		if err != nil {
			return err
		}
		tx.Inputs[i].Signature = signature
	}
	return nil
}

// VerifyInput checks the signature of input idx of tx against the input's
// public key. Malformed keys and signatures are reported as errors, as is a
// signature that fails verification (ErrInvalidSignature).
func VerifyInput(tx *externalapi.DomainTransaction, idx int) error {
	if idx < 0 || idx >= len(tx.Inputs) {
		return errors.Errorf("input index %d is out of range", idx)
	}
	input := tx.Inputs[idx]

	publicKey, err := secp256k1.DeserializeSchnorrPubKey(input.PublicKey)
	if err != nil {
		return errors.Wrapf(ErrInvalidSignature, "malformed public key: %s", err)
	}
	signature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(input.Signature)
	if err != nil {
		return errors.Wrapf(ErrInvalidSignature, "malformed signature: %s", err)
	}

	hash, err := consensushashing.CalculateSignatureHash(tx, idx)
	if err != nil {
		return err
	}
	secpHash := secp256k1.Hash(*hash.ByteArray())
	if !publicKey.SchnorrVerify(&secpHash, signature) {
		return errors.WithStack(ErrInvalidSignature)
	}
	return nil
}

// KeyPairFromBytes parses a 32-byte private key
func KeyPairFromBytes(privateKeyBytes []byte) (*secp256k1.SchnorrKeyPair, error) {
	keyPair, err := secp256k1.DeserializeSchnorrPrivateKeyFromSlice(privateKeyBytes)
	if err != nil {
		return nil, errors.Wrap(err, "invalid private key")
	}
	return keyPair, nil
}
