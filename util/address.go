// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/btcsuite/btcutil"
	"github.com/btcsuite/btcutil/base58"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// PublicKeyHashSize is the size of the public key hash an address encodes
const PublicKeyHashSize = 20

var (
	// ErrChecksumMismatch describes an error where decoding failed due
	// to a bad checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrUnknownAddressType describes an error where an address can not
	// decoded because its identifier byte belongs to another network.
	ErrUnknownAddressType = errors.New("unknown address type")

	// ErrWrongAddressLength describes an address whose payload is not a
	// public key hash
	ErrWrongAddressLength = errors.New("wrong address length")
)

// HashPublicKey calculates the hash ripemd160(sha256(publicKey)).
func HashPublicKey(publicKey []byte) []byte {
	return btcutil.Hash160(publicKey)
}

// EncodeAddress encodes a public key hash as a base58check address with
// the given network prefix
func EncodeAddress(publicKeyHash []byte, prefix byte) externalapi.DomainAddress {
	return externalapi.DomainAddress(base58.CheckEncode(publicKeyHash, prefix))
}

// AddressFromPublicKey returns the address controlled by publicKey
func AddressFromPublicKey(publicKey []byte, prefix byte) externalapi.DomainAddress {
	return EncodeAddress(HashPublicKey(publicKey), prefix)
}

// DecodeAddress decodes address and returns the public key hash it
// encodes. The address must belong to the network identified by prefix.
func DecodeAddress(address externalapi.DomainAddress, prefix byte) ([]byte, error) {
	publicKeyHash, version, err := base58.CheckDecode(string(address))
	if err != nil {
		if errors.Is(err, base58.ErrChecksum) {
			return nil, errors.Wrapf(ErrChecksumMismatch, "address %s", address)
		}
		return nil, errors.Wrapf(err, "address %s", address)
	}
	if version != prefix {
		return nil, errors.Wrapf(ErrUnknownAddressType, "address %s has prefix %d, expected %d",
			address, version, prefix)
	}
	if len(publicKeyHash) != PublicKeyHashSize {
		return nil, errors.Wrapf(ErrWrongAddressLength, "address %s decodes to %d bytes",
			address, len(publicKeyHash))
	}
	return publicKeyHash, nil
}
