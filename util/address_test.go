package util

import (
	"bytes"
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

const testPrefix = 0x26

func TestAddressRoundTrip(t *testing.T) {
	publicKey := bytes.Repeat([]byte{0x42}, 32)
	address := AddressFromPublicKey(publicKey, testPrefix)

	publicKeyHash, err := DecodeAddress(address, testPrefix)
	if err != nil {
		t.Fatalf("DecodeAddress: %s", err)
	}
	if !bytes.Equal(publicKeyHash, HashPublicKey(publicKey)) {
		t.Fatalf("DecodeAddress returned %x, expected %x", publicKeyHash, HashPublicKey(publicKey))
	}
	if len(publicKeyHash) != PublicKeyHashSize {
		t.Fatalf("unexpected public key hash size %d", len(publicKeyHash))
	}
}

func TestDecodeAddressErrors(t *testing.T) {
	publicKey := bytes.Repeat([]byte{0x17}, 32)
	address := AddressFromPublicKey(publicKey, testPrefix)

	_, err := DecodeAddress(address, testPrefix+1)
	if !errors.Is(err, ErrUnknownAddressType) {
		t.Fatalf("expected ErrUnknownAddressType, got %v", err)
	}

	corrupted := []byte(address)
	if corrupted[5] == '2' {
		corrupted[5] = '3'
	} else {
		corrupted[5] = '2'
	}
	_, err = DecodeAddress(externalapi.DomainAddress(corrupted), testPrefix)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}

	short := EncodeAddress([]byte{1, 2, 3}, testPrefix)
	_, err = DecodeAddress(short, testPrefix)
	if !errors.Is(err, ErrWrongAddressLength) {
		t.Fatalf("expected ErrWrongAddressLength, got %v", err)
	}

	_, err = DecodeAddress("", testPrefix)
	if err == nil {
		t.Fatalf("decoding an empty address unexpectedly succeeded")
	}
}
