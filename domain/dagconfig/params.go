// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dagconfig

import (
	"encoding/hex"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/txsign"
	"github.com/gcoinproject/gcoind/util"
	"github.com/pkg/errors"
)

// Params defines a gcoin network by its parameters. These parameters may be
// used by gcoin applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// AddressPrefix is the base58check version byte of addresses on the
	// network.
	AddressPrefix byte

	// LicenseAuthority is the address allowed to create licenses. It owns
	// the admin color when the license registry is first created.
	LicenseAuthority externalapi.DomainAddress

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *externalapi.DomainBlock

	// GenesisHash is the starting block hash.
	GenesisHash *externalapi.DomainHash

	// CoinbaseMaturity is the number of blocks required before newly mined
	// outputs count toward transaction priority.
	CoinbaseMaturity uint64
}

// mainnetLicenseAuthorityHash is the public key hash of the main network
// license authority
var mainnetLicenseAuthorityHash = []byte{
	0x3b, 0x1e, 0x7a, 0x95, 0x0c, 0x6e, 0x44, 0xd2, 0x81, 0x5f,
	0x2a, 0x07, 0xc9, 0x33, 0xe4, 0x6b, 0x90, 0x18, 0xa7, 0x5d,
}

// testnetLicenseAuthorityHash is the public key hash of the test network
// license authority
var testnetLicenseAuthorityHash = []byte{
	0x71, 0x0a, 0x93, 0xfe, 0x28, 0xb4, 0x5c, 0x06, 0xd7, 0x4e,
	0x12, 0x8b, 0x60, 0xaf, 0x3d, 0xc5, 0x99, 0x27, 0x0e, 0xb1,
}

// RegtestLicenseAuthorityPrivateKey is the private key of the regression
// test network license authority. It is public so that tests and local
// tooling can create licenses.
const RegtestLicenseAuthorityPrivateKey = "6ab72c6e20aa5a5b07c1f3d32b1a88fa1e4f0c84fdd74be8a28ab1c5e6c7f104"

const (
	mainnetAddressPrefix = 0x26
	testnetAddressPrefix = 0x41
	regtestAddressPrefix = 0x7a
)

// MainnetParams defines the network parameters for the main gcoin network.
var MainnetParams = Params{
	Name:             "mainnet",
	AddressPrefix:    mainnetAddressPrefix,
	LicenseAuthority: util.EncodeAddress(mainnetLicenseAuthorityHash, mainnetAddressPrefix),
	GenesisBlock:     genesisBlock,
	GenesisHash:      genesisHash,
	CoinbaseMaturity: 100,
}

// TestnetParams defines the network parameters for the test gcoin network.
var TestnetParams = Params{
	Name:             "testnet",
	AddressPrefix:    testnetAddressPrefix,
	LicenseAuthority: util.EncodeAddress(testnetLicenseAuthorityHash, testnetAddressPrefix),
	GenesisBlock:     testnetGenesisBlock,
	GenesisHash:      testnetGenesisHash,
	CoinbaseMaturity: 100,
}

// RegtestParams defines the network parameters for the regression test
// gcoin network.
var RegtestParams = Params{
	Name:             "regtest",
	AddressPrefix:    regtestAddressPrefix,
	LicenseAuthority: mustAddressFromPrivateKey(RegtestLicenseAuthorityPrivateKey, regtestAddressPrefix),
	GenesisBlock:     regtestGenesisBlock,
	GenesisHash:      regtestGenesisHash,
	CoinbaseMaturity: 1,
}

// mustAddressFromPrivateKey returns the address controlled by the hex
// encoded private key. It panics on a malformed key, and is only meant for
// package level parameters.
func mustAddressFromPrivateKey(privateKeyHex string, prefix byte) externalapi.DomainAddress {
	privateKey, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		panic(errors.Wrap(err, "invalid hex private key"))
	}
	keyPair, err := txsign.KeyPairFromBytes(privateKey)
	if err != nil {
		panic(err)
	}
	publicKey, err := txsign.SerializePublicKey(keyPair)
	if err != nil {
		panic(err)
	}
	return util.AddressFromPublicKey(publicKey, prefix)
}

var (
	// ErrDuplicateNet describes an error where the parameters for a
	// network could not be set due to the network already being a standard
	// network or previously-registered into this package.
	ErrDuplicateNet = errors.New("duplicate network")

	// ErrUnknownNet describes an error where no parameters are registered
	// under the requested name.
	ErrUnknownNet = errors.New("unknown network")
)

var registeredNets = make(map[string]*Params)

// Register registers the network parameters for a gcoin network. This may
// error with ErrDuplicateNet if the network is already registered (either
// due to a previous Register call, or the network being one of the default
// networks).
//
// Network parameters should be registered into this package by a main
// package as early as possible. Then, library packages may lookup networks
// by name.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return errors.Wrapf(ErrDuplicateNet, "network %s", params.Name)
	}
	registeredNets[params.Name] = params
	return nil
}

// mustRegister performs the same function as Register except it panics if
// there is an error. This should only be called from package init
// functions.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("failed to register network: " + err.Error())
	}
}

// ParamsByName returns the registered parameters of the named network
func ParamsByName(name string) (*Params, error) {
	params, ok := registeredNets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNet, "network %s", name)
	}
	return params, nil
}

func init() {
	// Register all default networks when the package is initialized.
	mustRegister(&MainnetParams)
	mustRegister(&TestnetParams)
	mustRegister(&RegtestParams)
}
