package constants

import "github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"

const (
	// BlockVersion represents the current version of blocks produced and the maximum block version
	// this node is able to validate
	BlockVersion = 1

	// TransactionVersion is the current latest supported transaction version.
	TransactionVersion = 1

	// UnitsPerCoin is the number of base units in one coin of any color.
	UnitsPerCoin = 100_000_000

	// Cent is one hundredth of a coin.
	Cent = 1_000_000

	// MaxMoney is the maximum amount of a single color that may appear in
	// an output, or in the sum of a transaction's outputs.
	MaxMoney = 10_000_000_000 * UnitsPerCoin

	// LicenseTokenAmount is the amount carried by the single output of a
	// license transaction.
	LicenseTokenAmount = UnitsPerCoin

	// MaxBlockSize is the maximum serialized size of a block.
	MaxBlockSize = 1_000_000

	// MaxBlockSigOps is the maximum number of signature operations allowed
	// in a block.
	MaxBlockSigOps = MaxBlockSize / 50

	// MaxPayloadSize is the maximum size of a transaction payload.
	MaxPayloadSize = 10_000

	// DefaultBlockMaxSize is the default maximum size of a produced block.
	DefaultBlockMaxSize = 750_000

	// DefaultBlockMinSize is the size below which low-fee transactions are
	// still included in a produced block.
	DefaultBlockMinSize = 0

	// DefaultBlockPrioritySize is the default size reserved for high
	// priority transactions regardless of their fee.
	DefaultBlockPrioritySize = 50_000

	// DefaultMinRelayTxFee is the default minimum fee, in base units per
	// 1000 bytes, a transaction must pay to be considered free of charge.
	DefaultMinRelayTxFee = 1000
)

const (
	// CoinbaseColor is reserved for coinbase bookkeeping outputs and can
	// never be carried by a regular output.
	CoinbaseColor externalapi.Color = 0

	// AdminColor is the color whose holders, on the license authority
	// address, may create new licenses.
	AdminColor externalapi.Color = 1

	// DefaultFeeColor is the color a fee rate is expressed in when none is
	// given.
	DefaultFeeColor externalapi.Color = 1
)
