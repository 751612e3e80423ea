package ruleerrors

import (
	"fmt"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// DefaultMisbehaviorScore is the score of a rule violation that proves the
// sender is misbehaving.
const DefaultMisbehaviorScore = 100

// These constants are used to identify a specific RuleError.
var (
	// ErrUnknownTxType indicates a transaction type tag no handler serves
	ErrUnknownTxType = newRuleError("unknown transaction type", DefaultMisbehaviorScore)

	// ErrTransactionVersionIsUnknown indicates that the transaction version is unknown.
	ErrTransactionVersionIsUnknown = newRuleError("unknown transaction version", DefaultMisbehaviorScore)

	// ErrNoTxInputs indicates a transaction does not have any inputs. A
	// valid transaction must have at least one input.
	ErrNoTxInputs = newRuleError("transaction has no inputs", DefaultMisbehaviorScore)

	// ErrNoTxOutputs indicates a transaction does not have any outputs
	ErrNoTxOutputs = newRuleError("transaction has no outputs", DefaultMisbehaviorScore)

	// ErrDuplicateTxInputs indicates a transaction references the same
	// input more than once.
	ErrDuplicateTxInputs = newRuleError("duplicate transaction inputs", DefaultMisbehaviorScore)

	// ErrBadTxOutValue indicates an output value for a transaction is
	// invalid in some way such as being out of range.
	ErrBadTxOutValue = newRuleError("bad output value", DefaultMisbehaviorScore)

	// ErrReservedColor indicates an output or fee carries the coinbase color
	ErrReservedColor = newRuleError("reserved color", DefaultMisbehaviorScore)

	// ErrBadFee indicates the declared fee is negative or out of range
	ErrBadFee = newRuleError("bad fee", DefaultMisbehaviorScore)

	// ErrBadAddress indicates an output address that fails to decode
	ErrBadAddress = newRuleError("bad address", DefaultMisbehaviorScore)

	// ErrPayloadTooLarge indicates a payload above MaxPayloadSize
	ErrPayloadTooLarge = newRuleError("payload too large", DefaultMisbehaviorScore)

	// ErrMalformedSignature indicates a public key or signature of the wrong size
	ErrMalformedSignature = newRuleError("malformed signature", DefaultMisbehaviorScore)

	// ErrNullOutpointSpend indicates an input of a spending transaction
	// refers to the null outpoint
	ErrNullOutpointSpend = newRuleError("null outpoint spend", DefaultMisbehaviorScore)

	// ErrBadMintFormat indicates a mint that is not a single null input
	// minting one color without fee
	ErrBadMintFormat = newRuleError("bad mint format", DefaultMisbehaviorScore)

	// ErrBadLicenseFormat indicates a license transaction whose output is
	// not a single license token
	ErrBadLicenseFormat = newRuleError("bad license format", DefaultMisbehaviorScore)

	// ErrWrongSigner indicates an input public key that does not hash to
	// the address of the spent output
	ErrWrongSigner = newRuleError("wrong signer", DefaultMisbehaviorScore)

	// ErrInvalidSignature indicates a signature that fails to verify
	ErrInvalidSignature = newRuleError("invalid signature", DefaultMisbehaviorScore)

	// ErrUnknownColor indicates a color missing from the license registry
	ErrUnknownColor = newRuleError("unknown color", DefaultMisbehaviorScore)

	// ErrLicenseTokenSpend indicates a normal transaction spending a license
	// token
	ErrLicenseTokenSpend = newRuleError("license token spend", DefaultMisbehaviorScore)

	// ErrSpendTooHigh indicates a transaction is attempting to spend more
	// value than the sum of all of its inputs.
	ErrSpendTooHigh = newRuleError("insufficient dominance", DefaultMisbehaviorScore)

	// ErrUnbalancedTransaction indicates inputs that do not equal outputs
	// plus fee
	ErrUnbalancedTransaction = newRuleError("unbalanced transaction", DefaultMisbehaviorScore)

	// ErrMemberNotActivated indicates a receiver of a member controlled color
	// that the issuer never activated
	ErrMemberNotActivated = newRuleError("member not activated", 30)

	// ErrUnauthorizedIssuer indicates a mint by someone other than the
	// registered owner of the color
	ErrUnauthorizedIssuer = newRuleError("unauthorized issuer", DefaultMisbehaviorScore)

	// ErrMintReplayed indicates a mint transaction that was already applied
	ErrMintReplayed = newRuleError("mint already applied", 0)

	// ErrSupplyExceeded indicates a mint above the license's maximum supply
	ErrSupplyExceeded = newRuleError("supply exceeded", DefaultMisbehaviorScore)

	// ErrColorAlreadyLicensed indicates a license creation for a registered color
	ErrColorAlreadyLicensed = newRuleError("color already licensed", DefaultMisbehaviorScore)

	// ErrInvalidLicenseInfo indicates a license payload that does not decode
	ErrInvalidLicenseInfo = newRuleError("invalid license info", DefaultMisbehaviorScore)

	// ErrNotLicenseOwner indicates an owner-only action by someone else
	ErrNotLicenseOwner = newRuleError("not license owner", DefaultMisbehaviorScore)

	// ErrColorNotMemberControlled indicates an activation for a color whose
	// license does not use member control
	ErrColorNotMemberControlled = newRuleError("color not member controlled", 30)

	// ErrOverwriteTx indicates a transaction that has the same ID as a
	// previous transaction whose outputs are not fully spent
	ErrOverwriteTx = newRuleError("transaction overwrites unspent outputs", 0)

	// ErrWrongParent indicates a block that does not build on the current tip
	ErrWrongParent = newRuleError("wrong parent", 0)

	// ErrBadHeight indicates a block whose height is not the tip height plus one
	ErrBadHeight = newRuleError("bad block height", DefaultMisbehaviorScore)

	// ErrNoTransactions indicates a block without a coinbase
	ErrNoTransactions = newRuleError("block has no transactions", DefaultMisbehaviorScore)

	// ErrFirstTxNotCoinbase indicates the first transaction in a block
	// is not a coinbase transaction.
	ErrFirstTxNotCoinbase = newRuleError("first transaction is not a coinbase", DefaultMisbehaviorScore)

	// ErrBadCoinbaseTransaction indicates a coinbase whose form or
	// outputs do not match the fees of the block
	ErrBadCoinbaseTransaction = newRuleError("bad coinbase transaction", DefaultMisbehaviorScore)

	// ErrBlockTooBig indicates a block above the maximum block size
	ErrBlockTooBig = newRuleError("block too big", DefaultMisbehaviorScore)

	// ErrTooManySigOps indicates a block whose transactions sign more inputs
	// than allowed
	ErrTooManySigOps = newRuleError("too many signature operations", DefaultMisbehaviorScore)

	// ErrBadMerkleRoot indicates the calculated merkle root does not match
	// the expected value.
	ErrBadMerkleRoot = newRuleError("bad merkle root", DefaultMisbehaviorScore)

	// ErrBadUTXOCommitment indicates a header commitment that does not match
	// the UTXO set after the block
	ErrBadUTXOCommitment = newRuleError("bad UTXO commitment", DefaultMisbehaviorScore)
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a transaction failed due to one of the many validation
// rules. The caller can use errors.As to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message          string
	inner            error
	misbehaviorScore int
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

// MisbehaviorScore returns how severely a peer relaying the offending
// transaction should be penalized
func (e RuleError) MisbehaviorScore() int {
	return e.misbehaviorScore
}

func newRuleError(message string, misbehaviorScore int) RuleError {
	return RuleError{message: message, inner: nil, misbehaviorScore: misbehaviorScore}
}

// MisbehaviorScore extracts the misbehavior score of the RuleError in err's
// chain. The second return value is false if err is not a rule violation.
func MisbehaviorScore(err error) (int, bool) {
	var ruleError RuleError
	if !errors.As(err, &ruleError) {
		return 0, false
	}
	return ruleError.misbehaviorScore, true
}

// ErrMissingTxOut indicates a transaction output referenced by an input
// either does not exist or has already been spent.
type ErrMissingTxOut struct {
	MissingOutpoints []*externalapi.DomainOutpoint
}

func (e ErrMissingTxOut) Error() string {
	return fmt.Sprintf("missing the following outpoint: %v", e.MissingOutpoints)
}

// NewErrMissingTxOut Creates a new ErrMissingTxOut error wrapped in a RuleError.
// Missing outputs carry no misbehavior score: the sender may simply be ahead
// of the local chain state.
func NewErrMissingTxOut(missingOutpoints []*externalapi.DomainOutpoint) error {
	return errors.WithStack(RuleError{
		message:          "ErrMissingTxOut",
		inner:            ErrMissingTxOut{missingOutpoints},
		misbehaviorScore: 0,
	})
}
