package blocktemplatebuilder

import (
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/util"
)

// Policy houses the policy (configuration parameters) which is used to control
// the generation of block templates. See the documentation for
// CreateBlockTemplate for more details on each of these parameters are used.
type Policy struct {
	// BlockMaxSize is the maximum block size to be used when generating a
	// block template.
	BlockMaxSize uint64

	// BlockMinSize is the size up to which low-fee transactions are still
	// included in a block template.
	BlockMinSize uint64

	// BlockPrioritySize is the size in bytes for high-priority / low-fee
	// transactions to be used when generating a block template.
	BlockPrioritySize uint64

	// MinRelayTxFee is the fee rate below which a transaction is
	// considered low-fee.
	MinRelayTxFee *util.FeeRate
}

// DefaultPolicy returns the policy a node uses when nothing else is
// configured
func DefaultPolicy() *Policy {
	return &Policy{
		BlockMaxSize:      constants.DefaultBlockMaxSize,
		BlockMinSize:      constants.DefaultBlockMinSize,
		BlockPrioritySize: constants.DefaultBlockPrioritySize,
		MinRelayTxFee:     util.NewFeeRateFromValue(constants.DefaultMinRelayTxFee),
	}
}

// normalized caps the sizes at what consensus accepts and keeps the priority
// area within the block
func (p *Policy) normalized() *Policy {
	normalized := *p
	if normalized.BlockMaxSize == 0 || normalized.BlockMaxSize > constants.MaxBlockSize {
		normalized.BlockMaxSize = constants.MaxBlockSize
	}
	if normalized.BlockPrioritySize > normalized.BlockMaxSize {
		normalized.BlockPrioritySize = normalized.BlockMaxSize
	}
	if normalized.BlockMinSize > normalized.BlockMaxSize {
		normalized.BlockMinSize = normalized.BlockMaxSize
	}
	if normalized.MinRelayTxFee == nil {
		normalized.MinRelayTxFee = util.DefaultFeeRate()
	}
	return &normalized
}
