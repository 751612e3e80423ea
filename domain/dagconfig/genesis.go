package dagconfig

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
)

// newGenesisBlock returns an empty genesis block stamped with the given
// time. It carries no transactions: the license registry seed replaces a
// genesis coinbase.
func newGenesisBlock(timeInMilliseconds int64) *externalapi.DomainBlock {
	return &externalapi.DomainBlock{
		Header: &externalapi.DomainBlockHeader{
			Version:            constants.BlockVersion,
			ParentHash:         externalapi.DomainHash{},
			HashMerkleRoot:     externalapi.DomainHash{},
			UTXOCommitment:     externalapi.DomainHash{},
			TimeInMilliseconds: timeInMilliseconds,
			Height:             0,
			Nonce:              0,
		},
		Transactions: []*externalapi.DomainTransaction{},
	}
}

var genesisBlock = newGenesisBlock(0x177a5f1dd32)
var genesisHash = consensushashing.BlockHash(genesisBlock)

var testnetGenesisBlock = newGenesisBlock(0x177a5f1dd33)
var testnetGenesisHash = consensushashing.BlockHash(testnetGenesisBlock)

var regtestGenesisBlock = newGenesisBlock(0x177a5f1dd34)
var regtestGenesisHash = consensushashing.BlockHash(regtestGenesisBlock)
