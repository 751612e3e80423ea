package miningmanager

import (
	"github.com/gcoinproject/gcoind/domain/consensus"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	miningmanagermodel "github.com/gcoinproject/gcoind/domain/miningmanager/model"
)

// MiningManager creates block templates for mining and submits the blocks
// built from them
type MiningManager interface {
	GetBlockTemplate(coinbaseAddress externalapi.DomainAddress,
		candidates []*externalapi.DomainTransaction) (*externalapi.DomainBlockTemplate, error)
	MineBlock(coinbaseAddress externalapi.DomainAddress,
		candidates []*externalapi.DomainTransaction) (*externalapi.DomainBlock, *externalapi.Verdict, error)
}

type miningManager struct {
	consensus            consensus.Consensus
	blockTemplateBuilder miningmanagermodel.BlockTemplateBuilder
}

// GetBlockTemplate creates a block template for a miner to consume
func (mm *miningManager) GetBlockTemplate(coinbaseAddress externalapi.DomainAddress,
	candidates []*externalapi.DomainTransaction) (*externalapi.DomainBlockTemplate, error) {

	return mm.blockTemplateBuilder.CreateBlockTemplate(coinbaseAddress, candidates)
}

// MineBlock builds a block template from candidates and inserts its block
// into consensus. Blocks need no proof of work, so the template is final.
func (mm *miningManager) MineBlock(coinbaseAddress externalapi.DomainAddress,
	candidates []*externalapi.DomainTransaction) (*externalapi.DomainBlock, *externalapi.Verdict, error) {

	template, err := mm.blockTemplateBuilder.CreateBlockTemplate(coinbaseAddress, candidates)
	if err != nil {
		return nil, nil, err
	}
	verdict, err := mm.consensus.ValidateAndInsertBlock(template.Block)
	if err != nil {
		return nil, nil, err
	}
	if !verdict.Accepted {
		log.Warnf("Consensus rejected a block built from a template: %s", verdict.Reason)
	}
	return template.Block, verdict, nil
}
