package miningmanager

import (
	"github.com/gcoinproject/gcoind/domain/consensus"
	"github.com/gcoinproject/gcoind/domain/miningmanager/blocktemplatebuilder"
)

// Factory instantiates new mining managers
type Factory interface {
	NewMiningManager(consensus consensus.Consensus, policy *blocktemplatebuilder.Policy) MiningManager
}

type factory struct{}

// NewMiningManager instantiate a new mining manager. A nil policy means
// blocktemplatebuilder.DefaultPolicy.
func (f *factory) NewMiningManager(consensus consensus.Consensus, policy *blocktemplatebuilder.Policy) MiningManager {
	return &miningManager{
		consensus:            consensus,
		blockTemplateBuilder: blocktemplatebuilder.New(consensus, policy),
	}
}

// NewFactory creates a new mining manager factory
func NewFactory() Factory {
	return &factory{}
}
