package consensus

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// stagedChainState is the chain state seen through a staging area. Writes
// go to the staging area only, so it is committed or discarded as a whole.
type stagedChainState struct {
	consensus   *consensus
	stagingArea *model.StagingArea
	registry    model.LicenseRegistry
	blockHeight uint64
}

// newStagedChainState creates the staging shards of both stores up front,
// so that concurrent readers of the returned state never add to the
// staging area
func (s *consensus) newStagedChainState(stagingArea *model.StagingArea, blockHeight uint64) *stagedChainState {
	s.utxoSetStore.IsStaged(stagingArea)
	return &stagedChainState{
		consensus:   s,
		stagingArea: stagingArea,
		registry:    s.licenseRegistryStore.Staged(stagingArea),
		blockHeight: blockHeight,
	}
}

func (cs *stagedChainState) UTXOEntry(outpoint *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool, error) {
	return cs.consensus.utxoSetStore.UTXOEntry(cs.consensus.databaseContext, cs.stagingArea, outpoint)
}

func (cs *stagedChainState) LicenseRegistry() model.ReadOnlyLicenseRegistry {
	return cs.registry
}

func (cs *stagedChainState) LicenseAuthority() externalapi.DomainAddress {
	return cs.consensus.params.LicenseAuthority
}

func (cs *stagedChainState) AddUTXO(outpoint *externalapi.DomainOutpoint, entry externalapi.UTXOEntry) error {
	_, exists, err := cs.UTXOEntry(outpoint)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ruleerrors.ErrOverwriteTx, "UTXO %s already exists", outpoint)
	}
	return cs.consensus.utxoSetStore.StageAdd(cs.stagingArea, outpoint, entry)
}

func (cs *stagedChainState) RemoveUTXO(outpoint *externalapi.DomainOutpoint) error {
	return cs.consensus.utxoSetStore.StageRemove(cs.consensus.databaseContext, cs.stagingArea, outpoint)
}

func (cs *stagedChainState) MutableLicenseRegistry() model.LicenseRegistry {
	return cs.registry
}

func (cs *stagedChainState) BlockHeight() uint64 {
	return cs.blockHeight
}

func (cs *stagedChainState) UTXOCommitment() *externalapi.DomainHash {
	return cs.consensus.utxoSetStore.Commitment(cs.stagingArea)
}

func (cs *stagedChainState) Tip() (uint64, *externalapi.DomainHash) {
	return cs.consensus.utxoSetStore.Tip(cs.stagingArea)
}
