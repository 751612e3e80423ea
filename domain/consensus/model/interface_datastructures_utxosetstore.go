package model

import "github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"

// UTXOSetStore represents a store of unspent transaction outputs, together
// with the muhash commitment to them and the chain tip they belong to
type UTXOSetStore interface {
	Store
	StageAdd(stagingArea *StagingArea, outpoint *externalapi.DomainOutpoint, entry externalapi.UTXOEntry) error
	StageRemove(dbContext DBReader, stagingArea *StagingArea, outpoint *externalapi.DomainOutpoint) error
	UTXOEntry(dbContext DBReader, stagingArea *StagingArea,
		outpoint *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool, error)
	Iterator(dbContext DBReader) (ReadOnlyUTXOSetIterator, error)
	Commitment(stagingArea *StagingArea) *externalapi.DomainHash
	StageTip(stagingArea *StagingArea, height uint64, tipHash *externalapi.DomainHash)
	Tip(stagingArea *StagingArea) (height uint64, tipHash *externalapi.DomainHash)
	IsStaged(stagingArea *StagingArea) bool
}
