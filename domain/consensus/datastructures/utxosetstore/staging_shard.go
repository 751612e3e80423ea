package utxosetstore

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/multiset"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxo"
)

type stagedTip struct {
	height uint64
	hash   *externalapi.DomainHash
}

type utxoSetStagingShard struct {
	store    *utxoSetStore
	toAdd    map[externalapi.DomainOutpoint]externalapi.UTXOEntry
	toRemove map[externalapi.DomainOutpoint]struct{}

	// multiset is a copy of the committed multiset, created on the first
	// staged change
	multiset *multiset.Multiset
	tip      *stagedTip
}

func (uss *utxoSetStore) stagingShard(stagingArea *model.StagingArea) *utxoSetStagingShard {
	return stagingArea.GetOrCreateShard("UTXOSetStore", func() model.StagingShard {
		return &utxoSetStagingShard{
			store:    uss,
			toAdd:    make(map[externalapi.DomainOutpoint]externalapi.UTXOEntry),
			toRemove: make(map[externalapi.DomainOutpoint]struct{}),
		}
	}).(*utxoSetStagingShard)
}

func (usss *utxoSetStagingShard) stagedMultiset() *multiset.Multiset {
	if usss.multiset == nil {
		usss.multiset = usss.store.multiset.Clone()
	}
	return usss.multiset
}

func (usss *utxoSetStagingShard) Commit(dbTx model.DBTransaction) error {
	for outpoint := range usss.toRemove {
		outpoint := outpoint
		err := dbTx.Delete(usss.store.utxoKey(&outpoint))
		if err != nil {
			return err
		}
		usss.store.cache.Remove(&outpoint)
	}

	for outpoint, entry := range usss.toAdd {
		outpoint := outpoint
		entryBytes, err := utxo.EntryToBytes(entry)
		if err != nil {
			return err
		}
		err = dbTx.Put(usss.store.utxoKey(&outpoint), entryBytes)
		if err != nil {
			return err
		}
		usss.store.cache.Add(&outpoint, entry)
	}

	if usss.multiset != nil {
		err := dbTx.Put(multisetKey, usss.multiset.Serialize())
		if err != nil {
			return err
		}
		usss.store.multiset = usss.multiset
	}

	if usss.tip != nil {
		err := dbTx.Put(tipKey, serializeTip(usss.tip.height, usss.tip.hash))
		if err != nil {
			return err
		}
		usss.store.tipHeight = usss.tip.height
		usss.store.tipHash = usss.tip.hash
	}

	log.Tracef("Committed %d new and %d spent UTXOs", len(usss.toAdd), len(usss.toRemove))
	return nil
}

func (usss *utxoSetStagingShard) isStaged() bool {
	return len(usss.toAdd) != 0 || len(usss.toRemove) != 0 || usss.multiset != nil || usss.tip != nil
}
