package utxosetstore

import (
	"github.com/gcoinproject/gcoind/domain/consensus/database"
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/multiset"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/serialization"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxo"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxolrucache"
	"github.com/gcoinproject/gcoind/infrastructure/logger"
	"github.com/pkg/errors"
)

var utxoSetBucket = database.MakeBucket([]byte("utxo-set"))
var metadataBucket = database.MakeBucket([]byte("utxo-set-metadata"))
var multisetKey = metadataBucket.Key([]byte("multiset"))
var tipKey = metadataBucket.Key([]byte("tip"))

// utxoSetStore represents a store of unspent transaction outputs
type utxoSetStore struct {
	cache *utxolrucache.LRUCache

	// committed state mirrored in memory. Writers hold the consensus
	// write lock while committing.
	multiset  *multiset.Multiset
	tipHeight uint64
	tipHash   *externalapi.DomainHash
}

// New instantiates a new UTXOSetStore, loading the committed commitment and
// tip from dbContext
func New(dbContext model.DBReader, cacheSize int) (model.UTXOSetStore, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "utxosetstore.New")
	defer onEnd()

	store := &utxoSetStore{
		cache:    utxolrucache.New(cacheSize),
		multiset: multiset.New(),
	}

	multisetBytes, err := dbContext.Get(multisetKey)
	if err != nil && !database.IsNotFoundError(err) {
		return nil, err
	}
	if err == nil {
		store.multiset, err = multiset.FromBytes(multisetBytes)
		if err != nil {
			return nil, err
		}
	}

	tipBytes, err := dbContext.Get(tipKey)
	if err != nil && !database.IsNotFoundError(err) {
		return nil, err
	}
	if err == nil {
		store.tipHeight, store.tipHash, err = deserializeTip(tipBytes)
		if err != nil {
			return nil, err
		}
	}

	log.Debugf("Loaded UTXO set at height %d with commitment %s", store.tipHeight, store.multiset.Hash())
	return store, nil
}

func (uss *utxoSetStore) StageAdd(stagingArea *model.StagingArea, outpoint *externalapi.DomainOutpoint,
	entry externalapi.UTXOEntry) error {

	stagingShard := uss.stagingShard(stagingArea)

	serializedUTXO, err := utxo.SerializeUTXO(entry, outpoint)
	if err != nil {
		return err
	}
	stagingShard.stagedMultiset().Add(serializedUTXO)

	delete(stagingShard.toRemove, *outpoint)
	stagingShard.toAdd[*outpoint] = entry
	return nil
}

func (uss *utxoSetStore) StageRemove(dbContext model.DBReader, stagingArea *model.StagingArea,
	outpoint *externalapi.DomainOutpoint) error {

	entry, exists, err := uss.UTXOEntry(dbContext, stagingArea, outpoint)
	if err != nil {
		return err
	}
	if !exists {
		return errors.Errorf("cannot remove missing UTXO %s", outpoint)
	}

	stagingShard := uss.stagingShard(stagingArea)

	serializedUTXO, err := utxo.SerializeUTXO(entry, outpoint)
	if err != nil {
		return err
	}
	stagingShard.stagedMultiset().Remove(serializedUTXO)

	if _, ok := stagingShard.toAdd[*outpoint]; ok {
		delete(stagingShard.toAdd, *outpoint)
		return nil
	}
	stagingShard.toRemove[*outpoint] = struct{}{}
	return nil
}

func (uss *utxoSetStore) UTXOEntry(dbContext model.DBReader, stagingArea *model.StagingArea,
	outpoint *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool, error) {

	stagingShard := uss.stagingShard(stagingArea)

	if _, ok := stagingShard.toRemove[*outpoint]; ok {
		return nil, false, nil
	}
	if entry, ok := stagingShard.toAdd[*outpoint]; ok {
		return entry, true, nil
	}

	if entry, ok := uss.cache.Get(outpoint); ok {
		return entry, true, nil
	}

	entryBytes, err := dbContext.Get(uss.utxoKey(outpoint))
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	entry, err := utxo.EntryFromBytes(entryBytes)
	if err != nil {
		return nil, false, err
	}
	uss.cache.Add(outpoint, entry)
	return entry, true, nil
}

func (uss *utxoSetStore) Commitment(stagingArea *model.StagingArea) *externalapi.DomainHash {
	stagingShard := uss.stagingShard(stagingArea)
	if stagingShard.multiset != nil {
		return stagingShard.multiset.Hash()
	}
	return uss.multiset.Hash()
}

func (uss *utxoSetStore) StageTip(stagingArea *model.StagingArea, height uint64, tipHash *externalapi.DomainHash) {
	stagingShard := uss.stagingShard(stagingArea)
	hashClone := *tipHash
	stagingShard.tip = &stagedTip{height: height, hash: &hashClone}
}

func (uss *utxoSetStore) Tip(stagingArea *model.StagingArea) (uint64, *externalapi.DomainHash) {
	stagingShard := uss.stagingShard(stagingArea)
	if stagingShard.tip != nil {
		return stagingShard.tip.height, stagingShard.tip.hash
	}
	return uss.tipHeight, uss.tipHash
}

func (uss *utxoSetStore) IsStaged(stagingArea *model.StagingArea) bool {
	return uss.stagingShard(stagingArea).isStaged()
}

func (uss *utxoSetStore) utxoKey(outpoint *externalapi.DomainOutpoint) model.DBKey {
	return utxoSetBucket.Key(serialization.OutpointToBytes(outpoint))
}
