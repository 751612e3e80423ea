package utxosetstore

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/database"
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/multiset"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxo"
	"github.com/gcoinproject/gcoind/infrastructure/db/database/ldb"
	"github.com/stretchr/testify/require"
)

func prepareDBManager(t *testing.T) (dbManager model.DBManager, path string, teardown func()) {
	path, err := ioutil.TempDir("", "TestUTXOSetStore")
	require.NoError(t, err)
	db, err := ldb.NewLevelDB(path, 8)
	require.NoError(t, err)
	return database.New(db), path, func() {
		require.NoError(t, db.Close())
		require.NoError(t, os.RemoveAll(path))
	}
}

func commit(t *testing.T, dbManager model.DBManager, stagingArea *model.StagingArea) {
	dbTx, err := dbManager.Begin()
	require.NoError(t, err)
	defer dbTx.RollbackUnlessClosed()
	require.NoError(t, stagingArea.Commit(dbTx))
	require.NoError(t, dbTx.Commit())
}

func outpoint(b byte, index uint32) *externalapi.DomainOutpoint {
	var idBytes [externalapi.DomainHashSize]byte
	idBytes[0] = b
	return &externalapi.DomainOutpoint{
		TransactionID: externalapi.DomainTransactionID(*externalapi.NewDomainHashFromByteArray(&idBytes)),
		Index:         index,
	}
}

func TestUTXOSetStoreStageAndCommit(t *testing.T) {
	dbManager, _, teardown := prepareDBManager(t)
	defer teardown()

	store, err := New(dbManager, 10)
	require.NoError(t, err)

	emptyCommitment := multiset.New().Hash()
	require.True(t, store.Commitment(model.NewStagingArea()).Equal(emptyCommitment))

	first := outpoint(1, 0)
	second := outpoint(2, 1)
	firstEntry := utxo.NewUTXOEntry(externalapi.NewColorAmount(1, 100), "alice", 1, externalapi.TxTypeNormal)
	secondEntry := utxo.NewUTXOEntry(externalapi.NewColorAmount(5, 7), "bob", 1, externalapi.TxTypeMint)

	stagingArea := model.NewStagingArea()
	require.NoError(t, store.StageAdd(stagingArea, first, firstEntry))
	require.NoError(t, store.StageAdd(stagingArea, second, secondEntry))
	require.True(t, store.IsStaged(stagingArea))

	entry, exists, err := store.UTXOEntry(dbManager, stagingArea, first)
	require.NoError(t, err)
	require.True(t, exists)
	require.True(t, entry.Equal(firstEntry))

	// Staged data is invisible to other staging areas
	_, exists, err = store.UTXOEntry(dbManager, model.NewStagingArea(), first)
	require.NoError(t, err)
	require.False(t, exists)

	stagedCommitment := store.Commitment(stagingArea)
	require.False(t, stagedCommitment.Equal(emptyCommitment))

	commit(t, dbManager, stagingArea)
	require.True(t, store.Commitment(model.NewStagingArea()).Equal(stagedCommitment))

	spendArea := model.NewStagingArea()
	require.NoError(t, store.StageRemove(dbManager, spendArea, first))
	_, exists, err = store.UTXOEntry(dbManager, spendArea, first)
	require.NoError(t, err)
	require.False(t, exists)
	require.Error(t, store.StageRemove(dbManager, spendArea, first))
	commit(t, dbManager, spendArea)

	_, exists, err = store.UTXOEntry(dbManager, model.NewStagingArea(), first)
	require.NoError(t, err)
	require.False(t, exists)

	expected := multiset.New()
	serialized, err := utxo.SerializeUTXO(secondEntry, second)
	require.NoError(t, err)
	expected.Add(serialized)
	require.True(t, store.Commitment(model.NewStagingArea()).Equal(expected.Hash()))
}

func TestUTXOSetStoreAddThenRemoveInSameArea(t *testing.T) {
	dbManager, _, teardown := prepareDBManager(t)
	defer teardown()

	store, err := New(dbManager, 10)
	require.NoError(t, err)

	stagingArea := model.NewStagingArea()
	op := outpoint(3, 0)
	entry := utxo.NewUTXOEntry(externalapi.NewColorAmount(1, 1), "carol", 2, externalapi.TxTypeNormal)
	require.NoError(t, store.StageAdd(stagingArea, op, entry))
	require.NoError(t, store.StageRemove(dbManager, stagingArea, op))
	require.True(t, store.Commitment(stagingArea).Equal(multiset.New().Hash()))

	commit(t, dbManager, stagingArea)
	iterator, err := store.Iterator(dbManager)
	require.NoError(t, err)
	defer iterator.Close()
	require.False(t, iterator.First())
}

func TestUTXOSetStoreReload(t *testing.T) {
	dbManager, _, teardown := prepareDBManager(t)
	defer teardown()

	store, err := New(dbManager, 10)
	require.NoError(t, err)

	height, tip := store.Tip(model.NewStagingArea())
	require.Zero(t, height)
	require.Nil(t, tip)

	stagingArea := model.NewStagingArea()
	ops := []*externalapi.DomainOutpoint{outpoint(4, 0), outpoint(4, 1), outpoint(5, 0)}
	for i, op := range ops {
		entry := utxo.NewUTXOEntry(externalapi.NewColorAmount(externalapi.Color(i+1), int64(i+10)),
			"dave", 3, externalapi.TxTypeNormal)
		require.NoError(t, store.StageAdd(stagingArea, op, entry))
	}
	tipHash := externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{9})
	store.StageTip(stagingArea, 3, tipHash)
	commitment := store.Commitment(stagingArea)
	commit(t, dbManager, stagingArea)

	reloaded, err := New(dbManager, 10)
	require.NoError(t, err)
	height, tip = reloaded.Tip(model.NewStagingArea())
	require.Equal(t, uint64(3), height)
	require.True(t, tip.Equal(tipHash))
	require.True(t, reloaded.Commitment(model.NewStagingArea()).Equal(commitment))

	iterator, err := reloaded.Iterator(dbManager)
	require.NoError(t, err)
	defer iterator.Close()

	seen := make(map[externalapi.DomainOutpoint]struct{})
	for ok := iterator.First(); ok; ok = iterator.Next() {
		op, entry, err := iterator.Get()
		require.NoError(t, err)
		require.Equal(t, externalapi.DomainAddress("dave"), entry.Address())
		seen[*op] = struct{}{}
	}
	require.Len(t, seen, len(ops))
}
