package consensus

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxo"
	"github.com/gcoinproject/gcoind/domain/dagconfig"
	"github.com/gcoinproject/gcoind/infrastructure/logger"
	"github.com/gcoinproject/gcoind/util/prioritylock"
)

// Consensus maintains the current core state of the node
type Consensus interface {
	ValidateTransaction(tx *externalapi.DomainTransaction) (*externalapi.Verdict, error)
	ValidateTransactions(txs []*externalapi.DomainTransaction) ([]*externalapi.Verdict, error)
	ApplyTransaction(tx *externalapi.DomainTransaction) (*externalapi.Verdict, error)
	UndoTransaction(tx *externalapi.DomainTransaction) error
	ValidateAndInsertBlock(block *externalapi.DomainBlock) (*externalapi.Verdict, error)

	// WithOverlay calls f with a chain state whose changes are dropped when
	// f returns. The state is locked for reading until then.
	WithOverlay(f func(overlay model.ChainStateOverlay) error) error

	GetUTXOEntry(outpoint *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool, error)
	GetUTXOsByAddress(address externalapi.DomainAddress) ([]*externalapi.OutpointAndUTXOEntryPair, error)
	GetBalance(address externalapi.DomainAddress) (*externalapi.ColorAmount, error)
	GetOwner(color externalapi.Color) (externalapi.DomainAddress, bool)
	GetColorRecord(color externalapi.Color) (*externalapi.ColorRecord, bool)
	GetColors() []externalapi.Color
	GetTip() (height uint64, tipHash *externalapi.DomainHash)
	GetUTXOCommitment() *externalapi.DomainHash
	Params() *dagconfig.Params
}

type consensus struct {
	lock            *prioritylock.Mutex
	databaseContext model.DBManager
	params          *dagconfig.Params

	transactionValidator model.TransactionValidator

	utxoSetStore         model.UTXOSetStore
	licenseRegistryStore model.LicenseRegistryStore
}

// ValidateTransaction checks tx against the current state without changing it
func (s *consensus) ValidateTransaction(tx *externalapi.DomainTransaction) (*externalapi.Verdict, error) {
	s.lock.HighPriorityReadLock()
	defer s.lock.HighPriorityReadUnlock()

	return s.transactionValidator.ValidateTransaction(tx, s.readOnlyState())
}

// ValidateTransactions checks txs independently of each other against the
// current state. Transactions spending each other's outputs are therefore
// rejected as missing inputs.
func (s *consensus) ValidateTransactions(txs []*externalapi.DomainTransaction) ([]*externalapi.Verdict, error) {
	s.lock.HighPriorityReadLock()
	defer s.lock.HighPriorityReadUnlock()

	return s.transactionValidator.ValidateTransactions(txs, s.readOnlyState())
}

// readOnlyState must only be used for reading, and while holding the lock
func (s *consensus) readOnlyState() *stagedChainState {
	return s.newStagedChainState(model.NewStagingArea(), s.nextBlockHeight(nil))
}

// ApplyTransaction validates tx and, if it is accepted, applies it to the
// current state. The inputs of tx are populated with the outputs they
// spend, so that it can later be passed to UndoTransaction.
func (s *consensus) ApplyTransaction(tx *externalapi.DomainTransaction) (*externalapi.Verdict, error) {
	s.lock.LowPriorityLock()
	defer s.lock.LowPriorityUnlock()

	stagingArea := model.NewStagingArea()
	state := s.newStagedChainState(stagingArea, s.nextBlockHeight(stagingArea))

	verdict, err := s.transactionValidator.ApplyTransaction(tx, state)
	if err != nil || !verdict.Accepted {
		return verdict, err
	}

	err = s.commitAllChanges(stagingArea)
	if err != nil {
		return nil, err
	}
	return verdict, nil
}

// UndoTransaction reverses a transaction applied with ApplyTransaction
func (s *consensus) UndoTransaction(tx *externalapi.DomainTransaction) error {
	s.lock.LowPriorityLock()
	defer s.lock.LowPriorityUnlock()

	stagingArea := model.NewStagingArea()
	state := s.newStagedChainState(stagingArea, s.nextBlockHeight(stagingArea))

	err := s.transactionValidator.UndoTransaction(tx, state)
	if err != nil {
		return err
	}
	return s.commitAllChanges(stagingArea)
}

func (s *consensus) WithOverlay(f func(overlay model.ChainStateOverlay) error) error {
	s.lock.HighPriorityReadLock()
	defer s.lock.HighPriorityReadUnlock()

	stagingArea := model.NewStagingArea()
	return f(s.newStagedChainState(stagingArea, s.nextBlockHeight(stagingArea)))
}

func (s *consensus) GetUTXOEntry(outpoint *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool, error) {
	s.lock.HighPriorityReadLock()
	defer s.lock.HighPriorityReadUnlock()

	return s.utxoSetStore.UTXOEntry(s.databaseContext, model.NewStagingArea(), outpoint)
}

// GetUTXOsByAddress scans the UTXO set for the outputs held by address
func (s *consensus) GetUTXOsByAddress(address externalapi.DomainAddress) (
	[]*externalapi.OutpointAndUTXOEntryPair, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "GetUTXOsByAddress")
	defer onEnd()

	s.lock.HighPriorityReadLock()
	defer s.lock.HighPriorityReadUnlock()

	iterator, err := s.utxoSetStore.Iterator(s.databaseContext)
	if err != nil {
		return nil, err
	}
	defer iterator.Close()

	var pairs []*externalapi.OutpointAndUTXOEntryPair
	for ok := iterator.First(); ok; ok = iterator.Next() {
		outpoint, entry, err := iterator.Get()
		if err != nil {
			return nil, err
		}
		if entry.Address() != address {
			continue
		}
		pairs = append(pairs, &externalapi.OutpointAndUTXOEntryPair{
			Outpoint:  outpoint,
			UTXOEntry: entry,
		})
	}
	return pairs, nil
}

// GetBalance sums the outputs held by address, color by color
func (s *consensus) GetBalance(address externalapi.DomainAddress) (*externalapi.ColorAmount, error) {
	pairs, err := s.GetUTXOsByAddress(address)
	if err != nil {
		return nil, err
	}
	collection := make(utxo.Collection, len(pairs))
	for _, pair := range pairs {
		collection.Add(pair.Outpoint, pair.UTXOEntry)
	}
	return collection.TotalAmount(), nil
}

func (s *consensus) GetOwner(color externalapi.Color) (externalapi.DomainAddress, bool) {
	return s.licenseRegistryStore.GetOwner(color)
}

func (s *consensus) GetColorRecord(color externalapi.Color) (*externalapi.ColorRecord, bool) {
	return s.licenseRegistryStore.Record(color)
}

func (s *consensus) GetColors() []externalapi.Color {
	return s.licenseRegistryStore.Colors()
}

func (s *consensus) GetTip() (uint64, *externalapi.DomainHash) {
	s.lock.HighPriorityReadLock()
	defer s.lock.HighPriorityReadUnlock()

	return s.utxoSetStore.Tip(model.NewStagingArea())
}

func (s *consensus) GetUTXOCommitment() *externalapi.DomainHash {
	s.lock.HighPriorityReadLock()
	defer s.lock.HighPriorityReadUnlock()

	return s.utxoSetStore.Commitment(model.NewStagingArea())
}

func (s *consensus) Params() *dagconfig.Params {
	return s.params
}

// nextBlockHeight is the height outputs created on top of the tip get.
// A nil stagingArea reads the committed tip.
func (s *consensus) nextBlockHeight(stagingArea *model.StagingArea) uint64 {
	if stagingArea == nil {
		stagingArea = model.NewStagingArea()
	}
	tipHeight, _ := s.utxoSetStore.Tip(stagingArea)
	return tipHeight + 1
}

func (s *consensus) commitAllChanges(stagingArea *model.StagingArea) error {
	dbTx, err := s.databaseContext.Begin()
	if err != nil {
		return err
	}
	// Rolling back a committed transaction is a no-op
	defer dbTx.RollbackUnlessClosed()

	err = stagingArea.Commit(dbTx)
	if err != nil {
		return err
	}
	return dbTx.Commit()
}
