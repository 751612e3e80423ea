package consensus

import (
	"io/ioutil"
	"os"

	consensusdatabase "github.com/gcoinproject/gcoind/domain/consensus/database"
	"github.com/gcoinproject/gcoind/domain/consensus/datastructures/licenseregistry"
	"github.com/gcoinproject/gcoind/domain/consensus/datastructures/utxosetstore"
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/processes/transactionhandler"
	"github.com/gcoinproject/gcoind/domain/consensus/processes/transactionvalidator"
	"github.com/gcoinproject/gcoind/domain/dagconfig"
	infrastructuredatabase "github.com/gcoinproject/gcoind/infrastructure/db/database"
	"github.com/gcoinproject/gcoind/infrastructure/db/database/ldb"
	"github.com/gcoinproject/gcoind/util/prioritylock"
	"github.com/pkg/errors"
)

const (
	defaultUTXOCacheSize     = 10_000
	defaultValidationWorkers = 4
	testLevelDBCacheSizeMiB  = 8
)

// Config is the configuration of a Consensus
type Config struct {
	Params *dagconfig.Params

	// UTXOCacheSize is the number of UTXO entries kept in memory
	UTXOCacheSize int

	// ValidationWorkers bounds the number of transactions
	// ValidateTransactions checks at once
	ValidationWorkers int
}

// Factory instantiates new Consensuses
type Factory interface {
	NewConsensus(config *Config, db infrastructuredatabase.Database) (Consensus, error)
	NewTestConsensus(params *dagconfig.Params, testName string) (
		tc Consensus, teardown func(keepDataDir bool), err error)
}

type factory struct{}

// NewFactory creates a new Consensus factory
func NewFactory() Factory {
	return &factory{}
}

// NewConsensus instantiates a new Consensus over db. The first time a
// database is used, the genesis block becomes the tip and the license
// registry is seeded with the network's license authority.
func (f *factory) NewConsensus(config *Config, db infrastructuredatabase.Database) (Consensus, error) {
	if config.Params == nil {
		return nil, errors.New("consensus config has no network params")
	}
	utxoCacheSize := config.UTXOCacheSize
	if utxoCacheSize <= 0 {
		utxoCacheSize = defaultUTXOCacheSize
	}
	validationWorkers := config.ValidationWorkers
	if validationWorkers <= 0 {
		validationWorkers = defaultValidationWorkers
	}

	dbManager := consensusdatabase.New(db)

	// Data Structures
	utxoSetStore, err := utxosetstore.New(dbManager, utxoCacheSize)
	if err != nil {
		return nil, err
	}
	licenseRegistryStore, err := licenseregistry.New(dbManager, config.Params.LicenseAuthority)
	if err != nil {
		return nil, err
	}

	// Processes
	transactionHandlerDispatcher := transactionhandler.New(config.Params.AddressPrefix)
	transactionValidator := transactionvalidator.New(transactionHandlerDispatcher, validationWorkers)

	c := &consensus{
		lock:            prioritylock.New(),
		databaseContext: dbManager,
		params:          config.Params,

		transactionValidator: transactionValidator,

		utxoSetStore:         utxoSetStore,
		licenseRegistryStore: licenseRegistryStore,
	}

	err = c.initGenesisTip()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// initGenesisTip makes the genesis block the tip of an empty chain
func (s *consensus) initGenesisTip() error {
	stagingArea := model.NewStagingArea()
	tipHeight, tipHash := s.utxoSetStore.Tip(stagingArea)
	if tipHash != nil {
		log.Infof("Loaded chain tip %s at height %d", tipHash, tipHeight)
		return nil
	}

	log.Infof("Initializing %s chain at genesis %s", s.params.Name, s.params.GenesisHash)
	s.utxoSetStore.StageTip(stagingArea, 0, s.params.GenesisHash)
	return s.commitAllChanges(stagingArea)
}

func (f *factory) NewTestConsensus(params *dagconfig.Params, testName string) (
	tc Consensus, teardown func(keepDataDir bool), err error) {

	dataDir, err := ioutil.TempDir("", testName)
	if err != nil {
		return nil, nil, err
	}
	db, err := ldb.NewLevelDB(dataDir, testLevelDBCacheSizeMiB)
	if err != nil {
		return nil, nil, err
	}
	tc, err = f.NewConsensus(&Config{Params: params}, db)
	if err != nil {
		return nil, nil, err
	}

	teardown = func(keepDataDir bool) {
		db.Close()
		if !keepDataDir {
			err := os.RemoveAll(dataDir)
			if err != nil {
				log.Errorf("Error removing data directory for test consensus: %s", err)
			}
		}
	}
	return tc, teardown, nil
}
