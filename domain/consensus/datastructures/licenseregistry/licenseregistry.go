package licenseregistry

import (
	"sort"
	"sync"

	"github.com/gcoinproject/gcoind/domain/consensus/database"
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/infrastructure/logger"
)

var recordBucket = database.MakeBucket([]byte("license-records"))
var memberBucket = database.MakeBucket([]byte("license-members"))
var mintBucket = database.MakeBucket([]byte("license-mints"))

type memberSet map[externalapi.DomainAddress]struct{}
type mintSet map[externalapi.DomainTransactionID]struct{}

// licenseRegistryStore keeps the committed registry in memory and writes it
// through to the database on Commit
type licenseRegistryStore struct {
	mutex   sync.RWMutex
	records map[externalapi.Color]*externalapi.ColorRecord
	members map[externalapi.Color]memberSet
	mints   map[externalapi.Color]mintSet
}

// New instantiates a new LicenseRegistryStore, loading every committed
// record from dbManager. A registry without an owner for AdminColor is
// seeded with licenseAuthority.
func New(dbManager model.DBManager, licenseAuthority externalapi.DomainAddress) (model.LicenseRegistryStore, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "licenseregistry.New")
	defer onEnd()

	store := &licenseRegistryStore{
		records: make(map[externalapi.Color]*externalapi.ColorRecord),
		members: make(map[externalapi.Color]memberSet),
		mints:   make(map[externalapi.Color]mintSet),
	}
	err := store.load(dbManager)
	if err != nil {
		return nil, err
	}

	if _, ok := store.records[constants.AdminColor]; !ok {
		err = store.seed(dbManager, licenseAuthority)
		if err != nil {
			return nil, err
		}
	}

	log.Debugf("Loaded %d licensed colors", len(store.records))
	return store, nil
}

func (lrs *licenseRegistryStore) load(dbContext model.DBReader) error {
	recordCursor, err := dbContext.Cursor(recordBucket)
	if err != nil {
		return err
	}
	defer recordCursor.Close()

	for ok := recordCursor.First(); ok; ok = recordCursor.Next() {
		key, err := recordCursor.Key()
		if err != nil {
			return err
		}
		color, err := colorFromBytes(key.Suffix())
		if err != nil {
			return err
		}
		recordBytes, err := recordCursor.Value()
		if err != nil {
			return err
		}
		record, err := deserializeRecord(recordBytes)
		if err != nil {
			return err
		}
		lrs.records[color] = record
	}

	memberCursor, err := dbContext.Cursor(memberBucket)
	if err != nil {
		return err
	}
	defer memberCursor.Close()

	for ok := memberCursor.First(); ok; ok = memberCursor.Next() {
		key, err := memberCursor.Key()
		if err != nil {
			return err
		}
		color, address, err := parseMemberSuffix(key.Suffix())
		if err != nil {
			return err
		}
		lrs.addMember(color, address)
	}

	mintCursor, err := dbContext.Cursor(mintBucket)
	if err != nil {
		return err
	}
	defer mintCursor.Close()

	for ok := mintCursor.First(); ok; ok = mintCursor.Next() {
		key, err := mintCursor.Key()
		if err != nil {
			return err
		}
		color, mintID, err := parseMintSuffix(key.Suffix())
		if err != nil {
			return err
		}
		lrs.addMint(color, mintID)
	}
	return nil
}

func (lrs *licenseRegistryStore) seed(dbManager model.DBManager, licenseAuthority externalapi.DomainAddress) error {
	log.Infof("Seeding the license registry with authority %s", licenseAuthority)

	stagingArea := model.NewStagingArea()
	_, err := lrs.Staged(stagingArea).SetOwner(constants.AdminColor, licenseAuthority, &externalapi.LicenseInfo{
		Name: "license authority",
	})
	if err != nil {
		return err
	}

	dbTx, err := dbManager.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	err = stagingArea.Commit(dbTx)
	if err != nil {
		return err
	}
	return dbTx.Commit()
}

func (lrs *licenseRegistryStore) addMember(color externalapi.Color, address externalapi.DomainAddress) {
	members, ok := lrs.members[color]
	if !ok {
		members = make(memberSet)
		lrs.members[color] = members
	}
	members[address] = struct{}{}
}

func (lrs *licenseRegistryStore) addMint(color externalapi.Color, mintID *externalapi.DomainTransactionID) {
	mints, ok := lrs.mints[color]
	if !ok {
		mints = make(mintSet)
		lrs.mints[color] = mints
	}
	mints[*mintID] = struct{}{}
}

func (lrs *licenseRegistryStore) removeMint(color externalapi.Color, mintID *externalapi.DomainTransactionID) {
	delete(lrs.mints[color], *mintID)
	if len(lrs.mints[color]) == 0 {
		delete(lrs.mints, color)
	}
}

func (lrs *licenseRegistryStore) GetOwner(color externalapi.Color) (externalapi.DomainAddress, bool) {
	lrs.mutex.RLock()
	defer lrs.mutex.RUnlock()

	record, ok := lrs.records[color]
	if !ok {
		return "", false
	}
	return record.Owner, true
}

func (lrs *licenseRegistryStore) Record(color externalapi.Color) (*externalapi.ColorRecord, bool) {
	lrs.mutex.RLock()
	defer lrs.mutex.RUnlock()

	record, ok := lrs.records[color]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

func (lrs *licenseRegistryStore) IsRegistered(color externalapi.Color) bool {
	lrs.mutex.RLock()
	defer lrs.mutex.RUnlock()

	_, ok := lrs.records[color]
	return ok
}

func (lrs *licenseRegistryStore) IsActivated(color externalapi.Color, address externalapi.DomainAddress) bool {
	lrs.mutex.RLock()
	defer lrs.mutex.RUnlock()

	_, ok := lrs.members[color][address]
	return ok
}

func (lrs *licenseRegistryStore) HasMinted(color externalapi.Color, mintID *externalapi.DomainTransactionID) bool {
	lrs.mutex.RLock()
	defer lrs.mutex.RUnlock()

	_, ok := lrs.mints[color][*mintID]
	return ok
}

func (lrs *licenseRegistryStore) Colors() []externalapi.Color {
	lrs.mutex.RLock()
	defer lrs.mutex.RUnlock()

	colors := make([]externalapi.Color, 0, len(lrs.records))
	for color := range lrs.records {
		colors = append(colors, color)
	}
	sortColors(colors)
	return colors
}

func (lrs *licenseRegistryStore) Staged(stagingArea *model.StagingArea) model.LicenseRegistry {
	return &stagedRegistry{
		store: lrs,
		shard: lrs.stagingShard(stagingArea),
	}
}

func (lrs *licenseRegistryStore) IsStaged(stagingArea *model.StagingArea) bool {
	return lrs.stagingShard(stagingArea).isStaged()
}

func sortColors(colors []externalapi.Color) {
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })
}
