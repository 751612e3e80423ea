package licenseregistry

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

type licenseRegistryStagingShard struct {
	store *licenseRegistryStore

	records map[externalapi.Color]*externalapi.ColorRecord
	removed map[externalapi.Color]struct{}

	// clearedMembers holds colors whose committed members are dropped on
	// commit. activations overrides membership per address: true activates,
	// false deactivates.
	clearedMembers map[externalapi.Color]struct{}
	activations    map[externalapi.Color]map[externalapi.DomainAddress]bool

	// mints records applied (true) and undone (false) mint transactions.
	// Mint IDs outlive their color so a removed and relicensed color cannot
	// replay them.
	mints map[externalapi.Color]map[externalapi.DomainTransactionID]bool
}

func (lrs *licenseRegistryStore) stagingShard(stagingArea *model.StagingArea) *licenseRegistryStagingShard {
	return stagingArea.GetOrCreateShard("LicenseRegistryStore", func() model.StagingShard {
		return &licenseRegistryStagingShard{
			store:          lrs,
			records:        make(map[externalapi.Color]*externalapi.ColorRecord),
			removed:        make(map[externalapi.Color]struct{}),
			clearedMembers: make(map[externalapi.Color]struct{}),
			activations:    make(map[externalapi.Color]map[externalapi.DomainAddress]bool),
			mints:          make(map[externalapi.Color]map[externalapi.DomainTransactionID]bool),
		}
	}).(*licenseRegistryStagingShard)
}

func (lrss *licenseRegistryStagingShard) Commit(dbTx model.DBTransaction) error {
	store := lrss.store
	store.mutex.Lock()
	defer store.mutex.Unlock()

	for color := range lrss.removed {
		err := dbTx.Delete(recordBucket.Key(colorToBytes(color)))
		if err != nil {
			return err
		}
		delete(store.records, color)
	}

	for color := range lrss.clearedMembers {
		for address := range store.members[color] {
			err := dbTx.Delete(memberBucket.Key(memberSuffix(color, address)))
			if err != nil {
				return err
			}
		}
		delete(store.members, color)
	}

	for color, record := range lrss.records {
		recordBytes, err := serializeRecord(record)
		if err != nil {
			return err
		}
		err = dbTx.Put(recordBucket.Key(colorToBytes(color)), recordBytes)
		if err != nil {
			return err
		}
		store.records[color] = record.Clone()
	}

	for color, addresses := range lrss.activations {
		for address, activated := range addresses {
			key := memberBucket.Key(memberSuffix(color, address))
			if activated {
				err := dbTx.Put(key, []byte{})
				if err != nil {
					return err
				}
				store.addMember(color, address)
				continue
			}

			err := dbTx.Delete(key)
			if err != nil {
				return err
			}
			delete(store.members[color], address)
			if len(store.members[color]) == 0 {
				delete(store.members, color)
			}
		}
	}

	for color, mintIDs := range lrss.mints {
		for mintID, applied := range mintIDs {
			mintID := mintID
			key := mintBucket.Key(mintSuffix(color, &mintID))
			if applied {
				err := dbTx.Put(key, []byte{})
				if err != nil {
					return err
				}
				store.addMint(color, &mintID)
				continue
			}

			err := dbTx.Delete(key)
			if err != nil {
				return err
			}
			store.removeMint(color, &mintID)
		}
	}

	log.Tracef("Committed %d license records and %d removals", len(lrss.records), len(lrss.removed))
	return nil
}

func (lrss *licenseRegistryStagingShard) isStaged() bool {
	return len(lrss.records) != 0 || len(lrss.removed) != 0 ||
		len(lrss.clearedMembers) != 0 || len(lrss.activations) != 0 || len(lrss.mints) != 0
}
