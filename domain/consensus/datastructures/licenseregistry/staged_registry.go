package licenseregistry

import (
	"math"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// stagedRegistry is a LicenseRegistry that reads through its staging shard
// to the committed registry and writes only to the shard
type stagedRegistry struct {
	store *licenseRegistryStore
	shard *licenseRegistryStagingShard
}

func (sr *stagedRegistry) GetOwner(color externalapi.Color) (externalapi.DomainAddress, bool) {
	record, ok := sr.record(color)
	if !ok {
		return "", false
	}
	return record.Owner, true
}

func (sr *stagedRegistry) Record(color externalapi.Color) (*externalapi.ColorRecord, bool) {
	record, ok := sr.record(color)
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

// record returns the visible record without cloning it
func (sr *stagedRegistry) record(color externalapi.Color) (*externalapi.ColorRecord, bool) {
	if record, ok := sr.shard.records[color]; ok {
		return record, true
	}
	if _, ok := sr.shard.removed[color]; ok {
		return nil, false
	}

	sr.store.mutex.RLock()
	defer sr.store.mutex.RUnlock()
	record, ok := sr.store.records[color]
	return record, ok
}

func (sr *stagedRegistry) IsRegistered(color externalapi.Color) bool {
	_, ok := sr.record(color)
	return ok
}

func (sr *stagedRegistry) IsActivated(color externalapi.Color, address externalapi.DomainAddress) bool {
	if activated, ok := sr.shard.activations[color][address]; ok {
		return activated
	}
	if _, ok := sr.shard.clearedMembers[color]; ok {
		return false
	}
	return sr.store.IsActivated(color, address)
}

func (sr *stagedRegistry) HasMinted(color externalapi.Color, mintID *externalapi.DomainTransactionID) bool {
	if applied, ok := sr.shard.mints[color][*mintID]; ok {
		return applied
	}
	return sr.store.HasMinted(color, mintID)
}

func (sr *stagedRegistry) Colors() []externalapi.Color {
	colorSet := make(map[externalapi.Color]struct{})
	for _, color := range sr.store.Colors() {
		if _, ok := sr.shard.removed[color]; !ok {
			colorSet[color] = struct{}{}
		}
	}
	for color := range sr.shard.records {
		colorSet[color] = struct{}{}
	}

	colors := make([]externalapi.Color, 0, len(colorSet))
	for color := range colorSet {
		colors = append(colors, color)
	}
	sortColors(colors)
	return colors
}

func (sr *stagedRegistry) SetOwner(color externalapi.Color, owner externalapi.DomainAddress,
	info *externalapi.LicenseInfo) (bool, error) {

	if record, ok := sr.record(color); ok {
		return record.Owner == owner, nil
	}

	delete(sr.shard.removed, color)
	sr.shard.records[color] = &externalapi.ColorRecord{
		Owner: owner,
		Info:  info.Clone(),
	}
	log.Debugf("Staged license of color %d to %s", color, owner)
	return true, nil
}

func (sr *stagedRegistry) TransferOwner(color externalapi.Color, newOwner externalapi.DomainAddress) error {
	record, err := sr.mutableRecord(color)
	if err != nil {
		return err
	}
	record.Owner = newOwner
	return nil
}

func (sr *stagedRegistry) RemoveColor(color externalapi.Color) error {
	if !sr.IsRegistered(color) {
		return errors.Errorf("color %d is not registered", color)
	}
	delete(sr.shard.records, color)
	delete(sr.shard.activations, color)
	sr.shard.removed[color] = struct{}{}
	sr.shard.clearedMembers[color] = struct{}{}
	return nil
}

func (sr *stagedRegistry) AddMintedSupply(color externalapi.Color, delta int64) error {
	record, err := sr.mutableRecord(color)
	if err != nil {
		return err
	}
	if delta > 0 && record.MintedSupply > math.MaxInt64-delta {
		return errors.Errorf("minted supply of color %d overflows", color)
	}
	if record.MintedSupply+delta < 0 {
		return errors.Errorf("minted supply of color %d would become negative", color)
	}
	record.MintedSupply += delta
	return nil
}

func (sr *stagedRegistry) Activate(color externalapi.Color, address externalapi.DomainAddress) error {
	if !sr.IsRegistered(color) {
		return errors.Errorf("color %d is not registered", color)
	}
	sr.setActivation(color, address, true)
	return nil
}

func (sr *stagedRegistry) Deactivate(color externalapi.Color, address externalapi.DomainAddress) error {
	sr.setActivation(color, address, false)
	return nil
}

func (sr *stagedRegistry) setActivation(color externalapi.Color, address externalapi.DomainAddress, activated bool) {
	addresses, ok := sr.shard.activations[color]
	if !ok {
		addresses = make(map[externalapi.DomainAddress]bool)
		sr.shard.activations[color] = addresses
	}
	addresses[address] = activated
}

func (sr *stagedRegistry) AddMint(color externalapi.Color, mintID *externalapi.DomainTransactionID) error {
	if sr.HasMinted(color, mintID) {
		return errors.Errorf("mint %s of color %d is already recorded", mintID, color)
	}
	sr.setMint(color, mintID, true)
	return nil
}

func (sr *stagedRegistry) RemoveMint(color externalapi.Color, mintID *externalapi.DomainTransactionID) error {
	if !sr.HasMinted(color, mintID) {
		return errors.Errorf("mint %s of color %d is not recorded", mintID, color)
	}
	sr.setMint(color, mintID, false)
	return nil
}

func (sr *stagedRegistry) setMint(color externalapi.Color, mintID *externalapi.DomainTransactionID, applied bool) {
	mintIDs, ok := sr.shard.mints[color]
	if !ok {
		mintIDs = make(map[externalapi.DomainTransactionID]bool)
		sr.shard.mints[color] = mintIDs
	}
	mintIDs[*mintID] = applied
}

// mutableRecord returns the staged record of color, copying the committed
// one into the shard first if needed
func (sr *stagedRegistry) mutableRecord(color externalapi.Color) (*externalapi.ColorRecord, error) {
	if record, ok := sr.shard.records[color]; ok {
		return record, nil
	}
	record, ok := sr.record(color)
	if !ok {
		return nil, errors.Errorf("color %d is not registered", color)
	}
	clone := record.Clone()
	sr.shard.records[color] = clone
	return clone, nil
}
