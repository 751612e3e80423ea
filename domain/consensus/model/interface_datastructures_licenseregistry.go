package model

import "github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"

// ReadOnlyLicenseRegistry answers questions about color ownership and
// membership without mutating anything
type ReadOnlyLicenseRegistry interface {
	GetOwner(color externalapi.Color) (externalapi.DomainAddress, bool)
	Record(color externalapi.Color) (*externalapi.ColorRecord, bool)
	IsRegistered(color externalapi.Color) bool
	IsActivated(color externalapi.Color, address externalapi.DomainAddress) bool
	Colors() []externalapi.Color

	// HasMinted returns true if the mint transaction mintID of color was
	// already applied
	HasMinted(color externalapi.Color, mintID *externalapi.DomainTransactionID) bool
}

// LicenseRegistry is a ReadOnlyLicenseRegistry that can also be written to
type LicenseRegistry interface {
	ReadOnlyLicenseRegistry

	// SetOwner registers color to owner. It returns false, leaving the
	// registry unchanged, if the color is already owned by someone else.
	SetOwner(color externalapi.Color, owner externalapi.DomainAddress, info *externalapi.LicenseInfo) (bool, error)
	TransferOwner(color externalapi.Color, newOwner externalapi.DomainAddress) error
	RemoveColor(color externalapi.Color) error
	AddMintedSupply(color externalapi.Color, delta int64) error
	Activate(color externalapi.Color, address externalapi.DomainAddress) error
	Deactivate(color externalapi.Color, address externalapi.DomainAddress) error
	AddMint(color externalapi.Color, mintID *externalapi.DomainTransactionID) error
	RemoveMint(color externalapi.Color, mintID *externalapi.DomainTransactionID) error
}

// LicenseRegistryStore represents a store of color licenses
type LicenseRegistryStore interface {
	Store
	ReadOnlyLicenseRegistry

	// Staged returns a registry view that reads staged-then-committed data
	// and stages every write in stagingArea
	Staged(stagingArea *StagingArea) LicenseRegistry
	IsStaged(stagingArea *StagingArea) bool
}
