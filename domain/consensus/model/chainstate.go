package model

import "github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"

// ChainStateView is the read side of chain state that validity checks
// consult
type ChainStateView interface {
	// UTXOEntry returns the unspent output at outpoint, and false if it
	// does not exist or was spent
	UTXOEntry(outpoint *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool, error)
	LicenseRegistry() ReadOnlyLicenseRegistry
	LicenseAuthority() externalapi.DomainAddress
}

// ChainState is a ChainStateView that handlers apply transactions to
type ChainState interface {
	ChainStateView
	AddUTXO(outpoint *externalapi.DomainOutpoint, entry externalapi.UTXOEntry) error
	RemoveUTXO(outpoint *externalapi.DomainOutpoint) error
	MutableLicenseRegistry() LicenseRegistry

	// BlockHeight is the height new outputs are created at
	BlockHeight() uint64
}

// ChainStateOverlay is a ChainState over a staging area that is never
// committed. It is used to try out transactions and blocks.
type ChainStateOverlay interface {
	ChainState
	UTXOCommitment() *externalapi.DomainHash
	Tip() (height uint64, tipHash *externalapi.DomainHash)
}
