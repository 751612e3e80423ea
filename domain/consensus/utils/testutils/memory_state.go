package testutils

import (
	"sort"

	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/ruleerrors"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/utxo"
	"github.com/pkg/errors"
)

// MemoryRegistry is a model.LicenseRegistry kept entirely in memory
type MemoryRegistry struct {
	Records map[externalapi.Color]*externalapi.ColorRecord
	Members map[externalapi.Color]map[externalapi.DomainAddress]struct{}
	Mints   map[externalapi.Color]map[externalapi.DomainTransactionID]struct{}
}

// NewMemoryRegistry returns an empty MemoryRegistry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		Records: make(map[externalapi.Color]*externalapi.ColorRecord),
		Members: make(map[externalapi.Color]map[externalapi.DomainAddress]struct{}),
		Mints:   make(map[externalapi.Color]map[externalapi.DomainTransactionID]struct{}),
	}
}

func (r *MemoryRegistry) GetOwner(color externalapi.Color) (externalapi.DomainAddress, bool) {
	record, ok := r.Records[color]
	if !ok {
		return "", false
	}
	return record.Owner, true
}

func (r *MemoryRegistry) Record(color externalapi.Color) (*externalapi.ColorRecord, bool) {
	record, ok := r.Records[color]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

func (r *MemoryRegistry) IsRegistered(color externalapi.Color) bool {
	_, ok := r.Records[color]
	return ok
}

func (r *MemoryRegistry) IsActivated(color externalapi.Color, address externalapi.DomainAddress) bool {
	_, ok := r.Members[color][address]
	return ok
}

func (r *MemoryRegistry) HasMinted(color externalapi.Color, mintID *externalapi.DomainTransactionID) bool {
	_, ok := r.Mints[color][*mintID]
	return ok
}

func (r *MemoryRegistry) Colors() []externalapi.Color {
	colors := make([]externalapi.Color, 0, len(r.Records))
	for color := range r.Records {
		colors = append(colors, color)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })
	return colors
}

func (r *MemoryRegistry) SetOwner(color externalapi.Color, owner externalapi.DomainAddress,
	info *externalapi.LicenseInfo) (bool, error) {

	if record, ok := r.Records[color]; ok {
		return record.Owner == owner, nil
	}
	r.Records[color] = &externalapi.ColorRecord{Owner: owner, Info: info.Clone()}
	return true, nil
}

func (r *MemoryRegistry) TransferOwner(color externalapi.Color, newOwner externalapi.DomainAddress) error {
	record, ok := r.Records[color]
	if !ok {
		return errors.Errorf("color %d is not registered", color)
	}
	record.Owner = newOwner
	return nil
}

func (r *MemoryRegistry) RemoveColor(color externalapi.Color) error {
	if _, ok := r.Records[color]; !ok {
		return errors.Errorf("color %d is not registered", color)
	}
	delete(r.Records, color)
	delete(r.Members, color)
	return nil
}

func (r *MemoryRegistry) AddMintedSupply(color externalapi.Color, delta int64) error {
	record, ok := r.Records[color]
	if !ok {
		return errors.Errorf("color %d is not registered", color)
	}
	record.MintedSupply += delta
	return nil
}

func (r *MemoryRegistry) Activate(color externalapi.Color, address externalapi.DomainAddress) error {
	if _, ok := r.Members[color]; !ok {
		r.Members[color] = make(map[externalapi.DomainAddress]struct{})
	}
	r.Members[color][address] = struct{}{}
	return nil
}

func (r *MemoryRegistry) Deactivate(color externalapi.Color, address externalapi.DomainAddress) error {
	delete(r.Members[color], address)
	return nil
}

func (r *MemoryRegistry) AddMint(color externalapi.Color, mintID *externalapi.DomainTransactionID) error {
	if r.HasMinted(color, mintID) {
		return errors.Errorf("mint %s of color %d is already recorded", mintID, color)
	}
	if _, ok := r.Mints[color]; !ok {
		r.Mints[color] = make(map[externalapi.DomainTransactionID]struct{})
	}
	r.Mints[color][*mintID] = struct{}{}
	return nil
}

func (r *MemoryRegistry) RemoveMint(color externalapi.Color, mintID *externalapi.DomainTransactionID) error {
	if !r.HasMinted(color, mintID) {
		return errors.Errorf("mint %s of color %d is not recorded", mintID, color)
	}
	delete(r.Mints[color], *mintID)
	return nil
}

// MemoryChainState is a model.ChainState kept entirely in memory
type MemoryChainState struct {
	UTXOs     map[externalapi.DomainOutpoint]externalapi.UTXOEntry
	Registry  *MemoryRegistry
	Authority externalapi.DomainAddress
	Height    uint64

	nextID uint32
}

// NewMemoryChainState returns a state at height 10 whose registry holds
// only the admin color, owned by authority
func NewMemoryChainState(authority externalapi.DomainAddress) *MemoryChainState {
	registry := NewMemoryRegistry()
	registry.Records[constants.AdminColor] = &externalapi.ColorRecord{
		Owner: authority,
		Info:  &externalapi.LicenseInfo{Name: "license authority"},
	}
	return &MemoryChainState{
		UTXOs:     make(map[externalapi.DomainOutpoint]externalapi.UTXOEntry),
		Registry:  registry,
		Authority: authority,
		Height:    10,
	}
}

func (s *MemoryChainState) UTXOEntry(outpoint *externalapi.DomainOutpoint) (externalapi.UTXOEntry, bool, error) {
	entry, ok := s.UTXOs[*outpoint]
	return entry, ok, nil
}

func (s *MemoryChainState) LicenseRegistry() model.ReadOnlyLicenseRegistry {
	return s.Registry
}

func (s *MemoryChainState) LicenseAuthority() externalapi.DomainAddress {
	return s.Authority
}

func (s *MemoryChainState) AddUTXO(outpoint *externalapi.DomainOutpoint, entry externalapi.UTXOEntry) error {
	if _, ok := s.UTXOs[*outpoint]; ok {
		return errors.Wrapf(ruleerrors.ErrOverwriteTx, "UTXO %s already exists", outpoint)
	}
	s.UTXOs[*outpoint] = entry
	return nil
}

func (s *MemoryChainState) RemoveUTXO(outpoint *externalapi.DomainOutpoint) error {
	if _, ok := s.UTXOs[*outpoint]; !ok {
		return errors.Errorf("UTXO %s does not exist", outpoint)
	}
	delete(s.UTXOs, *outpoint)
	return nil
}

func (s *MemoryChainState) MutableLicenseRegistry() model.LicenseRegistry {
	return s.Registry
}

func (s *MemoryChainState) BlockHeight() uint64 {
	return s.Height
}

// License registers color to owner
func (s *MemoryChainState) License(color externalapi.Color, owner externalapi.DomainAddress,
	info *externalapi.LicenseInfo) {

	s.Registry.Records[color] = &externalapi.ColorRecord{Owner: owner, Info: info}
}

// Fund creates an unspent output of amount held by address at height 1
func (s *MemoryChainState) Fund(amount *externalapi.ColorAmount, address externalapi.DomainAddress,
	txType externalapi.TxType) externalapi.DomainOutpoint {

	return s.FundAt(amount, address, txType, 1)
}

// FundAt creates an unspent output of amount held by address at height
func (s *MemoryChainState) FundAt(amount *externalapi.ColorAmount, address externalapi.DomainAddress,
	txType externalapi.TxType, height uint64) externalapi.DomainOutpoint {

	s.nextID++
	var idBytes [externalapi.DomainHashSize]byte
	idBytes[0] = byte(s.nextID)
	idBytes[1] = byte(s.nextID >> 8)
	idBytes[31] = 0xfe
	outpoint := externalapi.DomainOutpoint{
		TransactionID: externalapi.DomainTransactionID(*externalapi.NewDomainHashFromByteArray(&idBytes)),
	}
	s.UTXOs[outpoint] = utxo.NewUTXOEntry(amount, address, height, txType)
	return outpoint
}

// Populate fills the UTXO entries of the inputs of tx from the state
func (s *MemoryChainState) Populate(tx *externalapi.DomainTransaction) {
	for _, input := range tx.Inputs {
		input.UTXOEntry = s.UTXOs[input.PreviousOutpoint]
	}
}
