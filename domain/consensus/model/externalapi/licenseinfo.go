package externalapi

// LicenseInfo is the metadata a license issuer attaches to a color when the
// license is created. It travels as JSON in the payload of the license
// transaction.
type LicenseInfo struct {
	Version       uint8  `json:"version"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Issuer        string `json:"issuer,omitempty"`
	Link          string `json:"link,omitempty"`
	MemberControl bool   `json:"memberControl"`

	// MaxSupply bounds the total amount that can ever be minted. Zero means
	// the global money ceiling applies.
	MaxSupply int64 `json:"maxSupply"`
}

// Clone returns a clone of LicenseInfo
func (info *LicenseInfo) Clone() *LicenseInfo {
	if info == nil {
		return nil
	}
	clone := *info
	return &clone
}

// ColorRecord is the license registry entry of a single color
type ColorRecord struct {
	Owner        DomainAddress
	Info         *LicenseInfo
	MintedSupply int64
}

// Clone returns a clone of ColorRecord
func (record *ColorRecord) Clone() *ColorRecord {
	return &ColorRecord{
		Owner:        record.Owner,
		Info:         record.Info.Clone(),
		MintedSupply: record.MintedSupply,
	}
}
