package util

import (
	"fmt"
	"math"
	"math/big"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
)

// FeeRate is a fee rate in color units per 1000 bytes of serialized
// transaction
type FeeRate struct {
	perK *externalapi.ColorAmount
}

// NewFeeRate returns the fee rate of perK units per 1000 bytes
func NewFeeRate(perK *externalapi.ColorAmount) *FeeRate {
	return &FeeRate{perK: perK.Clone()}
}

// NewFeeRateFromValue returns a fee rate of perK units of the default fee
// color per 1000 bytes
func NewFeeRateFromValue(perK int64) *FeeRate {
	return &FeeRate{perK: externalapi.NewColorAmount(constants.DefaultFeeColor, perK)}
}

// DefaultFeeRate returns the zero fee rate of the default fee color
func DefaultFeeRate() *FeeRate {
	return NewFeeRateFromValue(0)
}

// NewFeeRateFromFee returns the fee rate of paying fee for size bytes.
// A zero size yields DefaultFeeRate.
func NewFeeRateFromFee(fee *externalapi.ColorAmount, size uint64) *FeeRate {
	if size == 0 {
		return DefaultFeeRate()
	}
	return &FeeRate{perK: scaleColorAmount(fee, 1000, size)}
}

// NewFeeRateFromFeeValue is NewFeeRateFromFee for a fee of the default
// fee color
func NewFeeRateFromFeeValue(fee int64, size uint64) *FeeRate {
	return NewFeeRateFromFee(externalapi.NewColorAmount(constants.DefaultFeeColor, fee), size)
}

// GetFee returns the fee for a transaction of size bytes
func (rate *FeeRate) GetFee(size uint64) *externalapi.ColorAmount {
	return scaleColorAmount(rate.perK, size, 1000)
}

// GetFeePerK returns the fee for 1000 bytes
func (rate *FeeRate) GetFeePerK() *externalapi.ColorAmount {
	return rate.GetFee(1000)
}

// PerK returns a copy of the underlying per-kilobyte amount
func (rate *FeeRate) PerK() *externalapi.ColorAmount {
	return rate.perK.Clone()
}

// Less returns whether rate is strictly dominated by other
func (rate *FeeRate) Less(other *FeeRate) bool {
	return rate.perK.IsStrictlyDominatedBy(other.perK)
}

// LessOrEqual returns whether rate is dominated by other
func (rate *FeeRate) LessOrEqual(other *FeeRate) bool {
	return rate.perK.IsDominatedBy(other.perK)
}

// Greater returns whether rate strictly dominates other
func (rate *FeeRate) Greater(other *FeeRate) bool {
	return rate.perK.StrictlyDominates(other.perK)
}

// GreaterOrEqual returns whether rate dominates other
func (rate *FeeRate) GreaterOrEqual(other *FeeRate) bool {
	return rate.perK.Dominates(other.perK)
}

// Equal returns whether rate and other hold identical amounts
func (rate *FeeRate) Equal(other *FeeRate) bool {
	return rate.perK.Equal(other.perK)
}

func (rate *FeeRate) String() string {
	switch rate.perK.Len() {
	case 0:
		return "0 per kB"
	case 1:
		value := rate.perK.Value()
		return fmt.Sprintf("%d.%08d GCOIN/kB", value/constants.UnitsPerCoin, value%constants.UnitsPerCoin)
	default:
		return FormatColorAmount(rate.perK) + " per kB"
	}
}

// scaleColorAmount returns amount*multiplier/divisor entrywise, truncated
// toward zero and saturated at the int64 range
func scaleColorAmount(amount *externalapi.ColorAmount, multiplier, divisor uint64) *externalapi.ColorAmount {
	result := externalapi.NewEmptyColorAmount()
	bigMultiplier := new(big.Int).SetUint64(multiplier)
	bigDivisor := new(big.Int).SetUint64(divisor)
	maxInt64 := big.NewInt(math.MaxInt64)
	minInt64 := big.NewInt(math.MinInt64)

	entries := make([]externalapi.ColorAmountEntry, 0, amount.Len())
	amount.ForEach(func(color externalapi.Color, value int64) {
		scaled := new(big.Int).Mul(big.NewInt(value), bigMultiplier)
		scaled.Quo(scaled, bigDivisor)
		switch {
		case scaled.Cmp(maxInt64) > 0:
			scaled = maxInt64
		case scaled.Cmp(minInt64) < 0:
			scaled = minInt64
		}
		entries = append(entries, externalapi.ColorAmountEntry{Color: color, Value: scaled.Int64()})
	})
	if len(entries) == 0 {
		return result
	}
	return externalapi.NewColorAmountFromEntries(entries...)
}
