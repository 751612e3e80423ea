package externalapi

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Color identifies an asset type on the ledger
type Color uint32

// ErrDivideByZero is the panic value used when a ColorAmount is divided
// or reduced modulo zero.
var ErrDivideByZero = errors.New("ColorAmount: division by zero")

// ArityError is the panic value used when an operation that is only defined
// for a single-color amount is called on an amount of a different size.
type ArityError struct {
	Operation string
	Size      int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("ColorAmount.%s: the size of the color amount should be 1, got %d",
		e.Operation, e.Size)
}

func newArityError(operation string, size int) error {
	return errors.WithStack(&ArityError{Operation: operation, Size: size})
}

// ColorAmount is a sparse mapping from a color to a signed quantity of that
// color. Mutating operations drop entries that become zero.
//
// The zero value is an empty amount ready to use.
type ColorAmount struct {
	entries map[Color]int64
}

// ColorAmountEntry is a single (color, value) pair of a ColorAmount
type ColorAmountEntry struct {
	Color Color
	Value int64
}

// NewColorAmount returns an amount holding value units of color. A zero value
// is kept as an explicit entry.
func NewColorAmount(color Color, value int64) *ColorAmount {
	return &ColorAmount{entries: map[Color]int64{color: value}}
}

// NewEmptyColorAmount returns an amount with no entries
func NewEmptyColorAmount() *ColorAmount {
	return &ColorAmount{entries: make(map[Color]int64)}
}

// NewColorAmountFromEntries builds an amount from the given pairs. Later
// pairs overwrite earlier ones with the same color; zero values are kept.
func NewColorAmountFromEntries(entries ...ColorAmountEntry) *ColorAmount {
	ca := &ColorAmount{entries: make(map[Color]int64, len(entries))}
	for _, entry := range entries {
		ca.entries[entry.Color] = entry.Value
	}
	return ca
}

func (ca *ColorAmount) ensureEntries() {
	if ca.entries == nil {
		ca.entries = make(map[Color]int64)
	}
}

// Len returns the number of colors held
func (ca *ColorAmount) Len() int {
	if ca == nil {
		return 0
	}
	return len(ca.entries)
}

// IsEmpty returns true if no color is held
func (ca *ColorAmount) IsEmpty() bool {
	return ca.Len() == 0
}

// Get returns the value held for color and whether the color is present
func (ca *ColorAmount) Get(color Color) (int64, bool) {
	if ca == nil {
		return 0, false
	}
	value, ok := ca.entries[color]
	return value, ok
}

// Has returns whether the color is present
func (ca *ColorAmount) Has(color Color) bool {
	_, ok := ca.Get(color)
	return ok
}

// Colors returns the held colors in ascending order
func (ca *ColorAmount) Colors() []Color {
	if ca == nil {
		return nil
	}
	colors := make([]Color, 0, len(ca.entries))
	for color := range ca.entries {
		colors = append(colors, color)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })
	return colors
}

// Entries returns the (color, value) pairs in ascending color order
func (ca *ColorAmount) Entries() []ColorAmountEntry {
	colors := ca.Colors()
	entries := make([]ColorAmountEntry, len(colors))
	for i, color := range colors {
		entries[i] = ColorAmountEntry{Color: color, Value: ca.entries[color]}
	}
	return entries
}

// ForEach calls f for every entry in ascending color order
func (ca *ColorAmount) ForEach(f func(color Color, value int64)) {
	for _, entry := range ca.Entries() {
		f(entry.Color, entry.Value)
	}
}

// Clone returns a deep copy of ca
func (ca *ColorAmount) Clone() *ColorAmount {
	clone := &ColorAmount{entries: make(map[Color]int64, ca.Len())}
	if ca != nil {
		for color, value := range ca.entries {
			clone.entries[color] = value
		}
	}
	return clone
}

// Negate returns a new amount with the sign of every entry flipped
func (ca *ColorAmount) Negate() *ColorAmount {
	negated := ca.Clone()
	for color, value := range negated.entries {
		negated.entries[color] = -value
	}
	return negated
}

// Add merges other into ca, summing shared colors and removing entries
// that end up zero. It returns ca.
func (ca *ColorAmount) Add(other *ColorAmount) *ColorAmount {
	ca.ensureEntries()
	if other == nil {
		return ca
	}
	for color, value := range other.entries {
		sum := ca.entries[color] + value
		if sum == 0 {
			delete(ca.entries, color)
			continue
		}
		ca.entries[color] = sum
	}
	return ca
}

// Subtract removes other from ca. Colors missing from ca end up negated.
// Entries that end up zero are removed. It returns ca.
func (ca *ColorAmount) Subtract(other *ColorAmount) *ColorAmount {
	ca.ensureEntries()
	if other == nil {
		return ca
	}
	for color, value := range other.entries {
		difference := ca.entries[color] - value
		if difference == 0 {
			delete(ca.entries, color)
			continue
		}
		ca.entries[color] = difference
	}
	return ca
}

func (ca *ColorAmount) soleColor() (Color, bool) {
	if ca.Len() != 1 {
		return 0, false
	}
	for color := range ca.entries {
		return color, true
	}
	return 0, false
}

// AddValue adds value to the sole entry of ca. It does nothing unless ca
// holds exactly one color. It returns ca.
func (ca *ColorAmount) AddValue(value int64) *ColorAmount {
	color, ok := ca.soleColor()
	if !ok {
		return ca
	}
	ca.entries[color] += value
	if ca.entries[color] == 0 {
		delete(ca.entries, color)
	}
	return ca
}

// SubtractValue subtracts value from the sole entry of ca, clearing ca when
// the entry reaches zero. It does nothing unless ca holds exactly one
// color. It returns ca.
func (ca *ColorAmount) SubtractValue(value int64) *ColorAmount {
	color, ok := ca.soleColor()
	if !ok {
		return ca
	}
	ca.entries[color] -= value
	if ca.entries[color] == 0 {
		delete(ca.entries, color)
	}
	return ca
}

// MultiplyBy multiplies every entry by factor. It returns ca.
func (ca *ColorAmount) MultiplyBy(factor int64) *ColorAmount {
	ca.ensureEntries()
	for color, value := range ca.entries {
		product := value * factor
		if product == 0 {
			delete(ca.entries, color)
			continue
		}
		ca.entries[color] = product
	}
	return ca
}

// DivideBy divides every entry by divisor, truncating toward zero.
// It panics with ErrDivideByZero if divisor is zero. It returns ca.
func (ca *ColorAmount) DivideBy(divisor int64) *ColorAmount {
	if divisor == 0 {
		panic(ErrDivideByZero)
	}
	ca.ensureEntries()
	for color, value := range ca.entries {
		quotient := value / divisor
		if quotient == 0 {
			delete(ca.entries, color)
			continue
		}
		ca.entries[color] = quotient
	}
	return ca
}

// ModuloBy replaces every entry with its remainder modulo divisor.
// It panics with ErrDivideByZero if divisor is zero. It returns ca.
func (ca *ColorAmount) ModuloBy(divisor int64) *ColorAmount {
	if divisor == 0 {
		panic(ErrDivideByZero)
	}
	ca.ensureEntries()
	for color, value := range ca.entries {
		remainder := value % divisor
		if remainder == 0 {
			delete(ca.entries, color)
			continue
		}
		ca.entries[color] = remainder
	}
	return ca
}

// Increment adds one to the sole entry of ca. It panics with an
// *ArityError unless ca holds exactly one color.
func (ca *ColorAmount) Increment() *ColorAmount {
	if ca.Len() != 1 {
		panic(newArityError("Increment", ca.Len()))
	}
	return ca.AddValue(1)
}

// Plus returns ca + other without modifying either
func (ca *ColorAmount) Plus(other *ColorAmount) *ColorAmount {
	return ca.Clone().Add(other)
}

// Minus returns ca - other without modifying either
func (ca *ColorAmount) Minus(other *ColorAmount) *ColorAmount {
	return ca.Clone().Subtract(other)
}

// PlusValue returns a copy of ca with value added to its sole entry
func (ca *ColorAmount) PlusValue(value int64) *ColorAmount {
	return ca.Clone().AddValue(value)
}

// MinusValue returns a copy of ca with value subtracted from its sole entry
func (ca *ColorAmount) MinusValue(value int64) *ColorAmount {
	return ca.Clone().SubtractValue(value)
}

// Times returns a copy of ca with every entry multiplied by factor
func (ca *ColorAmount) Times(factor int64) *ColorAmount {
	return ca.Clone().MultiplyBy(factor)
}

// Quotient returns a copy of ca with every entry divided by divisor
func (ca *ColorAmount) Quotient(divisor int64) *ColorAmount {
	return ca.Clone().DivideBy(divisor)
}

// Remainder returns a copy of ca with every entry reduced modulo divisor
func (ca *ColorAmount) Remainder(divisor int64) *ColorAmount {
	return ca.Clone().ModuloBy(divisor)
}

// Color returns the sole color of ca. It panics with an *ArityError unless
// ca holds exactly one color.
func (ca *ColorAmount) Color() Color {
	color, ok := ca.soleColor()
	if !ok {
		panic(newArityError("Color", ca.Len()))
	}
	return color
}

// Value returns the sole value of ca, or 0 if ca is empty. It panics with an
// *ArityError if ca holds more than one color.
func (ca *ColorAmount) Value() int64 {
	if ca.Len() == 0 {
		return 0
	}
	color, ok := ca.soleColor()
	if !ok {
		panic(newArityError("Value", ca.Len()))
	}
	return ca.entries[color]
}

// SingleColor is the error-returning form of Color, for callers handling
// untrusted amounts.
func (ca *ColorAmount) SingleColor() (Color, error) {
	color, ok := ca.soleColor()
	if !ok {
		return 0, newArityError("SingleColor", ca.Len())
	}
	return color, nil
}

// SingleValue is the error-returning form of Value
func (ca *ColorAmount) SingleValue() (int64, error) {
	if ca.Len() > 1 {
		return 0, newArityError("SingleValue", ca.Len())
	}
	return ca.Value(), nil
}

// TotalValue sums the values of all colors. Positive and negative values
// are summed apart, each saturating at the int64 range, so the result does
// not depend on iteration order and never wraps.
func (ca *ColorAmount) TotalValue() int64 {
	var positive, negative int64
	if ca == nil {
		return 0
	}
	for _, value := range ca.entries {
		switch {
		case value > 0 && positive > math.MaxInt64-value:
			positive = math.MaxInt64
		case value > 0:
			positive += value
		case negative < math.MinInt64-value:
			negative = math.MinInt64
		default:
			negative += value
		}
	}
	return positive + negative
}

// IsPositive returns true if no entry is negative. An empty amount is
// positive.
func (ca *ColorAmount) IsPositive() bool {
	if ca == nil {
		return true
	}
	for _, value := range ca.entries {
		if value < 0 {
			return false
		}
	}
	return true
}

// StrictlyDominates returns true if ca is non-empty and, for every color of
// other, ca holds that color with a strictly greater value. Colors held only
// by ca are ignored.
func (ca *ColorAmount) StrictlyDominates(other *ColorAmount) bool {
	if ca.IsEmpty() {
		return false
	}
	if other == nil {
		return true
	}
	for color, otherValue := range other.entries {
		value, ok := ca.entries[color]
		if !ok || value <= otherValue {
			return false
		}
	}
	return true
}

// Dominates returns true if, for every color of other, ca holds that color
// with a greater or equal value. Colors held only by ca are ignored.
func (ca *ColorAmount) Dominates(other *ColorAmount) bool {
	if other == nil {
		return true
	}
	for color, otherValue := range other.entries {
		value, ok := ca.Get(color)
		if !ok || value < otherValue {
			return false
		}
	}
	return true
}

// IsStrictlyDominatedBy returns true if other is non-empty and, for every
// color of ca, other holds that color with a strictly greater value.
func (ca *ColorAmount) IsStrictlyDominatedBy(other *ColorAmount) bool {
	if other.IsEmpty() {
		return false
	}
	if ca == nil {
		return true
	}
	for color, value := range ca.entries {
		otherValue, ok := other.entries[color]
		if !ok || value >= otherValue {
			return false
		}
	}
	return true
}

// IsDominatedBy returns true if, for every color of ca, other holds that
// color with a greater or equal value.
func (ca *ColorAmount) IsDominatedBy(other *ColorAmount) bool {
	if ca == nil {
		return true
	}
	for color, value := range ca.entries {
		otherValue, ok := other.Get(color)
		if !ok || value > otherValue {
			return false
		}
	}
	return true
}

// Equal returns true if ca and other hold exactly the same (color, value)
// pairs.
func (ca *ColorAmount) Equal(other *ColorAmount) bool {
	if ca.Len() != other.Len() {
		return false
	}
	for color, value := range ca.entriesOrNil() {
		otherValue, ok := other.entries[color]
		if !ok || otherValue != value {
			return false
		}
	}
	return true
}

func (ca *ColorAmount) entriesOrNil() map[Color]int64 {
	if ca == nil {
		return nil
	}
	return ca.entries
}

// String returns the amount as "color:value, color:value" in ascending color
// order.
func (ca *ColorAmount) String() string {
	entries := ca.Entries()
	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = fmt.Sprintf("%d:%d", entry.Color, entry.Value)
	}
	return strings.Join(parts, ", ")
}
