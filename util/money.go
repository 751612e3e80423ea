package util

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/pkg/errors"
)

// maxWholeDigits guards ParseMoney against 63 bit overflow
const maxWholeDigits = 10

// maxColorDigits guards ParseColor against 32 bit overflow
const maxColorDigits = 10

// MoneyRange returns whether value is a valid amount of a single color
func MoneyRange(value int64) bool {
	return value >= 0 && value <= constants.MaxMoney
}

// FormatMoney renders value in whole coins with up to eight decimals.
// Trailing zeros are trimmed, keeping at least two decimals.
func FormatMoney(value int64) string {
	absolute := uint64(value)
	if value < 0 {
		absolute = uint64(-value)
	}
	str := fmt.Sprintf("%d.%08d", absolute/constants.UnitsPerCoin, absolute%constants.UnitsPerCoin)

	trimmed := strings.TrimRight(str, "0")
	decimalPoint := strings.IndexByte(str, '.')
	if len(trimmed) < decimalPoint+3 {
		trimmed = str[:decimalPoint+3]
	}

	if value < 0 {
		return "-" + trimmed
	}
	return trimmed
}

// FormatColorAmount renders amount as "color:money" pairs joined by
// commas, in ascending color order
func FormatColorAmount(amount *externalapi.ColorAmount) string {
	parts := make([]string, 0, amount.Len())
	amount.ForEach(func(color externalapi.Color, value int64) {
		parts = append(parts, fmt.Sprintf("%d:%s", color, FormatMoney(value)))
	})
	return strings.Join(parts, ",")
}

// ParseMoney parses a non-negative decimal coin amount such as "12.5"
// into base units. Surrounding whitespace is allowed.
func ParseMoney(str string) (int64, error) {
	trimmed := strings.TrimFunc(str, unicode.IsSpace)
	whole, fraction := trimmed, ""
	if decimalPoint := strings.IndexByte(trimmed, '.'); decimalPoint >= 0 {
		whole, fraction = trimmed[:decimalPoint], trimmed[decimalPoint+1:]
	}

	if !isDigits(whole) || !isDigits(fraction) || (whole == "" && fraction == "") {
		return 0, errors.Errorf("invalid money string %q", str)
	}
	if len(whole) > maxWholeDigits {
		return 0, errors.Errorf("money string %q is too large", str)
	}
	if len(fraction) > 8 {
		return 0, errors.Errorf("money string %q has more than 8 decimals", str)
	}

	var units int64
	multiplier := int64(constants.Cent * 10)
	for _, digit := range fraction {
		units += multiplier * int64(digit-'0')
		multiplier /= 10
	}

	var wholeValue int64
	if whole != "" {
		var err error
		wholeValue, err = strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return 0, errors.WithStack(err)
		}
	}
	return wholeValue*constants.UnitsPerCoin + units, nil
}

// ParseColor parses a decimal color id
func ParseColor(str string) (externalapi.Color, error) {
	trimmed := strings.TrimFunc(str, unicode.IsSpace)
	if trimmed == "" || !isDigits(trimmed) || len(trimmed) > maxColorDigits {
		return 0, errors.Errorf("invalid color %q", str)
	}
	color, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid color %q", str)
	}
	return externalapi.Color(color), nil
}

// ParseColorAmount parses the output of FormatColorAmount, e.g.
// "1:0.5,7:12". A repeated color keeps its last value.
func ParseColorAmount(str string) (*externalapi.ColorAmount, error) {
	var entries []externalapi.ColorAmountEntry
	for _, part := range strings.Split(str, ",") {
		separator := strings.IndexByte(part, ':')
		if separator < 0 {
			return nil, errors.Errorf("invalid color amount part %q", part)
		}
		color, err := ParseColor(part[:separator])
		if err != nil {
			return nil, err
		}
		value, err := ParseMoney(part[separator+1:])
		if err != nil {
			return nil, err
		}
		entries = append(entries, externalapi.ColorAmountEntry{Color: color, Value: value})
	}
	return externalapi.NewColorAmountFromEntries(entries...), nil
}

func isDigits(str string) bool {
	for _, r := range str {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
