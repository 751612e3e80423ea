package util

import (
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		value    int64
		expected string
	}{
		{0, "0.00"},
		{constants.UnitsPerCoin, "1.00"},
		{constants.UnitsPerCoin / 2, "0.50"},
		{12345678, "0.12345678"},
		{constants.Cent, "0.01"},
		{-constants.UnitsPerCoin * 3 / 2, "-1.50"},
		{constants.MaxMoney, "10000000000.00"},
		{1, "0.00000001"},
	}

	for _, test := range tests {
		result := FormatMoney(test.value)
		if result != test.expected {
			t.Errorf("FormatMoney(%d): expected %s, got %s", test.value, test.expected, result)
		}
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		str      string
		valid    bool
		expected int64
	}{
		{"1", true, constants.UnitsPerCoin},
		{"  1.5 ", true, constants.UnitsPerCoin * 3 / 2},
		{"0.00000001", true, 1},
		{".5", true, constants.UnitsPerCoin / 2},
		{"9999999999", true, 9999999999 * constants.UnitsPerCoin},
		{"", false, 0},
		{".", false, 0},
		{"-1", false, 0},
		{"1.2.3", false, 0},
		{"12345678901", false, 0},
		{"0.000000001", false, 0},
		{"1 2", false, 0},
	}

	for _, test := range tests {
		result, err := ParseMoney(test.str)
		switch {
		case test.valid && err != nil:
			t.Errorf("ParseMoney(%q): unexpected error: %s", test.str, err)
		case !test.valid && err == nil:
			t.Errorf("ParseMoney(%q): unexpectedly succeeded with %d", test.str, result)
		case test.valid && result != test.expected:
			t.Errorf("ParseMoney(%q): expected %d, got %d", test.str, test.expected, result)
		}
	}
}

func TestColorAmountStringRoundTrip(t *testing.T) {
	amount := externalapi.NewColorAmountFromEntries(
		externalapi.ColorAmountEntry{Color: 7, Value: constants.UnitsPerCoin / 4},
		externalapi.ColorAmountEntry{Color: 2, Value: 3 * constants.UnitsPerCoin},
	)

	formatted := FormatColorAmount(amount)
	if formatted != "2:3.00,7:0.25" {
		t.Fatalf("FormatColorAmount: unexpected %s", formatted)
	}

	parsed, err := ParseColorAmount(formatted)
	if err != nil {
		t.Fatalf("ParseColorAmount: %s", err)
	}
	if !parsed.Equal(amount) {
		t.Fatalf("ParseColorAmount: expected %s, got %s", amount, parsed)
	}

	for _, invalid := range []string{"", "1", "x:1", "1:x", "4294967296:1"} {
		if _, err := ParseColorAmount(invalid); err == nil {
			t.Errorf("ParseColorAmount(%q): unexpectedly succeeded", invalid)
		}
	}
}

func TestMoneyRange(t *testing.T) {
	if !MoneyRange(0) || !MoneyRange(constants.MaxMoney) {
		t.Fatalf("MoneyRange rejected a boundary value")
	}
	if MoneyRange(-1) || MoneyRange(constants.MaxMoney+1) {
		t.Fatalf("MoneyRange accepted a value out of range")
	}
}
