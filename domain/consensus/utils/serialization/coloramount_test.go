package serialization

import (
	"bytes"
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

func TestColorAmountEncoding(t *testing.T) {
	tests := []struct {
		name     string
		amount   *externalapi.ColorAmount
		expected []byte
	}{
		{
			name:     "empty",
			amount:   externalapi.NewEmptyColorAmount(),
			expected: []byte{0x00},
		},
		{
			name:     "nil",
			amount:   nil,
			expected: []byte{0x00},
		},
		{
			name:   "single entry",
			amount: externalapi.NewColorAmount(1, 5),
			expected: []byte{
				0x01,
				0x01, 0x00, 0x00, 0x00,
				0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name: "entries are written in ascending color order",
			amount: externalapi.NewColorAmountFromEntries(
				externalapi.ColorAmountEntry{Color: 300, Value: -1},
				externalapi.ColorAmountEntry{Color: 2, Value: 256},
			),
			expected: []byte{
				0x02,
				0x02, 0x00, 0x00, 0x00,
				0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x2c, 0x01, 0x00, 0x00,
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			},
		},
		{
			name:   "explicit zero entry",
			amount: externalapi.NewColorAmount(0, 0),
			expected: []byte{
				0x01,
				0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
	}

	for _, test := range tests {
		serialized := ColorAmountToBytes(test.amount)
		if !bytes.Equal(serialized, test.expected) {
			t.Fatalf("%s: got %x, want %x", test.name, serialized, test.expected)
		}
		if ColorAmountSerializeSize(test.amount) != len(test.expected) {
			t.Fatalf("%s: ColorAmountSerializeSize: got %d, want %d",
				test.name, ColorAmountSerializeSize(test.amount), len(test.expected))
		}

		deserialized, err := ColorAmountFromBytes(serialized)
		if err != nil {
			t.Fatalf("%s: ColorAmountFromBytes: %s", test.name, err)
		}
		if !deserialized.Equal(test.amount) {
			t.Fatalf("%s: round trip: got %s, want %s", test.name, deserialized, test.amount)
		}
		if !bytes.Equal(ColorAmountToBytes(deserialized), serialized) {
			t.Fatalf("%s: deserialize then serialize is not byte identical", test.name)
		}
	}
}

func TestColorAmountDecodingRejectsNonCanonical(t *testing.T) {
	tests := []struct {
		name    string
		encoded []byte
	}{
		{
			name: "descending colors",
			encoded: []byte{
				0x02,
				0x02, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name: "duplicate colors",
			encoded: []byte{
				0x02,
				0x01, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			name:    "truncated entry",
			encoded: []byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x05},
		},
		{
			name:    "count larger than data",
			encoded: []byte{0x03},
		},
		{
			name:    "non-canonical count",
			encoded: []byte{0xfd, 0x00, 0x00},
		},
		{
			name:    "trailing bytes",
			encoded: []byte{0x00, 0x00},
		},
	}

	for _, test := range tests {
		_, err := ColorAmountFromBytes(test.encoded)
		if err == nil {
			t.Fatalf("%s: expected an error", test.name)
		}
		if !IsMalformedError(err) {
			t.Fatalf("%s: expected a malformed error, got %s", test.name, err)
		}
	}
}
