package gsm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/smspdu/pdu"
)

func TestEncodeAddress(t *testing.T) {
	tt := []struct {
		desc     string
		value    string
		expected Address
		invalid  bool
	}{
		{
			desc:  "odd number of digits",
			value: "15551234567",
			expected: Address{
				Kind:          NumericAddress,
				Length:        11,
				TypeOfAddress: UnknownTOA,
				Digits:        []byte{0x51, 0x55, 0x21, 0x43, 0x65, 0xF7},
			},
		},
		{
			desc:  "even number of digits",
			value: "5551234567",
			expected: Address{
				Kind:          NumericAddress,
				Length:        10,
				TypeOfAddress: UnknownTOA,
				Digits:        []byte{0x55, 0x15, 0x32, 0x54, 0x76},
			},
		},
		{
			desc:  "international",
			value: "+491701234567",
			expected: Address{
				Kind:          NumericAddress,
				Length:        12,
				TypeOfAddress: InternationalTOA,
				Digits:        []byte{0x94, 0x71, 0x10, 0x32, 0x54, 0x76},
			},
		},
		{
			desc:  "visual separators and dialable characters",
			value: "(555) 12-3*#",
			expected: Address{
				Kind:          NumericAddress,
				Length:        8,
				TypeOfAddress: UnknownTOA,
				Digits:        []byte{0x55, 0x15, 0x32, 0xBA},
			},
		},
		{
			desc:  "alphanumeric",
			value: "INFO",
			expected: Address{
				Kind:          AlphanumericAddress,
				Length:        7,
				TypeOfAddress: AlphanumericTOA,
				Digits:        []byte{0x49, 0xA7, 0xF1, 0x09},
			},
		},
		{
			desc:    "not in the GSM alphabet",
			value:   "ИНФО",
			invalid: true,
		},
		{
			desc:    "alphanumeric too long",
			value:   "INFORMATIONS",
			invalid: true,
		},
		{
			desc:    "empty",
			value:   "",
			invalid: true,
		},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			actual, err := EncodeAddress(tc.value)
			if tc.invalid {
				assert.True(t, errors.Is(err, pdu.ErrBadAddress), "%v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestEncodeAddress_NumericDigitCount(t *testing.T) {
	const digits = "12345678901234567890"
	for n := 1; n <= len(digits); n++ {
		address := digits[:n]
		t.Run(address, func(t *testing.T) {
			actual, err := EncodeAddress(address)
			require.NoError(t, err)

			assert.Equal(t, NumericAddress, actual.Kind)
			assert.Equal(t, byte(n), actual.Length)
			assert.Len(t, actual.Digits, (n+1)/2)
			lastNibble := actual.Digits[len(actual.Digits)-1] & 0xF0
			assert.Equal(t, n%2 == 1, lastNibble == 0xF0)
		})
	}
}

func TestEncodeAddress_LengthMatchesByteCount(t *testing.T) {
	for _, address := range []string{"1", "12", "15551234567", "+4917012345678"} {
		t.Run(address, func(t *testing.T) {
			actual, err := EncodeAddress(address)
			require.NoError(t, err)

			bcd := append([]byte{actual.TypeOfAddress}, actual.Digits...)
			filler := 0
			if bcd[len(bcd)-1]&0xF0 == 0xF0 {
				filler = 1
			}
			assert.Equal(t, (len(bcd)-1)*2-filler, int(actual.Length))
		})
	}
}

func TestEncodeAddress_TooManyDigits(t *testing.T) {
	_, err := EncodeAddress(strings.Repeat("1", maxAddressDigits+1))

	assert.True(t, errors.Is(err, pdu.ErrBadAddress))
}

func TestAddress_Encode(t *testing.T) {
	address, err := EncodeAddress("INFO")
	require.NoError(t, err)

	actual := address.Encode([]byte{0x00})

	assert.Equal(t, []byte{0x00, 0x07, 0xD0, 0x49, 0xA7, 0xF1, 0x09}, actual)
	assert.Equal(t, 6, address.Len())
}
