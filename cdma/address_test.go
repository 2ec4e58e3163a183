package cdma

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftl/smspdu/pdu"
)

func TestNormalizePlusCode(t *testing.T) {
	tt := []struct {
		desc     string
		value    string
		prefix   string
		expected string
	}{
		{desc: "no plus", value: "5551234567", expected: "5551234567"},
		{desc: "NANP", value: "+12125551234", expected: "12125551234"},
		{desc: "NANP with invalid exchange", value: "+12121231234", expected: "01112121231234"},
		{desc: "international", value: "+491701234567", expected: "011491701234567"},
		{desc: "configured prefix", value: "+491701234567", prefix: "00", expected: "00491701234567"},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			actual := NormalizePlusCode(tc.value, tc.prefix)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestEncodeAddress(t *testing.T) {
	tt := []struct {
		desc     string
		value    string
		expected Address
		invalid  bool
	}{
		{
			desc:  "plain number",
			value: "5551234567",
			expected: Address{
				DigitMode:  DTMFDigitMode,
				NumberMode: NotDataNetwork,
				Type:       UnknownNumberType,
				Plan:       UnknownNumberPlan,
				Digits:     []byte{5, 5, 5, 1, 2, 3, 4, 5, 6, 7},
			},
		},
		{
			desc:  "zero star pound and separators",
			value: "(0) *31#",
			expected: Address{
				Digits: []byte{dtmfZero, dtmfStar, 3, 1, dtmfPound},
			},
		},
		{
			desc:  "international",
			value: "+49 170",
			expected: Address{
				Digits: []byte{dtmfZero, 1, 1, 4, 9, 1, 7, dtmfZero},
			},
		},
		{desc: "letters", value: "INFO", invalid: true},
		{desc: "empty", value: "", invalid: true},
		{desc: "only separators", value: " - ", invalid: true},
		{desc: "only plus", value: "+", invalid: true},
		{desc: "plus and separators", value: "+ ()", invalid: true},
		{desc: "plus in the middle", value: "555+1234", invalid: true},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			actual, err := EncodeAddress(tc.value, "")
			if tc.invalid {
				assert.True(t, errors.Is(err, pdu.ErrBadAddress), "%v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestAddress_Encode(t *testing.T) {
	address, err := EncodeAddress("5551234567", "")
	require.NoError(t, err)

	actual := address.Encode(nil)

	assert.Equal(t, []byte{0, 0, 0, 0, 10, 5, 5, 5, 1, 2, 3, 4, 5, 6, 7}, actual)
}
