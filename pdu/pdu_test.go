package pdu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexBinaryRoundtrip(t *testing.T) {
	hex := "000B915155214365F70000"

	bytes, err := HexToBinary(hex)
	require.NoError(t, err)

	actual := BinaryToHex(bytes)
	assert.Equal(t, hex, actual)
}

func TestHexToBinary_IgnoresWhitespace(t *testing.T) {
	actual, err := HexToBinary("00 0b\n91")

	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x0B, 0x91}, actual)
}

func TestTechnologyByName(t *testing.T) {
	tt := []struct {
		desc     string
		value    string
		expected Technology
		invalid  bool
	}{
		{desc: "gsm", value: "GSM", expected: GSM},
		{desc: "cdma lower case", value: " cdma ", expected: CDMA},
		{desc: "unknown", value: "lte", invalid: true},
	}
	for _, tc := range tt {
		t.Run(tc.desc, func(t *testing.T) {
			actual, err := TechnologyByName(tc.value)
			if tc.invalid {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
			assert.Equal(t, tc.value != "" && !tc.invalid, actual.String() != "UNKNOWN")
		})
	}
}

func TestFieldError(t *testing.T) {
	err := fmt.Errorf("cannot build PDU: %w", Missing(MessageField))

	assert.True(t, errors.Is(err, ErrMissingField))
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, MessageField, fieldErr.Field)
	assert.Equal(t, "cannot build PDU: message: missing field", err.Error())
}
