package cdma

import (
	"fmt"
	"strings"

	"github.com/ftl/smspdu/pdu"
)

// DigitMode according to [C.S0015] 3.4.3.3
type DigitMode byte

// All digit modes
const (
	DTMFDigitMode  DigitMode = 0x00
	ASCIIDigitMode DigitMode = 0x01
)

// NumberMode according to [C.S0015] 3.4.3.3
type NumberMode byte

// All number modes
const (
	NotDataNetwork NumberMode = 0x00
	DataNetwork    NumberMode = 0x01
)

// NumberType (TON) according to [C.S0005] table 2.7.1.3.2.4-2
type NumberType byte

// The relevant number types
const (
	UnknownNumberType       NumberType = 0x00
	InternationalNumberType NumberType = 0x01
	NationalNumberType      NumberType = 0x02
)

// NumberPlan according to [C.S0005] table 2.7.1.3.2.4-3
type NumberPlan byte

// The relevant number plans
const (
	UnknownNumberPlan NumberPlan = 0x00
	ISDNNumberPlan    NumberPlan = 0x01
)

// DefaultInternationalPrefix replaces a leading "+" outside of the NANP.
const DefaultInternationalPrefix = "011"

// DTMF digit codes according to [C.S0005] table 2.7.1.3.2.4-4
const (
	dtmfZero  byte = 0x0A
	dtmfStar  byte = 0x0B
	dtmfPound byte = 0x0C
)

// Address is an encoded CDMA destination address.
type Address struct {
	DigitMode  DigitMode
	NumberMode NumberMode
	Type       NumberType
	Plan       NumberPlan
	Digits     []byte
}

// Encode this address
func (a Address) Encode(bytes []byte) []byte {
	bytes = append(bytes, byte(a.DigitMode), byte(a.NumberMode), byte(a.Type), byte(a.Plan), byte(len(a.Digits)))
	return append(bytes, a.Digits...)
}

// EncodeAddress normalizes the "+" of the given address using the given international prefix and encodes the
// remaining digits as DTMF codes. An empty prefix selects DefaultInternationalPrefix.
func EncodeAddress(address string, internationalPrefix string) (Address, error) {
	filtered := filterVisualSeparators(address)
	if strings.TrimPrefix(filtered, "+") == "" {
		return Address{}, fmt.Errorf("%w: %q has no digits", pdu.ErrBadAddress, address)
	}
	normalized := NormalizePlusCode(filtered, internationalPrefix)
	if len(normalized) > 0xFF {
		return Address{}, fmt.Errorf("%w: %d digits", pdu.ErrBadAddress, len(normalized))
	}

	digits := make([]byte, 0, len(normalized))
	for _, c := range normalized {
		switch {
		case c == '0':
			digits = append(digits, dtmfZero)
		case c >= '1' && c <= '9':
			digits = append(digits, byte(c-'0'))
		case c == '*':
			digits = append(digits, dtmfStar)
		case c == '#':
			digits = append(digits, dtmfPound)
		default:
			return Address{}, fmt.Errorf("%w: %q is not numeric", pdu.ErrBadAddress, address)
		}
	}

	return Address{
		DigitMode:  DTMFDigitMode,
		NumberMode: NotDataNetwork,
		Type:       UnknownNumberType,
		Plan:       UnknownNumberPlan,
		Digits:     digits,
	}, nil
}

// NormalizePlusCode replaces a leading "+" with the digits that are dialed from within the NANP:
// "+1" followed by a NANP number loses the "+", any other international number gets the given prefix.
func NormalizePlusCode(address string, internationalPrefix string) string {
	if !strings.HasPrefix(address, "+") {
		return address
	}
	if internationalPrefix == "" {
		internationalPrefix = DefaultInternationalPrefix
	}

	number := address[1:]
	if isNANPWithCountryCode(number) {
		return number
	}
	return internationalPrefix + number
}

// isNANPWithCountryCode checks for 1NXXNXXXXXX, where N is 2-9 and X is 0-9.
func isNANPWithCountryCode(number string) bool {
	if len(number) != 11 || number[0] != '1' {
		return false
	}
	for i, c := range number {
		if c < '0' || c > '9' {
			return false
		}
		if (i == 1 || i == 4) && c < '2' {
			return false
		}
	}
	return true
}

const visualSeparators = " -()."

func filterVisualSeparators(address string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(visualSeparators, r) {
			return -1
		}
		return r
	}, address)
}
