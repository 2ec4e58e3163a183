package gsm

import (
	"fmt"
	"strings"

	"github.com/warthog618/sms/encoding/gsm7"
	"github.com/warthog618/sms/encoding/semioctet"

	"github.com/ftl/smspdu/pdu"
)

// AddressKind tells how the digits of an address are represented.
type AddressKind byte

// All address kinds
const (
	// NumericAddress digits are semi-octets according to [TS23040] 9.1.2.3
	NumericAddress AddressKind = iota
	// AlphanumericAddress digits are packed septets of the default alphabet according to [TS23040] 9.1.2.5
	AlphanumericAddress
)

// Type of address values according to [TS23040] 9.1.2.5
const (
	UnknownTOA       byte = 0x81
	InternationalTOA byte = 0x91
	AlphanumericTOA  byte = 0xD0
)

// The address value is at most 10 octets long, according to [TS23040] 9.1.2.5
const (
	maxAddressDigits  = 20
	maxAddressSeptets = 11
)

// Address is an encoded TP-DA/TP-OA.
type Address struct {
	Kind AddressKind
	// Length is the count of useful semi-octets in Digits.
	Length        byte
	TypeOfAddress byte
	Digits        []byte
}

// EncodeAddress encodes the given address as numeric address if possible, otherwise as alphanumeric address.
func EncodeAddress(address string) (Address, error) {
	if digits, length, international, ok := calledPartyBCD(address); ok {
		toa := UnknownTOA
		if international {
			toa = InternationalTOA
		}
		return Address{
			Kind:          NumericAddress,
			Length:        byte(length),
			TypeOfAddress: toa,
			Digits:        digits,
		}, nil
	}

	septets, err := toSeptets(address)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q is neither numeric nor in the GSM 7 bit alphabet: %v", pdu.ErrBadAddress, address, err)
	}
	if len(septets) == 0 || len(septets) > maxAddressSeptets {
		return Address{}, fmt.Errorf("%w: alphanumeric address with %d septets", pdu.ErrBadAddress, len(septets))
	}

	return Address{
		Kind:          AlphanumericAddress,
		Length:        byte((len(septets)*7 + 3) / 4),
		TypeOfAddress: AlphanumericTOA,
		Digits:        gsm7.Pack7Bit(septets, 0),
	}, nil
}

// Encode this address
func (a Address) Encode(bytes []byte) []byte {
	bytes = append(bytes, a.Length, a.TypeOfAddress)
	return append(bytes, a.Digits...)
}

// Len returns the length of this encoded address in bytes.
func (a Address) Len() int {
	return 2 + len(a.Digits)
}

// visualSeparators are ignored in numeric addresses
const visualSeparators = " -()."

// dialDigits are the characters of a numeric address
const dialDigits = "0123456789*#"

// calledPartyBCD converts the given address into semi-octets, the first digit in the low nibble.
// A leading "+" marks an international number and is not encoded.
func calledPartyBCD(address string) ([]byte, int, bool, bool) {
	international := strings.HasPrefix(address, "+")
	if international {
		address = address[1:]
	}

	digits := strings.Map(func(r rune) rune {
		if strings.ContainsRune(visualSeparators, r) {
			return -1
		}
		return r
	}, address)
	if len(digits) == 0 || len(digits) > maxAddressDigits {
		return nil, 0, false, false
	}
	for _, c := range digits {
		if !strings.ContainsRune(dialDigits, c) {
			return nil, 0, false, false
		}
	}

	result, err := semioctet.Encode([]byte(digits))
	if err != nil {
		return nil, 0, false, false
	}
	return result, len(digits), international, true
}
