/*
The package pdu contains the types shared by the GSM and CDMA encoders: the encoded PDU itself,
the radio technology of a subscription, and the errors that abort the construction of a PDU.

References:
  [TS23040] 3GPP TS 23.040 V16.0.0 (2020-07)
  [TS27005] 3GPP TS 27.005 V16.0.0 (2020-07)
  [C.S0015] 3GPP2 C.S0015-B v2.0 (2004-09)
*/
package pdu

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// PDU is a complete encoded message. It has no further structure for its consumers and is handed
// as it is to a message store.
type PDU []byte

// Hex returns the hex representation of this PDU as it is used with AT commands in PDU mode.
func (p PDU) Hex() string {
	return BinaryToHex(p)
}

// Technology of the radio that is active for a subscription.
type Technology byte

// All supported radio technologies
const (
	GSM Technology = iota
	CDMA
)

// TechnologiesByName maps all supported technologies by their string representation
var TechnologiesByName = map[string]Technology{
	"GSM":  GSM,
	"CDMA": CDMA,
}

func (t Technology) String() string {
	for k, v := range TechnologiesByName {
		if v == t {
			return k
		}
	}
	return "UNKNOWN"
}

// TechnologyByName returns the Technology with the given name
func TechnologyByName(name string) (Technology, error) {
	sanitized := strings.ToUpper(strings.TrimSpace(name))
	result, ok := TechnologiesByName[sanitized]
	if !ok {
		return 0, fmt.Errorf("invalid radio technology %s", name)
	}
	return result, nil
}

var hexSanitizer = regexp.MustCompile(`\s+`)

// HexToBinary converts the hex representation used with AT commands into a slice of bytes
func HexToBinary(s string) ([]byte, error) {
	sanitized := hexSanitizer.ReplaceAllString(s, "")
	return hex.DecodeString(sanitized)
}

// BinaryToHex converts a slice of bytes into the hex representation used with AT commands
func BinaryToHex(bytes []byte) string {
	return strings.ToUpper(hex.EncodeToString(bytes))
}
