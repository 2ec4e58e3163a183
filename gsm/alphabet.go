package gsm

import (
	"github.com/warthog618/sms/encoding/gsm7"
)

/* GSM 7 bit default alphabet and extension table according to [TS23038] 6.2.1 */

// IsGSM7 indicates if the given text can be represented using only the default alphabet and its extension table.
func IsGSM7(text string) bool {
	_, err := toSeptets(text)
	return err == nil
}

// CountSeptets returns the number of septets that are necessary to represent the given text. Characters
// of the extension table count as two septets. If the text contains a character that cannot be represented,
// CountSeptets returns -1.
func CountSeptets(text string) int {
	septets, err := toSeptets(text)
	if err != nil {
		return -1
	}
	return len(septets)
}

// toSeptets maps the given text to unpacked septet values. Characters of the extension table are
// preceded by the escape septet. A character that is in neither table is a gsm7.ErrInvalidUTF8.
func toSeptets(text string) ([]byte, error) {
	return gsm7.Encode([]byte(text))
}

// packBehindHeader packs the septets according to [TS23038] 6.1.2.1.1 behind a user data header of
// the given length in octets, including its length octet. The fill bits pad the header to a septet boundary.
// It returns the packed septets and the number of septets that the header occupies.
func packBehindHeader(septets []byte, headerOctets int) ([]byte, int) {
	headerSeptets := (headerOctets*8 + 6) / 7
	fillBits := headerSeptets*7 - headerOctets*8
	return gsm7.Pack7Bit(septets, fillBits), headerSeptets
}
