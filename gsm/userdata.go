package gsm

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/ftl/smspdu/pdu"
)

// Encoding of the user data.
type Encoding byte

// All encodings
const (
	// EncodingAuto selects SevenBit if possible, otherwise UCS2.
	EncodingAuto Encoding = iota
	EncodingSevenBit
	EncodingUCS2
)

func (e Encoding) String() string {
	switch e {
	case EncodingAuto:
		return "auto"
	case EncodingSevenBit:
		return "7bit"
	case EncodingUCS2:
		return "ucs2"
	default:
		return "unknown"
	}
}

// DataCodingScheme returns the TP-DCS for this encoding according to [TS23038] 4.
func (e Encoding) DataCodingScheme() byte {
	if e == EncodingUCS2 {
		return UCS2DataCodingScheme
	}
	return DefaultDataCodingScheme
}

// TP-DCS values
const (
	DefaultDataCodingScheme byte = 0x00
	// UCS2DataCodingScheme is class 3, UCS-2, uncompressed
	UCS2DataCodingScheme byte = 0x0B
)

// Capacity of TP-UD according to [TS23040] 9.2.3.16
const (
	MaxUserDataSeptets = 160
	MaxUserDataBytes   = 140
)

var ucs2Codec = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// UserData is an encoded TP-UD together with the value of its TP-UDL.
type UserData struct {
	Encoding Encoding
	// Units counts septets with EncodingSevenBit and bytes with EncodingUCS2, including the user data header.
	Units   int
	Payload []byte
}

// Encode this user data including the TP-UDL
func (u UserData) Encode(bytes []byte) []byte {
	bytes = append(bytes, byte(u.Units))
	return append(bytes, u.Payload...)
}

// EncodeUserData encodes the given text and the optional user data header. With EncodingAuto the text is
// encoded using the default alphabet, falling back to UCS-2 if the text contains any character outside of it.
// The capacity of the selected encoding is not exceeded, a message that is too long is not encoded
// in the other encoding.
func EncodeUserData(text string, header []byte, encoding Encoding) (UserData, error) {
	if len(header) > MaxUserDataBytes-1 {
		return UserData{}, fmt.Errorf("%w: user data header with %d bytes", pdu.ErrMessageTooLong, len(header))
	}

	switch encoding {
	case EncodingAuto, EncodingSevenBit:
		septets, err := toSeptets(text)
		if err == nil {
			return encodeSevenBit(septets, header)
		}
		if encoding == EncodingSevenBit {
			return UserData{}, fmt.Errorf("%w: %v", pdu.ErrEncodingUnsupported, err)
		}
		return encodeUCS2(text, header)
	case EncodingUCS2:
		return encodeUCS2(text, header)
	default:
		return UserData{}, fmt.Errorf("%w: user data encoding %d", pdu.ErrEncodingUnsupported, encoding)
	}
}

// encodeSevenBit packs the septets behind the user data header, which is padded to a septet boundary.
func encodeSevenBit(septets []byte, header []byte) (UserData, error) {
	headerOctets := 0
	if len(header) > 0 {
		headerOctets = len(header) + 1
	}
	packed, headerSeptets := packBehindHeader(septets, headerOctets)

	units := headerSeptets + len(septets)
	if units > MaxUserDataSeptets {
		return UserData{}, fmt.Errorf("%w: %d septets exceed the maximum of %d", pdu.ErrMessageTooLong, units, MaxUserDataSeptets)
	}

	payload := make([]byte, 0, headerOctets+len(packed))
	if len(header) > 0 {
		payload = append(payload, byte(len(header)))
		payload = append(payload, header...)
	}
	payload = append(payload, packed...)

	return UserData{
		Encoding: EncodingSevenBit,
		Units:    units,
		Payload:  payload,
	}, nil
}

// encodeUCS2 encodes the text as UTF-16BE behind the user data header.
func encodeUCS2(text string, header []byte) (UserData, error) {
	encoded, err := ucs2Codec.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return UserData{}, fmt.Errorf("%w: %v", pdu.ErrEncodingUnsupported, err)
	}

	payload := make([]byte, 0, len(header)+1+len(encoded))
	if len(header) > 0 {
		payload = append(payload, byte(len(header)))
		payload = append(payload, header...)
	}
	payload = append(payload, encoded...)

	if len(payload) > MaxUserDataBytes {
		return UserData{}, fmt.Errorf("%w: %d bytes exceed the maximum of %d", pdu.ErrMessageTooLong, len(payload), MaxUserDataBytes)
	}

	return UserData{
		Encoding: EncodingUCS2,
		Units:    len(payload),
		Payload:  payload,
	}, nil
}
