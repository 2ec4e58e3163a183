package gsm

import (
	"fmt"
	"time"

	"github.com/ftl/smspdu/pdu"
)

// First octet of an SMS-DELIVER according to [TS23040] 9.2.2.1
const (
	DeliverMessageType byte = 0x00
	// UserDataHeaderIndicator (TP-UDHI) is set if the user data starts with a header.
	UserDataHeaderIndicator byte = 0x40
)

// DefaultProtocolIdentifier (TP-PID) according to [TS23040] 9.2.3.9
const DefaultProtocolIdentifier byte = 0x00

// Options control the optional parts of an SMS-DELIVER.
type Options struct {
	// Header is the user data header without its length octet. No header is used if it is empty.
	Header []byte
	// Encoding forces the encoding of the user data. The zero value is EncodingAuto.
	Encoding Encoding
}

// BuildDeliver returns a new SMS-DELIVER TPDU that carries the given text as received from the given
// destination at the given time:
//
//	[MTI][address length][TOA][address digits][PID][DCS][SCTS(7)][UDL][UD]
//
// The service centre address is not part of the TPDU, it is accepted only to keep the signature in line
// with the CDMA builder. The timestamp is encoded in its own location.
func BuildDeliver(serviceCenter, destination, text string, timestamp time.Time, options Options) (pdu.PDU, error) {
	if destination == "" {
		return nil, pdu.Missing(pdu.DestinationField)
	}
	if text == "" {
		return nil, pdu.Missing(pdu.MessageField)
	}

	firstOctet := DeliverMessageType
	if len(options.Header) > 0 {
		firstOctet |= UserDataHeaderIndicator
	}

	address, err := EncodeAddress(destination)
	if err != nil {
		return nil, &pdu.FieldError{Field: pdu.DestinationField, Err: err}
	}

	userData, err := EncodeUserData(text, options.Header, options.Encoding)
	if err != nil {
		return nil, &pdu.FieldError{Field: pdu.MessageField, Err: err}
	}

	scts := EncodeTimestamp(timestamp)

	result := make([]byte, 0, 3+address.Len()+TimestampLength+1+len(userData.Payload))
	result = append(result, firstOctet)
	result = address.Encode(result)
	result = append(result, DefaultProtocolIdentifier, userData.Encoding.DataCodingScheme())
	result = scts.Encode(result)
	result = userData.Encode(result)

	return result, nil
}

// ParseEncoding returns the Encoding with the given name: auto, 7bit, or ucs2.
func ParseEncoding(name string) (Encoding, error) {
	for _, e := range []Encoding{EncodingAuto, EncodingSevenBit, EncodingUCS2} {
		if e.String() == name {
			return e, nil
		}
	}
	return EncodingAuto, fmt.Errorf("invalid user data encoding %s", name)
}
