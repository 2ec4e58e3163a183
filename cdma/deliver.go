package cdma

import (
	"encoding/binary"
	"time"

	"github.com/ftl/smspdu/pdu"
)

// Teleservice identifiers according to [C.S0015] table 3.4.3.1-1
const (
	// UnspecifiedTeleservice is used for synthesized deliveries
	UnspecifiedTeleservice uint32 = 0x0000
	CMTTeleservice         uint32 = 0x1002
	WAPTeleservice         uint32 = 0x1004
)

// Options control the encoding of the CDMA delivery PDU.
type Options struct {
	// InternationalPrefix replaces a leading "+" of numbers outside of the NANP. The zero value
	// selects DefaultInternationalPrefix.
	InternationalPrefix string
	// EmptyBearerData is called with the reason if the PDU is sent with an empty bearer data section.
	EmptyBearerData func(error)
}

// BuildDeliver returns a new delivery PDU that carries the given text as received from the given destination.
// The service centre address and the timestamp are not part of this format, they are accepted only to keep
// the signature in line with the GSM builder.
//
// If the bearer data cannot be encoded, the PDU carries an empty bearer data section and
// options.EmptyBearerData is called with the reason.
func BuildDeliver(serviceCenter, destination, text string, timestamp time.Time, options Options) (pdu.PDU, error) {
	if destination == "" {
		return nil, pdu.Missing(pdu.DestinationField)
	}
	if text == "" {
		return nil, pdu.Missing(pdu.MessageField)
	}

	address, err := EncodeAddress(destination, options.InternationalPrefix)
	if err != nil {
		return nil, &pdu.FieldError{Field: pdu.DestinationField, Err: err}
	}

	bearerData, err := NewDeliverBearerData(text).Encode()
	if err != nil { // be lenient and send an empty bearer data section
		bearerData = nil
		if options.EmptyBearerData != nil {
			options.EmptyBearerData(err)
		}
	}

	result := make([]byte, 0, 12+5+len(address.Digits)+3+1+len(bearerData))
	result = binary.BigEndian.AppendUint32(result, UnspecifiedTeleservice)
	result = binary.BigEndian.AppendUint32(result, 0) // service present
	result = binary.BigEndian.AppendUint32(result, 0) // service category
	result = address.Encode(result)
	result = encodeEmptySubaddress(result)
	result = append(result, byte(len(bearerData)))
	result = append(result, bearerData...)

	return result, nil
}

// encodeEmptySubaddress writes type, odd indicator and digit count of a subaddress without digits.
func encodeEmptySubaddress(bytes []byte) []byte {
	return append(bytes, 0, 0, 0)
}
