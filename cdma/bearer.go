package cdma

import (
	"errors"
	"fmt"

	"github.com/warthog618/sms/encoding/ucs2"
)

// MessageType according to [C.S0015] 4.5.1
type MessageType byte

// All message types according to [C.S0015] table 4.5.1-1
const (
	DeliverMessage         MessageType = 0x01
	SubmitMessage          MessageType = 0x02
	CancellationMessage    MessageType = 0x03
	DeliveryAcknowledgment MessageType = 0x04
	UserAcknowledgment     MessageType = 0x05
	ReadAcknowledgment     MessageType = 0x06
	DeliverReportMessage   MessageType = 0x07
	SubmitReportMessage    MessageType = 0x08
)

// UserDataEncoding (MSG_ENCODING) according to 3GPP2 C.R1001 table 9.1-1
type UserDataEncoding byte

// The user data encodings
const (
	OctetEncoding       UserDataEncoding = 0x00
	IS91Encoding        UserDataEncoding = 0x01
	ASCII7BitEncoding   UserDataEncoding = 0x02
	IA5Encoding         UserDataEncoding = 0x03
	Unicode16Encoding   UserDataEncoding = 0x04
	ShiftJISEncoding    UserDataEncoding = 0x05
	KoreanEncoding      UserDataEncoding = 0x06
	LatinHebrewEncoding UserDataEncoding = 0x07
	LatinEncoding       UserDataEncoding = 0x08
	GSM7BitEncoding     UserDataEncoding = 0x09
)

// SubparameterID according to [C.S0015] table 4.5-1
type SubparameterID byte

// The subparameters that are used here
const (
	MessageIdentifierID SubparameterID = 0x00
	UserDataID          SubparameterID = 0x01
	ReplyOptionID       SubparameterID = 0x0A
)

// The lengths are limited by the 8 bit SUBPARAM_LEN field and the length octet in front of the bearer data.
const (
	maxSubparameterLength = 0xFF
	maxBearerDataLength   = 0xFF
)

// ErrBearerDataTooLong indicates bearer data that does not fit into the 8 bit length fields.
var ErrBearerDataTooLong = errors.New("bearer data too long")

// UserData subparameter according to [C.S0015] 4.5.2
type UserData struct {
	Encoding UserDataEncoding
	// NumFields is the number of characters, for UNICODE_16 the number of 16 bit code units.
	NumFields int
	Payload   []byte
}

// NewUnicodeUserData returns user data with the given text as UNICODE_16.
func NewUnicodeUserData(text string) UserData {
	payload := ucs2.Encode([]rune(text))
	return UserData{
		Encoding:  Unicode16Encoding,
		NumFields: len(payload) / 2,
		Payload:   payload,
	}
}

// BearerData carries the semantic content of a CDMA message.
type BearerData struct {
	MessageType       MessageType
	MessageID         uint16
	HasUserDataHeader bool
	UserData          UserData

	DeliveryAckReq bool
	UserAckReq     bool
	ReadAckReq     bool
	ReportReq      bool
}

// NewDeliverBearerData returns bearer data of a delivered message with the given text. A synthesized delivery
// never requests any acknowledgment.
func NewDeliverBearerData(text string) BearerData {
	return BearerData{
		MessageType: DeliverMessage,
		UserData:    NewUnicodeUserData(text),
	}
}

// AckRequested indicates if any acknowledgment or report is requested.
func (b BearerData) AckRequested() bool {
	return b.DeliveryAckReq || b.UserAckReq || b.ReadAckReq || b.ReportReq
}

// Encode the subparameters of this bearer data: the message identifier, the user data, and the reply option
// if any acknowledgment is requested.
func (b BearerData) Encode() ([]byte, error) {
	bytes := make([]byte, 0, 32+len(b.UserData.Payload))

	bytes = appendSubparameter(bytes, MessageIdentifierID, b.encodeMessageIdentifier())

	userData, err := b.UserData.encode()
	if err != nil {
		return nil, err
	}
	bytes = appendSubparameter(bytes, UserDataID, userData)

	if b.AckRequested() {
		bytes = appendSubparameter(bytes, ReplyOptionID, b.encodeReplyOption())
	}

	if len(bytes) > maxBearerDataLength {
		return nil, fmt.Errorf("%w: %d bytes", ErrBearerDataTooLong, len(bytes))
	}
	return bytes, nil
}

func appendSubparameter(bytes []byte, id SubparameterID, value []byte) []byte {
	bytes = append(bytes, byte(id), byte(len(value)))
	return append(bytes, value...)
}

// encodeMessageIdentifier according to [C.S0015] 4.5.1
func (b BearerData) encodeMessageIdentifier() []byte {
	var w bitWriter
	w.write(4, uint(b.MessageType))
	w.write(16, uint(b.MessageID))
	w.write(1, boolBit(b.HasUserDataHeader))
	w.skip()
	return w.Bytes()
}

// encodeReplyOption according to [C.S0015] 4.5.11
func (b BearerData) encodeReplyOption() []byte {
	var w bitWriter
	w.write(1, boolBit(b.UserAckReq))
	w.write(1, boolBit(b.DeliveryAckReq))
	w.write(1, boolBit(b.ReadAckReq))
	w.write(1, boolBit(b.ReportReq))
	w.skip()
	return w.Bytes()
}

// encode according to [C.S0015] 4.5.2
func (u UserData) encode() ([]byte, error) {
	if u.NumFields > 0xFF {
		return nil, fmt.Errorf("%w: %d characters", ErrBearerDataTooLong, u.NumFields)
	}

	var w bitWriter
	w.write(5, uint(u.Encoding))
	w.write(8, uint(u.NumFields))
	w.writeBytes(u.Payload)
	w.skip()

	result := w.Bytes()
	if len(result) > maxSubparameterLength {
		return nil, fmt.Errorf("%w: user data of %d bytes", ErrBearerDataTooLong, len(result))
	}
	return result, nil
}

func boolBit(b bool) uint {
	if b {
		return 1
	}
	return 0
}
