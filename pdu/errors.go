package pdu

import (
	"errors"
	"fmt"
)

var (
	// ErrBadAddress indicates an address that can neither be encoded as numeric nor as alphanumeric address.
	ErrBadAddress = errors.New("bad address")
	// ErrMessageTooLong indicates that the message exceeds the capacity of the selected encoding.
	ErrMessageTooLong = errors.New("message too long")
	// ErrEncodingUnsupported indicates a character that has no mapping in the selected character set.
	ErrEncodingUnsupported = errors.New("encoding unsupported")
	// ErrMissingField indicates an empty mandatory input.
	ErrMissingField = errors.New("missing field")
)

// Names of the inputs that are reported with a FieldError.
const (
	DestinationField  = "destination"
	MessageField      = "message"
	SubscriptionField = "subscription"
)

// FieldError relates an error to the input that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", fe.Field, fe.Err)
}

func (fe *FieldError) Unwrap() error {
	return fe.Err
}

// Missing returns a FieldError for an empty mandatory input.
func Missing(field string) error {
	return &FieldError{Field: field, Err: ErrMissingField}
}
