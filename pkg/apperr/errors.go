package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary.
type Kind string

const (
	KindConfiguration   Kind = "configuration"
	KindValidation      Kind = "validation"
	KindLookup          Kind = "lookup"
	KindExternalService Kind = "external_service"
)

// Error is the single error type shared by every layer. Message is safe to
// show to clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Configuration(message string) error {
	return &Error{Kind: KindConfiguration, Message: message}
}

func Validation(message string, cause error) error {
	return &Error{Kind: KindValidation, Message: message, Err: cause}
}

func Lookup(message string) error {
	return &Error{Kind: KindLookup, Message: message}
}

func ExternalService(message string, cause error) error {
	return &Error{Kind: KindExternalService, Message: message, Err: cause}
}

// KindOf returns the Kind of the first *Error in the chain, or "" for
// errors outside the taxonomy.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
