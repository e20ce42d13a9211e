package embed

import (
	"errors"
	"fmt"
)

// ErrMalformedEmbedPayload is matched by every decode failure.
var ErrMalformedEmbedPayload = errors.New("embed: malformed embed payload")

// PayloadError describes why an embed payload was rejected.
// It matches ErrMalformedEmbedPayload with errors.Is.
type PayloadError struct {
	Kind  Kind
	Field string // offending key, empty for syntax errors
	Err   error
}

func (e *PayloadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("embed: malformed %s embed payload: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("embed: malformed %s embed payload: %q: %v", e.Kind, e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PayloadError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformedEmbedPayload.
func (e *PayloadError) Is(target error) bool {
	return target == ErrMalformedEmbedPayload
}

var (
	errMissingFilepath  = errors.New("missing filepath")
	errNotObject        = errors.New("body is not a JSON object")
	errTrailingData     = errors.New("unexpected data after JSON object")
	errNotString        = errors.New("expected a string")
	errNotNumber        = errors.New("expected a number")
	errInvalidDimension = errors.New("dimension must be a positive finite number")
)

func malformed(kind Kind, field string, err error) error {
	return &PayloadError{Kind: kind, Field: field, Err: err}
}

func errKindMismatch(got Kind) error {
	return fmt.Errorf("block is a %s embed", got)
}
