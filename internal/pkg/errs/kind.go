package errs

import "errors"

// Kind classifies an error for callers that only need its category,
// such as batch results and transport status mapping.
type Kind string

const (
	KindValidation    Kind = "VALIDATION"
	KindNotFound      Kind = "NOT_FOUND"
	KindStateConflict Kind = "STATE_CONFLICT"
	KindTransport     Kind = "TRANSPORT"
	KindInternal      Kind = "INTERNAL"
)

// KindOf returns the category of err. A nil error has an empty kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrStateConflict):
		return KindStateConflict
	case errors.Is(err, ErrTransport):
		return KindTransport
	case IsValidation(err):
		return KindValidation
	default:
		return KindInternal
	}
}

// IsValidation reports whether err is one of the value validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsOutOfRange) ||
		errors.Is(err, ErrVersionIsInvalid)
}
