package domain

import "errors"

// ErrorKind classifies a business-rule failure.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindQuotaExceeded ErrorKind = "quota_exceeded"
	KindDuplicate     ErrorKind = "duplicate"
	KindNotFound      ErrorKind = "not_found"
	KindTemporal      ErrorKind = "temporal_violation"
	KindOverlap       ErrorKind = "overlap"
	KindConflict      ErrorKind = "conflict"
)

// Error is a tagged business-rule failure. Every failure condition in the
// domain is a package-level *Error, so callers match it with errors.Is.
type Error struct {
	kind    ErrorKind
	code    string
	message string
}

// NewError creates a tagged domain error. The code must be unique across the
// module; it is the machine-readable identity hosts expose to clients.
func NewError(kind ErrorKind, code, message string) *Error {
	return &Error{kind: kind, code: code, message: message}
}

func (e *Error) Error() string   { return e.message }
func (e *Error) Kind() ErrorKind { return e.kind }
func (e *Error) Code() string    { return e.code }

// KindOf returns the kind of the first domain error in err's chain,
// or an empty kind when err carries none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.kind
	}
	return ""
}

// CodeOf returns the code of the first domain error in err's chain.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}

// IsBusinessError reports whether err is a recoverable business-rule outcome
// rather than an infrastructure failure.
func IsBusinessError(err error) bool {
	return KindOf(err) != ""
}
