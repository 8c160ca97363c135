package shared

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP rejection translator. The set is closed:
// handlers and middleware never pick status codes themselves.
type Kind uint8

const (
	// KindInternal is the zero value; untyped errors are treated as internal.
	KindInternal Kind = iota
	// KindInvalidInput marks malformed or incomplete request data.
	KindInvalidInput
	// KindInvalidCredentials marks a failed login, whatever the reason.
	KindInvalidCredentials
	// KindConflict marks a uniqueness violation.
	KindConflict
	// KindUnauthorized marks a request without a usable session.
	KindUnauthorized
	// KindForbidden marks an authenticated request on a resource the caller does not own.
	KindForbidden
	// KindNotFound marks a missing resource or route.
	KindNotFound
	// KindBadRequest marks unusable query or path parameters.
	KindBadRequest
	// KindUpstream marks a failure of an external service.
	KindUpstream
)

var kindNames = map[Kind]string{
	KindInternal:           "internal",
	KindInvalidInput:       "invalid_input",
	KindInvalidCredentials: "invalid_credentials",
	KindConflict:           "conflict",
	KindUnauthorized:       "unauthorized",
	KindForbidden:          "forbidden",
	KindNotFound:           "not_found",
	KindBadRequest:         "bad_request",
	KindUpstream:           "upstream",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Error is a classified error. Sentinels are compared by identity with errors.Is,
// wrapped causes stay reachable through Unwrap.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// NewError constructs a classified sentinel.
func NewError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap classifies err under kind, keeping err in the chain.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost classified error in err's chain.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindInternal
}

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = NewError(KindNotFound, "not found")
	// ErrUnauthorized is the only rejection the session gate produces.
	ErrUnauthorized = NewError(KindUnauthorized, "unauthorized")
	// ErrForbidden indicates the caller does not own the resource.
	ErrForbidden = NewError(KindForbidden, "forbidden")
	// ErrMissingParameters indicates an incomplete pagination query.
	ErrMissingParameters = NewError(KindBadRequest, "missing parameter")
)
