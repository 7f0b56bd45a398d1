package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a catalog failure independently of the transport.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindConflict
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind onto the status code the API answers with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error is returned by every catalog operation that fails.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidArgument(msg string) *Error { return &Error{Kind: KindInvalidArgument, Msg: msg} }
func notFound(msg string) *Error        { return &Error{Kind: KindNotFound, Msg: msg} }
func conflict(msg string) *Error        { return &Error{Kind: KindConflict, Msg: msg} }
func forbidden(msg string) *Error       { return &Error{Kind: KindForbidden, Msg: msg} }

// internalError wraps a store failure once, at the service boundary.
// Errors that are already classified pass through unchanged.
func internalError(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return &Error{Kind: KindInternal, Msg: op, Err: err}
}

// KindOf reports the kind of err, KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}
