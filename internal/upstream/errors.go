package upstream

import (
	"errors"
	"fmt"
)

// Kind classifies an upstream failure at the API boundary so callers
// never have to inspect message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindUnauthorized
	KindNotFound
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by every client call.
type Error struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream: %s (%s)", e.Message, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("upstream: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the error kind, KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return KindUnknown
}

func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }

func kindForStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindUnauthorized
	case status == 404:
		return KindNotFound
	case status == 400 || status == 422:
		return KindValidation
	default:
		return KindUnknown
	}
}
