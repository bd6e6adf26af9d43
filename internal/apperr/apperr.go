// Package apperr classifies failures so the HTTP layer can map them to a
// status code while keeping a single {"error": "..."} response shape.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindInput
	KindTooLarge
	KindStorage
	KindModel
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindTooLarge:
		return "too_large"
	case KindStorage:
		return "storage"
	case KindModel:
		return "model"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error attaches a Kind to an underlying error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// E wraps err with kind. An err that already carries a kind keeps it.
func E(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

// Errorf is fmt.Errorf followed by E.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return E(kind, fmt.Errorf(format, args...))
}

// KindOf returns the kind of the outermost classified error in err's
// chain, or KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}
