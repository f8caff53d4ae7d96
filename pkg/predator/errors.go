package predator

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the dataset source is missing or unreadable
	ErrNotFound = errors.New("predator: dataset not found")

	// ErrDecode indicates the dataset violates the record schema
	ErrDecode = errors.New("predator: decode error")
)

// ErrorKind classifies a DataError
type ErrorKind int

const (
	NotFound ErrorKind = iota
	DecodeError
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case DecodeError:
		return "decode error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// DataError reports a failed dataset load.
//
// errors.Is matches ErrNotFound or ErrDecode according to Kind; the underlying
// cause is available via errors.Unwrap.
type DataError struct {
	Kind   ErrorKind
	Source string // Dataset name or path
	Err    error
}

func (e *DataError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("predator data %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("predator data %s (%s): %v", e.Kind, e.Source, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind
func (e *DataError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrDecode:
		return e.Kind == DecodeError
	}
	return false
}

// NewDataError wraps err as a DataError of the given kind
func NewDataError(kind ErrorKind, source string, err error) *DataError {
	return &DataError{Kind: kind, Source: source, Err: err}
}

func notFound(source string, err error) error {
	return NewDataError(NotFound, source, err)
}

func decodeFailed(source string, err error) error {
	return NewDataError(DecodeError, source, err)
}
