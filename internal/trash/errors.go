package trash

import (
	"errors"
	"fmt"
)

// Kinds of failure an operation reports. Every *Error unwraps to exactly
// one of these, so callers can use errors.Is.
var (
	// ErrNotFound is returned when a path does not exist or an id is not in the store
	ErrNotFound = errors.New("not found")

	// ErrProtected is returned when a path may not be moved to the trash
	ErrProtected = errors.New("protected path")

	// ErrConflict is returned when a restore target already exists
	ErrConflict = errors.New("restore target already exists")

	// ErrMissingContent is returned when an entry's trash copy is gone
	ErrMissingContent = errors.New("trash content missing")

	// ErrIoFailure is returned when a filesystem operation fails
	ErrIoFailure = errors.New("filesystem operation failed")

	// ErrCorrupt is returned when an entry's delete time cannot be parsed
	ErrCorrupt = errors.New("corrupt entry")

	// ErrCanceled is returned when a purge was not confirmed
	ErrCanceled = errors.New("canceled")
)

// Error wraps a failure with the operation and the path or id it concerns
type Error struct {
	// Op is the operation that failed (e.g., "delete", "restore", "empty")
	Op string

	// Path is a filesystem path for delete, an entry id otherwise
	Path string

	// Kind is one of the sentinel errors above
	Kind error

	// Err is the underlying error, if any
	Err error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying error
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(op, path string, kind, err error) error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

func ioError(op, path string, format string, args ...any) error {
	return newError(op, path, ErrIoFailure, fmt.Errorf(format, args...))
}

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsProtected returns true if the error is ErrProtected
func IsProtected(err error) bool {
	return errors.Is(err, ErrProtected)
}

// IsConflict returns true if the error is ErrConflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
