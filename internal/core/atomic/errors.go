package atomic

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound indicates that the source path does not exist
	ErrSourceNotFound = errors.New("source not found")

	// ErrDestinationExists indicates that the destination path already exists
	ErrDestinationExists = errors.New("destination already exists")

	// ErrInvalidPath indicates an empty source or destination
	ErrInvalidPath = errors.New("invalid path specified")

	// ErrWriterFinished indicates a write or commit on a closed Writer
	ErrWriterFinished = errors.New("writer already finished")

	// ErrPartialRemoval indicates the source was partly removed and the
	// copy at the destination was kept
	ErrPartialRemoval = errors.New("source partially removed, copy kept")
)

// MoveError represents an error that occurred during a relocation
type MoveError struct {
	Op  string // copy, remove_source, rollback
	Src string
	Dst string
	Err error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s %q to %q: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// CleanupError represents a failure to remove a leftover copy
type CleanupError struct {
	Path string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup failed for %q: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// RolledBack reports whether err came from a relocation that put the
// filesystem back the way it was
func RolledBack(err error) bool {
	var me *MoveError
	if !errors.As(err, &me) {
		return false
	}
	var ce *CleanupError
	return !errors.As(err, &ce) && !errors.Is(err, ErrPartialRemoval)
}
