package atomic

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Writer buffers a file replacement in a temporary file next to the target.
// Nothing at the target changes until Commit renames the temporary file
// over it.
type Writer struct {
	dst      string
	file     *os.File
	finished bool
}

// NewWriter creates the temporary file for a later replacement of dst
func NewWriter(dst string) (*Writer, error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create parent directory: %w", err)
	}

	tempPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(dst), uuid.NewString()))
	f, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	return &Writer{dst: dst, file: f}, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.finished {
		return 0, ErrWriterFinished
	}
	return w.file.Write(p)
}

// Commit syncs the temporary file and renames it over the target
func (w *Writer) Commit() error {
	if w.finished {
		return ErrWriterFinished
	}
	w.finished = true

	if err := w.file.Sync(); err != nil {
		w.discard()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := w.file.Close(); err != nil {
		os.Remove(w.file.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(w.file.Name(), w.dst); err != nil {
		os.Remove(w.file.Name())
		return fmt.Errorf("rename to destination: %w", err)
	}
	return nil
}

// Cleanup drops the temporary file; it is a no-op after Commit
func (w *Writer) Cleanup() {
	if w.finished {
		return
	}
	w.finished = true
	w.discard()
}

func (w *Writer) discard() {
	w.file.Close()
	os.Remove(w.file.Name())
}
