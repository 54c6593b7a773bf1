// Package history persists the trash metadata: a JSON object mapping each
// entry id to its recovery record.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/babarot/saferm/internal/core/atomic"
	"github.com/babarot/saferm/internal/core/types"
)

// History reads and writes the metadata file at a fixed path
type History struct {
	path string
}

// New returns a History for the metadata file at path
func New(path string) *History {
	return &History{path: path}
}

// Path returns the metadata file location
func (h *History) Path() string {
	return h.path
}

// ErrCorrupt is returned by Load when the metadata file cannot be read or
// decoded
var ErrCorrupt = errors.New("metadata corrupted")

// CorruptPath returns where Load moves a metadata file it could not read
func (h *History) CorruptPath() string {
	return h.path + ".corrupt"
}

// Load reads the store. A missing file yields an empty store. An unreadable
// or malformed one also yields an empty store, along with an error wrapping
// ErrCorrupt; the bad file is moved to CorruptPath first so the next Save
// does not destroy it.
func (h *History) Load() (types.Store, error) {
	store, err := h.load()
	if err != nil {
		slog.Warn("metadata unreadable, starting with an empty trash record", "path", h.path, "error", err)
		if mvErr := os.Rename(h.path, h.CorruptPath()); mvErr != nil {
			slog.Error("failed to keep corrupt metadata", "path", h.path, "error", mvErr)
			return types.Store{}, fmt.Errorf("%w, reset to empty: %v", ErrCorrupt, err)
		}
		return types.Store{}, fmt.Errorf("%w, reset to empty (old file kept at %s): %v", ErrCorrupt, h.CorruptPath(), err)
	}
	slog.Debug("metadata loaded", "path", h.path, "entries", len(store))
	return store, nil
}

func (h *History) load() (types.Store, error) {
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.Store{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var store types.Store
	if err := json.NewDecoder(f).Decode(&store); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if store == nil {
		// the file held "null"
		store = types.Store{}
	}
	return store, nil
}

// Save replaces the metadata file with the full contents of store
func (h *History) Save(store types.Store) error {
	if store == nil {
		store = types.Store{}
	}

	w, err := atomic.NewWriter(h.path)
	if err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	defer w.Cleanup()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(store); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	if err := w.Commit(); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	slog.Debug("metadata saved", "path", h.path, "entries", len(store))
	return nil
}
