package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/babarot/saferm/internal/core/atomic"
	"github.com/babarot/saferm/internal/core/types"
	"github.com/babarot/saferm/internal/utils/fs"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const purgeWorkers = 4

// Manager runs the trash lifecycle over a store and a trash root.
// It mutates the store in memory; persisting it is the caller's job.
type Manager struct {
	trashDir string
	store    types.Store
	guard    Guard
	now      func() time.Time
	// remove deletes a source after it was copied into the trash, and a
	// trash copy after it was restored
	remove func(string) error
}

type Option func(*Manager)

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithReserved refuses deletion of the given paths, e.g. the metadata file
func WithReserved(paths ...string) Option {
	return func(m *Manager) {
		for _, p := range paths {
			if c, err := canonicalize(p); err == nil {
				p = c
			}
			m.guard.reserved = append(m.guard.reserved, p)
		}
	}
}

// NewManager creates trashDir if needed and returns a Manager over store
func NewManager(trashDir string, store types.Store, opts ...Option) (*Manager, error) {
	if err := os.MkdirAll(trashDir, 0700); err != nil {
		return nil, fmt.Errorf("create trash directory: %w", err)
	}
	canonical, err := filepath.EvalSymlinks(trashDir)
	if err != nil {
		return nil, fmt.Errorf("resolve trash directory: %w", err)
	}
	if store == nil {
		store = types.Store{}
	}

	m := &Manager{
		trashDir: canonical,
		store:    store,
		guard:    NewGuard(canonical),
		now:      time.Now,
		remove:   fs.Remove,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// TrashDir returns the canonical trash root
func (m *Manager) TrashDir() string {
	return m.trashDir
}

// Store returns the store the manager mutates
func (m *Manager) Store() types.Store {
	return m.store
}

// Delete moves path into the trash and records it with a retention of
// days days
func (m *Manager) Delete(path string, days int, force bool) (types.Entry, error) {
	abs, isDir, err := m.guard.Check(path, force)
	if err != nil {
		return types.Entry{}, err
	}

	now := m.now().Truncate(time.Second)
	id := m.newID(filepath.Base(abs), now)
	trashPath := filepath.Join(m.trashDir, id)

	slog.Debug("moving to trash", "path", abs, "id", id, "is_dir", isDir)
	if err := atomic.MoveUsing(abs, trashPath, m.remove); err != nil {
		return types.Entry{}, newError("delete", abs, ErrIoFailure, err)
	}

	entry := types.Entry{
		ID:           id,
		OriginalPath: abs,
		TrashPath:    trashPath,
		DeleteTime:   now.Format(types.TimeFormat),
		ExpireDays:   days,
		IsDir:        isDir,
	}
	m.store[id] = entry
	slog.Info("moved to trash", "id", id, "from", abs, "expire_days", days)
	return entry, nil
}

// newID returns "{name}_{unix}" with a "_N" suffix when that id or its
// trash path is already taken
func (m *Manager) newID(name string, now time.Time) string {
	base := name + "_" + strconv.FormatInt(now.Unix(), 10)
	taken := func(id string) bool {
		_, inStore := m.store[id]
		return inStore || fs.Exists(filepath.Join(m.trashDir, id))
	}

	id := base
	for n := 1; taken(id); n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	return id
}

// Restore copies the entry's content back to its original path and drops
// the entry. With force an existing target is replaced.
func (m *Manager) Restore(id string, force bool) (types.Entry, error) {
	entry, ok := m.store.Get(id)
	if !ok {
		return types.Entry{}, newError("restore", id, ErrNotFound, nil)
	}

	if !fs.Exists(entry.TrashPath) {
		return entry, newError("restore", id, ErrMissingContent, fmt.Errorf("%s", entry.TrashPath))
	}

	if fs.Exists(entry.OriginalPath) {
		if !force {
			return entry, newError("restore", id, ErrConflict, fmt.Errorf("%s", entry.OriginalPath))
		}
		slog.Warn("replacing existing restore target", "id", id, "path", entry.OriginalPath)
		if err := fs.Remove(entry.OriginalPath); err != nil {
			return entry, ioError("restore", id, "remove existing target: %w", err)
		}
	}

	if err := atomic.Copy(entry.TrashPath, entry.OriginalPath); err != nil {
		return entry, newError("restore", id, ErrIoFailure, err)
	}

	// the content is back in place; a leftover trash copy must not keep
	// the entry alive
	delete(m.store, id)
	if !m.owns(entry.TrashPath) {
		slog.Warn("trash path outside the trash root, leaving it", "id", id, "path", entry.TrashPath)
	} else if err := m.remove(entry.TrashPath); err != nil {
		return entry, ioError("restore", id, "remove trash copy: %w", err)
	}

	slog.Info("restored", "id", id, "to", entry.OriginalPath)
	return entry, nil
}

// Empty permanently removes every entry and its content. Nothing happens
// unless confirmed is true. Content removal is best effort; the returned
// ids are every entry dropped from the store.
func (m *Manager) Empty(confirmed bool) ([]string, error) {
	if !confirmed {
		return nil, newError("empty", "", ErrCanceled, nil)
	}

	ids := lo.Keys(m.store)
	m.purgeAll(m.store.Entries())
	for _, id := range ids {
		delete(m.store, id)
	}
	slog.Info("trash emptied", "entries", len(ids))
	return ids, nil
}

// purge removes an entry's trash content, logging rather than returning
// failures
func (m *Manager) purge(entry types.Entry) {
	if !fs.Exists(entry.TrashPath) {
		return
	}
	if !m.owns(entry.TrashPath) {
		slog.Warn("trash path outside the trash root, leaving it", "id", entry.ID, "path", entry.TrashPath)
		return
	}
	if err := fs.Remove(entry.TrashPath); err != nil {
		slog.Warn("failed to remove trash content", "path", entry.TrashPath, "error", err)
	}
}

// purgeAll removes the content of entries concurrently. Trash paths of
// distinct entries never overlap, so the removals are independent.
func (m *Manager) purgeAll(entries []types.Entry) {
	var eg errgroup.Group
	eg.SetLimit(purgeWorkers)
	for _, e := range entries {
		eg.Go(func() error {
			m.purge(e)
			return nil
		})
	}
	_ = eg.Wait()
}

// owns reports whether path is strictly inside the trash root. Metadata is
// user-editable, so nothing outside it is ever removed on its behalf.
func (m *Manager) owns(path string) bool {
	if p, err := canonicalize(path); err == nil {
		path = p
	}
	return path != m.trashDir && fs.IsWithin(path, m.trashDir)
}
