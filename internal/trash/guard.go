package trash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/babarot/saferm/internal/utils/fs"
)

// ProtectedPaths are system locations refused unless force is given.
// Subpaths are protected too, matched by path component.
var ProtectedPaths = []string{
	"/bin",
	"/sbin",
	"/etc",
	"/usr",
	"/lib",
	"/lib64",
	"/root",
	"/boot",
}

// Guard decides whether a path may be moved to the trash
type Guard struct {
	protected []string
	// reserved paths are refused even with force, along with anything
	// inside them and any directory containing them
	reserved []string
}

// NewGuard returns a Guard over ProtectedPaths that additionally refuses
// the reserved paths regardless of force
func NewGuard(reserved ...string) Guard {
	return Guard{
		protected: ProtectedPaths,
		reserved:  reserved,
	}
}

// Check resolves path to a canonical absolute path and reports whether it
// names a directory. A trailing symlink is not followed: the link itself
// is what gets trashed.
func (g Guard) Check(path string, force bool) (string, bool, error) {
	if fs.IsUnsafePath(path) {
		return "", false, newError("delete", path, ErrProtected, errors.New("refusing to remove '.', '..' or '/'"))
	}

	abs, err := canonicalize(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, newError("delete", path, ErrNotFound, nil)
		}
		return "", false, newError("delete", path, ErrIoFailure, err)
	}

	fi, err := os.Lstat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, newError("delete", path, ErrNotFound, nil)
		}
		return "", false, newError("delete", path, ErrIoFailure, err)
	}

	if abs == string(filepath.Separator) {
		return "", false, newError("delete", abs, ErrProtected, errors.New("refusing to remove '/'"))
	}

	for _, r := range g.reserved {
		if fs.IsWithin(abs, r) || fs.IsWithin(r, abs) {
			return "", false, newError("delete", abs, ErrProtected, errors.New("path overlaps the trash"))
		}
	}

	if !force {
		for _, p := range g.protected {
			if fs.IsWithin(abs, p) {
				return "", false, newError("delete", abs, ErrProtected, errors.New("system path, use --force to override"))
			}
		}
		if fi.IsDir() {
			if mounts := mountsUnder(abs); len(mounts) > 0 {
				return "", false, newError("delete", abs, ErrProtected,
					fmt.Errorf("contains mount point %s, use --force to override", mounts[0]))
			}
		}
	}

	return abs, fi.IsDir(), nil
}

// canonicalize makes path absolute and resolves symlinks in its parent
// directories, keeping the final element as given
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir, base := filepath.Split(abs)
	if base == "" {
		return abs, nil
	}
	dir, err = filepath.EvalSymlinks(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, base), nil
}
