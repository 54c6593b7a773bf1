package atomic

import (
	"errors"
	"log/slog"
	"maps"
	"os"
	"path/filepath"

	"github.com/babarot/saferm/internal/utils/fs"
	cp "github.com/otiai10/copy"
)

// copyOptions copies symlinks as links and keeps modes and times
var copyOptions = cp.Options{
	OnSymlink: func(string) cp.SymlinkAction {
		return cp.Shallow
	},
	OnDirExists: func(string, string) cp.DirExistsAction {
		return cp.Untouchable
	},
	PreserveTimes: true,
	Sync:          true,
}

// Copy copies src to dst, recursively for directories. dst must not exist;
// its parent directories are created. When the copy fails part way the
// partial dst is removed before returning.
func Copy(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}
	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return &MoveError{Op: "copy", Src: src, Dst: dst, Err: ErrSourceNotFound}
		}
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}
	if fs.Exists(dst) {
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: ErrDestinationExists}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return &MoveError{Op: "create_parent", Src: src, Dst: dst, Err: err}
	}

	if err := cp.Copy(src, dst, copyOptions); err != nil {
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return &MoveError{Op: "copy", Src: src, Dst: dst,
				Err: errors.Join(err, &CleanupError{Path: dst, Err: rmErr})}
		}
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}
	return nil
}

// Move relocates src to dst by copying and then removing src. Rename is
// never used so src and dst may live on different volumes. If src cannot be
// removed the copy at dst is deleted again, leaving the filesystem as it was.
func Move(src, dst string) error {
	return MoveUsing(src, dst, fs.Remove)
}

// MoveUsing is Move with remove deleting the source after the copy.
// When remove fails having taken part of src already, dst is the only
// complete copy; it is kept and the error wraps ErrPartialRemoval.
func MoveUsing(src, dst string, remove func(string) error) error {
	if err := Copy(src, dst); err != nil {
		return err
	}
	err := remove(src)
	if err == nil {
		return nil
	}
	slog.Warn("removing source failed, rolling back", "src", src, "dst", dst, "error", err)

	if fs.Exists(src) && sameTree(src, dst) {
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			return &MoveError{Op: "rollback", Src: src, Dst: dst,
				Err: errors.Join(err, &CleanupError{Path: dst, Err: rmErr})}
		}
		return &MoveError{Op: "remove_source", Src: src, Dst: dst, Err: err}
	}
	slog.Warn("source partially removed, keeping the copy", "src", src, "dst", dst)
	return &MoveError{Op: "remove_source", Src: src, Dst: dst, Err: errors.Join(err, ErrPartialRemoval)}
}

// KeptCopy returns the destination of a relocation whose source was
// partially removed, where the complete copy was left
func KeptCopy(err error) (string, bool) {
	var me *MoveError
	if !errors.As(err, &me) || !errors.Is(me.Err, ErrPartialRemoval) {
		return "", false
	}
	return me.Dst, true
}

// sameTree reports whether a and b hold the same relative paths with the
// same entry types. Any walk error counts as a difference.
func sameTree(a, b string) bool {
	ta, err := fs.Tree(a)
	if err != nil {
		return false
	}
	tb, err := fs.Tree(b)
	if err != nil {
		return false
	}
	return maps.Equal(ta, tb)
}
