package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IsUnsafePath reports whether path must never be removed regardless of
// force: ".", ".." and the filesystem root.
func IsUnsafePath(path string) bool {
	// look at the argument as typed, before Clean folds "foo/.." away
	base := filepath.Base(path)
	if base == "." || base == ".." {
		return true
	}

	if filepath.Clean(path) == "/" {
		return true
	}

	return strings.HasPrefix(path, "//")
}

// IsWithin reports whether path equals dir or lies beneath it.
// Both are compared component-wise, so "/binary" is not within "/bin".
func IsWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// Exists reports whether anything, including a dangling symlink, is at path
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Remove deletes path according to its own on-disk type: directories are
// removed recursively, everything else is unlinked.
func Remove(path string) error {
	fi, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// DirSize returns the total size in bytes of the regular files under path
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	return size, err
}

// Tree maps every path under root, relative to it, to its entry type.
// Symlinks are recorded, not followed.
func Tree(root string) (map[string]fs.FileMode, error) {
	tree := make(map[string]fs.FileMode)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		tree[rel] = d.Type()
		return nil
	})
	return tree, err
}
