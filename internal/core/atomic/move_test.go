package atomic

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func createTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(b)
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.txt")
	dst := filepath.Join(dir, "trash", "nested", "source.txt_1")
	createTestFile(t, src, "test content")

	if err := Move(src, dst); err != nil {
		t.Fatalf("Move() unexpected error: %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("Source file should not exist after move")
	}
	if got := readFile(t, dst); got != "test content" {
		t.Errorf("Destination content = %q, want %q", got, "test content")
	}
}

func TestMoveDirectory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "proj")
	createTestFile(t, filepath.Join(src, "a.txt"), "a")
	createTestFile(t, filepath.Join(src, "sub", "b.txt"), "b")
	if err := os.Symlink("a.txt", filepath.Join(src, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	dst := filepath.Join(dir, "trash", "proj_1")
	if err := Move(src, dst); err != nil {
		t.Fatalf("Move() unexpected error: %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("Source directory should not exist after move")
	}
	if got := readFile(t, filepath.Join(dst, "sub", "b.txt")); got != "b" {
		t.Errorf("sub/b.txt = %q, want %q", got, "b")
	}
	target, err := os.Readlink(filepath.Join(dst, "link"))
	if err != nil {
		t.Fatalf("link should be copied as a symlink: %v", err)
	}
	if target != "a.txt" {
		t.Errorf("link target = %q, want %q", target, "a.txt")
	}
}

func TestMoveErrors(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.txt")
	createTestFile(t, existing, "x")
	src := filepath.Join(dir, "src.txt")
	createTestFile(t, src, "y")

	tests := []struct {
		name string
		src  string
		dst  string
		want error
	}{
		{name: "empty source", src: "", dst: existing, want: ErrInvalidPath},
		{name: "missing source", src: filepath.Join(dir, "nope"), dst: filepath.Join(dir, "out"), want: ErrSourceNotFound},
		{name: "destination exists", src: src, dst: existing, want: ErrDestinationExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Move(tt.src, tt.dst)
			if !errors.Is(err, tt.want) {
				t.Errorf("Move() error = %v, want %v", err, tt.want)
			}
		})
	}

	if got := readFile(t, src); got != "y" {
		t.Errorf("source should be untouched, got %q", got)
	}
}

func TestMoveRollsBackWhenSourceCannotBeRemoved(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := t.TempDir()
	parent := filepath.Join(dir, "locked")
	src := filepath.Join(parent, "keep.txt")
	createTestFile(t, src, "precious")
	if err := os.Chmod(parent, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(parent, 0755) })

	dst := filepath.Join(dir, "trash", "keep.txt_1")
	err := Move(src, dst)
	if err == nil {
		t.Fatal("Move() expected error, got nil")
	}

	var me *MoveError
	if !errors.As(err, &me) || me.Op != "remove_source" {
		t.Errorf("Move() error = %v, want remove_source MoveError", err)
	}
	if !RolledBack(err) {
		t.Errorf("RolledBack(%v) = false, want true", err)
	}
	if got := readFile(t, src); got != "precious" {
		t.Errorf("source content = %q, want %q", got, "precious")
	}
	if _, err := os.Lstat(dst); !os.IsNotExist(err) {
		t.Error("trash copy should be removed after rollback")
	}
}

var errRemoveDenied = errors.New("operation not permitted")

func TestMoveUsingRollsBack(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "proj")
	createTestFile(t, filepath.Join(src, "a.txt"), "a")
	createTestFile(t, filepath.Join(src, "sub", "b.txt"), "b")
	dst := filepath.Join(dir, "trash", "proj_1")

	err := MoveUsing(src, dst, func(string) error { return errRemoveDenied })
	if !errors.Is(err, errRemoveDenied) {
		t.Fatalf("MoveUsing() error = %v, want %v", err, errRemoveDenied)
	}
	if !RolledBack(err) {
		t.Errorf("RolledBack(%v) = false, want true", err)
	}
	if _, ok := KeptCopy(err); ok {
		t.Error("KeptCopy() should report nothing after a rollback")
	}
	if got := readFile(t, filepath.Join(src, "sub", "b.txt")); got != "b" {
		t.Errorf("source sub/b.txt = %q, want %q", got, "b")
	}
	if _, err := os.Lstat(dst); !os.IsNotExist(err) {
		t.Error("trash copy should be removed after rollback")
	}
}

func TestMoveUsingKeepsCopyAfterPartialRemoval(t *testing.T) {
	// each of these leaves the byte total of the tree unchanged
	tests := []struct {
		name    string
		removed string
	}{
		{name: "empty file", removed: "a_empty"},
		{name: "empty directory", removed: "b_dir"},
		{name: "symlink", removed: "c_link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "proj")
			createTestFile(t, filepath.Join(src, "a_empty"), "")
			if err := os.Mkdir(filepath.Join(src, "b_dir"), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.Symlink("z.txt", filepath.Join(src, "c_link")); err != nil {
				t.Skipf("symlinks unsupported: %v", err)
			}
			createTestFile(t, filepath.Join(src, "z.txt"), "locked")
			dst := filepath.Join(dir, "trash", "proj_1")

			err := MoveUsing(src, dst, func(path string) error {
				if err := os.Remove(filepath.Join(path, tt.removed)); err != nil {
					t.Fatal(err)
				}
				return errRemoveDenied
			})
			if !errors.Is(err, ErrPartialRemoval) {
				t.Fatalf("MoveUsing() error = %v, want %v", err, ErrPartialRemoval)
			}
			if RolledBack(err) {
				t.Error("RolledBack() = true, want false")
			}
			kept, ok := KeptCopy(err)
			if !ok || kept != dst {
				t.Errorf("KeptCopy() = %q, %v, want %q", kept, ok, dst)
			}
			if _, err := os.Lstat(filepath.Join(dst, tt.removed)); err != nil {
				t.Errorf("kept copy lacks %s: %v", tt.removed, err)
			}
		})
	}
}

func TestCopyKeepsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	createTestFile(t, src, "a")
	dst := filepath.Join(dir, "out", "a.txt")

	if err := Copy(src, dst); err != nil {
		t.Fatalf("Copy() unexpected error: %v", err)
	}
	if got := readFile(t, src); got != "a" {
		t.Errorf("source = %q, want %q", got, "a")
	}
	if got := readFile(t, dst); got != "a" {
		t.Errorf("destination = %q, want %q", got, "a")
	}
}
