package fs

import (
	"io"
	"os"
	"path/filepath"
)

// LinkOrCopyFile hardlinks from to to, falling back to a byte copy if the
// link fails (e.g. across filesystems). A symlink at from is recreated as a
// symlink with the same target at to.
func LinkOrCopyFile(from, to string) error {
	if err := EnsureDir(to); err != nil {
		return err
	}
	info, err := os.Lstat(from)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		dest, err := os.Readlink(from)
		if err != nil {
			return err
		}
		os.Remove(to)
		return os.Symlink(dest, to)
	}
	os.Remove(to)
	if err := os.Link(from, to); err == nil {
		return nil
	}
	return CopyFile(from, to, info.Mode())
}

// CopyFile copies the contents of from to to, creating to with the given mode.
func CopyFile(from, to string, mode os.FileMode) error {
	if err := EnsureDir(to); err != nil {
		return err
	}
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// RecursiveLinkOrCopy hardlinks (falling back to copying) either a single
// file or an entire directory tree from from to to.
func RecursiveLinkOrCopy(from, to string) error {
	info, err := os.Lstat(from)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return LinkOrCopyFile(from, to)
	}
	return Walk(from, func(name string, isDir bool) error {
		rel, err := filepath.Rel(from, name)
		if err != nil {
			return err
		}
		dest := filepath.Join(to, rel)
		if isDir {
			return os.MkdirAll(dest, DirPermissions)
		}
		return LinkOrCopyFile(name, dest)
	})
}
