// Package fs provides filesystem helpers shared by the executor and watch
// loop: directory creation, existence checks, hard-link-or-copy semantics
// and glob-aware directory walking.
package fs

import (
	"os"
	"path/filepath"

	"github.com/forgebuild/forge/internal/logging"
)

var log = logging.Log

// DirPermissions are the default permission bits applied to created directories.
const DirPermissions = os.ModeDir | 0775

// EnsureDir ensures the directory of the given file path has been created.
func EnsureDir(filename string) error {
	return os.MkdirAll(filepath.Dir(filename), DirPermissions)
}

// PathExists returns true if the given path exists, as a file or directory.
func PathExists(filename string) bool {
	_, err := os.Lstat(filename)
	return err == nil
}

// FileExists returns true if the given path exists and is a regular file.
func FileExists(filename string) bool {
	info, err := os.Lstat(filename)
	return err == nil && !info.IsDir()
}

// IsDir returns true if the given path exists and is a directory.
func IsDir(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && info.IsDir()
}

// RemoveIfExists removes path, returning nil if it didn't exist in the first place.
func RemoveIfExists(path string) error {
	if err := os.RemoveAll(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
