package fs

import (
	"os"
	"path/filepath"

	"github.com/karrick/godirwalk"
)

// Walk implements an equivalent to filepath.Walk, but backed by godirwalk for
// performance on large directory trees (recursive copyFiles directory
// entries, recursive DirEntries listings such as the source scan).
func Walk(rootPath string, callback func(name string, isDir bool) error) error {
	if info, err := os.Lstat(rootPath); err != nil {
		return err
	} else if !info.IsDir() {
		return callback(rootPath, false)
	}
	return godirwalk.Walk(rootPath, &godirwalk.Options{
		Callback: func(name string, info *godirwalk.Dirent) error {
			return callback(name, info.IsDir())
		},
		Unsorted: true,
	})
}

// DirEntries returns every file (optionally recursive) under root, relative
// to root, for copyFiles glob-pattern matching against.
func DirEntries(root string, recursive bool) ([]string, error) {
	var out []string
	if recursive {
		err := Walk(root, func(name string, isDir bool) error {
			if isDir {
				return nil
			}
			rel, err := filepath.Rel(root, name)
			if err != nil {
				return err
			}
			out = append(out, rel)
			return nil
		})
		return out, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out, nil
}
