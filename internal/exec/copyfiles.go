package exec

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/fs"
)

// runCopyFiles implements the copyFiles post-build step: entries containing
// glob metacharacters are matched against their containing directory's
// entries and each match is linked out individually; plain entries are
// linked (recursively, if a directory) out whole. Every failure is
// collected and returned as a single warning-level error rather than
// aborting the remaining entries.
func (e *Executor) runCopyFiles(target *core.TargetInfo) error {
	bs := target.BuildSettings
	if len(bs.CopyFiles) == 0 {
		return nil
	}
	var failures []string
	for _, entry := range bs.CopyFiles {
		if err := copyOneEntry(entry, bs.TargetPath); err != nil {
			failures = append(failures, entry+": "+err.Error())
		}
	}
	if len(failures) > 0 {
		return &core.IOError{Path: target.Name(), Err: errors.New(strings.Join(failures, "; "))}
	}
	return nil
}

func isGlobPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func copyOneEntry(entry, targetPath string) error {
	if !isGlobPattern(entry) {
		dest := filepath.Join(targetPath, filepath.Base(entry))
		return fs.RecursiveLinkOrCopy(entry, dest)
	}

	dir, pattern := filepath.Split(entry)
	if dir == "" {
		dir = "."
	}
	names, err := fs.DirEntries(dir, false)
	if err != nil {
		return err
	}
	var last error
	matched := 0
	for _, name := range names {
		ok, err := filepath.Match(pattern, name)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		matched++
		dest := filepath.Join(targetPath, name)
		if err := fs.LinkOrCopyFile(filepath.Join(dir, name), dest); err != nil {
			last = err
		}
	}
	if matched == 0 {
		log.Warning("copyFiles pattern %s matched nothing", entry)
	}
	return last
}
