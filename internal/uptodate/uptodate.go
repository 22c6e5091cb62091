// Package uptodate decides whether a cached artifact is newer than all of
// its input files.
package uptodate

import (
	"os"
	"time"

	"github.com/forgebuild/forge/internal/logging"
)

var log = logging.Log

// IsCurrent reports whether artifactPath is up-to-date against inputs.
//
// Rules, in order:
//  1. missing artifact => not current
//  2. any missing input => not current (forces a rebuild that will cleanly error)
//  3. any input newer than the artifact => not current
//  4. any input with a future mtime => warn, but don't force a rebuild
//  5. otherwise => current
func IsCurrent(artifactPath string, inputs []string) (bool, error) {
	artifactInfo, err := os.Stat(artifactPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	artifactTime := artifactInfo.ModTime()
	now := time.Now()
	current := true
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			if os.IsNotExist(err) {
				log.Debug("Input %s doesn't exist; forcing rebuild", input)
				return false, nil
			}
			return false, err
		}
		if info.ModTime().After(now) {
			log.Warning("Input %s has a modification time in the future; not forcing a rebuild, but this may hide a clock-skew bug", input)
			continue
		}
		if info.ModTime().After(artifactTime) {
			log.Debug("Input %s is newer than %s; rebuilding", input, artifactPath)
			current = false
		}
	}
	return current, nil
}
