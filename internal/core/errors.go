package core

import (
	"fmt"
	"strings"
)

// PlanningError indicates a malformed dependency graph: a main package with
// a non-binary target type, or a referenced dependency missing without the
// optional flag set.
type PlanningError struct {
	Package string
	Reason  string
}

func (e *PlanningError) Error() string {
	return fmt.Sprintf("cannot plan %s: %s", e.Package, e.Reason)
}

// CompileFailed indicates the compiler returned a non-zero exit status.
type CompileFailed struct {
	Target string
	Status int
	Output string
}

func (e *CompileFailed) Error() string {
	return fmt.Sprintf("compile of %s failed with status %d:\n%s", e.Target, e.Status, e.Output)
}

// LinkFailed indicates the linker returned a non-zero exit status.
type LinkFailed struct {
	Target string
	Status int
	Output string
}

func (e *LinkFailed) Error() string {
	return fmt.Sprintf("link of %s failed with status %d:\n%s", e.Target, e.Status, e.Output)
}

// IOError wraps a filesystem access failure against a source/import/target file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("io error on %s: %s", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// BuildCommandFailed indicates a user hook command (pre/post build/generate) returned non-zero.
type BuildCommandFailed struct {
	Command string
	Status  int
	Output  string
}

func (e *BuildCommandFailed) Error() string {
	return fmt.Sprintf("hook command %q failed with status %d:\n%s", e.Command, e.Status, e.Output)
}

// RunFailed indicates the built executable returned a non-zero exit status.
type RunFailed struct {
	Target string
	Status int
}

func (e *RunFailed) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Target, e.Status)
}

// WatcherError indicates a platform-specific watch-setup failure, e.g. the
// inotify watch limit. Message should point the user at an actionable fix.
type WatcherError struct {
	Path string
	Err  error
}

func (e *WatcherError) Error() string {
	msg := fmt.Sprintf("failed to watch %s: %s", e.Path, e.Err)
	if isWatchLimitError(e.Err) {
		msg += "; try raising fs.inotify.max_user_watches"
	}
	return msg
}

func (e *WatcherError) Unwrap() error { return e.Err }

// isWatchLimitError reports whether err looks like an inotify ENOSPC watch-limit failure.
func isWatchLimitError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "no space left on device") || strings.Contains(err.Error(), "too many open files")
}
