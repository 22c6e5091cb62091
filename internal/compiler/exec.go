package compiler

import (
	"os/exec"
)

// execCommand is a seam so tests can stub out subprocess creation.
var execCommand = exec.Command

// exitStatus extracts the process exit code from err, defaulting to -1 for
// errors that aren't a process exit (e.g. the binary wasn't found).
func exitStatus(err error) int {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return -1
}
