package core

import "os/exec"

// asExitError extracts the process exit code from err if it is an
// *exec.ExitError, for reporting in BuildCommandFailed.
func asExitError(err error) (int, bool) {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), true
	}
	return 0, false
}
