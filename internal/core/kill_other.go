//go:build !linux

package core

import "os/exec"

// KillProcess terminates cmd's process.
func KillProcess(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	cmd.Process.Kill()
}
