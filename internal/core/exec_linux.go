//go:build linux

package core

import (
	"os/exec"
	"syscall"
)

// ExecCommand builds an *exec.Cmd for an external command. On Linux we set
// Pdeathsig so a hook or compiler subprocess doesn't outlive us if we die.
func ExecCommand(command string, args ...string) *exec.Cmd {
	cmd := exec.Command(command, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Pdeathsig: syscall.SIGHUP, Setpgid: true}
	return cmd
}
