package core

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/shlex"
	"github.com/hashicorp/go-multierror"

	"github.com/forgebuild/forge/internal/logging"
)

var log = logging.Log

// RunHookCommands runs each command string in commands, tokenized with
// shlex, with env exported into the child's environment. label identifies
// the phase for logging ("pre-build", "post-generate", ...).
//
// Failures are collected into a single *multierror.Error and returned rather
// than aborting after the first one: hook failures are reported together as
// warnings, not treated as fatal on first sight. RunHookCommands itself
// never decides fatality; a caller that treats a hook failure as fatal must
// check the returned error itself.
func RunHookCommands(commands []string, dir string, env HookEnv, label string) error {
	if len(commands) == 0 {
		return nil
	}
	log.Info("Running %s commands...", label)
	var result *multierror.Error
	for _, command := range commands {
		if err := runOneHookCommand(command, dir, env); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func runOneHookCommand(command, dir string, env HookEnv) error {
	parts, err := shlex.Split(command)
	if err != nil || len(parts) == 0 {
		return &BuildCommandFailed{Command: command, Output: fmt.Sprintf("could not tokenize command: %v", err)}
	}
	cmd := ExecCommand(parts[0], parts[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env.ToSlice()...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		status := -1
		if exitErr, ok := asExitError(err); ok {
			status = exitErr
		}
		return &BuildCommandFailed{Command: command, Status: status, Output: out.String()}
	}
	return nil
}
