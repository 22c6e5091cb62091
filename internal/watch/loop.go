package watch

import (
	"context"
	"os/exec"

	"github.com/forgebuild/forge/internal/core"
)

// BuildFunc runs a full build pass and reports whether it succeeded.
// It is supplied by the caller (internal/exec.Build) so this package doesn't
// need to import the executor and create a cycle.
type BuildFunc func(ctx context.Context) error

// SpawnFunc starts the target executable and returns the running command.
// Supplied by the caller since only it knows the target's working directory
// and run arguments.
type SpawnFunc func(ctx context.Context) (*exec.Cmd, error)

// Loop implements the build/spawn/observe cycle: on a source change, kill
// the child and rebuild; on the child's own clean exit, return its status.
// A build failure during a rebuild is recoverable: log it, wait for the next
// change, and try again. Only a child that exits on its own terminates the loop.
func Loop(ctx context.Context, w *Watcher, build BuildFunc, spawn SpawnFunc) error {
	for {
		if err := build(ctx); err != nil {
			log.Error("Build failed: %s", err)
			if err := w.Wait(ctx); err != nil {
				return err
			}
			w.ReadChanges()
			continue
		}

		cmd, err := spawn(ctx)
		if err != nil {
			return err
		}

		childExited := make(chan struct{})
		var childErr error
		go func() {
			childErr = cmd.Wait()
			close(childExited)
		}()

		changed, waitErr := w.WaitChild(ctx, childExited)
		if waitErr != nil {
			return waitErr
		}
		if !changed {
			// The child exited on its own; that's the terminal path.
			return childErr
		}

		log.Notice("Killing running process %d", cmd.Process.Pid)
		core.KillProcess(cmd)
		<-childExited // reap

		Debounce()
		w.ReadChanges()
	}
}
