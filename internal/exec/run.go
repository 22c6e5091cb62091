package exec

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/watch"
)

// Run builds the root target and, when settings.Run is set, spawns it and
// either waits for it to exit or, when settings.Watch is set, hands off to
// the watch/rebuild loop. rootName is fixed across rebuilds
// (the package name never changes), but the target map is not: each rebuild
// re-plans from scratch through replan, since a
// source edit can change the graph itself, not just an artifact's content.
func Run(ctx context.Context, rootName string, replan func() (map[string]*core.TargetInfo, error), e *Executor, inputFiles func(map[string]*core.TargetInfo, string) []string) error {
	build := func(ctx context.Context) error {
		targets, err := replan()
		if err != nil {
			return err
		}
		return e.Build(ctx, targets, rootName)
	}

	targets, err := replan()
	if err != nil {
		return err
	}
	root := targets[rootName]

	if !e.settings.Run {
		return build(ctx)
	}

	spawn := func(ctx context.Context) (*exec.Cmd, error) {
		targets, err := replan()
		if err != nil {
			return nil, err
		}
		return spawnTarget(ctx, targets[rootName], e.settings.RunArgs)
	}

	if !e.settings.Watch {
		if err := build(ctx); err != nil {
			return err
		}
		cmd, err := spawnTarget(ctx, root, e.settings.RunArgs)
		if err != nil {
			return err
		}
		if err := cmd.Wait(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				return &core.RunFailed{Target: root.Name(), Status: exitErr.ExitCode()}
			}
			return err
		}
		return nil
	}

	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Close()
	for _, f := range inputFiles(targets, rootName) {
		if err := w.AddFile(f); err != nil {
			return err
		}
	}

	return watch.Loop(ctx, w, build, spawn)
}

// spawnTarget starts the built artifact, running it from its configured
// WorkingDirectory (defaulting to the artifact's own directory) with its
// configured run arguments.
func spawnTarget(ctx context.Context, target *core.TargetInfo, runArgs []string) (*exec.Cmd, error) {
	bs := target.BuildSettings
	path := artifactPath(bs)
	cmd := core.ExecCommand(path, runArgs...)
	if bs.WorkingDirectory != "" {
		cmd.Dir = bs.WorkingDirectory
	} else {
		cmd.Dir = filepath.Dir(path)
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	if err := cmd.Start(); err != nil {
		return nil, &core.IOError{Path: path, Err: err}
	}
	return cmd, nil
}
