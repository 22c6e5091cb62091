package exec

import (
	"context"
	"os"
	"path/filepath"

	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/fs"
)

// directBuild implements the "direct build" strategy: bypass the
// content-addressed cache entirely and build straight into the target's
// configured TargetPath, or into a tracked temp directory when TempBuild is set.
func (e *Executor) directBuild(ctx context.Context, target *core.TargetInfo) error {
	dir := target.BuildSettings.TargetPath
	if e.settings.TempBuild {
		dir = tempBuildDir()
		e.trackTempDir(dir)
	}
	return e.directBuildInto(ctx, target, dir)
}

// directBuildInto compiles target into dir without touching the cache,
// running pre/post-build commands around the compile exactly as a fresh
// cache build would, but leaving TargetPath overridden to dir permanently
// (the caller is responsible for tracking dir for cleanup if temporary).
func (e *Executor) directBuildInto(ctx context.Context, target *core.TargetInfo, dir string) error {
	if err := os.MkdirAll(dir, fs.DirPermissions); err != nil {
		return &core.IOError{Path: dir, Err: err}
	}
	settings := target.BuildSettings.Clone()
	settings.TargetPath = dir

	env := core.BuildHookEnv(e.settings, target, e.rootPack, nil)
	if err := core.RunHookCommands(settings.PreBuildCommands, target.Pack.Path(), env, "pre-build"); err != nil {
		log.Warning("Pre-build commands for %s reported errors: %s", target.Name(), err)
	}

	if err := e.compileAndLink(ctx, target, settings); err != nil {
		return err
	}
	target.Cached = false
	target.BuildSettings.TargetPath = dir

	if err := core.RunHookCommands(settings.PostBuildCommands, target.Pack.Path(), env, "post-build"); err != nil {
		log.Warning("Post-build commands for %s reported errors: %s", target.Name(), err)
	}
	return nil
}

// tempBuildDir returns a fresh temp directory for a temp/direct build. Named
// per-call rather than once globally so concurrent targets never collide.
func tempBuildDir() string {
	dir, err := os.MkdirTemp("", "forge-build-")
	if err != nil {
		return filepath.Join(os.TempDir(), "forge-build-fallback")
	}
	return dir
}
