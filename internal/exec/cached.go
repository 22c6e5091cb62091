package exec

import (
	"context"
	"os"
	"path/filepath"

	"github.com/forgebuild/forge/internal/buildid"
	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/fs"
	"github.com/forgebuild/forge/internal/uptodate"
)

// CacheDirName is the directory, relative to a package's own path, that
// content-keyed build-ID directories live under.
// Kept under the source package rather than a central user cache; see
// DESIGN.md for the Open Question this decision resolves.
const CacheDirName = ".forge/build"

// cachedBuild implements the default build strategy: compute the build-ID,
// check if the cached artifact is current, and either hard-link it out or
// build fresh into the build-ID-keyed directory.
func (e *Executor) cachedBuild(ctx context.Context, target *core.TargetInfo) error {
	id := buildid.Compute(e.settings, target.BuildSettings)
	pkg := target.Pack
	cacheDir := filepath.Join(pkg.Path(), CacheDirName, id)
	artifact := filepath.Join(cacheDir, target.BuildSettings.TargetName)

	inputs := e.upToDateInputs(target)

	if !e.settings.Force {
		current, err := uptodate.IsCurrent(artifact, inputs)
		if err != nil {
			return &core.IOError{Path: artifact, Err: err}
		}
		if current {
			log.Info("%s is up to date", target.Name())
			target.Cached = true
			return e.linkArtifactOut(artifact, target)
		}
	}

	if !writableDir(pkg.Path()) || e.settings.TempBuild {
		return e.directBuildInto(ctx, target, tempBuildDir())
	}

	return e.buildFreshInto(ctx, target, cacheDir)
}

// upToDateInputs gathers every file whose mtime the up-to-date check
// compares against the cached artifact: sources, imports, string imports,
// the package's own recipe file, any additional dep-files recorded for
// static-library link dependencies, and (for the root target) the
// resolver's selected-versions manifest.
func (e *Executor) upToDateInputs(target *core.TargetInfo) []string {
	inputs := append([]string(nil), target.BuildSettings.AllInputFiles()...)
	for _, pkg := range target.Packages {
		inputs = append(inputs, pkg.RecipePath())
	}
	inputs = append(inputs, e.additionalDepFiles[target.Name()]...)
	if e.rootPack != nil && e.selectedVersionsManifest != "" && target.Pack.Name() == e.rootPack.Name() {
		inputs = append(inputs, e.selectedVersionsManifest)
	}
	return inputs
}

// buildFreshInto runs pre-build commands, compiles into dir (overriding the
// target's TargetPath), and hard-links the resulting artifact out to the
// user's configured TargetPath. Post-build commands only run here, never on
// a cache hit.
func (e *Executor) buildFreshInto(ctx context.Context, target *core.TargetInfo, dir string) error {
	if err := os.MkdirAll(dir, fs.DirPermissions); err != nil {
		return &core.IOError{Path: dir, Err: err}
	}
	settings := target.BuildSettings.Clone()
	originalPath := settings.TargetPath
	settings.TargetPath = dir

	env := core.BuildHookEnv(e.settings, target, e.rootPack, nil)
	if err := core.RunHookCommands(settings.PreBuildCommands, target.Pack.Path(), env, "pre-build"); err != nil {
		log.Warning("Pre-build commands for %s reported errors: %s", target.Name(), err)
	}

	if err := e.compileAndLink(ctx, target, settings); err != nil {
		return err
	}

	target.Cached = false
	target.BuildSettings.TargetPath = originalPath
	if err := e.linkArtifactOut(artifactPath(settings), target); err != nil {
		return err
	}

	if err := core.RunHookCommands(settings.PostBuildCommands, target.Pack.Path(), env, "post-build"); err != nil {
		log.Warning("Post-build commands for %s reported errors: %s", target.Name(), err)
	}
	return nil
}

// linkArtifactOut hard-links (falling back to a copy) the built artifact
// into the target's user-configured TargetPath.
func (e *Executor) linkArtifactOut(from string, target *core.TargetInfo) error {
	to := artifactPath(target.BuildSettings)
	if from == to {
		return nil
	}
	if err := fs.LinkOrCopyFile(from, to); err != nil {
		return &core.IOError{Path: to, Err: err}
	}
	return nil
}

// writableDir reports whether dir can be written to (exists and we can
// create a file in it, or it's absent but its parent can hold it).
func writableDir(dir string) bool {
	probe := filepath.Join(dir, ".forge-write-probe")
	if err := os.MkdirAll(dir, fs.DirPermissions); err != nil {
		return false
	}
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}
