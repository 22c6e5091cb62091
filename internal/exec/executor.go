// Package exec implements the build executor: it drives each
// target's compile/link through one of three strategies (cached, direct,
// rdmd), skipping targets whose cached outputs are already current, and
// hands off to the run/watch loop once the root target is built.
package exec

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/forgebuild/forge/internal/compiler"
	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/logging"
)

var log = logging.Log

// Executor drives the graph bottom-up, tracking every temp directory it
// creates so they can be cleaned up in reverse order on exit, whether normal
// or exceptional.
type Executor struct {
	driver   compiler.Driver
	settings core.GeneratorSettings

	rootPack                 core.Package
	selectedVersionsManifest string

	mu                 sync.Mutex
	tempDirs           []string
	built              map[string]bool
	additionalDepFiles map[string][]string
}

// New constructs an Executor bound to the given compiler driver and settings.
func New(driver compiler.Driver, settings core.GeneratorSettings) *Executor {
	return &Executor{
		driver:             driver,
		settings:           settings,
		built:              map[string]bool{},
		additionalDepFiles: map[string][]string{},
	}
}

// WithProject records the project's root package and selected-versions
// manifest path: the root package is exported to hook commands as
// DUB_ROOT_PACKAGE/DUB_ROOT_PACKAGE_DIR (distinct from a dependency's own
// DUB_PACKAGE/DUB_PACKAGE_DIR), and the manifest is added as an extra
// up-to-date input for the root target, since a resolver version-selection
// change must trigger a rebuild even when no source file changed.
func (e *Executor) WithProject(project core.Project) *Executor {
	e.rootPack = project.Root()
	e.selectedVersionsManifest = project.SelectedVersionsManifest()
	return e
}

// Build drives a full build pass: build(targets, settings).
func (e *Executor) Build(ctx context.Context, targets map[string]*core.TargetInfo, rootName string) (err error) {
	defer e.cleanup()

	root, ok := targets[rootName]
	if !ok {
		return &core.PlanningError{Package: rootName, Reason: "root target not present in plan"}
	}

	// RDMD override: rdmd mode or a static-library root skips dependency
	// builds entirely, since rdmd resolves its own dependencies and a static
	// library build has nothing to link.
	if e.settings.RDMD || root.BuildSettings.TargetType == core.StaticLibrary {
		return e.buildOne(ctx, targets, root)
	}

	return e.buildWithDeps(ctx, targets, rootName)
}

// buildWithDeps is a memoized DFS from root that builds every dependency
// before its parent.
func (e *Executor) buildWithDeps(ctx context.Context, targets map[string]*core.TargetInfo, name string) error {
	if e.built[name] {
		return nil
	}
	target, ok := targets[name]
	if !ok {
		return &core.PlanningError{Package: name, Reason: "dependency not present in plan"}
	}
	for _, depName := range target.LinkDependencies {
		if err := e.buildWithDeps(ctx, targets, depName); err != nil {
			return err
		}
	}
	if err := e.attachLinkInputs(targets, target); err != nil {
		return err
	}
	if err := e.buildOne(ctx, targets, target); err != nil {
		return err
	}
	e.built[name] = true
	return nil
}

// attachLinkInputs implements the "for every link-dependency" step: append
// each dependency's artifact path to this target's sources unless this
// target is itself a static library, in which case the dependency's
// artifact is recorded only as an mtime input (an "additional dep file"),
// not something the linker needs to see.
func (e *Executor) attachLinkInputs(targets map[string]*core.TargetInfo, target *core.TargetInfo) error {
	isStatic := target.BuildSettings.TargetType == core.StaticLibrary
	for _, depName := range target.LinkDependencies {
		dep, ok := targets[depName]
		if !ok {
			continue
		}
		artifact := filepath.Join(dep.BuildSettings.TargetPath, dep.BuildSettings.TargetName)
		if isStatic {
			e.additionalDepFiles[target.Name()] = append(e.additionalDepFiles[target.Name()], artifact)
		} else {
			core.AppendUnique(&target.BuildSettings.SourceFiles, []string{artifact})
		}
	}
	return nil
}

// buildOne dispatches a single target to cached/direct/rdmd, then runs its
// copyFiles step. Running the built target is left to Run.
func (e *Executor) buildOne(ctx context.Context, targets map[string]*core.TargetInfo, target *core.TargetInfo) error {
	var err error
	switch {
	case e.settings.RDMD:
		err = e.rdmdBuild(ctx, target)
	case e.settings.Direct || target.BuildSettings.Options.Has(core.SyntaxOnly):
		err = e.directBuild(ctx, target)
	default:
		err = e.cachedBuild(ctx, target)
	}
	if err != nil {
		return err
	}
	if err := e.runCopyFiles(target); err != nil {
		log.Warning("Some copy files for %s failed: %s", target.Name(), err)
	}
	return nil
}

func (e *Executor) cleanup() {
	e.mu.Lock()
	dirs := e.tempDirs
	e.tempDirs = nil
	e.mu.Unlock()
	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.RemoveAll(dirs[i]); err != nil {
			log.Warning("Failed to clean up temp dir %s: %s", dirs[i], err)
		}
	}
}

func (e *Executor) trackTempDir(dir string) {
	e.mu.Lock()
	e.tempDirs = append(e.tempDirs, dir)
	e.mu.Unlock()
}

// artifactPath returns the path a target's linked output lives at.
func artifactPath(bs *core.BuildSettings) string {
	return filepath.Join(bs.TargetPath, bs.TargetName)
}

// removeIfPartial removes a partially-written target file after a failed
// compile/link.
func removeIfPartial(bs *core.BuildSettings) {
	path := artifactPath(bs)
	if _, err := os.Stat(path); err == nil {
		os.Remove(path)
	}
}

func objSuffix(drv compiler.Driver) string { return drv.ObjSuffix() }

// objFileName implements the singleFile object naming convention: normalize
// the absolute path of the source, strip the drive letter, append the object
// suffix, and replace path separators with '.' so disparate sources compiled
// side-by-side get collision-resistant, filename-safe names.
func objFileName(source, suffix string) string {
	abs, err := filepath.Abs(source)
	if err != nil {
		abs = source
	}
	abs = stripVolume(abs)
	replaced := make([]rune, 0, len(abs))
	for _, r := range abs {
		if r == filepath.Separator || r == '/' || r == '\\' {
			replaced = append(replaced, '.')
		} else {
			replaced = append(replaced, r)
		}
	}
	return fmt.Sprintf("%s.%s", string(replaced), suffix)
}

func stripVolume(path string) string {
	if vol := filepath.VolumeName(path); vol != "" {
		return path[len(vol):]
	}
	return path
}
