package exec

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/forgebuild/forge/internal/compiler"
	"github.com/forgebuild/forge/internal/core"
)

// compileAndLink dispatches a single target's compile+link steps according
// to the generator's build mode:
//
//   - AllAtOnceMode: one compiler invocation handles every source file and
//     produces the linked artifact directly.
//   - SeparateMode: one compiler invocation compiles every source file into a
//     single object, then a second invocation links it. This is the default,
//     matching DMD-like compilers that can take a whole source list in one
//     pass.
//   - SingleFileMode: each source file is compiled to its own object
//     (concurrently when ParallelBuild is set, one at a time otherwise), then
//     every object is linked in a second invocation.
//
// On any failure the partially-written target file is removed.
func (e *Executor) compileAndLink(ctx context.Context, target *core.TargetInfo, settings *core.BuildSettings) error {
	drv := e.driver
	var err error
	switch e.settings.BuildMode {
	case core.AllAtOnceMode:
		err = e.compileAllAtOnce(ctx, drv, target, settings)
	case core.SingleFileMode:
		err = e.compilePerFile(ctx, drv, target, settings)
	default:
		err = e.compileSeparate(ctx, drv, target, settings)
	}
	if err != nil {
		removeIfPartial(settings)
	}
	return err
}

func (e *Executor) compileAllAtOnce(ctx context.Context, drv compiler.Driver, target *core.TargetInfo, settings *core.BuildSettings) error {
	drv.PrepareBuildSettings(settings, compiler.CommandLine)
	drv.SetTarget(settings, e.settings.Platform, "")
	return drv.Invoke(ctx, target.Name(), settings, e.settings.Platform, nil)
}

// compileSeparate implements the default (SeparateMode) strategy: one
// compiler invocation over the full source list into a single object named
// after the target, then one link invocation with that object.
func (e *Executor) compileSeparate(ctx context.Context, drv compiler.Driver, target *core.TargetInfo, settings *core.BuildSettings) error {
	mode := compiler.CommandLineSeparate
	obj := filepath.Join(settings.TargetPath, fmt.Sprintf("%s.%s", settings.TargetName, objSuffix(drv)))

	drv.PrepareBuildSettings(settings, mode)
	drv.SetTarget(settings, e.settings.Platform, obj)
	if err := drv.Invoke(ctx, target.Name(), settings, e.settings.Platform, nil); err != nil {
		return err
	}

	return drv.InvokeLinker(ctx, target.Name(), settings, e.settings.Platform, []string{obj}, nil)
}

// compilePerFile implements the SingleFileMode strategy: every source file is
// compiled to its own object via an errgroup (concurrently only when
// ParallelBuild is set), each with its own
// settings clone so driver flag mutation in one goroutine can't race with
// another, then every object is linked together.
func (e *Executor) compilePerFile(ctx context.Context, drv compiler.Driver, target *core.TargetInfo, settings *core.BuildSettings) error {
	mode := compiler.CommandLineSeparateSourceFiles
	suffix := objSuffix(drv)
	objDir := settings.TargetPath
	objs := make([]string, len(settings.SourceFiles))

	g, gctx := errgroup.WithContext(ctx)
	if !e.settings.ParallelBuild {
		g.SetLimit(1)
	}
	for i := range settings.SourceFiles {
		i := i
		g.Go(func() error {
			src := settings.SourceFiles[i]
			obj := filepath.Join(objDir, objFileName(src, suffix))
			objs[i] = obj

			single := settings.Clone()
			single.SourceFiles = []string{src}
			drv.PrepareBuildSettings(single, mode)
			drv.SetTarget(single, e.settings.Platform, obj)
			return drv.Invoke(gctx, target.Name(), single, e.settings.Platform, nil)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	drv.PrepareBuildSettings(settings, mode)
	return drv.InvokeLinker(ctx, target.Name(), settings, e.settings.Platform, objs, nil)
}
