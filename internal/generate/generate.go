// Package generate dispatches a named output generator to its
// implementation. "build" is the real planner+executor pipeline this module
// implements; every other generator is a named stub, since alternate IDE
// project generators are out of this core's scope.
package generate

import (
	"context"
	"fmt"

	"github.com/forgebuild/forge/internal/compiler"
	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/exec"
	"github.com/forgebuild/forge/internal/plan"
)

// Generator runs one named output pipeline against a resolved project.
type Generator interface {
	Run(ctx context.Context, project core.Project, settings core.GeneratorSettings) error
}

// ErrGeneratorUnsupported is returned by Dispatch for any generator name
// other than "build".
type ErrGeneratorUnsupported string

func (e ErrGeneratorUnsupported) Error() string {
	return fmt.Sprintf("generator %q is not supported", string(e))
}

// Dispatch resolves a generator name to its Generator.
func Dispatch(name string) (Generator, error) {
	switch name {
	case "", "build":
		return buildGenerator{}, nil
	case "visuald", "sublimetext", "cmake":
		return nil, ErrGeneratorUnsupported(name)
	default:
		return nil, ErrGeneratorUnsupported(name)
	}
}

// buildGenerator wires plan.Plan into exec.Executor and, when settings.Run
// is set, into the run/watch loop.
type buildGenerator struct{}

func (buildGenerator) Run(ctx context.Context, project core.Project, settings core.GeneratorSettings) error {
	drv, ok := compiler.Lookup(settings.Platform.CompilerID)
	if !ok {
		return fmt.Errorf("no compiler driver registered for %q", settings.Platform.CompilerID)
	}
	buildTypes := plan.DefaultBuildTypes()

	replan := func() (map[string]*core.TargetInfo, error) {
		targets, _, err := plan.Plan(project, settings, buildTypes)
		return targets, err
	}

	e := exec.New(drv, settings).WithProject(project)
	return exec.Run(ctx, project.Root().Name(), replan, e, collectWatchInputs)
}

// collectWatchInputs gathers every input file across every target in the
// plan, for registration with the file watcher.
func collectWatchInputs(targets map[string]*core.TargetInfo, rootName string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range targets {
		for _, f := range t.BuildSettings.AllInputFiles() {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
		for _, pkg := range t.Packages {
			if !seen[pkg.RecipePath()] {
				seen[pkg.RecipePath()] = true
				out = append(out, pkg.RecipePath())
			}
		}
	}
	return out
}
