// Package plan implements the target configuration planner: it
// transforms a resolved dependency graph and user settings into a map of
// binary-target descriptors with merged build settings, determined target
// types, link-dependency lists, and synthesized version identifiers.
package plan

import (
	"fmt"
	"path/filepath"

	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/logging"
)

var log = logging.Log

// BuildTypeSettings supplies the extra settings folded into every surviving
// target for the selected build type, e.g. debug adds debug info,
// unittest-cov adds coverage + unittest options.
type BuildTypeSettings map[core.BuildType]*core.BuildSettings

// Plan walks project's resolved dependency graph under settings and produces
// the map of binary-target descriptors keyed by package name, plus the list
// of main source files collected from every binary target along the way.
//
// Steps:
//  1. initial TargetInfo population + build-variable expansion
//  2. pre-generate hooks
//  3. target-type determination
//  4. binary-target set
//  5. dependency collection (sorted-name DFS)
//  6. downward inheritance
//  7. synthesized version identifiers
//  8. upward inheritance
//  9. string-import override
//  10. purge non-binary entries
//  11. build-type settings
func Plan(project core.Project, settings core.GeneratorSettings, buildTypes BuildTypeSettings) (map[string]*core.TargetInfo, []string, error) {
	targets, err := populate(project, settings)
	if err != nil {
		return nil, nil, err
	}

	if err := runPreGenerateHooks(project, settings, targets); err != nil {
		return nil, nil, err
	}

	root := project.Root()
	determineTargetTypes(project, settings, targets)

	binary := binaryTargetSet(targets, root.Name())

	visited := map[string]bool{}
	if _, err := collectDependencies(project, targets, binary, root.Name(), visited); err != nil {
		return nil, nil, err
	}

	downwardInherit(project, targets, root.Name(), map[string]bool{})

	for _, t := range targets {
		synthesizeVersionIdentifiers(t)
	}

	upwardInherit(project, targets, root.Name(), map[string]bool{})

	applyStringImportOverride(targets, root.Name())

	purgeNonBinary(targets, binary)

	if err := foldBuildType(targets, settings.Platform.CompilerID, settings.BuildType, buildTypes); err != nil {
		return nil, nil, err
	}

	rootTarget, ok := targets[root.Name()]
	if !ok {
		return nil, nil, &core.PlanningError{Package: root.Name(), Reason: "root package did not survive planning"}
	}
	if rootTarget.BuildSettings.TargetType == core.None {
		return nil, nil, &core.PlanningError{Package: root.Name(), Reason: "root target has no source files and cannot be built"}
	}

	mainSources := collectMainSources(targets)
	return targets, mainSources, nil
}

// populate implements step 1: build initial TargetInfo entries for every
// package in topological (roots-first) order, expanding build-variable
// templates against each package's own directory.
func populate(project core.Project, settings core.GeneratorSettings) (map[string]*core.TargetInfo, error) {
	targets := map[string]*core.TargetInfo{}
	for _, pkg := range project.Topological() {
		config := pkg.DefaultConfig()
		if pkg.Name() == project.Root().Name() && settings.Config != "" {
			config = settings.Config
		}
		bs, err := pkg.Settings(config)
		if err != nil {
			return nil, &core.PlanningError{Package: pkg.Name(), Reason: fmt.Sprintf("could not resolve settings: %s", err)}
		}
		vars := map[string]string{
			"PACKAGE_DIR":      pkg.Path(),
			"ROOT_PACKAGE_DIR": project.Root().Path(),
			"PACKAGE_NAME":     pkg.Name(),
		}
		expandBuildSettingsVars(bs, vars)
		if bs.TargetPath == "" {
			bs.TargetPath = filepath.Join(pkg.Path(), "bin")
		}
		if bs.TargetName == "" {
			bs.TargetName = pkg.Name()
		}
		targets[pkg.Name()] = &core.TargetInfo{
			Pack:          pkg,
			Packages:      []core.Package{pkg},
			Config:        config,
			BuildSettings: bs,
		}
	}
	return targets, nil
}

func expandBuildSettingsVars(bs *core.BuildSettings, vars map[string]string) {
	bs.SourceFiles = expandAll(bs.SourceFiles, vars)
	bs.ImportFiles = expandAll(bs.ImportFiles, vars)
	bs.StringImportFiles = expandAll(bs.StringImportFiles, vars)
	bs.ImportPaths = expandAll(bs.ImportPaths, vars)
	bs.StringImportPaths = expandAll(bs.StringImportPaths, vars)
	bs.CopyFiles = expandAll(bs.CopyFiles, vars)
	bs.TargetPath = expandVars(bs.TargetPath, vars)
	bs.WorkingDirectory = expandVars(bs.WorkingDirectory, vars)
	bs.MainSourceFile = expandVars(bs.MainSourceFile, vars)
}

// collectMainSources gathers every non-empty MainSourceFile across all targets.
func collectMainSources(targets map[string]*core.TargetInfo) []string {
	var out []string
	for _, t := range targets {
		if t.BuildSettings.MainSourceFile != "" {
			out = append(out, t.BuildSettings.MainSourceFile)
		}
	}
	return out
}
