package plan

import (
	"sort"

	"github.com/forgebuild/forge/internal/core"
)

// binaryTargetSet implements step 4: a package is a binary target iff its
// settled type produces a linked artifact, or it is the root.
func binaryTargetSet(targets map[string]*core.TargetInfo, rootName string) map[string]bool {
	binary := map[string]bool{}
	for name, t := range targets {
		if name == rootName || t.IsBinary() {
			binary[name] = true
		}
	}
	return binary
}

// collectDependencies implements step 5: a DFS from root visiting each
// package's dependencies in lexicographically sorted name order. Non-binary
// dependencies have their Package absorbed into the current accumulator
// target; binary dependencies become link dependencies, replacing their
// sources with only their artifact outputs and nulling their import files.
// visited guards against cycles (the resolver guarantees none, but the guard
// must still exist).
//
// accumulator is the name of the TargetInfo entry that absorption currently
// folds into; it starts as the current package's own binary target and
// changes only when we step across a binary-target boundary.
func collectDependencies(project core.Project, targets map[string]*core.TargetInfo, binary map[string]bool, name string, visited map[string]bool) (*core.TargetInfo, error) {
	return collectInto(project, targets, binary, name, name, visited)
}

func collectInto(project core.Project, targets map[string]*core.TargetInfo, binary map[string]bool, pkgName, accumulatorName string, visited map[string]bool) (*core.TargetInfo, error) {
	if visited[pkgName] {
		return targets[accumulatorName], nil
	}
	visited[pkgName] = true

	pkg, ok := project.PackageByName(pkgName)
	if !ok {
		return nil, &core.PlanningError{Package: pkgName, Reason: "dependency not found in resolved graph"}
	}
	accumulator := targets[accumulatorName]

	deps := pkg.Dependencies()
	names := make([]string, 0, len(deps))
	for depName := range deps {
		names = append(names, depName)
	}
	sort.Strings(names)

	for _, depName := range names {
		spec := deps[depName]
		if spec.Optional && !project.Selected(pkg, depName) {
			continue
		}
		if binary[depName] {
			depTarget, ok := targets[depName]
			if !ok {
				return nil, &core.PlanningError{Package: depName, Reason: "binary dependency missing from target map"}
			}
			collapseToArtifact(depTarget)
			if depTarget.BuildSettings.TargetType != core.Executable {
				accumulator.AddDependency(depName)
				accumulator.AddLinkDependency(depName)
				if depTarget.BuildSettings.TargetType == core.StaticLibrary {
					core.PrependUnique(&accumulator.LinkDependencies, depTarget.LinkDependencies)
				}
			}
			if _, err := collectInto(project, targets, binary, depName, depName, visited); err != nil {
				return nil, err
			}
		} else {
			depPkg, ok := project.PackageByName(depName)
			if !ok {
				return nil, &core.PlanningError{Package: depName, Reason: "dependency not found in resolved graph"}
			}
			accumulator.Packages = append(accumulator.Packages, depPkg)
			if _, err := collectInto(project, targets, binary, depName, accumulatorName, visited); err != nil {
				return nil, err
			}
		}
	}
	return accumulator, nil
}

// collapseToArtifact replaces a binary dependency's sources with only its
// linker-artifact output and clears its import files, since its own
// compilation unit no longer needs to re-expose sources to the parent.
func collapseToArtifact(dep *core.TargetInfo) {
	bs := dep.BuildSettings
	bs.SourceFiles = []string{artifactPath(bs)}
	bs.ImportFiles = nil
}

// artifactPath returns the path a binary target's linked output lives at.
func artifactPath(bs *core.BuildSettings) string {
	return bs.TargetPath + "/" + bs.TargetName
}
