package plan

import (
	"path/filepath"

	"github.com/forgebuild/forge/internal/core"
)

// downwardInherit implements step 6: walking root -> leaves along every
// dependency edge, copy the parent's versions/debugVersions and the
// inheritable subset of its options down into each dependency.
func downwardInherit(project core.Project, targets map[string]*core.TargetInfo, name string, visited map[string]bool) {
	if visited[name] {
		return
	}
	visited[name] = true
	t, ok := targets[name]
	if !ok {
		return
	}
	for _, depName := range t.Dependencies {
		dep, ok := targets[depName]
		if !ok {
			continue
		}
		core.AppendUnique(&dep.BuildSettings.Versions, t.BuildSettings.Versions)
		core.AppendUnique(&dep.BuildSettings.DebugVersions, t.BuildSettings.DebugVersions)
		dep.BuildSettings.Options |= t.BuildSettings.Options & core.Inheritable
		downwardInherit(project, targets, depName, visited)
	}
}

// synthesizeVersionIdentifiers implements step 7: add Have_<name> for every
// entry in packages ∪ dependencies except the target's own package (spec
// invariant 6).
func synthesizeVersionIdentifiers(t *core.TargetInfo) {
	for _, pkg := range t.Packages {
		if pkg.Name() == t.Pack.Name() {
			continue
		}
		t.BuildSettings.Versions = append(t.BuildSettings.Versions, core.HaveIdentifier(pkg.Name()))
	}
	for _, depName := range t.Dependencies {
		t.BuildSettings.Versions = append(t.BuildSettings.Versions, core.HaveIdentifier(depName))
	}
}

// upwardInherit implements step 8: fold every dependency's full BuildSettings
// into its parent, binary dependencies first, then absorbed packages. Walked
// leaves-first via post-order recursion so a grandchild's settings are fully
// folded into its parent before that parent folds into its own parent.
func upwardInherit(project core.Project, targets map[string]*core.TargetInfo, name string, done map[string]bool) {
	if done[name] {
		return
	}
	done[name] = true
	t, ok := targets[name]
	if !ok {
		return
	}
	for _, depName := range t.Dependencies {
		upwardInherit(project, targets, depName, done)
		if dep, ok := targets[depName]; ok {
			t.BuildSettings.FoldInto(dep.BuildSettings)
		}
	}
	for _, pkg := range t.Packages {
		if pkg.Name() == t.Pack.Name() {
			continue
		}
		if abs, ok := targets[pkg.Name()]; ok {
			t.BuildSettings.FoldInto(abs.BuildSettings)
			core.AppendUnique(&t.BuildSettings.SourceFiles, abs.BuildSettings.SourceFiles)
			core.AppendUnique(&t.BuildSettings.ImportFiles, abs.BuildSettings.ImportFiles)
			core.AppendUnique(&t.BuildSettings.StringImportFiles, abs.BuildSettings.StringImportFiles)
		}
	}
}

// applyStringImportOverride implements step 9: for every non-root target
// whose own stringImportPaths is non-empty, override any stringImportFiles
// whose basename matches a root string-import file with the root's path, and
// prepend the root's stringImportPaths to the child's.
func applyStringImportOverride(targets map[string]*core.TargetInfo, rootName string) {
	root, ok := targets[rootName]
	if !ok {
		return
	}
	rootByBasename := map[string]string{}
	for _, f := range root.BuildSettings.StringImportFiles {
		rootByBasename[filepath.Base(f)] = f
	}
	for name, t := range targets {
		if name == rootName || len(t.BuildSettings.StringImportPaths) == 0 {
			continue
		}
		for i, f := range t.BuildSettings.StringImportFiles {
			if rootPath, ok := rootByBasename[filepath.Base(f)]; ok {
				t.BuildSettings.StringImportFiles[i] = rootPath
			}
		}
		core.PrependUnique(&t.BuildSettings.StringImportPaths, root.BuildSettings.StringImportPaths)
	}
}
