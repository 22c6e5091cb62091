package plan

import "github.com/forgebuild/forge/internal/core"

// fakePackage is a minimal core.Package test double: its settings and
// dependency map are fixed at construction time rather than parsed from a
// recipe file.
type fakePackage struct {
	name    string
	path    string
	deps    map[string]core.DependencySpec
	bs      *core.BuildSettings
	config  string
}

func (p *fakePackage) Name() string      { return p.name }
func (p *fakePackage) Version() string   { return "1.0.0" }
func (p *fakePackage) Path() string      { return p.path }
func (p *fakePackage) RecipePath() string { return p.path + "/dub.json" }
func (p *fakePackage) Dependencies() map[string]core.DependencySpec { return p.deps }
func (p *fakePackage) DefaultConfig() string { return p.config }
func (p *fakePackage) Settings(config string) (*core.BuildSettings, error) {
	return p.bs.Clone(), nil
}

// fakeProject is a minimal core.Project test double over a fixed package set,
// assembled in the topological order the caller supplies.
type fakeProject struct {
	root     *fakePackage
	order    []*fakePackage
	byName   map[string]*fakePackage
	selected map[string]bool
}

func newFakeProject(root *fakePackage, rest ...*fakePackage) *fakeProject {
	fp := &fakeProject{root: root, byName: map[string]*fakePackage{root.name: root}, selected: map[string]bool{}}
	fp.order = append(fp.order, root)
	for _, pkg := range rest {
		fp.byName[pkg.name] = pkg
		fp.order = append(fp.order, pkg)
	}
	return fp
}

func (fp *fakeProject) Root() core.Package { return fp.root }

func (fp *fakeProject) Topological() []core.Package {
	out := make([]core.Package, len(fp.order))
	for i, p := range fp.order {
		out[i] = p
	}
	return out
}

func (fp *fakeProject) Selected(pkg core.Package, depName string) bool {
	return fp.selected[pkg.Name()+"->"+depName]
}

func (fp *fakeProject) PackageByName(name string) (core.Package, bool) {
	p, ok := fp.byName[name]
	return p, ok
}

func (fp *fakeProject) SelectedVersionsManifest() string { return "" }

// newExecutableSettings builds BuildSettings for a leaf executable package
// with one source file.
func newExecutableSettings(source string) *core.BuildSettings {
	bs := core.NewBuildSettings()
	bs.TargetType = core.Executable
	bs.SourceFiles = []string{source}
	bs.MainSourceFile = source
	return bs
}

// newLibrarySettings builds BuildSettings for a library package with one source file.
func newLibrarySettings(source string) *core.BuildSettings {
	bs := core.NewBuildSettings()
	bs.TargetType = core.Autodetect
	bs.SourceFiles = []string{source}
	return bs
}
