// Package singlepkg provides a minimal core.Project/core.Package
// implementation for a single directory with no dependencies: it
// autodetects every ".d" file under the directory as a source file. Recipe
// parsing and dependency resolution are out of this core's scope; this is
// the smallest real implementation that lets the CLI plan and build
// something without one, not a stand-in for a resolver.
package singlepkg

import (
	"path/filepath"

	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/fs"
)

// Project wraps a single root Package with no dependencies.
type Project struct {
	root *Package
}

// Load builds a Project rooted at dir, autodetecting its source files.
func Load(dir string) (*Project, error) {
	pkg, err := loadPackage(dir)
	if err != nil {
		return nil, err
	}
	return &Project{root: pkg}, nil
}

func (p *Project) Root() core.Package                 { return p.root }
func (p *Project) Topological() []core.Package        { return []core.Package{p.root} }
func (p *Project) Selected(core.Package, string) bool { return false }
func (p *Project) PackageByName(name string) (core.Package, bool) {
	if name == p.root.Name() {
		return p.root, true
	}
	return nil, false
}
func (p *Project) SelectedVersionsManifest() string { return "" }

// Package is a directory with no dependencies and autodetected sources.
type Package struct {
	name string
	dir  string
}

func loadPackage(dir string) (*Package, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, &core.IOError{Path: dir, Err: err}
	}
	return &Package{name: filepath.Base(abs), dir: abs}, nil
}

func (p *Package) Name() string                              { return p.name }
func (p *Package) Version() string                            { return "" }
func (p *Package) Path() string                               { return p.dir }
func (p *Package) RecipePath() string                         { return filepath.Join(p.dir, FileName) }
func (p *Package) Dependencies() map[string]core.DependencySpec { return nil }
func (p *Package) DefaultConfig() string                      { return "" }

// FileName is the conventional recipe filename, kept only so RecipePath
// has something stable to report as an up-to-date input even though this
// package never parses it.
const FileName = "package.d.json"

// Settings autodetects every ".d" source file under the package directory,
// recursively, and defaults the target type to Autodetect, letting the
// planner infer it.
func (p *Package) Settings(config string) (*core.BuildSettings, error) {
	sources, err := findSources(p.dir)
	if err != nil {
		return nil, err
	}
	bs := core.NewBuildSettings()
	bs.SourceFiles = sources
	bs.ImportPaths = []string{p.dir}
	if len(sources) > 0 {
		bs.MainSourceFile = sources[0]
	}
	return bs, nil
}

func findSources(dir string) ([]string, error) {
	names, err := fs.DirEntries(dir, true)
	if err != nil {
		return nil, &core.IOError{Path: dir, Err: err}
	}
	var out []string
	for _, name := range names {
		if filepath.Ext(name) == ".d" {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out, nil
}
