package generate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/singlepkg"
)

func TestDispatchBuild(t *testing.T) {
	for _, name := range []string{"", "build"} {
		gen, err := Dispatch(name)
		require.NoError(t, err)
		assert.IsType(t, buildGenerator{}, gen)
	}
}

func TestDispatchUnsupportedGenerators(t *testing.T) {
	for _, name := range []string{"visuald", "sublimetext", "cmake", "nonexistent"} {
		_, err := Dispatch(name)
		require.Error(t, err)
		assert.Contains(t, err.Error(), name)
	}
}

func TestBuildGeneratorRunFailsForUnknownCompiler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.d"), []byte("void main(){}"), 0644))
	project, err := singlepkg.Load(dir)
	require.NoError(t, err)

	settings := core.GeneratorSettings{Platform: core.Platform{CompilerID: "no-such-compiler"}}
	err = buildGenerator{}.Run(context.Background(), project, settings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no compiler driver registered")
}

func TestCollectWatchInputsDedupsAcrossTargets(t *testing.T) {
	bsA := core.NewBuildSettings()
	bsA.SourceFiles = []string{"a.d"}
	bsB := core.NewBuildSettings()
	bsB.SourceFiles = []string{"a.d", "b.d"}

	pkg := &fakeRecipePackage{path: "/repo/app"}
	targets := map[string]*core.TargetInfo{
		"a": {Pack: pkg, Packages: []core.Package{pkg}, BuildSettings: bsA},
		"b": {Pack: pkg, Packages: []core.Package{pkg}, BuildSettings: bsB},
	}

	inputs := collectWatchInputs(targets, "a")
	assert.ElementsMatch(t, []string{"a.d", "b.d", pkg.RecipePath()}, inputs)
}

type fakeRecipePackage struct{ path string }

func (p *fakeRecipePackage) Name() string                              { return "app" }
func (p *fakeRecipePackage) Version() string                           { return "" }
func (p *fakeRecipePackage) Path() string                              { return p.path }
func (p *fakeRecipePackage) RecipePath() string                        { return filepath.Join(p.path, "dub.json") }
func (p *fakeRecipePackage) Dependencies() map[string]core.DependencySpec { return nil }
func (p *fakeRecipePackage) Settings(string) (*core.BuildSettings, error) { return core.NewBuildSettings(), nil }
func (p *fakeRecipePackage) DefaultConfig() string                     { return "" }
