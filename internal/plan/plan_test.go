package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebuild/forge/internal/core"
)

func testGeneratorSettings() core.GeneratorSettings {
	return core.GeneratorSettings{
		BuildType: core.Debug,
		Platform: core.Platform{
			OS: "linux", Arch: "x86_64",
			CompilerID: "dmd", CompilerBinary: "dmd", FrontendVersion: "2.100",
		},
	}
}

func TestPlanSimpleExecutableNoDeps(t *testing.T) {
	root := &fakePackage{name: "app", path: "/repo/app", bs: newExecutableSettings("main.d")}
	project := newFakeProject(root)

	targets, mainSources, err := Plan(project, testGeneratorSettings(), DefaultBuildTypes())
	require.NoError(t, err)

	require.Contains(t, targets, "app")
	assert.Equal(t, core.Executable, targets["app"].BuildSettings.TargetType)
	assert.Equal(t, []string{"main.d"}, mainSources)
}

func TestPlanRootWithNoSourcesErrors(t *testing.T) {
	root := &fakePackage{name: "app", path: "/repo/app", bs: core.NewBuildSettings()}
	project := newFakeProject(root)

	_, _, err := Plan(project, testGeneratorSettings(), DefaultBuildTypes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no source files")
}

func TestPlanLinksStaticLibraryDependency(t *testing.T) {
	dep := &fakePackage{name: "libfoo", path: "/repo/libfoo", bs: newLibrarySettings("foo.d")}
	root := &fakePackage{
		name: "app", path: "/repo/app",
		bs:   newExecutableSettings("main.d"),
		deps: map[string]core.DependencySpec{"libfoo": {Constraint: "*"}},
	}
	project := newFakeProject(root, dep)

	targets, _, err := Plan(project, testGeneratorSettings(), DefaultBuildTypes())
	require.NoError(t, err)

	require.Contains(t, targets, "app")
	require.Contains(t, targets, "libfoo")
	assert.Equal(t, core.StaticLibrary, targets["libfoo"].BuildSettings.TargetType)

	app := targets["app"]
	assert.Contains(t, app.Dependencies, "libfoo")
	assert.Contains(t, app.LinkDependencies, "libfoo")
	assert.Contains(t, app.BuildSettings.Versions, "Have_libfoo", "a linked dependency gets a synthesized version identifier")
}

func TestPlanAbsorbsSourceLibraryWhenCombined(t *testing.T) {
	dep := &fakePackage{name: "libfoo", path: "/repo/libfoo", bs: newLibrarySettings("foo.d")}
	root := &fakePackage{
		name: "app", path: "/repo/app",
		bs:   newExecutableSettings("main.d"),
		deps: map[string]core.DependencySpec{"libfoo": {Constraint: "*"}},
	}
	project := newFakeProject(root, dep)

	settings := testGeneratorSettings()
	settings.Combined = true

	targets, _, err := Plan(project, settings, DefaultBuildTypes())
	require.NoError(t, err)

	require.Contains(t, targets, "app")
	assert.NotContains(t, targets, "libfoo", "a combined-mode source library is absorbed, not a surviving binary target")

	app := targets["app"]
	assert.Contains(t, app.BuildSettings.SourceFiles, "foo.d", "absorbed package's sources fold up into the binary target")
	assert.Contains(t, app.BuildSettings.Versions, "Have_libfoo")
}

func TestPlanSkipsUnselectedOptionalDependency(t *testing.T) {
	dep := &fakePackage{name: "libfoo", path: "/repo/libfoo", bs: newLibrarySettings("foo.d")}
	root := &fakePackage{
		name: "app", path: "/repo/app",
		bs:   newExecutableSettings("main.d"),
		deps: map[string]core.DependencySpec{"libfoo": {Constraint: "*", Optional: true}},
	}
	project := newFakeProject(root, dep)

	targets, _, err := Plan(project, testGeneratorSettings(), DefaultBuildTypes())
	require.NoError(t, err)

	assert.NotContains(t, targets["app"].Dependencies, "libfoo", "an unselected optional dependency is never linked in")
	assert.NotContains(t, targets["app"].LinkDependencies, "libfoo")
}

func TestPlanDynamicLibraryNonRootDowngradesToStatic(t *testing.T) {
	dep := &fakePackage{name: "libfoo", path: "/repo/libfoo"}
	dep.bs = newLibrarySettings("foo.d")
	dep.bs.TargetType = core.DynamicLibrary
	root := &fakePackage{
		name: "app", path: "/repo/app",
		bs:   newExecutableSettings("main.d"),
		deps: map[string]core.DependencySpec{"libfoo": {Constraint: "*"}},
	}
	project := newFakeProject(root, dep)

	targets, _, err := Plan(project, testGeneratorSettings(), DefaultBuildTypes())
	require.NoError(t, err)
	assert.Equal(t, core.StaticLibrary, targets["libfoo"].BuildSettings.TargetType)
}

func TestPlanBuildTypeFoldsDebugOptions(t *testing.T) {
	root := &fakePackage{name: "app", path: "/repo/app", bs: newExecutableSettings("main.d")}
	project := newFakeProject(root)

	targets, _, err := Plan(project, testGeneratorSettings(), DefaultBuildTypes())
	require.NoError(t, err)
	assert.True(t, targets["app"].BuildSettings.Options.Has(core.DebugInfo))
}

func TestDetermineTargetTypesDemotesEmptySourcesToNone(t *testing.T) {
	targets := map[string]*core.TargetInfo{
		"app": {Pack: &fakePackage{name: "app"}, BuildSettings: core.NewBuildSettings()},
	}
	project := newFakeProject(&fakePackage{name: "app"})
	determineTargetTypes(project, testGeneratorSettings(), targets)
	assert.Equal(t, core.None, targets["app"].BuildSettings.TargetType)
}

func TestBinaryTargetSetIncludesRootRegardlessOfType(t *testing.T) {
	targets := map[string]*core.TargetInfo{
		"app": {BuildSettings: &core.BuildSettings{TargetType: core.None}},
	}
	binary := binaryTargetSet(targets, "app")
	assert.True(t, binary["app"])
}
