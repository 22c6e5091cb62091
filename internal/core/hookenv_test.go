package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePackage struct {
	name string
	path string
}

func (p *fakePackage) Name() string                        { return p.name }
func (p *fakePackage) Version() string                      { return "1.0.0" }
func (p *fakePackage) Path() string                         { return p.path }
func (p *fakePackage) RecipePath() string                   { return p.path + "/dub.json" }
func (p *fakePackage) Dependencies() map[string]DependencySpec { return nil }
func (p *fakePackage) Settings(string) (*BuildSettings, error) { return NewBuildSettings(), nil }
func (p *fakePackage) DefaultConfig() string                { return "" }

func TestBuildHookEnvExportsDubVars(t *testing.T) {
	pkg := &fakePackage{name: "myapp", path: "/repo/myapp"}
	bs := NewBuildSettings()
	bs.Dflags = []string{"-g", "-unittest"}
	bs.TargetType = Executable
	bs.TargetPath = "/repo/myapp/bin"
	bs.TargetName = "myapp"

	target := &TargetInfo{Pack: pkg, Packages: []Package{pkg}, Config: "default", BuildSettings: bs}
	settings := GeneratorSettings{
		Platform:  Platform{CompilerBinary: "dmd", CompilerID: "dmd"},
		BuildType: Debug,
	}

	env := BuildHookEnv(settings, target, nil, nil)

	assert.Equal(t, "-g -unittest", env["DFLAGS"])
	assert.Equal(t, "myapp", env["DUB_PACKAGE"])
	assert.Equal(t, "/repo/myapp", env["DUB_PACKAGE_DIR"])
	assert.Equal(t, "executable", env["DUB_TARGET_TYPE"])
	assert.Equal(t, "myapp", env["DUB_PACKAGES_USED"])
}

func TestBuildHookEnvAppendsToInheritedPackagesUsed(t *testing.T) {
	pkg := &fakePackage{name: "dep", path: "/repo/dep"}
	target := &TargetInfo{Pack: pkg, Packages: []Package{pkg}, BuildSettings: NewBuildSettings()}

	env := BuildHookEnv(GeneratorSettings{}, target, nil, []string{"root", "mid"})

	assert.Equal(t, "root,mid,dep", env["DUB_PACKAGES_USED"])
}

func TestBuildHookEnvUsesProjectRootPackageForDependencyTarget(t *testing.T) {
	root := &fakePackage{name: "app", path: "/repo/app"}
	dep := &fakePackage{name: "dep", path: "/repo/dep"}
	target := &TargetInfo{Pack: dep, Packages: []Package{dep}, BuildSettings: NewBuildSettings()}

	env := BuildHookEnv(GeneratorSettings{}, target, root, nil)

	assert.Equal(t, "dep", env["DUB_PACKAGE"])
	assert.Equal(t, "/repo/dep", env["DUB_PACKAGE_DIR"])
	assert.Equal(t, "app", env["DUB_ROOT_PACKAGE"])
	assert.Equal(t, "/repo/app", env["DUB_ROOT_PACKAGE_DIR"])
}

func TestPackagesUsedParsesChain(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, PackagesUsed("a,b"))
	assert.Nil(t, PackagesUsed(""))
}

func TestToSliceRendersKeyValuePairs(t *testing.T) {
	env := HookEnv{"FOO": "bar"}
	assert.Equal(t, []string{"FOO=bar"}, env.ToSlice())
}
