package buildid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgebuild/forge/internal/core"
)

func testSettings() (core.GeneratorSettings, *core.BuildSettings) {
	gs := core.GeneratorSettings{
		Config:    "library",
		BuildType: core.Debug,
		Platform: core.Platform{
			OS: "linux", Arch: "x86_64",
			CompilerID: "dmd", FrontendVersion: "2.100",
		},
	}
	bs := core.NewBuildSettings()
	bs.Dflags = []string{"-g"}
	bs.Versions = []string{"Have_b", "Have_a"}
	return gs, bs
}

func TestComputeIsDeterministic(t *testing.T) {
	gs, bs := testSettings()
	assert.Equal(t, Compute(gs, bs), Compute(gs, bs))
}

func TestComputeFormat(t *testing.T) {
	gs, bs := testSettings()
	id := Compute(gs, bs)
	assert.Regexp(t, `^library-debug-linux-x86_64-dmd_2\.100-[0-9a-f]{16}$`, id)
}

func TestComputeIgnoresVersionOrder(t *testing.T) {
	gs, bs1 := testSettings()
	bs2 := bs1.Clone()
	bs2.Versions = []string{"Have_a", "Have_b"}
	assert.Equal(t, Compute(gs, bs1), Compute(gs, bs2), "version set is sorted before hashing")
}

func TestComputeChangesWithDflags(t *testing.T) {
	gs, bs1 := testSettings()
	bs2 := bs1.Clone()
	bs2.Dflags = append(bs2.Dflags, "-release")
	assert.NotEqual(t, Compute(gs, bs1), Compute(gs, bs2))
}

func TestComputeIgnoresSourceFiles(t *testing.T) {
	gs, bs1 := testSettings()
	bs2 := bs1.Clone()
	bs2.SourceFiles = []string{"main.d"}
	assert.Equal(t, Compute(gs, bs1), Compute(gs, bs2), "source files are mtime inputs, not key material")
}
