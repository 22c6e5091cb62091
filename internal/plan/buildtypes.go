package plan

import "github.com/forgebuild/forge/internal/core"

// DefaultBuildTypes returns the built-in build-type table: debug, release
// and unittest-cov, each contributing the options the build-type fold expects
// to be folded into every surviving target.
func DefaultBuildTypes() BuildTypeSettings {
	debug := core.NewBuildSettings()
	debug.Dflags = []string{"-g"}
	debug.DebugVersions = []string{"Have_debug"}
	debug.Options = core.DebugInfo

	release := core.NewBuildSettings()
	release.Options = 0

	unittestCov := core.NewBuildSettings()
	unittestCov.Dflags = []string{"-unittest", "-cov", "-g"}
	unittestCov.Options = core.UnitTest | core.Coverage | core.DebugInfo

	return BuildTypeSettings{
		core.Debug:       debug,
		core.Release:     release,
		core.UnittestCov: unittestCov,
	}
}
