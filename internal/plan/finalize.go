package plan

import (
	"github.com/forgebuild/forge/internal/compiler"
	"github.com/forgebuild/forge/internal/core"
)

// purgeNonBinary implements step 10: drop every map entry that didn't make
// the binary-target set, now that their settings have been folded upward
// into whichever binary target absorbed them.
func purgeNonBinary(targets map[string]*core.TargetInfo, binary map[string]bool) {
	for name := range targets {
		if !binary[name] {
			delete(targets, name)
		}
	}
}

// foldBuildType implements step 11: fold in the selected build type's extra
// settings, then reverse-extract any dflags the compiler driver recognizes
// back into the Options bitmask so later stages can reason structurally
// rather than re-parsing flag strings.
func foldBuildType(targets map[string]*core.TargetInfo, compilerID string, buildType core.BuildType, table BuildTypeSettings) error {
	extra := table[buildType]
	drv, haveDriver := compiler.Lookup(compilerID)
	for _, t := range targets {
		if extra != nil {
			t.BuildSettings.FoldInto(extra)
			t.BuildSettings.Options |= extra.Options
		}
		if haveDriver {
			t.BuildSettings.Options |= drv.ExtractBuildOptions(t.BuildSettings)
		}
	}
	return nil
}
