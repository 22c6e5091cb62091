package plan

import "github.com/forgebuild/forge/internal/core"

// determineTargetTypes implements step 3: settle each package's recipe-declared
// target type into its final planned type.
//
//   - root: autodetect/library => staticLibrary
//   - non-root: autodetect/library => sourceLibrary if combined, else staticLibrary
//   - non-root dynamicLibrary => staticLibrary, with a warning (spec invariant 3)
//   - empty sources, not sourceLibrary/none => demoted to none, settings reset (invariant 4)
//   - final dynamicLibrary => add PIC option
func determineTargetTypes(project core.Project, settings core.GeneratorSettings, targets map[string]*core.TargetInfo) {
	rootName := project.Root().Name()
	for name, t := range targets {
		bs := t.BuildSettings
		isRoot := name == rootName

		switch bs.TargetType {
		case core.Autodetect, core.Library:
			switch {
			case isRoot:
				bs.TargetType = core.StaticLibrary
			case settings.Combined:
				bs.TargetType = core.SourceLibrary
			default:
				bs.TargetType = core.StaticLibrary
			}
		case core.DynamicLibrary:
			if !isRoot {
				log.Warning("Package %s declares dynamicLibrary but is not the root target; downgrading to staticLibrary", name)
				bs.TargetType = core.StaticLibrary
			}
		}

		if len(bs.SourceFiles) == 0 && bs.TargetType != core.SourceLibrary && bs.TargetType != core.None {
			log.Debug("Package %s has no source files; demoting to none", name)
			targetType := core.None
			*bs = *core.NewBuildSettings()
			bs.TargetType = targetType
		}

		if bs.TargetType == core.DynamicLibrary {
			bs.Options |= core.PIC
		}
	}
}
