package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alessio/shellescape"
)

// HookEnv is the set of environment variables exported to pre/post
// build/generate hook commands.
type HookEnv map[string]string

// boolVar renders a bool as dub's conventional "TRUE"/"" environment pair.
func boolVar(b bool) string {
	if b {
		return "TRUE"
	}
	return ""
}

// BuildHookEnv constructs the full hook environment for one target build.
// root is the project's root package (DUB_ROOT_PACKAGE/DUB_ROOT_PACKAGE_DIR);
// for the root target's own build this is the same package as target.Pack,
// but for a dependency's hooks it names the actual build root, not the
// dependency itself. A nil root falls back to target.Pack, for callers (and
// tests) that have no project in scope.
// packagesUsed is the comma-separated recursion guard: the chain of package
// names already processing a hook invocation, read from DUB_PACKAGES_USED-
// equivalent on entry and re-exported with the current package appended.
func BuildHookEnv(settings GeneratorSettings, target *TargetInfo, root Package, packagesUsed []string) HookEnv {
	bs := target.BuildSettings
	pack := target.Pack
	rootPack := root
	if rootPack == nil {
		rootPack = pack
	}
	env := HookEnv{
		"DFLAGS":              strings.Join(bs.Dflags, " "),
		"LFLAGS":              strings.Join(bs.Lflags, " "),
		"VERSIONS":            strings.Join(bs.Versions, " "),
		"LIBS":                strings.Join(bs.Libs, " "),
		"IMPORT_PATHS":        strings.Join(bs.ImportPaths, " "),
		"STRING_IMPORT_PATHS": strings.Join(bs.StringImportPaths, " "),

		"DC":              settings.Platform.CompilerBinary,
		"DC_BASE":         settings.Platform.CompilerID,
		"D_FRONTEND_VER":  settings.Platform.FrontendVersion,
		"DUB_PLATFORM":    strings.Join(settings.Platform.Tags, ","),
		"DUB_ARCH":        strings.Join(settings.Platform.ArchTags, ","),
		"DUB_TARGET_TYPE": bs.TargetType.String(),
		"DUB_TARGET_PATH": bs.TargetPath,
		"DUB_TARGET_NAME": bs.TargetName,

		"DUB_WORKING_DIRECTORY": bs.WorkingDirectory,
		"DUB_MAIN_SOURCE_FILE":  bs.MainSourceFile,

		"DUB_CONFIG":     target.Config,
		"DUB_BUILD_TYPE": string(settings.BuildType),
		"DUB_BUILD_MODE": buildModeString(settings.BuildMode),

		"DUB_PACKAGE":          pack.Name(),
		"DUB_PACKAGE_DIR":      pack.Path(),
		"DUB_ROOT_PACKAGE":     rootPack.Name(),
		"DUB_ROOT_PACKAGE_DIR": rootPack.Path(),

		"DUB_COMBINED":   boolVar(settings.Combined),
		"DUB_RUN":        boolVar(settings.Run),
		"DUB_FORCE":      boolVar(settings.Force),
		"DUB_DIRECT":     boolVar(settings.Direct),
		"DUB_RDMD":       boolVar(settings.RDMD),
		"DUB_TEMP_BUILD": boolVar(settings.TempBuild),

		"DUB_PARALLEL_BUILD": boolVar(settings.ParallelBuild),
		"DUB_RUN_ARGS":       shellJoin(settings.RunArgs),
	}
	used := append(append([]string(nil), packagesUsed...), pack.Name())
	env["DUB_PACKAGES_USED"] = strings.Join(used, ",")
	return env
}

// buildModeString renders a BuildMode the way the hook environment expects it.
func buildModeString(m BuildMode) string {
	switch m {
	case AllAtOnceMode:
		return "allAtOnce"
	case SingleFileMode:
		return "singleFile"
	default:
		return "separate"
	}
}

// shellJoin space-joins args, shell-escaping each one, for DUB_RUN_ARGS.
func shellJoin(args []string) string {
	escaped := make([]string, len(args))
	for i, a := range args {
		escaped[i] = shellescape.Quote(a)
	}
	return strings.Join(escaped, " ")
}

// PackagesUsed parses a DUB_PACKAGES_USED value (or "" for none) back into its chain.
func PackagesUsed(env string) []string {
	if env == "" {
		return nil
	}
	return strings.Split(env, ",")
}

// ToSlice renders the env map as "KEY=VALUE" pairs suitable for exec.Cmd.Env,
// sorted by key for determinism (useful in tests and for reproducible hashing
// of the environment if ever needed).
func (env HookEnv) ToSlice() []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}
