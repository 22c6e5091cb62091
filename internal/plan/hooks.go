package plan

import (
	"os"

	"github.com/forgebuild/forge/internal/core"
)

// runPreGenerateHooks implements step 2: run preGenerateCommands for every
// package that has them, with the hook environment. Recursive
// invocations (a hook that re-invokes this same tool) are suppressed via the
// DUB_PACKAGES_USED recursion guard, read from this process's own environment
// since that's where a parent hook invocation would have set it.
func runPreGenerateHooks(project core.Project, settings core.GeneratorSettings, targets map[string]*core.TargetInfo) error {
	inherited := core.PackagesUsed(os.Getenv("DUB_PACKAGES_USED"))
	for _, t := range targets {
		if len(t.BuildSettings.PreGenerateCommands) == 0 {
			continue
		}
		if recursed(inherited, t.Pack.Name()) {
			log.Debug("Skipping pre-generate commands for %s; already in progress (recursive invocation)", t.Pack.Name())
			continue
		}
		env := core.BuildHookEnv(settings, t, project.Root(), inherited)
		if err := core.RunHookCommands(t.BuildSettings.PreGenerateCommands, t.Pack.Path(), env, "pre-generate"); err != nil {
			log.Warning("Pre-generate commands for %s reported errors: %s", t.Pack.Name(), err)
		}
	}
	return nil
}

func recursed(chain []string, name string) bool {
	for _, p := range chain {
		if p == name {
			return true
		}
	}
	return false
}
