// Command forge is the thin CLI driver: parse flags, load configuration,
// plan the dependency graph, build it and, for "run", hand off to the
// run/watch loop. No business logic lives in this package; it only wires
// internal/config, internal/plan, internal/exec and internal/watch together.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/thought-machine/go-flags"

	"github.com/forgebuild/forge/internal/config"
	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/generate"
	"github.com/forgebuild/forge/internal/logging"
	"github.com/forgebuild/forge/internal/singlepkg"
)

var log = logging.Log

var opts struct {
	Build struct {
		Force    bool `short:"f" long:"force" description:"Forces a rebuild even if the cache looks current"`
		Parallel bool `short:"p" long:"parallel" description:"Compiles source files in parallel in singleFile build mode"`
		Direct   bool `long:"direct" description:"Builds directly, bypassing the content-addressed cache"`
		Combined bool `long:"combine" description:"Builds dependencies as source libraries folded into the root target"`
		Config   string `short:"c" long:"config" description:"Named build configuration to use"`
		Args     struct {
			Root string `positional-arg-name:"package" description:"Package directory to build"`
		} `positional-args:"yes"`
	} `command:"build" description:"Builds a package and its dependencies"`

	Run struct {
		Build struct {
			Force    bool   `short:"f" long:"force"`
			Parallel bool   `short:"p" long:"parallel"`
			Combined bool   `long:"combine"`
			Config   string `short:"c" long:"config"`
		}
		Watch bool `short:"w" long:"watch" description:"Rebuilds and restarts on source changes"`
		Args  struct {
			Root string   `positional-arg-name:"package" description:"Package directory to run"`
			Rest []string `positional-arg-name:"args" description:"Arguments passed through to the built executable"`
		} `positional-args:"yes"`
	} `command:"run" description:"Builds and runs a package, optionally watching for changes"`
}

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var err error
	switch parser.Active.Name {
	case "build":
		err = runBuild(ctx, opts.Build.Args.Root, buildSettings(false))
	case "run":
		err = runBuild(ctx, opts.Run.Args.Root, runSettings())
	default:
		err = fmt.Errorf("no command given; try 'forge build' or 'forge run'")
	}
	if err != nil {
		log.Error("%s", err)
		os.Exit(1)
	}
}

func buildSettings(run bool) core.GeneratorSettings {
	return core.GeneratorSettings{
		Platform: core.Platform{OS: "linux", Arch: "amd64", CompilerID: "dmd"},
		Run:      run,
		Force:    opts.Build.Force,
		ParallelBuild: opts.Build.Parallel,
		Direct:   opts.Build.Direct,
		Combined: opts.Build.Combined,
		Config:   opts.Build.Config,
	}
}

func runSettings() core.GeneratorSettings {
	s := core.GeneratorSettings{
		Platform: core.Platform{OS: "linux", Arch: "amd64", CompilerID: "dmd"},
		Run:      true,
		Watch:    opts.Run.Watch,
		Force:    opts.Run.Build.Force,
		ParallelBuild: opts.Run.Build.Parallel,
		Combined: opts.Run.Build.Combined,
		Config:   opts.Run.Build.Config,
		RunArgs:  opts.Run.Args.Rest,
	}
	return s
}

// runBuild resolves the project rooted at root, applies configuration
// defaults, and dispatches to the "build" generator.
func runBuild(ctx context.Context, root string, settings core.GeneratorSettings) error {
	if root == "" {
		root = "."
	}
	cfg, err := config.ReadConfigFiles(config.ConfigFiles(root))
	if err != nil {
		return err
	}
	cfg.ApplyTo(&settings)

	project, err := singlepkg.Load(root)
	if err != nil {
		return err
	}

	gen, err := generate.Dispatch("build")
	if err != nil {
		return err
	}
	return gen.Run(ctx, project, settings)
}
