// Package config reads the project-level build configuration that seeds
// core.GeneratorSettings defaults (build type names, default build mode,
// per-compiler binary paths), layered the same way a repo's own config is
// conventionally merged: a repo-committed file, an optional arch-specific
// override, then a machine-local override, each later layer overriding the
// keys it sets and leaving the rest as the earlier layers left them.
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/please-build/gcfg"

	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/logging"
)

var log = logging.Log

// FileName is the repo-committed configuration file's conventional name.
const FileName = ".forgeconfig"

// Configuration is the gcfg-decoded shape of .forgeconfig. Field names
// match the INI section/key they're read from.
type Configuration struct {
	Build struct {
		Type      string
		Mode      string
		Force     bool
		Parallel  bool
		TempBuild bool
	}
	Compiler struct {
		Binary  string
		Frontend string
	}
}

// DefaultConfiguration returns a Configuration with forge's own defaults,
// used as the base every config file layer is read into.
func DefaultConfiguration() *Configuration {
	c := &Configuration{}
	c.Build.Type = string(core.Debug)
	c.Build.Mode = "separate"
	c.Compiler.Binary = "dmd"
	return c
}

// readConfigFile merges filename into config in place. A missing file is
// not an error; a malformed one is, unless it's only a non-fatal gcfg
// warning (an unknown key, say), which is logged and otherwise ignored.
func readConfigFile(config *Configuration, filename string) error {
	log.Debug("Reading config from %s...", filename)
	if err := gcfg.ReadFileInto(config, filename); err != nil && os.IsNotExist(err) {
		return nil
	} else if gcfg.FatalOnly(err) != nil {
		return err
	} else if err != nil {
		log.Warning("Error in config file %s: %s", filename, err)
	}
	return nil
}

// ReadConfigFiles merges every named file into a fresh DefaultConfiguration,
// in order, so later files override earlier ones.
func ReadConfigFiles(filenames []string) (*Configuration, error) {
	config := DefaultConfiguration()
	for _, filename := range filenames {
		if err := readConfigFile(config, filename); err != nil {
			return config, err
		}
	}
	return config, nil
}

// ConfigFiles returns the conventional repo → arch-specific → local-override
// config file chain rooted at repoRoot, in merge order.
func ConfigFiles(repoRoot string) []string {
	return []string{
		filepath.Join(repoRoot, FileName),
		filepath.Join(repoRoot, FileName+"."+runtime.GOOS+"_"+runtime.GOARCH),
		filepath.Join(repoRoot, FileName+".local"),
	}
}

// ApplyTo fills in any zero-valued fields of settings from the config,
// never overwriting a value the caller (or a CLI flag) already set.
func (c *Configuration) ApplyTo(settings *core.GeneratorSettings) {
	if settings.BuildType == "" {
		settings.BuildType = core.BuildType(c.Build.Type)
	}
	if settings.Platform.CompilerBinary == "" {
		settings.Platform.CompilerBinary = c.Compiler.Binary
	}
	if settings.Platform.FrontendVersion == "" {
		settings.Platform.FrontendVersion = c.Compiler.Frontend
	}
	if !settings.Force {
		settings.Force = c.Build.Force
	}
	if !settings.ParallelBuild {
		settings.ParallelBuild = c.Build.Parallel
	}
	if !settings.TempBuild {
		settings.TempBuild = c.Build.TempBuild
	}
	if settings.BuildMode == core.SeparateMode {
		switch c.Build.Mode {
		case "allAtOnce":
			settings.BuildMode = core.AllAtOnceMode
		case "singleFile":
			settings.BuildMode = core.SingleFileMode
		default:
			settings.BuildMode = core.SeparateMode
		}
	}
}
