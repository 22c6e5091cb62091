// Package compiler abstracts over a native compiler toolchain: translating
// build settings into command-line arguments, setting the output target, and
// invoking the compile and link phases. Concrete drivers are selected by
// compiler-id string outside this core.
package compiler

import (
	"bytes"
	"context"
	"runtime"

	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/logging"
)

var log = logging.Log

// Mode is an invocation style passed to PrepareBuildSettings.
type Mode int

const (
	// CommandLine normalizes flags for a single combined compile+link invocation.
	CommandLine Mode = iota
	// CommandLineSeparate normalizes flags for a compile-then-link-separately invocation.
	CommandLineSeparate
	// CommandLineSeparateSourceFiles is CommandLineSeparate but additionally
	// expects each source file to be compiled to its own object (singleFile mode).
	CommandLineSeparateSourceFiles
)

// OutputFunc receives the captured combined stdout+stderr of a compile or
// link invocation when the caller supplied one instead of treating failure as fatal.
type OutputFunc func(status int, output string)

// Driver is the capability set a compiler backend must implement.
type Driver interface {
	// ID is the compiler-id string this driver is registered under.
	ID() string
	// ObjSuffix is the object-file extension this driver's linker expects ("obj" or "o", sans dot).
	ObjSuffix() string
	// PrepareBuildSettings normalizes flags in settings for the given invocation style.
	PrepareBuildSettings(settings *core.BuildSettings, mode Mode)
	// SetTarget injects the output-path flag appropriate for this compiler.
	// objPath is non-empty only when compiling to an intermediate object rather than the final target.
	SetTarget(settings *core.BuildSettings, platform core.Platform, objPath string)
	// Invoke runs one compile. Non-zero exit is reported via cb if non-nil,
	// otherwise returned as a *core.CompileFailed error.
	Invoke(ctx context.Context, target string, settings *core.BuildSettings, platform core.Platform, cb OutputFunc) error
	// InvokeLinker links pre-produced object files. Failure policy matches Invoke.
	InvokeLinker(ctx context.Context, target string, settings *core.BuildSettings, platform core.Platform, objs []string, cb OutputFunc) error
	// ExtractBuildOptions reverse-folds known dflags in settings back into its Options bitmask.
	ExtractBuildOptions(settings *core.BuildSettings) core.Options
}

var registry = map[string]Driver{}

// Register adds a driver to the registry under its own ID.
func Register(d Driver) { registry[d.ID()] = d }

// Lookup resolves a compiler-id string to its registered Driver.
func Lookup(id string) (Driver, bool) {
	d, ok := registry[id]
	return d, ok
}

func init() {
	Register(NewDMDLike("dmd"))
	Register(NewDMDLike("ldc2"))
	Register(NewGCCLike("gdc"))
}

// runCaptured runs cmd, returning combined output. If cb is non-nil it
// receives (status, output) and the function returns nil even on failure;
// otherwise a typed error is returned.
func runCaptured(cmdName string, args []string, makeErr func(status int, output string) error, cb OutputFunc) error {
	cmd := execCommand(cmdName, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	status := 0
	if err != nil {
		status = exitStatus(err)
	}
	if cb != nil {
		cb(status, buf.String())
		return nil
	}
	if err != nil {
		return makeErr(status, buf.String())
	}
	return nil
}

// hostObjSuffix returns the platform-conventional object suffix, used as the
// fallback for drivers that don't hardcode one.
func hostObjSuffix() string {
	if runtime.GOOS == "windows" {
		return "obj"
	}
	return "o"
}
