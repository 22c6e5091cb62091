// Package core defines the data model shared by the planner, executor and
// watch loop: packages, build settings, target descriptors and generator
// settings. The core never mutates a Package; it is supplied by an external
// resolver and treated as read-only throughout planning and building.
package core

import "fmt"

// TargetType is the kind of artifact a target produces.
type TargetType int

// The target types a recipe can declare, and that planning can resolve to.
const (
	Autodetect TargetType = iota
	None
	Executable
	Library
	StaticLibrary
	DynamicLibrary
	SourceLibrary
	Object
)

func (t TargetType) String() string {
	switch t {
	case Autodetect:
		return "autodetect"
	case None:
		return "none"
	case Executable:
		return "executable"
	case Library:
		return "library"
	case StaticLibrary:
		return "staticLibrary"
	case DynamicLibrary:
		return "dynamicLibrary"
	case SourceLibrary:
		return "sourceLibrary"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Options is a bitmask of compiler-relevant switches.
type Options uint32

// Individual option bits. Bits marked "inheritable" are copied from a parent
// target down to its dependencies during the planner's downward-inheritance
// pass (plan.go step 6).
const (
	SyntaxOnly    Options = 1 << iota // compile-check only, never link
	PIC                               // position-independent code; inheritable
	UnitTest                          // unittest build; inheritable
	Coverage                          // code-coverage instrumentation; inheritable
	DebugInfo                         // emit debug symbols; inheritable
	Optimize                          // optimizations on
	Warnings                          // enable warnings-as-errors
	Verbose                           // pass verbose flag to the compiler
)

// Inheritable is the subset of Options copied from parent to child during
// downward inheritance.
const Inheritable = PIC | UnitTest | Coverage | DebugInfo

// Has reports whether all bits in mask are set.
func (o Options) Has(mask Options) bool { return o&mask == mask }

// BuildMode selects how the compiler driver is invoked across a target's sources.
type BuildMode int

const (
	// SeparateMode compiles all sources to one object then links it (default, DMD-like compilers).
	SeparateMode BuildMode = iota
	// AllAtOnceMode invokes the compiler once over every source and link input together.
	AllAtOnceMode
	// SingleFileMode compiles each source to its own object, optionally in parallel, then links.
	SingleFileMode
)

// BuildType names a named bundle of build-type-specific settings, e.g. "debug", "release", "unittest-cov".
type BuildType string

// Well-known build types the planner folds in during step 11.
const (
	Debug       BuildType = "debug"
	Release     BuildType = "release"
	UnittestCov BuildType = "unittest-cov"
)

// Platform is the resolved platform tuple used to derive build-IDs and to
// select compiler output-flag conventions.
type Platform struct {
	Tags            []string // platform tags, e.g. ["posix", "linux"]
	ArchTags        []string // architecture tags, e.g. ["x86_64"]
	OS              string
	Arch            string
	CompilerID      string
	CompilerBinary  string
	FrontendVersion string
}

// String returns the "<os>-<arch>" form used in build-IDs.
func (p Platform) String() string {
	return fmt.Sprintf("%s-%s", p.OS, p.Arch)
}

// DependencySpec is one entry of a Package's dependency map: a version
// constraint plus whether the dependency is optional.
type DependencySpec struct {
	Constraint string
	Optional   bool
}

// BuildSettingsProducer yields the BuildSettings for a package under a named
// configuration. Supplied by the resolved recipe; the core never parses
// recipes itself.
type BuildSettingsProducer func(config string) (*BuildSettings, error)

// Package is the external, read-only unit the planner walks. It is never
// mutated by this core.
type Package interface {
	Name() string
	Version() string
	Path() string
	RecipePath() string
	Dependencies() map[string]DependencySpec
	Settings(config string) (*BuildSettings, error)
	DefaultConfig() string
}

// Project supplies the resolved dependency graph: the root package, a
// topological visitation order (roots first), and per-package selected
// versions/configs. Implemented by the external resolver; assumed acyclic.
type Project interface {
	Root() Package
	// Topological returns every reachable package in topological order, root first.
	Topological() []Package
	// Selected reports whether the named optional dependency of pkg was selected by the resolver.
	Selected(pkg Package, depName string) bool
	// PackageByName resolves a dependency name to its Package.
	PackageByName(name string) (Package, bool)
	// SelectedVersionsManifest is the path to the file recording the resolver's version choices,
	// used as an extra up-to-date input for the root target.
	SelectedVersionsManifest() string
}
