package core

// TargetInfo is the per-binary-target descriptor produced by planning. It
// holds the root Package of the target, every Package folded into it by
// source absorption, the chosen configuration, merged BuildSettings, the
// names of the binary targets it depends on directly, and the link-order
// list of binary-target dependencies (LinkDependencies).
type TargetInfo struct {
	Pack     Package
	Packages []Package // pack plus every absorbed (source-library) dependency

	Config        string
	BuildSettings *BuildSettings

	// Dependencies names the non-executable binary targets this target depends
	// on directly, or through a package absorbed into it; dependencies of
	// those binary targets are not included.
	Dependencies []string
	// LinkDependencies is the topologically ordered set of binary-target
	// dependency names: a dependency always appears after every target that
	// depends on it.
	LinkDependencies []string

	// Cached marks whether the most recent build of this target was served from cache.
	Cached bool
}

// Name returns the root package's name, the map key this target is stored under.
func (t *TargetInfo) Name() string {
	return t.Pack.Name()
}

// AddDependency records name as a dependency if not already present.
func (t *TargetInfo) AddDependency(name string) {
	for _, d := range t.Dependencies {
		if d == name {
			return
		}
	}
	t.Dependencies = append(t.Dependencies, name)
}

// AddLinkDependency appends name to LinkDependencies if not already present.
func (t *TargetInfo) AddLinkDependency(name string) {
	for _, d := range t.LinkDependencies {
		if d == name {
			return
		}
	}
	t.LinkDependencies = append(t.LinkDependencies, name)
}

// IsBinary reports whether t's settled target type produces a built/linked artifact.
func (t *TargetInfo) IsBinary() bool {
	switch t.BuildSettings.TargetType {
	case Executable, StaticLibrary, DynamicLibrary:
		return true
	default:
		return false
	}
}
