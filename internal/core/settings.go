package core

// BuildSettings is the merged, mutable bag of compile/link inputs for one
// target. Instances are copied (never aliased) before being handed to the
// build executor, so post-build mutation in one pipeline stage can't leak
// back into plan state.
type BuildSettings struct {
	TargetType TargetType
	TargetPath string
	TargetName string

	SourceFiles       []string
	ImportFiles       []string
	StringImportFiles []string
	Versions          []string
	DebugVersions     []string
	Dflags            []string
	Lflags            []string
	Libs              []string
	ImportPaths       []string
	StringImportPaths []string
	CopyFiles         []string

	PreBuildCommands    []string
	PostBuildCommands   []string
	PreGenerateCommands []string
	PostGenerateCommands []string

	Options Options

	MainSourceFile   string
	WorkingDirectory string
}

// NewBuildSettings returns a zero-value settings bag with TargetType set to Autodetect.
func NewBuildSettings() *BuildSettings {
	return &BuildSettings{TargetType: Autodetect}
}

// Clone returns a deep copy so the original can't be mutated through the copy.
func (s *BuildSettings) Clone() *BuildSettings {
	if s == nil {
		return nil
	}
	c := *s
	c.SourceFiles = append([]string(nil), s.SourceFiles...)
	c.ImportFiles = append([]string(nil), s.ImportFiles...)
	c.StringImportFiles = append([]string(nil), s.StringImportFiles...)
	c.Versions = append([]string(nil), s.Versions...)
	c.DebugVersions = append([]string(nil), s.DebugVersions...)
	c.Dflags = append([]string(nil), s.Dflags...)
	c.Lflags = append([]string(nil), s.Lflags...)
	c.Libs = append([]string(nil), s.Libs...)
	c.ImportPaths = append([]string(nil), s.ImportPaths...)
	c.StringImportPaths = append([]string(nil), s.StringImportPaths...)
	c.CopyFiles = append([]string(nil), s.CopyFiles...)
	c.PreBuildCommands = append([]string(nil), s.PreBuildCommands...)
	c.PostBuildCommands = append([]string(nil), s.PostBuildCommands...)
	c.PreGenerateCommands = append([]string(nil), s.PreGenerateCommands...)
	c.PostGenerateCommands = append([]string(nil), s.PostGenerateCommands...)
	return &c
}

// AppendUnique appends values from src to *dst that are not already present, preserving order.
func AppendUnique(dst *[]string, src []string) {
	seen := make(map[string]bool, len(*dst))
	for _, v := range *dst {
		seen[v] = true
	}
	for _, v := range src {
		if !seen[v] {
			*dst = append(*dst, v)
			seen[v] = true
		}
	}
}

// PrependUnique prepends values from src to *dst that are not already present, preserving src's order.
func PrependUnique(dst *[]string, src []string) {
	existing := make(map[string]bool, len(*dst))
	for _, v := range *dst {
		existing[v] = true
	}
	fresh := make([]string, 0, len(src))
	for _, v := range src {
		if !existing[v] {
			fresh = append(fresh, v)
			existing[v] = true
		}
	}
	if len(fresh) == 0 {
		return
	}
	*dst = append(fresh, *dst...)
}

// FoldInto merges the ABI-relevant subset of src into dst (upward
// inheritance). Order matters: src's entries are appended after dst's existing ones.
func (dst *BuildSettings) FoldInto(src *BuildSettings) {
	AppendUnique(&dst.ImportPaths, src.ImportPaths)
	AppendUnique(&dst.StringImportPaths, src.StringImportPaths)
	AppendUnique(&dst.Versions, src.Versions)
	AppendUnique(&dst.DebugVersions, src.DebugVersions)
	AppendUnique(&dst.Libs, src.Libs)
	AppendUnique(&dst.Dflags, src.Dflags)
	AppendUnique(&dst.Lflags, src.Lflags)
}

// AllInputFiles returns every file that should feed the up-to-date check's
// mtime comparison: sources, imports and string imports.
func (s *BuildSettings) AllInputFiles() []string {
	out := make([]string, 0, len(s.SourceFiles)+len(s.ImportFiles)+len(s.StringImportFiles))
	out = append(out, s.SourceFiles...)
	out = append(out, s.ImportFiles...)
	out = append(out, s.StringImportFiles...)
	return out
}
