package compiler

import (
	"context"
	"fmt"
	"path"

	"github.com/forgebuild/forge/internal/core"
)

// dmdLike drives a DMD-grammar compiler (DMD or LDC's dmd-compatible frontend):
// "-of<path>" for output, "-c" for compile-only, "-I<path>" for imports, etc.
type dmdLike struct {
	id string
}

// NewDMDLike returns a Driver for a compiler that accepts DMD's flag grammar.
func NewDMDLike(id string) Driver { return &dmdLike{id: id} }

func (d *dmdLike) ID() string        { return d.id }
func (d *dmdLike) ObjSuffix() string { return hostObjSuffix() }

func (d *dmdLike) PrepareBuildSettings(s *core.BuildSettings, mode Mode) {
	switch mode {
	case CommandLineSeparate, CommandLineSeparateSourceFiles:
		s.Dflags = append(s.Dflags, "-c")
	default:
		// combined compile+link: nothing extra required
	}
	if s.Options.Has(core.SyntaxOnly) {
		s.Dflags = append(s.Dflags, "-o-")
	}
	if s.Options.Has(core.PIC) {
		s.Dflags = append(s.Dflags, "-fPIC")
	}
	if s.Options.Has(core.DebugInfo) {
		s.Dflags = append(s.Dflags, "-g")
	}
	if s.Options.Has(core.Coverage) {
		s.Dflags = append(s.Dflags, "-cov")
	}
	if s.Options.Has(core.UnitTest) {
		s.Dflags = append(s.Dflags, "-unittest")
	}
	for _, v := range s.Versions {
		s.Dflags = append(s.Dflags, "-version="+v)
	}
	for _, v := range s.DebugVersions {
		s.Dflags = append(s.Dflags, "-debug="+v)
	}
	for _, ip := range s.ImportPaths {
		s.Dflags = append(s.Dflags, "-I"+ip)
	}
	for _, sip := range s.StringImportPaths {
		s.Dflags = append(s.Dflags, "-J"+sip)
	}
}

func (d *dmdLike) SetTarget(s *core.BuildSettings, platform core.Platform, objPath string) {
	out := objPath
	if out == "" {
		out = path.Join(s.TargetPath, s.TargetName)
	}
	s.Dflags = append(s.Dflags, "-of"+out)
}

func (d *dmdLike) Invoke(ctx context.Context, target string, s *core.BuildSettings, platform core.Platform, cb OutputFunc) error {
	args := append(append([]string(nil), s.Dflags...), s.SourceFiles...)
	return runCaptured(platform.CompilerBinary, args, func(status int, out string) error {
		return &core.CompileFailed{Target: target, Status: status, Output: out}
	}, cb)
}

func (d *dmdLike) InvokeLinker(ctx context.Context, target string, s *core.BuildSettings, platform core.Platform, objs []string, cb OutputFunc) error {
	args := append(append([]string(nil), s.Lflags...), objs...)
	args = append(args, fmt.Sprintf("-of%s", path.Join(s.TargetPath, s.TargetName)))
	return runCaptured(platform.CompilerBinary, args, func(status int, out string) error {
		return &core.LinkFailed{Target: target, Status: status, Output: out}
	}, cb)
}

func (d *dmdLike) ExtractBuildOptions(s *core.BuildSettings) core.Options {
	var opts core.Options
	kept := s.Dflags[:0]
	for _, f := range s.Dflags {
		switch f {
		case "-unittest":
			opts |= core.UnitTest
		case "-cov":
			opts |= core.Coverage
		case "-g":
			opts |= core.DebugInfo
		case "-fPIC":
			opts |= core.PIC
		case "-o-":
			opts |= core.SyntaxOnly
		default:
			kept = append(kept, f)
		}
	}
	s.Dflags = kept
	return opts
}
