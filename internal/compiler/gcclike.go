package compiler

import (
	"context"
	"path"

	"github.com/forgebuild/forge/internal/core"
)

// gccLike drives a POSIX-flag-grammar compiler (GDC): "-o <path>" for
// output, "-c" for compile-only, "-I<path>" for imports. It exists alongside
// dmdLike to prove the Driver interface genuinely abstracts over more than
// one compiler flag grammar.
type gccLike struct {
	id string
}

// NewGCCLike returns a Driver for a compiler that accepts GCC's flag grammar.
func NewGCCLike(id string) Driver { return &gccLike{id: id} }

func (d *gccLike) ID() string        { return d.id }
func (d *gccLike) ObjSuffix() string { return hostObjSuffix() }

func (d *gccLike) PrepareBuildSettings(s *core.BuildSettings, mode Mode) {
	if mode == CommandLineSeparate || mode == CommandLineSeparateSourceFiles {
		s.Dflags = append(s.Dflags, "-c")
	}
	if s.Options.Has(core.SyntaxOnly) {
		s.Dflags = append(s.Dflags, "-fsyntax-only")
	}
	if s.Options.Has(core.PIC) {
		s.Dflags = append(s.Dflags, "-fPIC")
	}
	if s.Options.Has(core.DebugInfo) {
		s.Dflags = append(s.Dflags, "-g")
	}
	if s.Options.Has(core.Coverage) {
		s.Dflags = append(s.Dflags, "-fprofile-arcs", "-ftest-coverage")
	}
	if s.Options.Has(core.UnitTest) {
		s.Dflags = append(s.Dflags, "-funittest")
	}
	for _, v := range s.Versions {
		s.Dflags = append(s.Dflags, "-fversion="+v)
	}
	for _, v := range s.DebugVersions {
		s.Dflags = append(s.Dflags, "-fdebug="+v)
	}
	for _, ip := range s.ImportPaths {
		s.Dflags = append(s.Dflags, "-I"+ip)
	}
	for _, sip := range s.StringImportPaths {
		s.Dflags = append(s.Dflags, "-J"+sip)
	}
}

func (d *gccLike) SetTarget(s *core.BuildSettings, platform core.Platform, objPath string) {
	out := objPath
	if out == "" {
		out = path.Join(s.TargetPath, s.TargetName)
	}
	s.Dflags = append(s.Dflags, "-o", out)
}

func (d *gccLike) Invoke(ctx context.Context, target string, s *core.BuildSettings, platform core.Platform, cb OutputFunc) error {
	args := append(append([]string(nil), s.Dflags...), s.SourceFiles...)
	return runCaptured(platform.CompilerBinary, args, func(status int, out string) error {
		return &core.CompileFailed{Target: target, Status: status, Output: out}
	}, cb)
}

func (d *gccLike) InvokeLinker(ctx context.Context, target string, s *core.BuildSettings, platform core.Platform, objs []string, cb OutputFunc) error {
	args := append(append([]string(nil), s.Lflags...), objs...)
	args = append(args, "-o", path.Join(s.TargetPath, s.TargetName))
	return runCaptured(platform.CompilerBinary, args, func(status int, out string) error {
		return &core.LinkFailed{Target: target, Status: status, Output: out}
	}, cb)
}

func (d *gccLike) ExtractBuildOptions(s *core.BuildSettings) core.Options {
	var opts core.Options
	kept := s.Dflags[:0]
	for _, f := range s.Dflags {
		switch f {
		case "-funittest":
			opts |= core.UnitTest
		case "-fprofile-arcs", "-ftest-coverage":
			opts |= core.Coverage
		case "-g":
			opts |= core.DebugInfo
		case "-fPIC":
			opts |= core.PIC
		case "-fsyntax-only":
			opts |= core.SyntaxOnly
		default:
			kept = append(kept, f)
		}
	}
	s.Dflags = kept
	return opts
}
