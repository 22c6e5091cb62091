package exec

import (
	"bytes"
	"context"
	osexec "os/exec"
	"path/filepath"

	"github.com/forgebuild/forge/internal/core"
)

// rdmdBuild implements the rdmd override: rdmd resolves its own
// dependency graph and recompiles only what changed, so forge hands it the
// main source file plus the target's import/version flags and lets it drive
// the entire compile in one process, skipping forge's own cache and
// dependency-ordered build entirely.
func (e *Executor) rdmdBuild(ctx context.Context, target *core.TargetInfo) error {
	bs := target.BuildSettings
	args := []string{"--compiler=" + e.settings.Platform.CompilerBinary}
	args = append(args, "-of"+filepath.Join(bs.TargetPath, bs.TargetName))
	for _, ip := range bs.ImportPaths {
		args = append(args, "-I"+ip)
	}
	for _, sip := range bs.StringImportPaths {
		args = append(args, "-J"+sip)
	}
	for _, v := range bs.Versions {
		args = append(args, "-version="+v)
	}
	for _, v := range bs.DebugVersions {
		args = append(args, "-debug="+v)
	}
	args = append(args, bs.Dflags...)
	args = append(args, bs.MainSourceFile)

	cmd := core.ExecCommand("rdmd", args...)
	cmd.Dir = target.Pack.Path()
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	if err := cmd.Run(); err != nil {
		status := 0
		if exitErr, ok := err.(*osexec.ExitError); ok {
			status = exitErr.ExitCode()
		}
		return &core.CompileFailed{Target: target.Name(), Status: status, Output: buf.String()}
	}
	target.Cached = false
	return nil
}
