package singlepkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAutodetectsSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.d"), []byte("void main(){}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# hi"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0775))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "lib.d"), []byte("module lib;"), 0644))

	project, err := Load(dir)
	require.NoError(t, err)

	root := project.Root()
	assert.Equal(t, filepath.Base(dir), root.Name())

	bs, err := root.Settings("")
	require.NoError(t, err)
	assert.Len(t, bs.SourceFiles, 2)
	assert.Contains(t, bs.SourceFiles, filepath.Join(dir, "main.d"))
	assert.Contains(t, bs.SourceFiles, filepath.Join(dir, "sub", "lib.d"))
	assert.Equal(t, []string{dir}, bs.ImportPaths)
	assert.NotEmpty(t, bs.MainSourceFile)
}

func TestLoadWithNoSourcesYieldsEmptySettings(t *testing.T) {
	dir := t.TempDir()
	project, err := Load(dir)
	require.NoError(t, err)

	bs, err := project.Root().Settings("")
	require.NoError(t, err)
	assert.Empty(t, bs.SourceFiles)
	assert.Empty(t, bs.MainSourceFile)
}

func TestProjectTopologicalAndPackageByName(t *testing.T) {
	dir := t.TempDir()
	project, err := Load(dir)
	require.NoError(t, err)

	assert.Len(t, project.Topological(), 1)
	assert.False(t, project.Selected(project.Root(), "anything"))

	pkg, ok := project.PackageByName(project.Root().Name())
	assert.True(t, ok)
	assert.Equal(t, project.Root(), pkg)

	_, ok = project.PackageByName("nonexistent")
	assert.False(t, ok)
}
