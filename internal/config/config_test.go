package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebuild/forge/internal/core"
)

func TestDefaultConfigurationValues(t *testing.T) {
	c := DefaultConfiguration()
	assert.Equal(t, string(core.Debug), c.Build.Type)
	assert.Equal(t, "separate", c.Build.Mode)
	assert.Equal(t, "dmd", c.Compiler.Binary)
}

func TestReadConfigFilesMissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	c, err := ReadConfigFiles(ConfigFiles(dir))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfiguration(), c)
}

func TestReadConfigFilesLayersOverrides(t *testing.T) {
	dir := t.TempDir()
	base := "[build]\ntype = release\nmode = allAtOnce\n\n[compiler]\nbinary = ldc2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(base), 0644))

	local := "[compiler]\nbinary = gdc\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".local"), []byte(local), 0644))

	c, err := ReadConfigFiles(ConfigFiles(dir))
	require.NoError(t, err)
	assert.Equal(t, "release", c.Build.Type)
	assert.Equal(t, "allAtOnce", c.Build.Mode)
	assert.Equal(t, "gdc", c.Compiler.Binary, "the local override file wins over the repo-committed one")
}

func TestApplyToFillsOnlyZeroValuedFields(t *testing.T) {
	c := DefaultConfiguration()
	c.Build.Type = "release"
	c.Build.Mode = "singleFile"
	c.Compiler.Binary = "ldc2"

	settings := core.GeneratorSettings{
		BuildType: core.UnittestCov,
	}
	c.ApplyTo(&settings)

	assert.Equal(t, core.UnittestCov, settings.BuildType, "a caller-set field must not be overwritten")
	assert.Equal(t, "ldc2", settings.Platform.CompilerBinary)
	assert.Equal(t, core.SingleFileMode, settings.BuildMode)
}

func TestApplyToDefaultsBuildModeToSeparate(t *testing.T) {
	c := DefaultConfiguration()
	var settings core.GeneratorSettings
	c.ApplyTo(&settings)
	assert.Equal(t, core.SeparateMode, settings.BuildMode)
}

func TestConfigFilesOrder(t *testing.T) {
	files := ConfigFiles("/repo")
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join("/repo", ".forgeconfig"), files[0])
	assert.Equal(t, filepath.Join("/repo", ".forgeconfig.local"), files[2])
}
