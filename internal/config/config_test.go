package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Colorize)
	assert.Empty(t, cfg.TypeAliases)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesColorizeAndTypeAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cfront.yaml")
	content := "colorize: false\ntype_aliases:\n  size_t: int\n  real: double\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Colorize)
	assert.Equal(t, "int", cfg.TypeAliases["size_t"])
	assert.Equal(t, "double", cfg.TypeAliases["real"])
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cfront.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colorize: [this is not a bool"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
