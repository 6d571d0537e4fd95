package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() loads from .nova/config.yml when present
// - Environment variables override config file values
// - Load() returns error for invalid configuration values
// - Validate() accepts valid configuration
// - Validate() rejects non-positive max_files and max_nodes
// - Validate() rejects negative workers
// - Validate() rejects malformed ignore patterns
// - Validate() rejects unknown languages in the priority list
// - Validate() returns multiple errors for multiple invalid fields

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	require.NoError(t, Validate(cfg))

	assert.Contains(t, cfg.Scanner.SkipDirs, "node_modules")
	assert.Contains(t, cfg.Scanner.SkipDirs, ".git")
	assert.Equal(t, 1000, cfg.Scanner.MaxFiles)
	assert.Equal(t, 0, cfg.Scanner.Workers)
	assert.Equal(t, 200, cfg.Graph.MaxNodes)
	assert.Equal(t, []string{"cpp", "c", "go", "typescript", "javascript", "python"}, cfg.Languages.Priority)
}

func TestLoad_UsesDefaultsWithoutConfigFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, Default().Scanner.MaxFiles, cfg.Scanner.MaxFiles)
	assert.Equal(t, Default().Graph.MaxNodes, cfg.Graph.MaxNodes)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".nova"), 0o755))

	content := []byte("scanner:\n  max_files: 50\ngraph:\n  max_nodes: 25\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".nova", "config.yml"), content, 0o644))

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Scanner.MaxFiles)
	assert.Equal(t, 25, cfg.Graph.MaxNodes)
	// untouched keys keep their defaults
	assert.Contains(t, cfg.Scanner.SkipDirs, "node_modules")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".nova"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".nova", "config.yml"), []byte("graph:\n  max_nodes: 25\n"), 0o644))

	t.Setenv("NOVA_GRAPH_MAX_NODES", "75")

	cfg, err := NewLoader(dir).Load()
	require.NoError(t, err)

	assert.Equal(t, 75, cfg.Graph.MaxNodes)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".nova"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".nova", "config.yml"), []byte("scanner:\n  max_files: -1\n"), 0o644))

	_, err := NewLoader(dir).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("rejects zero max_files", func(t *testing.T) {
		cfg := Default()
		cfg.Scanner.MaxFiles = 0
		assert.ErrorIs(t, Validate(cfg), ErrInvalidLimit)
	})

	t.Run("rejects negative workers", func(t *testing.T) {
		cfg := Default()
		cfg.Scanner.Workers = -2
		assert.ErrorIs(t, Validate(cfg), ErrInvalidLimit)
	})

	t.Run("rejects zero max_nodes", func(t *testing.T) {
		cfg := Default()
		cfg.Graph.MaxNodes = 0
		assert.ErrorIs(t, Validate(cfg), ErrInvalidLimit)
	})

	t.Run("rejects malformed ignore pattern", func(t *testing.T) {
		cfg := Default()
		cfg.Scanner.Ignore = append(cfg.Scanner.Ignore, "[")
		assert.ErrorIs(t, Validate(cfg), ErrInvalidPattern)
	})

	t.Run("rejects unknown language", func(t *testing.T) {
		cfg := Default()
		cfg.Languages.Priority = []string{"cpp", "fortran"}
		assert.ErrorIs(t, Validate(cfg), ErrInvalidPriority)
	})

	t.Run("collects multiple errors", func(t *testing.T) {
		cfg := Default()
		cfg.Scanner.MaxFiles = -1
		cfg.Graph.MaxNodes = -1
		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_files")
		assert.Contains(t, err.Error(), "max_nodes")
	})
}
