package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lookbusy1344/rv64ic-emulator/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, uint64(1_000_000), cfg.Execution.MaxCycles)
	assert.Equal(t, uint(4096), cfg.Execution.StackSize)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := "[execution]\nmax_cycles = 5\nverbose = true\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), cfg.Execution.MaxCycles)
	assert.True(t, cfg.Execution.Verbose)
	assert.Equal(t, uint(4096), cfg.Execution.StackSize, "fields absent from the file keep their defaults")
}
