package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/from-env.yaml")

	p, err := GetConfigPath("/tmp/explicit.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/explicit.yaml", p)

	p, err = GetConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.yaml", p)

	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", "/home/tester")
	p, err = GetConfigPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".runzero-tools", "config.yaml"), p)
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.LogLevel)
	assert.Equal(t, "jsonl", cfg.InputFormat)
	assert.NotNil(t, cfg.CriticalSets)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	cfg.LogLevel = "debug"
	cfg.SetCriticalSet("pci", []string{"10.0.0.0/24", "10.0.1.0/24"})
	require.NoError(t, SaveConfig(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", loaded.LogLevel)
	assert.Equal(t, "jsonl", loaded.InputFormat)
	assert.Equal(t, []string{"10.0.0.0/24", "10.0.1.0/24"}, loaded.CriticalSets["pci"])
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input_format: json\n"), 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.InputFormat)
	assert.Empty(t, cfg.LogLevel)
	assert.NotNil(t, cfg.CriticalSets)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("critical_sets: [unterminated\n"), 0600))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestCriticalNetworks(t *testing.T) {
	cfg := Default()
	cfg.SetCriticalSet("pci", []string{"10.0.0.0/24"})
	cfg.SetCriticalSet("scada", []string{"172.16.0.0/16", "172.17.0.0/16"})

	nets, err := cfg.CriticalNetworks([]string{"scada", "pci"})
	require.NoError(t, err)
	assert.Equal(t, []string{"172.16.0.0/16", "172.17.0.0/16", "10.0.0.0/24"}, nets)

	_, err = cfg.CriticalNetworks([]string{"missing"})
	assert.ErrorContains(t, err, `"missing"`)

	assert.Equal(t, []string{"pci", "scada"}, cfg.SetNames())
	assert.True(t, cfg.RemoveCriticalSet("pci"))
	assert.False(t, cfg.RemoveCriticalSet("pci"))
	assert.Equal(t, []string{"scada"}, cfg.SetNames())
}
