package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Tests point getConfigDir at a temp directory via XDG_CONFIG_HOME.
// Overriding HOME alone is not enough because os.UserHomeDir reads
// USERPROFILE on Windows.

func TestInitConfigWritesSampleFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := InitConfig(false)
	require.NoError(t, err)
	require.FileExists(t, path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, section := range []string{
		"# DMS Configuration File",
		"logging:",
		"telemetry:",
		"metrics:",
		"server:",
		"metadata:",
		"scheduler:",
	} {
		assert.Contains(t, string(content), section)
	}

	var cfg Config
	require.NoError(t, yaml.Unmarshal(content, &cfg), "sample config must be valid YAML")
}

func TestInitConfigRefusesOverwrite(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := InitConfig(false)
	require.NoError(t, err)

	_, err = InitConfig(false)
	require.ErrorContains(t, err, "already exists")
}

func TestInitConfigForceOverwrites(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := InitConfig(false)
	require.NoError(t, err)

	_, err = InitConfig(true)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestInitConfigToPathCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom", "config.yaml")

	require.NoError(t, InitConfigToPath(path, false))
	require.FileExists(t, path)

	require.ErrorContains(t, InitConfigToPath(path, false), "already exists")
}

// The sample file must load and validate like any user config, and its
// values must agree with the built-in defaults.
func TestSampleConfigMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, InitConfigToPath(path, false))

	loaded, err := Load(path)
	require.NoError(t, err)

	defaults := GetDefaultConfig()
	assert.Equal(t, "INFO", loaded.Logging.Level)
	assert.Equal(t, 8000, loaded.Server.Port)
	assert.Equal(t, "redis", loaded.Metadata.Backend)
	assert.Equal(t, "round_robin", loaded.Scheduler.Policy)
	assert.Equal(t, defaults.Server.ReadTimeout, loaded.Server.ReadTimeout)
	assert.Equal(t, defaults.Metadata.TTLDays, loaded.Metadata.TTLDays)
	assert.Equal(t, defaults.Scheduler.AssignmentWait, loaded.Scheduler.AssignmentWait)
}
