package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanecode/cymod/internal/config"
	"github.com/alanecode/cymod/pkg/cymod"
)

// resetLoadFlags restores the package-level flag values after a test.
func resetLoadFlags(t *testing.T) {
	t.Helper()
	saved := loadFlags
	t.Cleanup(func() { loadFlags = saved })
	loadFlags = loadFlagValues{timeout: 3 * time.Minute}
}

func TestBuildLoadConfig_FlagsWinOverEnv(t *testing.T) {
	resetLoadFlags(t)
	t.Setenv("NEO4J_HOST", "env-host")
	t.Setenv("NEO4J_USERNAME", "env-user")

	loadFlags.host = "flag-host"
	loadFlags.port = 7690
	loadFlags.database = "models"

	cfg, err := buildLoadConfig(loadCmd, t.TempDir(), false)
	require.NoError(t, err)

	assert.Equal(t, "flag-host", cfg.Host)
	assert.Equal(t, 7690, cfg.Port)
	assert.Equal(t, "env-user", cfg.Username)
	assert.Equal(t, "models", cfg.Database)
	assert.Equal(t, 3*time.Minute, cfg.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestBuildLoadConfig_ProjectFileFillsGaps(t *testing.T) {
	resetLoadFlags(t)
	root := t.TempDir()
	content := `
host: yaml-host
suffix: _w
parameters:
  owner: alice
`
	require.NoError(t, os.WriteFile(filepath.Join(root, config.ProjectFileName), []byte(content), 0o644))

	cfg, err := buildLoadConfig(loadCmd, root, false)
	require.NoError(t, err)

	assert.Equal(t, "yaml-host", cfg.Host)
	assert.Equal(t, "_w", cfg.Suffix)
	assert.Equal(t, cymod.DefaultUsername, cfg.Username)
	assert.Equal(t, map[string]any{"owner": "alice"}, cfg.ProjectParameters)
}

func TestBuildLoadConfig_SuffixFlagWinsOverProject(t *testing.T) {
	resetLoadFlags(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.ProjectFileName), []byte("suffix: _w\n"), 0o644))

	loadFlags.suffix = "_t"

	cfg, err := buildLoadConfig(loadCmd, root, false)
	require.NoError(t, err)
	assert.Equal(t, "_t", cfg.Suffix)
}

func TestBuildLoadConfig_CLIParamsParsed(t *testing.T) {
	resetLoadFlags(t)
	loadFlags.params = []string{"model_ID=mod-1", "owner=alice"}

	cfg, err := buildLoadConfig(loadCmd, t.TempDir(), false)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"model_ID": "mod-1", "owner": "alice"}, cfg.Parameters)
}

func TestBuildLoadConfig_InvalidParamPair(t *testing.T) {
	resetLoadFlags(t)
	loadFlags.params = []string{"noequals"}

	_, err := buildLoadConfig(loadCmd, t.TempDir(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cymod.ErrInvalidConfig))
}

func TestBuildLoadConfig_MalformedProjectFile(t *testing.T) {
	resetLoadFlags(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, config.ProjectFileName), []byte("host: [unclosed"), 0o644))

	_, err := buildLoadConfig(loadCmd, root, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cymod.ErrInvalidConfig))
}

func TestBuildLoadConfig_ClearFlagsCarriedThrough(t *testing.T) {
	resetLoadFlags(t)
	loadFlags.clear = true
	loadFlags.force = true

	cfg, err := buildLoadConfig(loadCmd, t.TempDir(), false)
	require.NoError(t, err)
	assert.True(t, cfg.ClearExisting)
	assert.False(t, cfg.ClearMatching)
	assert.True(t, cfg.Force)
}
