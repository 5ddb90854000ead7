package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"bin", "obj", ".git", "node_modules", "packages"}, cfg.Scan.ExcludedDirs)
	assert.Equal(t, 10*time.Second, cfg.ProcessTimeout())
	assert.Equal(t, "DesignerFile", cfg.Designer.ItemType)
	assert.Equal(t, "DesignerHostPath", cfg.Designer.HostProperty)
	assert.Positive(t, cfg.Workers())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Designer.ItemType, cfg.Designer.ItemType)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slnmeta.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
evaluate:
  parallelism: 3
  process_timeout_seconds: 30
designer:
  item_type: AvaloniaXaml
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Workers())
	assert.Equal(t, 30*time.Second, cfg.ProcessTimeout())
	assert.Equal(t, "AvaloniaXaml", cfg.Designer.ItemType)
	// Unset sections keep their defaults.
	assert.Equal(t, "DesignerHostPath", cfg.Designer.HostProperty)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slnmeta.yaml")
	require.NoError(t, os.WriteFile(path, []byte("evaluate: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SLNMETA_PARALLELISM", "7")
	t.Setenv("SLNMETA_DESIGNER_ITEM_TYPE", "Page")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Workers())
	assert.Equal(t, "Page", cfg.Designer.ItemType)
}

func TestLoad_TimeoutFloor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slnmeta.yaml")
	require.NoError(t, os.WriteFile(path, []byte("evaluate:\n  process_timeout_seconds: -5\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.ProcessTimeout())
}
