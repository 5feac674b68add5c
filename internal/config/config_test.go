package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigHonorsDataDirOverride(t *testing.T) {
	base := filepath.Join(t.TempDir(), "data")
	t.Setenv("HEALTH_DATA_DIR", base)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, base, cfg.DataDir)
	assert.Equal(t, filepath.Join(base, "health_records.db"), cfg.DatabaseFile)
	assert.Equal(t, filepath.Join(base, "session.json"), cfg.SessionFile)
	assert.Equal(t, filepath.Join(base, "qrcodes"), cfg.ArtifactDir)
	assert.Equal(t, filepath.Join(base, "diagnostic.log"), cfg.DiagnosticLog)

	// The data directory is created eagerly.
	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadConfigFileOverrides(t *testing.T) {
	t.Setenv("HEALTH_DATA_DIR", t.TempDir())
	t.Setenv("HEALTH_DB_FILE", "custom.db")
	t.Setenv("HEALTH_SESSION_FILE", "who.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "custom.db", filepath.Base(cfg.DatabaseFile))
	assert.Equal(t, "who.json", filepath.Base(cfg.SessionFile))
}
