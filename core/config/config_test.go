package config_test

import (
	"testing"

	"github.com/Spritualkb/xingrin/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Load from an empty directory so no .env file interferes.
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "xingrin", cfg.Database.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "xingrin", cfg.Storage.Bucket)
	assert.Equal(t, "/opt/xingrin/fingerprints", cfg.Fingerprints.BasePath)
	assert.False(t, cfg.Fingerprints.MirrorEnabled)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("FINGERPRINTS_BASE_PATH", "/tmp/fp")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "/tmp/fp", cfg.Fingerprints.BasePath)
}
