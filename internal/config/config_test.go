package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.CardSwap.Interval)
	assert.Equal(t, "elastic", cfg.CardSwap.Easing)
	assert.Equal(t, 500.0, cfg.CardSwap.Width)
	assert.True(t, cfg.CardSwap.PauseOnHover)
	assert.False(t, cfg.SMTP.Configured())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("CARDSWAP_INTERVAL", "8s")
	t.Setenv("CARDSWAP_PRESET", "linear-fast")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.SMTP.Configured())
	assert.Equal(t, 8*time.Second, cfg.CardSwap.Interval)
	assert.Equal(t, "linear-fast", cfg.CardSwap.Easing)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging:
  format: json
cardswap:
  skew: 3
  pause_on_hover: false
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 3.0, cfg.CardSwap.Skew)
	assert.False(t, cfg.CardSwap.PauseOnHover)
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("CARDSWAP_PRESET", "wobbly")
	_, err := Load("")
	assert.ErrorContains(t, err, "preset")
}
