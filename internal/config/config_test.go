package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	os.Args = append([]string{"cloudpix"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, 10*time.Minute, cfg.UploadTimeout)
	require.Equal(t, 30*time.Second, cfg.PollInterval)
	require.Equal(t, "cloudpix.db", cfg.SessionDBPath)
	require.False(t, cfg.Debug)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	resetArgs(t, "-u", "http://flags:8000", "-i", "5")
	t.Setenv("CLOUDPIX_API_URL", "http://env:8000")
	t.Setenv("CLOUDPIX_POLL_INTERVAL", "90s")

	cfg := LoadConfig()

	require.Equal(t, "http://flags:8000", cfg.APIBaseURL)
	require.Equal(t, 5*time.Second, cfg.PollInterval)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("CLOUDPIX_API_URL", "http://env:8000")
	t.Setenv("CLOUDPIX_SESSION_DB", "/tmp/session.db")
	t.Setenv("CLOUDPIX_DEBUG", "true")

	cfg := LoadConfig()

	require.Equal(t, "http://env:8000", cfg.APIBaseURL)
	require.Equal(t, "/tmp/session.db", cfg.SessionDBPath)
	require.True(t, cfg.Debug)
	// untouched values keep their defaults
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
}
