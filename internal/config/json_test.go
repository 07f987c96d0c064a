package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJson_OverlaysSelectedFields(t *testing.T) {
	path := writeConfigFile(t, `{
		"api_base_url": "https://api.example.com",
		"poll_interval": "45s",
		"debug": true
	}`)
	resetArgs(t, "-c", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	require.Equal(t, 45*time.Second, cfg.PollInterval)
	require.True(t, cfg.Debug)
	// fields absent from the file keep their defaults
	require.Equal(t, "cloudpix.db", cfg.SessionDBPath)
}

func TestParseJson_NoFileSelected(t *testing.T) {
	resetArgs(t)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	resetArgs(t, "-c", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	require.Panics(t, func() { parseJson(cfg) })
}
