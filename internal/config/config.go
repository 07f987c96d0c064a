package config

import "time"

// Config holds runtime settings for the CloudPix consoles.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, resolved once at startup.
//   - RequestTimeout: per-request timeout for API calls.
//   - UploadTimeout: timeout for the direct presigned PUT to the object store.
//   - PollInterval: how often the dashboard refreshes stats and health.
//   - SessionDBPath: sqlite file holding the persisted session.
//   - Debug: enables per-request debug logging.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
	PollInterval   time.Duration
	SessionDBPath  string
	Debug          bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.RequestTimeout = 30 * time.Second
	c.UploadTimeout = 10 * time.Minute
	c.PollInterval = 30 * time.Second
	c.SessionDBPath = "cloudpix.db"
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON file (if selected), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
