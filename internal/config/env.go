package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// envConfig mirrors the environment variables the consoles honor. All are
// optional; unset variables leave the current Config value untouched.
type envConfig struct {
	APIBaseURL     string        `env:"CLOUDPIX_API_URL"`
	RequestTimeout time.Duration `env:"CLOUDPIX_REQUEST_TIMEOUT"`
	UploadTimeout  time.Duration `env:"CLOUDPIX_UPLOAD_TIMEOUT"`
	PollInterval   time.Duration `env:"CLOUDPIX_POLL_INTERVAL"`
	SessionDBPath  string        `env:"CLOUDPIX_SESSION_DB"`
	Debug          *bool         `env:"CLOUDPIX_DEBUG"`
}

// parseEnv overlays Config with values from the process environment. A local
// .env file, if present, is loaded first; a missing .env is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.UploadTimeout != 0 {
		cfg.UploadTimeout = ec.UploadTimeout
	}
	if ec.PollInterval != 0 {
		cfg.PollInterval = ec.PollInterval
	}
	if ec.SessionDBPath != "" {
		cfg.SessionDBPath = ec.SessionDBPath
	}
	if ec.Debug != nil {
		cfg.Debug = *ec.Debug
	}
}
