package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dbelyaev-dev/cloudpix/internal/flagx"
	"github.com/dbelyaev-dev/cloudpix/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "30s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	UploadTimeout  *timex.Duration `json:"upload_timeout"`
	PollInterval   *timex.Duration `json:"poll_interval"`
	SessionDBPath  string          `json:"session_db_path"`
	Debug          *bool           `json:"debug"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. If no file is selected, nothing happens. Read or
// unmarshal errors panic; callers get them at startup, not mid-session.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.UploadTimeout != nil {
		cfg.UploadTimeout = time.Duration(jc.UploadTimeout.Duration)
	}
	if jc.PollInterval != nil {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}
