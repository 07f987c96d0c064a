// Package config loads runtime configuration for the CloudPix consoles.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv); a local .env file is loaded first.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// The backend base URL is resolved exactly once here and injected into the
// API client; nothing re-derives it per call.
//
// Supported flags
//
//	-u string   base URL of the backend REST API
//	-i int      dashboard poll interval (seconds)
//	-d string   path to the local session database
//	-v          enable debug logging
//
// Environment variables
//
//	CLOUDPIX_API_URL, CLOUDPIX_REQUEST_TIMEOUT, CLOUDPIX_UPLOAD_TIMEOUT,
//	CLOUDPIX_POLL_INTERVAL, CLOUDPIX_SESSION_DB, CLOUDPIX_DEBUG
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "poll_interval": "30s",
//	  "session_db_path": "cloudpix.db"
//	}
package config
