// Package config loads runtime configuration for the adboard client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), optionally seeded from a
//     .env file in the working directory.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string       base URL of the backend API
//	-t int          request timeout (seconds)
//	-s string       path to the session file
//	-log string     path to the log file
//	-level string   log level (debug, info, warn, error)
//
// Environment variables
//
//	ADBOARD_ENDPOINT, ADBOARD_TIMEOUT, ADBOARD_SESSION_FILE,
//	ADBOARD_CLEAR_ON_401, ADBOARD_LOG_FILE, ADBOARD_LOG_LEVEL
//
// # JSON schema
//
// Durations are strings accepted by time.ParseDuration:
//
//	{
//	  "server_endpoint_url": "http://127.0.0.1:8080",
//	  "request_timeout": "30s",
//	  "session_file": "/home/user/.config/adboard/session.json",
//	  "clear_on_401": true,
//	  "log_file": "adboard.log",
//	  "log_level": "info"
//	}
package config
