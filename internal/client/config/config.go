package config

import "time"

// Config holds runtime settings for the adboard client.
//
// Fields:
//   - ServerEndpointURL: base URL of the backend REST API.
//   - RequestTimeout: per-request timeout for API calls.
//   - SessionFile: where the bearer token and user identity persist
//     between runs; empty means the per-user config directory.
//   - ClearOn401: when true, a 401 response wipes the stored session.
//   - LogFile, LogLevel: file logging settings (the TUI owns stdout).
type Config struct {
	ServerEndpointURL string
	RequestTimeout    time.Duration
	SessionFile       string
	ClearOn401        bool
	LogFile           string
	LogLevel          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 30 * time.Second
	c.SessionFile = ""
	c.ClearOn401 = false
	c.LogFile = "adboard.log"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
