package config

import (
	"encoding/json"
	"os"
	"time"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// are strings accepted by time.ParseDuration ("30s", "1m"). Pointer
// fields distinguish "absent" from zero values so a partial file only
// overrides what it mentions.
type JsonConfig struct {
	ServerEndpointURL *string `json:"server_endpoint_url"`
	RequestTimeout    *string `json:"request_timeout"`
	SessionFile       *string `json:"session_file"`
	ClearOn401        *bool   `json:"clear_on_401"`
	LogFile           *string `json:"log_file"`
	LogLevel          *string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file. The
// file path comes from the -c/-config flags; when neither is given no
// JSON is loaded. Read, unmarshal, or duration parse errors panic
// (misconfiguration should stop startup).
func parseJson(cfg *Config) {
	jsonConfigFile := jsonConfigFile()
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

	if jc.ServerEndpointURL != nil {
		cfg.ServerEndpointURL = *jc.ServerEndpointURL
	}
	if jc.RequestTimeout != nil {
		d, err := time.ParseDuration(*jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if jc.SessionFile != nil {
		cfg.SessionFile = *jc.SessionFile
	}
	if jc.ClearOn401 != nil {
		cfg.ClearOn401 = *jc.ClearOn401
	}
	if jc.LogFile != nil {
		cfg.LogFile = *jc.LogFile
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
