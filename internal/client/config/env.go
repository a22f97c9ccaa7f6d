package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment, seeding it
// first from a .env file in the working directory when one exists.
// Unparsable numeric or boolean values are ignored rather than fatal.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("ADBOARD_ENDPOINT"); ok {
		cfg.ServerEndpointURL = v
	}
	if v, ok := os.LookupEnv("ADBOARD_TIMEOUT"); ok {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			cfg.RequestTimeout = time.Duration(sec) * time.Second
		}
	}
	if v, ok := os.LookupEnv("ADBOARD_SESSION_FILE"); ok {
		cfg.SessionFile = v
	}
	if v, ok := os.LookupEnv("ADBOARD_CLEAR_ON_401"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ClearOn401 = b
		}
	}
	if v, ok := os.LookupEnv("ADBOARD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := os.LookupEnv("ADBOARD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}
