package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerEndpointURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Empty(t, c.SessionFile)
	assert.False(t, c.ClearOn401)
	assert.Equal(t, "adboard.log", c.LogFile)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerEndpointURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("ADBOARD_ENDPOINT", "http://api.example:9000")
	t.Setenv("ADBOARD_TIMEOUT", "5")
	t.Setenv("ADBOARD_CLEAR_ON_401", "true")
	t.Setenv("ADBOARD_LOG_LEVEL", "debug")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "http://api.example:9000", cfg.ServerEndpointURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.ClearOn401)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseEnv_BadValuesIgnored(t *testing.T) {
	t.Setenv("ADBOARD_TIMEOUT", "not-a-number")
	t.Setenv("ADBOARD_CLEAR_ON_401", "maybe")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.ClearOn401)
}
