package config

import (
	"flag"
	"os"
	"time"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string       base URL of the backend API (default from Config)
//	-t int          request timeout in seconds (default from Config)
//	-s string       session file path (default from Config)
//	-log string     log file path (default from Config)
//	-level string   log level (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := filterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-log", "-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointURL, "a", cfg.ServerEndpointURL, "base URL of the backend API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.SessionFile, "s", cfg.SessionFile, "path to the session file")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "path to the log file")
	fs.StringVar(&cfg.LogLevel, "level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
