// Package logging configures the global zerolog logger.
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel controls the log level: debug, info, warn, error
// (default: warn, so CLI output stays clean unless asked otherwise).
const EnvLogLevel = "ORBITCAP_LOG_LEVEL"

// Init initializes the global logger from the environment and routes
// output through a console writer on stderr.
func Init() {
	switch os.Getenv(EnvLogLevel) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
