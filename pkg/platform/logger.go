// Package platform holds the small shared runtime concerns: logging setup
// and environment-based configuration.
package platform

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the process logger: JSON to stdout by default,
// human-readable console output when ENV=development. The level comes from
// LOG_LEVEL (debug, info, warn, error), defaulting to info.
func InitLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(GetEnv("LOG_LEVEL", "info"))); err == nil {
		level = parsed
	}

	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if GetEnv("ENV", "") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = logger
	return logger
}
