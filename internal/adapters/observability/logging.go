package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger tagged with service. APP_ENV=dev (or
// development) writes console output at debug level, anything else JSON at
// info. A non-empty level ("debug", "warn", ...) overrides either default.
func NewLogger(env, service, level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	var l zerolog.Logger
	if env == "dev" || env == "development" {
		lvl = zerolog.DebugLevel
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		l = zerolog.New(os.Stdout)
	}
	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}
	return l.Level(lvl).With().Timestamp().Str("service", service).Logger()
}
