package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel applies until SetupLogger is called, so library users of
// the renderers only see warnings.
const DefaultLevel = zerolog.WarnLevel

func init() {
	zerolog.SetGlobalLevel(DefaultLevel)
}

// SetupLogger configures the global logger based on verbosity level.
// Output goes to stderr so rendered documents on stdout stay clean.
func SetupLogger(verbosity int) {
	SetupLoggerWithWriter(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    false,
	}, verbosity)
}

// SetupLoggerWithWriter configures the global logger to write to w
func SetupLoggerWithWriter(w io.Writer, verbosity int) {
	zerolog.SetGlobalLevel(LevelForVerbosity(verbosity))

	log.Logger = zerolog.New(w).With().Timestamp().Logger()

	// Add caller information for debug and trace levels
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Msg("Logger initialized")
}

// LevelForVerbosity maps a -v count to a zerolog level
func LevelForVerbosity(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// WithFields returns a logger with additional fields
func WithFields(fields map[string]interface{}) zerolog.Logger {
	logger := log.Logger
	for k, v := range fields {
		logger = logger.With().Interface(k, v).Logger()
	}
	return logger
}

// LogDuration logs the duration of an operation
func LogDuration(start time.Time, operation string) {
	log.Debug().
		Str("operation", operation).
		Dur("duration", time.Since(start)).
		Msg("Operation completed")
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Trace().
		Str("operation", operation).
		Msg("Operation started")

	return func() {
		logger.Trace().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
