package logging

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLevelIsQuiet(t *testing.T) {
	assert.Equal(t, DefaultLevel, zerolog.GlobalLevel())

	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = saved }()

	logger := GetLogger("render.markdown")
	LogOperationStart(logger, "render markdown")()
	logger.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetupLoggerWithWriter(&buf, tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(zerolog.WarnLevel)

	logger := GetLogger("render.markdown")
	logger.Info().Msg("test message")

	assert.Contains(t, buf.String(), `"component":"render.markdown"`)
	assert.Contains(t, buf.String(), "test message")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := WithFields(map[string]interface{}{
		"format": "org",
		"depth":  3,
	})
	logger.Warn().Msg("with fields")

	out := buf.String()
	assert.Contains(t, out, `"format":"org"`)
	assert.Contains(t, out, `"depth":3`)
}

func TestLogDuration(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	defer zerolog.SetGlobalLevel(zerolog.WarnLevel)

	LogDuration(time.Now().Add(-5*time.Second), "render")

	out := buf.String()
	assert.Contains(t, out, "render")
	assert.Contains(t, out, "duration")
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(zerolog.WarnLevel)

	done := LogOperationStart(zerolog.New(&buf), "convert")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
}
