package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/bjaus/fmtx/internal/logging"
)

func TestLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		verbosity int
		want      zerolog.Level
	}{
		"negative": {verbosity: -1, want: zerolog.WarnLevel},
		"quiet":    {verbosity: 0, want: zerolog.WarnLevel},
		"info":     {verbosity: 1, want: zerolog.InfoLevel},
		"debug":    {verbosity: 2, want: zerolog.DebugLevel},
		"trace":    {verbosity: 3, want: zerolog.TraceLevel},
		"beyond":   {verbosity: 7, want: zerolog.TraceLevel},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logging.Level(tt.verbosity))
		})
	}
}

// Setup replaces the global logger, so these tests run sequentially.
func TestSetupFiltersByVerbosity(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup(0, &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.NotContains(t, out, "\x1b[", "non-terminal output must not be coloured")
}

func TestForAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logging.Setup(1, &buf)
	l := logging.For("check")
	l.Info().Msg("scanning")
	line := buf.String()
	assert.True(t, strings.Contains(line, "component=check"), line)
	assert.Contains(t, line, "scanning")
}
