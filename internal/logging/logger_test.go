package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug": log.DebugLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"info":  log.InfoLevel,
		"":      log.InfoLevel,
		"bogus": log.InfoLevel,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(in))
		})
	}
}

func TestNewLoggerWithWriter(t *testing.T) {
	t.Setenv("HC08RE_LOG_LEVEL", "debug")
	t.Setenv("HC08RE_LOG_PREFIX", "test")

	var buf bytes.Buffer
	lg := NewLoggerWithWriter(&buf)
	lg.Debug("skipping line", "line", 3)
	require.NoError(t, lg.Close())

	assert.Contains(t, buf.String(), "test")
	assert.Contains(t, buf.String(), "skipping line")
	assert.Contains(t, buf.String(), "line=3")
	assert.True(t, IsDebug())
}

func TestDefaultLevelHidesDebug(t *testing.T) {
	t.Setenv("HC08RE_LOG_LEVEL", "")

	var buf bytes.Buffer
	lg := NewLoggerWithWriter(&buf)
	lg.Debug("hidden")
	lg.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.False(t, IsDebug())
}
