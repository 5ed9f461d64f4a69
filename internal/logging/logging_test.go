package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" WARNING "))
	assert.Equal(t, LevelError, ParseLevel("Error"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}

func TestStdLoggerRespectsMinLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewStdLogger(LevelWarn, &buf)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "[WARN] shown")
}

func TestStdLoggerIncludesFieldsAndError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewStdLogger(LevelDebug, &buf)

	logger.Error("apply failed", errors.New("boom"), Field("path", "a.txt"))

	output := buf.String()
	assert.Contains(t, output, `[error="boom"]`)
	assert.Contains(t, output, "fields=[path=a.txt]")
}

func TestStdLoggerWithFieldsCarriesContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewStdLogger(LevelInfo, &buf).WithFields(Field("component", "cli"))

	logger.Info("started", Field("mode", "dry-run"))

	output := buf.String()
	assert.Contains(t, output, "component=cli")
	assert.Contains(t, output, "mode=dry-run")
}

func TestNewStdLoggerNilWriterDiscards(t *testing.T) {
	t.Parallel()

	logger := NewStdLogger(LevelDebug, nil)
	require.NotPanics(t, func() {
		logger.Info("nowhere")
	})
}
