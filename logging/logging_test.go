package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", DebugLevel.String())
	assert.Equal(t, "INFO", InfoLevel.String())
	assert.Equal(t, "WARN", WarnLevel.String())
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "FATAL", FatalLevel.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestFormatMessage(t *testing.T) {
	logger := NewDefaultLoggerNoColor()

	msg := logger.formatMessage(InfoLevel, nil, "batch complete")
	assert.Equal(t, "[INFO] batch complete", msg)

	msg = logger.formatMessage(WarnLevel, nil, "skipping file", Fields{"path": "a.wav"})
	assert.Contains(t, msg, "[WARN] skipping file")
	assert.Contains(t, msg, "path:a.wav")

	msg = logger.formatMessage(ErrorLevel, assert.AnError, "save failed")
	assert.Contains(t, msg, assert.AnError.Error())
}

func TestWithFieldsMergesPresets(t *testing.T) {
	logger := NewDefaultLoggerNoColor().WithFields(Fields{"component": "builder"})
	child, ok := logger.(*DefaultLogger)
	assert.True(t, ok)

	msg := child.formatMessage(InfoLevel, nil, "ready", Fields{"workers": 4})
	assert.Contains(t, msg, "component:builder")
	assert.Contains(t, msg, "workers:4")
}

func TestSetGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	noop := &NoOpLogger{}
	SetGlobalLogger(noop)
	assert.Same(t, noop, GetGlobalLogger())

	// nil falls back to the no-op logger rather than panicking
	SetGlobalLogger(nil)
	assert.IsType(t, &NoOpLogger{}, GetGlobalLogger())
}
