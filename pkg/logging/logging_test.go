package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, Level(false, false))
	assert.Equal(t, zapcore.DebugLevel, Level(true, false))
	assert.Equal(t, zapcore.ErrorLevel, Level(false, true))
	assert.Equal(t, zapcore.ErrorLevel, Level(true, true))
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false, false)

	log.Debug("hidden")
	log.Info("rendered page", File("a.go"), Component("pipeline"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "rendered page")
	assert.Contains(t, out, `"file": "a.go"`)
	assert.Contains(t, out, `"component": "pipeline"`)
}

func TestNewWithWriter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, true, true)

	log.Warn("dropped")
	log.Error("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := NewWithWriter(&bytes.Buffer{}, false, false)
	assert.Same(t, l, OrNop(l))
}
