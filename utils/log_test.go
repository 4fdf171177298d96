package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, TRACE, ParseLevel("trace"))
	assert.Equal(t, WARN, ParseLevel("Warning"))
	assert.Equal(t, CRITICAL, ParseLevel(" critical "))
	assert.Equal(t, INFO, ParseLevel("loud"))
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, WARN)

	log.Info("hidden %d", 1)
	log.Warn("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 2")
	assert.False(t, log.Enabled(DEBUG))
	assert.True(t, log.Enabled(ERROR))
}

func TestNamedLoggerSharesSink(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriterLogger(&buf, TRACE)

	log.Named("chassis").Named("rx").Debug("frame")
	log.SetMinLevel(ERROR)
	log.Named("chassis").Debug("dropped")

	assert.Contains(t, buf.String(), "[DEBUG] chassis.rx: frame")
	assert.NotContains(t, buf.String(), "dropped")
}

func TestNilLoggerIsSilent(t *testing.T) {
	var log *Logger
	assert.NotPanics(t, func() {
		log.Info("nothing")
		log.Named("x").Error("nothing")
		_ = log.Close()
	})
}
