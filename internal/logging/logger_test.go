package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fadedpez/tucotrainer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected Level
		wantErr  bool
	}{
		{name: "debug", expected: DEBUG},
		{name: "INFO", expected: INFO},
		{name: " Warn ", expected: WARN},
		{name: "error", expected: ERROR},
		{name: "loud", expected: INFO, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, WARN)

	logger.Debug("hidden %d", 1)
	logger.Info("hidden %d", 2)
	assert.Empty(t, buf.String())

	logger.Warn("shown %d", 3)
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "logger_test.go")
	assert.Contains(t, buf.String(), "shown 3")

	buf.Reset()
	logger.SetLevel(DEBUG)
	logger.Debug("now shown")
	assert.Contains(t, buf.String(), "DEBUG")
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, INFO)

	logger.LogError(types.WrapError(types.ErrDatabaseError, "save failed", errors.New("locked")))
	out := buf.String()
	require.Contains(t, out, "Game error occurred")
	assert.Contains(t, out, "Code: DATABASE_ERROR")
	assert.Contains(t, out, "Message: save failed")
	assert.Contains(t, out, "Cause: locked")

	buf.Reset()
	logger.LogError(errors.New("plain"))
	assert.Contains(t, buf.String(), "Unexpected error: plain")
}
