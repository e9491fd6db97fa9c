package logging

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := New()
	logger.SetLevel(level)
	logger.SetOutput(log.New(&buf, "", 0))
	return logger, &buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug allowed at debug", LevelDebug, LevelDebug, true},
		{"info allowed at debug", LevelDebug, LevelInfo, true},
		{"debug blocked at info", LevelInfo, LevelDebug, false},
		{"warn allowed at info", LevelInfo, LevelWarn, true},
		{"info blocked at warn", LevelWarn, LevelInfo, false},
		{"error allowed at warn", LevelWarn, LevelError, true},
		{"warn blocked at error", LevelError, LevelWarn, false},
		{"error allowed at error", LevelError, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(tt.minLevel)

			switch tt.logLevel {
			case LevelDebug:
				logger.Debug("test message")
			case LevelInfo:
				logger.Info("test message")
			case LevelWarn:
				logger.Warn("test message")
			case LevelError:
				logger.Error("test message")
			}

			if tt.shouldLog {
				assert.Contains(t, buf.String(), "test message")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestLogger_FieldsSortedAndFormatted(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	logger.Info("episode done", "reward", 1.0, "episode", 3)

	line := strings.TrimSpace(buf.String())
	assert.Equal(t, "INFO: episode done | episode=3 reward=1", line)
}

func TestLogger_With(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	child := logger.With("task", "gsm8k")
	child.Info("starting")

	assert.Contains(t, buf.String(), "task=gsm8k")

	// The parent is unchanged.
	buf.Reset()
	logger.Info("plain")
	assert.NotContains(t, buf.String(), "task=")
}

func TestLogger_FormatValue(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)

	logger.Info("msg", "text", "has spaces", "err", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `text="has spaces"`)
	assert.Contains(t, out, `err="boom"`)
}
