package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger(t *testing.T) {
	t.Run("text format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatText, Output: &buf})

		logger.Info("room created", "spots", 12)

		assert.Contains(t, buf.String(), "room created")
		assert.Contains(t, buf.String(), "spots=12")
	})

	t.Run("json format with service attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:          LogLevelInfo,
			Format:         LogFormatJSON,
			Output:         &buf,
			ServiceName:    "gym-worker",
			ServiceVersion: "1.0.0",
		})

		logger.Info("session scheduled", "size", 8)

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "session scheduled", entry["msg"])
		assert.Equal(t, float64(8), entry["size"])
		assert.Equal(t, "gym-worker", entry["service"])
		assert.Equal(t, "1.0.0", entry["version"])
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelWarn, Format: LogFormatText, Output: &buf})

		logger.Debug("debug message")
		logger.Info("info message")
		logger.Warn("warn message")

		assert.NotContains(t, buf.String(), "debug message")
		assert.NotContains(t, buf.String(), "info message")
		assert.Contains(t, buf.String(), "warn message")
	})
}

func TestNewLogger_ContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatJSON, Output: &buf})
	actorID := uuid.MustParse("00000000-0000-0000-0000-000000000007")

	ctx := WithCorrelationID(context.Background(), "corr-123")
	ctx = WithRequestID(ctx, "req-456")
	ctx = WithActorID(ctx, actorID)
	ctx = WithOperation(ctx, "reserve_spot")

	logger.With("session_id", "s-1").InfoContext(ctx, "command handled")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "corr-123", entry[CorrelationIDKey])
	assert.Equal(t, "req-456", entry[RequestIDKey])
	assert.Equal(t, actorID.String(), entry[ActorIDKey])
	assert.Equal(t, "reserve_spot", entry["operation"])
	assert.Equal(t, "s-1", entry["session_id"])
}

func TestNewLogger_WithoutContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Format: LogFormatJSON, Output: &buf})

	logger.Info("plain")

	entry := decodeEntry(t, &buf)
	assert.NotContains(t, entry, CorrelationIDKey)
	assert.NotContains(t, entry, ActorIDKey)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{"WARN", slog.LevelWarn},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.expected, parseSlogLevel(tt.input))
		})
	}
}

func TestLogConfigs(t *testing.T) {
	dev := DefaultLogConfig()
	assert.Equal(t, LogFormatText, dev.Format)
	assert.Equal(t, "gym", dev.ServiceName)

	prod := ProductionLogConfig()
	assert.Equal(t, LogFormatJSON, prod.Format)
	assert.True(t, prod.AddSource)
}

func TestLoggerFor(t *testing.T) {
	t.Run("production logs JSON", func(t *testing.T) {
		logger := LoggerFor("production", "", "", "1.2.3")
		_, ok := logger.Handler().(*contextHandler).next.(*slog.JSONHandler)
		assert.True(t, ok)
	})

	t.Run("explicit format and level win", func(t *testing.T) {
		logger := LoggerFor("production", "debug", "text", "")
		handler := logger.Handler().(*contextHandler)
		_, ok := handler.next.(*slog.TextHandler)
		assert.True(t, ok)
		assert.True(t, handler.Enabled(context.Background(), slog.LevelDebug))
	})
}
