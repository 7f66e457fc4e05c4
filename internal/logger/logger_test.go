package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequestID_Unique(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	id, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "req-123", id)
}

func TestRequestIDFromContext_Missing(t *testing.T) {
	_, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestFromContext_NoRequestID(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotNil(t, log)
}

func TestConfigLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{Level: tt.level}
			assert.Equal(t, tt.want, cfg.LogLevel())
		})
	}
}

func TestConfigIsJSON(t *testing.T) {
	assert.True(t, Config{Format: "json"}.IsJSON())
	assert.True(t, Config{Format: "JSON"}.IsJSON())
	assert.False(t, Config{Format: "text"}.IsJSON())
}
