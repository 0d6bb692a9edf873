package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", Debug},
		{"", Info},
		{"INFO", Info},
		{"warning", Warn},
		{"error", Error},
		{"loud", Info},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "input %q", tt.in)
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat(" JSON "))
	assert.Equal(t, FormatText, ParseFormat("yaml"))
}

func TestZapLogger_WithAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core)).With(map[string]any{"component": "intake"})

	l.Warn("cleanup failed", map[string]any{
		"file": "123-abc.jpg",
		"err":  errors.New("permission denied"),
		"":     "ignored",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cleanup failed", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "intake", ctx["component"])
	assert.Equal(t, "123-abc.jpg", ctx["file"])
	assert.Equal(t, "permission denied", ctx["err"])
	assert.NotContains(t, ctx, "")
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	l.Info("hello", nil)
	assert.Same(t, l, l.With(nil))
}
