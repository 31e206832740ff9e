package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_WritesModuleAndDetails(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	l.Info("Search", "results ready", map[string]interface{}{"count": 5})
	l.Warn("Formatter", "fallback", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "results ready", entries[0].Message)
	assert.Equal(t, "Search", entries[0].ContextMap()["module"])
	assert.Equal(t, map[string]interface{}{"count": 5}, entries[0].ContextMap()["details"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, map[string]interface{}{}, entries[1].ContextMap()["details"])
}

func TestZapLogger_ErrorKeepsReference(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := FromZap(zap.New(core))

	l.Error("Search", "failed", map[string]interface{}{"error": "boom"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["error_ref"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Debug("x", "y", nil)
	assert.NoError(t, l.Sync())
}
