package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLevels(t *testing.T) {
	logger, err := New(Config{Level: "DEBUG", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = New(Config{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	logger, err = New(Config{})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestTelemetryRecord(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tel := NewTelemetry(zap.New(core))

	tel.Record(context.Background(), "dashboard.section.load", map[string]any{"section": "stock", "cards": 3})
	tel.Record(context.Background(), "dashboard.card.provider_error", map[string]any{"card": "stock.alerts"})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "telemetry", entries[0].LoggerName)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "dashboard.section.load", ctx["event"])
	assert.Equal(t, "stock", ctx["section"])
	assert.EqualValues(t, 3, ctx["cards"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNilLoggerTelemetry(t *testing.T) {
	assert.NotPanics(t, func() {
		NewTelemetry(nil).Record(context.Background(), "dashboard.export", nil)
	})
}
