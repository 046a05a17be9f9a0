// Package logging builds the zap logger and binds dashboard telemetry to it.
package logging

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// Config selects the level and encoding.
type Config struct {
	Level  string
	Format string
}

// New builds a logger. "console" uses the development encoder, anything
// else emits JSON.
func New(cfg Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if strings.EqualFold(cfg.Format, "console") {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		zc.Level = level
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger, nil
}

// Telemetry writes dashboard events as debug log lines. Failure events are
// raised to warn.
type Telemetry struct {
	logger *zap.Logger
}

var _ dashboard.Telemetry = (*Telemetry)(nil)

// NewTelemetry wraps logger. A nil logger discards events.
func NewTelemetry(logger *zap.Logger) *Telemetry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Telemetry{logger: logger.Named("telemetry")}
}

// Record satisfies dashboard.Telemetry.
func (t *Telemetry) Record(_ context.Context, event string, payload map[string]any) {
	fields := make([]zap.Field, 0, len(payload)+1)
	fields = append(fields, zap.String("event", event))
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fields = append(fields, zap.Any(key, payload[key]))
	}
	if isFailure(event) {
		t.logger.Warn(event, fields...)
		return
	}
	t.logger.Debug(event, fields...)
}

func isFailure(event string) bool {
	return strings.HasSuffix(event, "error") || strings.HasSuffix(event, "failed")
}
