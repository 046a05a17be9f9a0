package metrics

import (
	"fmt"
	"strings"
	"time"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
)

// Mode selects the provider variant.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeLive Mode = "live"
)

// Config chooses and configures the metrics provider at startup.
type Config struct {
	Mode        Mode
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MockLatency time.Duration
	KnownCodes  []dashboard.ActivityCode
}

// New returns the provider selected by cfg.Mode. Callers only depend on the
// dashboard.MetricsProvider contract.
func New(cfg Config) (dashboard.MetricsProvider, error) {
	switch Mode(strings.ToLower(string(cfg.Mode))) {
	case ModeMock, "":
		opts := []MockOption{WithLatency(cfg.MockLatency)}
		if len(cfg.KnownCodes) > 0 {
			opts = append(opts, WithKnownCodes(cfg.KnownCodes...))
		}
		return NewMockClient(DefaultMockData(), opts...), nil
	case ModeLive:
		client, err := NewHTTPClient(HTTPConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("metrics: unknown provider mode %q", cfg.Mode)
	}
}
