package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
	"github.com/goliatone/go-logistics-dashboard/pkg/config"
	"github.com/goliatone/go-logistics-dashboard/pkg/logging"
	"github.com/goliatone/go-logistics-dashboard/pkg/metrics"
	"github.com/goliatone/go-logistics-dashboard/pkg/preferences"
)

// app holds the wired dashboard shared by every command.
type app struct {
	metrics    dashboard.MetricsProvider
	service    *dashboard.Service
	controller *dashboard.Controller
	broadcast  *dashboard.BroadcastHook
	charts     *dashboard.ChartCache
	telemetry  *logging.Telemetry
	redis      *redis.Client
}

func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	provider, err := metrics.New(cfg.MetricsProvider())
	if err != nil {
		return nil, err
	}
	a := &app{
		metrics:   provider,
		broadcast: dashboard.NewBroadcastHook(),
		telemetry: logging.NewTelemetry(logger),
	}

	var store dashboard.PreferenceStore
	if cfg.UsesRedis() {
		client, err := preferences.Dial(ctx, cfg.Preferences.RedisAddr)
		if err != nil {
			return nil, err
		}
		a.redis = client
		store = preferences.NewRedisStore(client, cfg.Preferences.Key)
	}
	settings := dashboard.NewSettingsService(store, a.telemetry)
	if _, err := settings.Load(ctx); err != nil {
		return nil, errors.Join(err, a.Close())
	}

	chartOpts := []dashboard.EChartsOption{dashboard.WithChartAssetsHost(cfg.Charts.AssetsHost)}
	if cfg.Charts.CacheTTL > 0 {
		a.charts = dashboard.NewChartCache(cfg.Charts.CacheTTL)
		chartOpts = append(chartOpts, dashboard.WithChartCache(a.charts))
	} else {
		chartOpts = append(chartOpts, dashboard.WithChartCache(nil))
	}

	a.service, err = dashboard.NewService(dashboard.Options{
		Metrics:   provider,
		Charts:    dashboard.NewEChartsRenderer(chartOpts...),
		Directory: dashboard.NewStaticDirectory(cfg.ActivityCodes),
		Settings:  settings,
		Hook:      dashboard.StateHooks{a.broadcast, dashboard.TelemetryHook{Telemetry: a.telemetry}},
		Telemetry: a.telemetry,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("logidash: service: %w", err), a.Close())
	}

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return nil, errors.Join(fmt.Errorf("logidash: templates: %w", err), a.Close())
	}
	a.controller = dashboard.NewController(a.service,
		dashboard.WithRenderer(renderer),
		dashboard.WithProfile(cfg.Profile),
		dashboard.WithBasePath(cfg.HTTP.BasePath),
	)
	return a, nil
}

// Close releases the preference store connection.
func (a *app) Close() error {
	if a == nil || a.redis == nil {
		return nil
	}
	return a.redis.Close()
}
