package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
	"github.com/goliatone/go-logistics-dashboard/pkg/metrics"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func missing(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{EnvFile: missing(t)})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, dashboard.DefaultSessionCookie, cfg.HTTP.Cookie.Name)
	assert.Equal(t, "mock", cfg.Metrics.Mode)
	assert.False(t, cfg.UsesRedis())
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeFile(t, "logidash.yaml", `
http:
  addr: ":9000"
  base_path: /ops
metrics:
  mode: live
  base_url: https://metrics.internal
  timeout: 3s
preferences:
  backend: redis
  redis_addr: 127.0.0.1:6379
activity_codes:
  - code: ACT010
    label: Lyon Hub
profile:
  first_name: Ada
  last_name: Martin
`)
	cfg, err := Load(LoadOptions{File: path, EnvFile: missing(t)})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, "/ops", cfg.HTTP.BasePath)
	assert.Equal(t, 3*time.Second, cfg.Metrics.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Metrics.MockLatency, "untouched keys keep defaults")
	assert.True(t, cfg.UsesRedis())
	require.Len(t, cfg.ActivityCodes, 1)
	assert.Equal(t, dashboard.ActivityCode("ACT010"), cfg.ActivityCodes[0].Code)
	assert.Equal(t, "Ada", cfg.Profile.FirstName)

	mc := cfg.MetricsProvider()
	assert.Equal(t, metrics.ModeLive, mc.Mode)
	assert.Equal(t, []dashboard.ActivityCode{"ACT010"}, mc.KnownCodes)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "logidash.yaml", "http:\n  addr: \":9000\"\nlog:\n  level: debug\n")
	t.Setenv("LOGIDASH_HTTP_ADDR", ":7000")
	t.Setenv("LOGIDASH_METRICS_MOCK_LATENCY", "0s")
	t.Setenv("LOGIDASH_HTTP_COOKIE_SECURE", "true")

	cfg, err := Load(LoadOptions{File: path, EnvFile: missing(t)})
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Zero(t, cfg.Metrics.MockLatency)
	assert.True(t, cfg.HTTP.Cookie.Secure)
}

func TestDotEnvFile(t *testing.T) {
	t.Cleanup(func() { _ = os.Unsetenv("LOGIDASH_CHARTS_ASSETS_HOST") })
	env := writeFile(t, ".env", "LOGIDASH_CHARTS_ASSETS_HOST=https://cdn.example.com/echarts/\n")

	cfg, err := Load(LoadOptions{EnvFile: env})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/echarts/", cfg.Charts.AssetsHost)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "http: [")
	_, err := Load(LoadOptions{File: path, EnvFile: missing(t)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse")
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Config)
		want   string
	}{
		"unknown mode":   {func(c *Config) { c.Metrics.Mode = "grpc" }, "unknown metrics.mode"},
		"live no url":    {func(c *Config) { c.Metrics.Mode = "live" }, "base_url is required"},
		"redis no addr":  {func(c *Config) { c.Preferences.Backend = "redis" }, "redis_addr is required"},
		"unknown store":  {func(c *Config) { c.Preferences.Backend = "sqlite" }, "unknown preferences.backend"},
		"empty addr":     {func(c *Config) { c.HTTP.Addr = "" }, "http.addr is required"},
		"blank activity": {func(c *Config) { c.ActivityCodes = []dashboard.ActivityCodeOption{{Label: "x"}} }, "need a code"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
	assert.NoError(t, Defaults().Validate())
}
