// Package config loads the runtime configuration of the dashboard binary.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	dashboard "github.com/goliatone/go-logistics-dashboard/components/dashboard"
	"github.com/goliatone/go-logistics-dashboard/pkg/metrics"
)

// EnvPrefix prefixes every environment override (LOGIDASH_HTTP_ADDR, ...).
const EnvPrefix = "LOGIDASH"

// Preference backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds runtime configuration for the dashboard.
type Config struct {
	HTTP          HTTPConfig                     `yaml:"http" envconfig:"http"`
	Metrics       MetricsConfig                  `yaml:"metrics" envconfig:"metrics"`
	Preferences   PreferencesConfig              `yaml:"preferences" envconfig:"preferences"`
	Charts        ChartsConfig                   `yaml:"charts" envconfig:"charts"`
	Sessions      SessionsConfig                 `yaml:"sessions" envconfig:"sessions"`
	Log           LogConfig                      `yaml:"log" envconfig:"log"`
	ActivityCodes []dashboard.ActivityCodeOption `yaml:"activity_codes" ignored:"true"`
	Profile       dashboard.Profile              `yaml:"profile" ignored:"true"`
}

type HTTPConfig struct {
	Addr     string       `yaml:"addr" envconfig:"addr"`
	APIAddr  string       `yaml:"api_addr" envconfig:"api_addr"`
	BasePath string       `yaml:"base_path" envconfig:"base_path"`
	Cookie   CookieConfig `yaml:"cookie" envconfig:"cookie"`
}

type CookieConfig struct {
	Name   string `yaml:"name" envconfig:"name"`
	Secure bool   `yaml:"secure" envconfig:"secure"`
}

type MetricsConfig struct {
	Mode        string        `yaml:"mode" envconfig:"mode"`
	BaseURL     string        `yaml:"base_url" envconfig:"base_url"`
	APIKey      string        `yaml:"api_key" envconfig:"api_key"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"timeout"`
	MockLatency time.Duration `yaml:"mock_latency" envconfig:"mock_latency"`
}

type PreferencesConfig struct {
	Backend   string `yaml:"backend" envconfig:"backend"`
	RedisAddr string `yaml:"redis_addr" envconfig:"redis_addr"`
	Key       string `yaml:"key" envconfig:"key"`
}

type ChartsConfig struct {
	AssetsHost string        `yaml:"assets_host" envconfig:"assets_host"`
	CacheTTL   time.Duration `yaml:"cache_ttl" envconfig:"cache_ttl"`
}

type SessionsConfig struct {
	IdleTimeout   time.Duration `yaml:"idle_timeout" envconfig:"idle_timeout"`
	SweepInterval time.Duration `yaml:"sweep_interval" envconfig:"sweep_interval"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"level"`
	Format string `yaml:"format" envconfig:"format"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:   ":8080",
			Cookie: CookieConfig{Name: dashboard.DefaultSessionCookie},
		},
		Metrics: MetricsConfig{
			Mode:        string(metrics.ModeMock),
			Timeout:     10 * time.Second,
			MockLatency: 500 * time.Millisecond,
		},
		Preferences: PreferencesConfig{Backend: BackendMemory},
		Charts:      ChartsConfig{CacheTTL: 5 * time.Minute},
		Sessions: SessionsConfig{
			IdleTimeout:   30 * time.Minute,
			SweepInterval: 5 * time.Minute,
		},
		Log:     LogConfig{Level: "info", Format: "json"},
		Profile: dashboard.DefaultProfile(),
	}
}

// LoadOptions points Load at optional files. Missing files are skipped.
type LoadOptions struct {
	File    string
	EnvFile string
}

// Load builds the configuration: defaults, then the .env file, then the YAML
// file, then LOGIDASH_* environment variables.
func Load(opts LoadOptions) (Config, error) {
	cfg := Defaults()

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	if opts.File != "" {
		if err := cfg.mergeFile(opts.File); err != nil {
			return Config{}, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the binary cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch metrics.Mode(strings.ToLower(c.Metrics.Mode)) {
	case metrics.ModeMock:
	case metrics.ModeLive:
		if strings.TrimSpace(c.Metrics.BaseURL) == "" {
			errs = append(errs, errors.New("config: metrics.base_url is required in live mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown metrics.mode %q", c.Metrics.Mode))
	}
	switch strings.ToLower(c.Preferences.Backend) {
	case BackendMemory:
	case BackendRedis:
		if strings.TrimSpace(c.Preferences.RedisAddr) == "" {
			errs = append(errs, errors.New("config: preferences.redis_addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown preferences.backend %q", c.Preferences.Backend))
	}
	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("config: http.addr is required"))
	}
	for _, opt := range c.ActivityCodes {
		if strings.TrimSpace(string(opt.Code)) == "" {
			errs = append(errs, errors.New("config: activity_codes entries need a code"))
			break
		}
	}
	return errors.Join(errs...)
}

// MetricsProvider returns the metrics factory configuration.
func (c Config) MetricsProvider() metrics.Config {
	known := make([]dashboard.ActivityCode, 0, len(c.ActivityCodes))
	for _, opt := range c.ActivityCodes {
		known = append(known, opt.Code)
	}
	return metrics.Config{
		Mode:        metrics.Mode(strings.ToLower(c.Metrics.Mode)),
		BaseURL:     c.Metrics.BaseURL,
		APIKey:      c.Metrics.APIKey,
		Timeout:     c.Metrics.Timeout,
		MockLatency: c.Metrics.MockLatency,
		KnownCodes:  known,
	}
}

// UsesRedis reports whether preferences persist in Redis.
func (c Config) UsesRedis() bool {
	return strings.EqualFold(c.Preferences.Backend, BackendRedis)
}
