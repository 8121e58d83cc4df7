package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/people-notes-backend/internal/observability"
	"github.com/yungbote/people-notes-backend/internal/platform/envutil"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Redis     RedisConfig     `yaml:"redis"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Otel      OtelConfig      `yaml:"otel"`
}

type ServerConfig struct {
	Port                   int      `yaml:"port"`
	CORSOrigins            []string `yaml:"cors_origins"`
	ShutdownTimeoutSeconds int      `yaml:"shutdown_timeout_seconds"`
}

type LogConfig struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
}

type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MetricsConfig struct {
	Enabled               bool `yaml:"enabled"`
	ScrapeIntervalSeconds int  `yaml:"scrape_interval_seconds"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:                   8000,
			ShutdownTimeoutSeconds: 10,
		},
		Log:      LogConfig{Mode: "development"},
		Database: DatabaseConfig{Driver: "sqlite", Path: "people.db"},
		Metrics:  MetricsConfig{ScrapeIntervalSeconds: 10},
		Otel:     OtelConfig{ServiceName: "people-notes", SampleRatio: 0.1},
	}
}

// LoadConfig layers defaults, then the YAML file at path (or CONFIG_FILE),
// then environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	path = strings.TrimSpace(path)
	if path == "" {
		path = envutil.String("CONFIG_FILE", "")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = envutil.Int("PORT", c.Server.Port)
	c.Server.CORSOrigins = envutil.List("CORS_ORIGINS", c.Server.CORSOrigins)
	c.Server.ShutdownTimeoutSeconds = envutil.Int("SHUTDOWN_TIMEOUT_SECONDS", c.Server.ShutdownTimeoutSeconds)

	c.Log.Mode = envutil.String("LOG_MODE", c.Log.Mode)
	c.Log.Level = envutil.String("LOG_LEVEL", c.Log.Level)

	c.Database.Driver = strings.ToLower(envutil.String("DB_DRIVER", c.Database.Driver))
	c.Database.Path = envutil.String("DB_PATH", c.Database.Path)
	c.Database.URL = envutil.String("DATABASE_URL", c.Database.URL)

	c.RateLimit.PerMinute = envutil.Int("RATE_LIMIT_PER_MINUTE", c.RateLimit.PerMinute)

	c.Redis.Addr = envutil.String("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = envutil.String("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = envutil.Int("REDIS_DB", c.Redis.DB)

	c.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", c.Metrics.Enabled)
	c.Metrics.ScrapeIntervalSeconds = envutil.Int("METRICS_SCRAPE_INTERVAL_SECONDS", c.Metrics.ScrapeIntervalSeconds)

	c.Otel.Enabled = envutil.Bool("OTEL_ENABLED", c.Otel.Enabled)
	c.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", c.Otel.ServiceName)
	c.Otel.Environment = envutil.String("APP_ENV", c.Otel.Environment)
	c.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", c.Otel.Endpoint)
	c.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", c.Otel.Headers)
	c.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", c.Otel.Insecure)
	c.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", c.Otel.SampleRatio)
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	switch c.Database.Driver {
	case "sqlite":
	case "postgres":
		if strings.TrimSpace(c.Database.URL) == "" {
			errs = append(errs, errors.New("database.url (DATABASE_URL) is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported database.driver %q", c.Database.Driver))
	}
	if c.RateLimit.PerMinute < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.per_minute must be >= 0, got %d", c.RateLimit.PerMinute))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Server.Port) }

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

func (c Config) ScrapeInterval() time.Duration {
	return time.Duration(c.Metrics.ScrapeIntervalSeconds) * time.Second
}

func (c Config) OtelSettings(version string) observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: c.Otel.ServiceName,
		Environment: c.Otel.Environment,
		Version:     version,
		Endpoint:    c.Otel.Endpoint,
		Headers:     observability.ParseHeaders(c.Otel.Headers),
		Insecure:    c.Otel.Insecure,
		SampleRatio: c.Otel.SampleRatio,
	}
}
