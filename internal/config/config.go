package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	defaultForecastURL   = "https://www.windfinder.com/forecast/els_poblets_valencia_spain"
	defaultUserAgent     = "Mozilla/5.0 (compatible; marine-forecast/1.0)"
	defaultInterval      = time.Hour
	defaultFetchTimeout  = 30 * time.Second
	defaultTimezone      = "Europe/Madrid"
	defaultPort          = "8080"
	defaultZoneCacheSize = 32
)

var validate = validator.New()

type ForecastConfig struct {
	URL          string        `yaml:"url" validate:"required,url"`
	UserAgent    string        `yaml:"user_agent"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" validate:"gt=0"`
}

type RefreshConfig struct {
	// Interval controls how often the forecast page is scraped.
	Interval time.Duration `yaml:"interval" validate:"min=1s"`
	// Cron, when set, replaces Interval with a standard 5-field cron schedule.
	Cron string `yaml:"cron"`
}

type AppConfig struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`

	Forecast ForecastConfig `yaml:"forecast"`
	Refresh  RefreshConfig  `yaml:"refresh"`

	// Timezone is the civil zone "now" is evaluated and rendered in.
	Timezone string `yaml:"timezone" validate:"required"`

	Port          string `yaml:"port" validate:"required,numeric"`
	ZoneCacheSize int    `yaml:"zone_cache_size" validate:"gt=0"`
}

// Load reads configuration from an optional YAML file, then applies .env and
// environment variable overrides on top of sensible defaults.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := &AppConfig{
		Env:      "production",
		LogLevel: "info",
		Forecast: ForecastConfig{
			URL:          defaultForecastURL,
			UserAgent:    defaultUserAgent,
			FetchTimeout: defaultFetchTimeout,
		},
		Refresh: RefreshConfig{
			Interval: defaultInterval,
		},
		Timezone:      defaultTimezone,
		Port:          defaultPort,
		ZoneCacheSize: defaultZoneCacheSize,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.Env = getenvDefault("ENV", cfg.Env)
	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", cfg.LogLevel))
	cfg.Forecast.URL = getenvDefault("FORECAST_URL", cfg.Forecast.URL)
	cfg.Forecast.UserAgent = getenvDefault("USER_AGENT", cfg.Forecast.UserAgent)
	cfg.Refresh.Cron = getenvDefault("REFRESH_CRON", cfg.Refresh.Cron)
	cfg.Timezone = getenvDefault("TIMEZONE", cfg.Timezone)
	cfg.Port = getenvDefault("PORT", cfg.Port)
	cfg.ZoneCacheSize = getenvInt("ZONE_CACHE_SIZE", cfg.ZoneCacheSize)

	var err error
	if cfg.Refresh.Interval, err = getenvDuration("REFRESH_INTERVAL", cfg.Refresh.Interval); err != nil {
		return nil, err
	}
	if cfg.Forecast.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", cfg.Forecast.FetchTimeout); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints, the cron expression and the time zone.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Refresh.Cron != "" {
		if _, err := cron.ParseStandard(c.Refresh.Cron); err != nil {
			return fmt.Errorf("invalid refresh.cron %q: %w", c.Refresh.Cron, err)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location loads the configured civil time zone.
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// InitializeLogging sets up logging based on the configuration
func (c *AppConfig) InitializeLogging() {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(level)

	if c.Env == "local" || c.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
