// Package config loads application configuration from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/neexbeast/trip-planner/internal/source"
)

// Config holds all configuration values for the planner processes.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port     string
	LogLevel slog.Level

	// Mode selects the flight and hotel data source.
	Mode source.Mode
	// DefaultOrigin is the airport every flight search departs from.
	DefaultOrigin string
	MockLatency   time.Duration
	Scraper       source.ScraperConfig
	API           source.APIConfig

	// RedisURL enables the search cache when set.
	RedisURL string
	CacheTTL time.Duration

	// DatabaseURL enables the history endpoints when set.
	DatabaseURL string

	CORSOrigins        []string
	RateLimitPerMinute int
}

// SourceConfig returns the data source settings for source.NewFactory.
func (c Config) SourceConfig() source.Config {
	return source.Config{
		Mode:        c.Mode,
		MockLatency: c.MockLatency,
		Scraper:     c.Scraper,
		API:         c.API,
	}
}

// raw mirrors the flat key space viper reads.
type raw struct {
	Port                 string        `mapstructure:"PORT"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
	DataSourceMode       string        `mapstructure:"DATA_SOURCE_MODE"`
	DefaultOrigin        string        `mapstructure:"DEFAULT_ORIGIN"`
	MockLatency          time.Duration `mapstructure:"MOCK_LATENCY"`
	ScraperHeadless      bool          `mapstructure:"SCRAPER_HEADLESS"`
	ScraperTimeoutMS     int           `mapstructure:"SCRAPER_TIMEOUT_MS"`
	ScraperUserAgent     string        `mapstructure:"SCRAPER_USER_AGENT"`
	ScraperTargetURL     string        `mapstructure:"SCRAPER_TARGET_URL"`
	ScraperRatePerSecond float64       `mapstructure:"SCRAPER_RATE_PER_SECOND"`
	ScraperBurst         int           `mapstructure:"SCRAPER_BURST"`
	APIBaseURL           string        `mapstructure:"API_BASE_URL"`
	APIKey               string        `mapstructure:"API_KEY"`
	RedisURL             string        `mapstructure:"REDIS_URL"`
	CacheTTL             time.Duration `mapstructure:"CACHE_TTL"`
	DatabaseURL          string        `mapstructure:"DATABASE_URL"`
	CORSOrigins          string        `mapstructure:"CORS_ORIGINS"`
	RateLimitPerMinute   int           `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

func setDefaults(v *viper.Viper) {
	scraper := source.DefaultScraperConfig()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATA_SOURCE_MODE", string(source.ModeMock))
	v.SetDefault("DEFAULT_ORIGIN", "GRU")
	v.SetDefault("MOCK_LATENCY", source.DefaultMockLatency)
	v.SetDefault("SCRAPER_HEADLESS", scraper.Headless)
	v.SetDefault("SCRAPER_TIMEOUT_MS", int(scraper.Timeout/time.Millisecond))
	v.SetDefault("SCRAPER_USER_AGENT", scraper.UserAgent)
	v.SetDefault("SCRAPER_TARGET_URL", scraper.TargetURL)
	v.SetDefault("SCRAPER_RATE_PER_SECOND", scraper.RatePerSecond)
	v.SetDefault("SCRAPER_BURST", scraper.Burst)
	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("API_KEY", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", 5*time.Minute)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("CONFIG_FILE", "")
}

// Load reads configuration from environment variables. When CONFIG_FILE names
// a YAML file its values sit between the defaults and the environment.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var r raw
	if err := v.Unmarshal(&r); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	mode, err := source.ParseMode(r.DataSourceMode)
	if err != nil {
		return Config{}, fmt.Errorf("DATA_SOURCE_MODE: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(r.LogLevel)); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if r.ScraperTimeoutMS <= 0 {
		return Config{}, fmt.Errorf("SCRAPER_TIMEOUT_MS must be positive, got %d", r.ScraperTimeoutMS)
	}

	return Config{
		Port:          r.Port,
		LogLevel:      level,
		Mode:          mode,
		DefaultOrigin: strings.ToUpper(strings.TrimSpace(r.DefaultOrigin)),
		MockLatency:   r.MockLatency,
		Scraper: source.ScraperConfig{
			Headless:      r.ScraperHeadless,
			Timeout:       time.Duration(r.ScraperTimeoutMS) * time.Millisecond,
			UserAgent:     r.ScraperUserAgent,
			TargetURL:     r.ScraperTargetURL,
			RatePerSecond: r.ScraperRatePerSecond,
			Burst:         r.ScraperBurst,
		},
		API: source.APIConfig{
			BaseURL: r.APIBaseURL,
			Key:     r.APIKey,
		},
		RedisURL:           r.RedisURL,
		CacheTTL:           r.CacheTTL,
		DatabaseURL:        r.DatabaseURL,
		CORSOrigins:        splitCSV(r.CORSOrigins),
		RateLimitPerMinute: r.RateLimitPerMinute,
	}, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
