package source

import (
	"fmt"
	"log/slog"
	"time"
)

// APIConfig is reserved for an official provider integration.
type APIConfig struct {
	BaseURL string
	Key     string
}

// Config selects and configures the data sources.
type Config struct {
	Mode        Mode
	MockLatency time.Duration
	Scraper     ScraperConfig
	API         APIConfig
}

// Option customizes a Factory.
type Option func(*Factory)

// WithDecorator wraps every adapter the factory hands out, e.g. with a cache.
func WithDecorator(decorate func(Mode, Service) Service) Option {
	return func(f *Factory) {
		f.decorate = decorate
	}
}

// Factory hands out the adapter bound to a mode. Adapters are built once and
// shared; none of them keeps per-call state.
type Factory struct {
	mode     Mode
	mock     Service
	scraper  Service
	decorate func(Mode, Service) Service
}

// NewFactory builds both adapters from cfg. browser backs the scraper adapter.
func NewFactory(cfg Config, browser Browser, log *slog.Logger, opts ...Option) *Factory {
	f := &Factory{mode: cfg.Mode}
	for _, opt := range opts {
		opt(f)
	}

	f.mock = NewMockAdapter(cfg.MockLatency)
	f.scraper = NewScraperAdapter(browser, cfg.Scraper, log)
	if f.decorate != nil {
		f.mock = f.decorate(ModeMock, f.mock)
		f.scraper = f.decorate(ModeScraper, f.scraper)
	}
	return f
}

// Mode returns the configured mode.
func (f *Factory) Mode() Mode {
	return f.mode
}

// Default returns the adapter for the configured mode.
func (f *Factory) Default() (Service, error) {
	return f.Service(f.mode)
}

// Service returns the adapter for mode. ModeAPI fails with ErrNotImplemented;
// any unrecognized mode falls back to the mock adapter.
func (f *Factory) Service(mode Mode) (Service, error) {
	switch mode {
	case ModeScraper:
		return f.scraper, nil
	case ModeAPI:
		return nil, fmt.Errorf("mode %s: %w", mode, ErrNotImplemented)
	default:
		return f.mock, nil
	}
}
