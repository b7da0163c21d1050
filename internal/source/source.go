// Package source provides the pluggable flight and hotel data sources and the
// factory that picks one of them by mode.
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neexbeast/trip-planner/internal/travel"
)

var (
	// ErrNotImplemented is returned by the factory for modes that have no adapter yet.
	ErrNotImplemented = errors.New("data source not implemented")

	// ErrScrapingFailed is the only error the scraper adapter lets escape.
	// The underlying cause is logged, never returned.
	ErrScrapingFailed = errors.New("scraping failed")
)

// FlightSearcher finds flights for one leg.
// Implementations must return results sorted by ascending price.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, origin, destination string, date time.Time) ([]travel.Flight, error)
}

// HotelSearcher finds hotels for a stay of nights at destination.
// Implementations must return results sorted by ascending total price.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, destination string, nights int) ([]travel.Hotel, error)
}

// Service is a data source able to answer both kinds of search.
type Service interface {
	FlightSearcher
	HotelSearcher
}

// Mode selects the data source strategy.
type Mode string

const (
	ModeMock    Mode = "MOCK"
	ModeScraper Mode = "SCRAPER"
	ModeAPI     Mode = "API"
)

// ParseMode converts a configuration string into a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeMock, ModeScraper, ModeAPI:
		return m, nil
	default:
		return "", fmt.Errorf("unknown data source mode %q", s)
	}
}

// normalizeNights applies the one-night minimum shared by every adapter.
func normalizeNights(nights int) int {
	if nights < 1 {
		return 1
	}
	return nights
}
