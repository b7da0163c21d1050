package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/neexbeast/trip-planner/internal/travel"
)

// ScraperConfig holds the browser settings of the scraper adapter.
type ScraperConfig struct {
	Headless  bool
	Timeout   time.Duration
	UserAgent string
	TargetURL string

	// RatePerSecond and Burst throttle browser launches. RatePerSecond <= 0
	// disables throttling.
	RatePerSecond float64
	Burst         int
}

// DefaultScraperConfig returns the settings used when nothing is configured.
func DefaultScraperConfig() ScraperConfig {
	return ScraperConfig{
		Headless:      true,
		Timeout:       30 * time.Second,
		UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		TargetURL:     "https://example.com",
		RatePerSecond: 1,
		Burst:         2,
	}
}

// ScraperAdapter drives a real browser to a placeholder page and answers with
// a fixed record once the page has loaded. Every call uses its own session.
type ScraperAdapter struct {
	browser Browser
	cfg     ScraperConfig
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewScraperAdapter constructs a ScraperAdapter launching sessions from browser.
func NewScraperAdapter(browser Browser, cfg ScraperConfig, log *slog.Logger) *ScraperAdapter {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &ScraperAdapter{
		browser: browser,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}
}

// SearchFlights visits the target page and returns a single flight.
func (s *ScraperAdapter) SearchFlights(ctx context.Context, origin, destination string, date time.Time) ([]travel.Flight, error) {
	s.log.Info("scraper: flight search", "origin", origin, "destination", destination, "date", date.Format(travel.DateLayout))

	title, err := s.visit(ctx)
	if err != nil {
		s.log.Error("scraper: flight search failed", "destination", destination, "err", err)
		return nil, ErrScrapingFailed
	}
	s.log.Debug("scraper: page visited", "title", title)

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	departure := day.Add(10 * time.Hour)
	arrival := day.Add(18 * time.Hour)

	return []travel.Flight{{
		ID:           "scraped-" + uuid.NewString(),
		Airline:      "Scraper Airways",
		FlightNumber: "SCR123",
		Departure: travel.Endpoint{
			Airport: strings.ToUpper(origin),
			City:    originCity(origin),
			Time:    departure,
		},
		Arrival: travel.Endpoint{
			Airport: travel.AirportCode(destination),
			City:    destination,
			Time:    arrival,
		},
		Duration:   travel.FormatDuration(arrival.Sub(departure)),
		Price:      1234,
		Currency:   travel.DefaultCurrency,
		Stops:      0,
		CabinClass: "economy",
	}}, nil
}

// SearchHotels visits the target page and returns a single hotel.
func (s *ScraperAdapter) SearchHotels(ctx context.Context, destination string, nights int) ([]travel.Hotel, error) {
	s.log.Info("scraper: hotel search", "destination", destination, "nights", nights)

	title, err := s.visit(ctx)
	if err != nil {
		s.log.Error("scraper: hotel search failed", "destination", destination, "err", err)
		return nil, ErrScrapingFailed
	}
	s.log.Debug("scraper: page visited", "title", title)

	perNight, total := travel.NewHotelPrice(500, normalizeNights(nights))
	return []travel.Hotel{{
		ID:            "scraped-hotel-" + uuid.NewString(),
		Name:          "Scraped Hotel in " + destination,
		Rating:        4.5,
		Reviews:       100,
		PricePerNight: perNight,
		TotalPrice:    total,
		Currency:      travel.DefaultCurrency,
		Amenities:     []string{"Scraped Wi-Fi", "Realtime Data"},
		Location:      "Web Scraped Location",
	}}, nil
}

// visit launches a session, loads the target page and returns its title.
// The session is closed on every path once it has been launched.
func (s *ScraperAdapter) visit(ctx context.Context) (title string, err error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for launch slot: %w", err)
	}

	session, err := s.browser.Launch(ctx)
	if err != nil {
		return "", fmt.Errorf("launching browser: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			s.log.Warn("scraper: closing browser failed", "err", cerr)
		}
	}()

	navCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	if err := session.Navigate(navCtx, s.cfg.TargetURL); err != nil {
		return "", err
	}

	title, err = session.Title(navCtx)
	if err != nil {
		return "", err
	}
	return title, nil
}
