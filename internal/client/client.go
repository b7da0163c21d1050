// Package client calls the planner's HTTP search API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/neexbeast/trip-planner/internal/travel"
)

const httpTimeout = 30 * time.Second

// Client searches flights and hotels through the HTTP API. Failures are
// logged and turned into empty results so callers can render an empty state.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New constructs a Client for the API served at baseURL.
func New(baseURL string, log *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: httpTimeout},
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchFlights calls GET /api/flights. The error is always nil.
func (c *Client) SearchFlights(ctx context.Context, destination, date string) ([]travel.Flight, error) {
	q := url.Values{}
	q.Set("destination", destination)
	q.Set("date", date)

	flights := []travel.Flight{}
	if err := c.doGet(ctx, "/api/flights", q, &flights); err != nil {
		c.log.Error("flight search failed", "destination", destination, "date", date, "err", err)
		return []travel.Flight{}, nil
	}
	return flights, nil
}

// SearchHotels calls GET /api/hotels. The error is always nil.
func (c *Client) SearchHotels(ctx context.Context, destination string, nights int) ([]travel.Hotel, error) {
	q := url.Values{}
	q.Set("destination", destination)
	q.Set("nights", strconv.Itoa(nights))

	hotels := []travel.Hotel{}
	if err := c.doGet(ctx, "/api/hotels", q, &hotels); err != nil {
		c.log.Error("hotel search failed", "destination", destination, "nights", nights, "err", err)
		return []travel.Hotel{}, nil
	}
	return hotels, nil
}

// doGet performs a GET request and decodes the JSON response into dst.
func (c *Client) doGet(ctx context.Context, path string, q url.Values, dst any) error {
	rawURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned status %d", rawURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding response from %s: %w", rawURL, err)
	}

	return nil
}
