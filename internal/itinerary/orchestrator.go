// Package itinerary searches flights and hotels for every stop of a trip and
// totals the cheapest options.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/trip-planner/internal/planner"
	"github.com/neexbeast/trip-planner/internal/travel"
)

// Searcher runs the two searches needed for one stop.
// Results must be sorted cheapest first; cost totals read the first element.
type Searcher interface {
	SearchFlights(ctx context.Context, destination, date string) ([]travel.Flight, error)
	SearchHotels(ctx context.Context, destination string, nights int) ([]travel.Hotel, error)
}

// StopResult holds the search results for one destination.
type StopResult struct {
	City      string          `json:"city"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Nights    int             `json:"nights"`
	Flights   []travel.Flight `json:"flights"`
	Hotels    []travel.Hotel  `json:"hotels"`
}

// Result is the outcome of a whole itinerary search.
type Result struct {
	Stops       []StopResult `json:"stops"`
	TotalNights int          `json:"total_nights"`
	Travelers   int          `json:"travelers"`
	FlightCost  float64      `json:"flight_cost"`
	HotelCost   float64      `json:"hotel_cost"`
	Currency    string       `json:"currency"`
}

// ErrStopFailed matches every *StopError with errors.Is.
var ErrStopFailed = errors.New("itinerary stop failed")

// StopError reports which stop made the itinerary search fail.
type StopError struct {
	Index int
	City  string
	Err   error
}

func (e *StopError) Error() string {
	return fmt.Sprintf("stop %d (%s): %v", e.Index+1, e.City, e.Err)
}

func (e *StopError) Unwrap() error {
	return e.Err
}

func (e *StopError) Is(target error) bool {
	return target == ErrStopFailed
}

// Orchestrator walks an itinerary stop by stop.
type Orchestrator struct {
	searcher Searcher
	log      *slog.Logger
}

// NewOrchestrator constructs an Orchestrator using searcher for every stop.
func NewOrchestrator(searcher Searcher, log *slog.Logger) *Orchestrator {
	return &Orchestrator{searcher: searcher, log: log}
}

// Run searches every destination in order. Flights and hotels of one stop are
// fetched concurrently; the next stop starts only after both finished.
// Any failing stop fails the whole run and no partial result is returned.
// Reporting the returned StopError is left to the caller.
func (o *Orchestrator) Run(ctx context.Context, destinations []planner.Destination, travelers int) (*Result, error) {
	result := &Result{
		Stops:     make([]StopResult, 0, len(destinations)),
		Travelers: travelers,
		Currency:  travel.DefaultCurrency,
	}

	for i, d := range destinations {
		stop, err := o.searchStop(ctx, d)
		if err != nil {
			o.log.Debug("itinerary stop failed", "stop", i+1, "city", d.City, "err", err)
			return nil, &StopError{Index: i, City: d.City, Err: err}
		}

		result.Stops = append(result.Stops, *stop)
		result.TotalNights += stop.Nights

		if len(stop.Flights) > 0 {
			result.FlightCost += stop.Flights[0].Price * float64(travelers)
		}
		if len(stop.Hotels) > 0 {
			result.HotelCost += stop.Hotels[0].TotalPrice
		}
	}

	return result, nil
}

// searchStop runs the flight and hotel search for one destination in parallel.
func (o *Orchestrator) searchStop(ctx context.Context, d planner.Destination) (*StopResult, error) {
	nights := StayNights(d.StartDate, d.EndDate)
	g, gCtx := errgroup.WithContext(ctx)

	var flights []travel.Flight
	var hotels []travel.Hotel

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				o.log.Error("flight search panicked", "city", d.City, "recover", r)
				err = fmt.Errorf("flight search panicked: %v", r)
			}
		}()
		fs, searchErr := o.searcher.SearchFlights(gCtx, d.City, d.StartDate)
		if searchErr != nil {
			return fmt.Errorf("searching flights to %s: %w", d.City, searchErr)
		}
		flights = fs
		return nil
	})

	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				o.log.Error("hotel search panicked", "city", d.City, "recover", r)
				err = fmt.Errorf("hotel search panicked: %v", r)
			}
		}()
		hs, searchErr := o.searcher.SearchHotels(gCtx, d.City, nights)
		if searchErr != nil {
			return fmt.Errorf("searching hotels in %s: %w", d.City, searchErr)
		}
		hotels = hs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &StopResult{
		City:      d.City,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Nights:    nights,
		Flights:   flights,
		Hotels:    hotels,
	}, nil
}

// StayNights is the number of whole days between start and end, rounded up.
// Missing, malformed or non-increasing dates count as one night.
func StayNights(start, end string) int {
	from, err := travel.ParseDate(start)
	if err != nil {
		return 1
	}
	to, err := travel.ParseDate(end)
	if err != nil {
		return 1
	}

	nights := int(math.Ceil(to.Sub(from).Hours() / 24))
	if nights < 1 {
		return 1
	}
	return nights
}
