// Package planner holds the trip wizard selections and decides when they are
// complete enough to search.
package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/neexbeast/trip-planner/internal/travel"
)

var (
	// ErrInvalidState wraps every validation failure reported by Validate.
	ErrInvalidState = errors.New("invalid trip")

	// ErrLastDestination is returned when removing the only destination.
	ErrLastDestination = errors.New("a trip needs at least one destination")

	// ErrDestinationNotFound is returned for an unknown destination id.
	ErrDestinationNotFound = errors.New("destination not found")
)

// TripType is the travel style chosen in the wizard.
type TripType string

const (
	TripEconomic TripType = "economic"
	TripBusiness TripType = "business"
	TripStandard TripType = "standard"
	TripTourist  TripType = "tourist"
)

// Valid reports whether t is one of the known trip types.
func (t TripType) Valid() bool {
	switch t {
	case TripEconomic, TripBusiness, TripStandard, TripTourist:
		return true
	}
	return false
}

// CabinClass is the requested flight cabin.
type CabinClass string

const (
	CabinEconomy        CabinClass = "economy"
	CabinPremiumEconomy CabinClass = "premium_economy"
	CabinBusiness       CabinClass = "business"
	CabinFirst          CabinClass = "first"
)

// Valid reports whether c is one of the known cabin classes.
func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

// Destination is one stop of the itinerary. Dates are YYYY-MM-DD strings and
// stay empty until the user fills them.
type Destination struct {
	ID        string `json:"id"`
	City      string `json:"city"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Complete reports whether city and both dates are filled.
func (d Destination) Complete() bool {
	return strings.TrimSpace(d.City) != "" &&
		strings.TrimSpace(d.StartDate) != "" &&
		strings.TrimSpace(d.EndDate) != ""
}

// NewDestination returns an empty destination with a fresh id.
func NewDestination() Destination {
	return Destination{ID: uuid.NewString()}
}

// State is the full set of wizard selections. Update methods return a new
// State and leave the receiver untouched.
type State struct {
	TripType     TripType      `json:"trip_type,omitempty"`
	Destinations []Destination `json:"destinations"`
	Travelers    Travelers     `json:"travelers"`
	CabinClass   CabinClass    `json:"cabin_class,omitempty"`
}

// NewState returns the initial wizard state: one empty destination and a
// single adult traveler.
func NewState() State {
	return State{
		Destinations: []Destination{NewDestination()},
		Travelers:    DefaultTravelers(),
	}
}

// WithTripType replaces the trip type.
func (s State) WithTripType(t TripType) State {
	s.TripType = t
	return s
}

// WithDestinations replaces the destination list.
func (s State) WithDestinations(ds []Destination) State {
	s.Destinations = append([]Destination(nil), ds...)
	return s
}

// WithTravelers replaces the traveler counts, clamped to their minimums.
func (s State) WithTravelers(t Travelers) State {
	s.Travelers = t.clamp()
	return s
}

// WithCabinClass replaces the cabin class.
func (s State) WithCabinClass(c CabinClass) State {
	s.CabinClass = c
	return s
}

// AddDestination appends an empty destination.
func (s State) AddDestination() State {
	return s.WithDestinations(append(s.Destinations, NewDestination()))
}

// UpdateDestination applies fn to the destination with id.
func (s State) UpdateDestination(id string, fn func(*Destination)) (State, error) {
	ds := append([]Destination(nil), s.Destinations...)
	for i := range ds {
		if ds[i].ID == id {
			fn(&ds[i])
			ds[i].ID = id
			s.Destinations = ds
			return s, nil
		}
	}
	return s, fmt.Errorf("updating %s: %w", id, ErrDestinationNotFound)
}

// RemoveDestination drops the destination with id. The last remaining
// destination cannot be removed.
func (s State) RemoveDestination(id string) (State, error) {
	idx := -1
	for i, d := range s.Destinations {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, fmt.Errorf("removing %s: %w", id, ErrDestinationNotFound)
	}
	if len(s.Destinations) == 1 {
		return s, ErrLastDestination
	}

	ds := make([]Destination, 0, len(s.Destinations)-1)
	ds = append(ds, s.Destinations[:idx]...)
	ds = append(ds, s.Destinations[idx+1:]...)
	s.Destinations = ds
	return s, nil
}

// IsValid is the "ready to search" gate: trip type set, every destination
// complete with YYYY-MM-DD dates, cabin class set. Traveler counts are not part of the gate.
func (s State) IsValid() bool {
	return s.Validate() == nil
}

// Validate explains why the state is not ready to search. The returned error
// wraps ErrInvalidState.
func (s State) Validate() error {
	if s.TripType == "" {
		return fmt.Errorf("%w: trip type is required", ErrInvalidState)
	}
	if !s.TripType.Valid() {
		return fmt.Errorf("%w: unknown trip type %q", ErrInvalidState, s.TripType)
	}
	if len(s.Destinations) == 0 {
		return fmt.Errorf("%w: at least one destination is required", ErrInvalidState)
	}
	for i, d := range s.Destinations {
		if !d.Complete() {
			return fmt.Errorf("%w: destination %d needs a city, start date and end date", ErrInvalidState, i+1)
		}
		if _, err := travel.ParseDate(d.StartDate); err != nil {
			return fmt.Errorf("%w: destination %d start date must be YYYY-MM-DD", ErrInvalidState, i+1)
		}
		if _, err := travel.ParseDate(d.EndDate); err != nil {
			return fmt.Errorf("%w: destination %d end date must be YYYY-MM-DD", ErrInvalidState, i+1)
		}
	}
	if s.CabinClass == "" {
		return fmt.Errorf("%w: cabin class is required", ErrInvalidState)
	}
	if !s.CabinClass.Valid() {
		return fmt.Errorf("%w: unknown cabin class %q", ErrInvalidState, s.CabinClass)
	}
	return nil
}
