package itinerary

import (
	"context"

	"github.com/neexbeast/trip-planner/internal/source"
	"github.com/neexbeast/trip-planner/internal/travel"
)

// ServiceResolver hands out the data source to use for a search.
// *source.Factory satisfies this interface.
type ServiceResolver interface {
	Default() (source.Service, error)
}

// ServiceSearcher runs itinerary searches in-process against the configured
// data source, flying every leg from a fixed origin.
type ServiceSearcher struct {
	resolver ServiceResolver
	origin   string
}

// NewServiceSearcher constructs a ServiceSearcher.
func NewServiceSearcher(resolver ServiceResolver, origin string) *ServiceSearcher {
	return &ServiceSearcher{resolver: resolver, origin: origin}
}

// SearchFlights resolves the data source and searches flights for date.
func (s *ServiceSearcher) SearchFlights(ctx context.Context, destination, date string) ([]travel.Flight, error) {
	day, err := travel.ParseDate(date)
	if err != nil {
		return nil, err
	}
	svc, err := s.resolver.Default()
	if err != nil {
		return nil, err
	}
	return svc.SearchFlights(ctx, s.origin, destination, day)
}

// SearchHotels resolves the data source and searches hotels.
func (s *ServiceSearcher) SearchHotels(ctx context.Context, destination string, nights int) ([]travel.Hotel, error) {
	svc, err := s.resolver.Default()
	if err != nil {
		return nil, err
	}
	return svc.SearchHotels(ctx, destination, nights)
}
