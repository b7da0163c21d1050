package itinerary_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/trip-planner/internal/itinerary"
	"github.com/neexbeast/trip-planner/internal/source"
	"github.com/neexbeast/trip-planner/internal/travel"
)

type stubService struct {
	origin      string
	destination string
	date        time.Time
	nights      int
}

func (s *stubService) SearchFlights(_ context.Context, origin, destination string, date time.Time) ([]travel.Flight, error) {
	s.origin, s.destination, s.date = origin, destination, date
	return []travel.Flight{{ID: "f1"}}, nil
}

func (s *stubService) SearchHotels(_ context.Context, destination string, nights int) ([]travel.Hotel, error) {
	s.destination, s.nights = destination, nights
	return []travel.Hotel{{ID: "h1"}}, nil
}

type stubResolver struct {
	svc source.Service
	err error
}

func (r stubResolver) Default() (source.Service, error) {
	return r.svc, r.err
}

func TestServiceSearcher_Flights(t *testing.T) {
	svc := &stubService{}
	s := itinerary.NewServiceSearcher(stubResolver{svc: svc}, "GRU")

	flights, err := s.SearchFlights(context.Background(), "Rome", "2026-06-01")

	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "GRU", svc.origin)
	assert.Equal(t, "Rome", svc.destination)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), svc.date)
}

func TestServiceSearcher_BadDate(t *testing.T) {
	s := itinerary.NewServiceSearcher(stubResolver{svc: &stubService{}}, "GRU")

	_, err := s.SearchFlights(context.Background(), "Rome", "June first")
	require.Error(t, err)
}

func TestServiceSearcher_Hotels(t *testing.T) {
	svc := &stubService{}
	s := itinerary.NewServiceSearcher(stubResolver{svc: svc}, "GRU")

	hotels, err := s.SearchHotels(context.Background(), "Paris", 3)

	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, 3, svc.nights)
}

func TestServiceSearcher_ResolverError(t *testing.T) {
	s := itinerary.NewServiceSearcher(stubResolver{err: source.ErrNotImplemented}, "GRU")

	_, err := s.SearchHotels(context.Background(), "Paris", 3)
	require.ErrorIs(t, err, source.ErrNotImplemented)

	_, err = s.SearchFlights(context.Background(), "Paris", "2026-06-01")
	require.ErrorIs(t, err, source.ErrNotImplemented)
}
