package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/neexbeast/trip-planner/internal/source"
	"github.com/neexbeast/trip-planner/internal/travel"
)

// CachedService is a read-through cache in front of a data source.
// Cache failures are logged and never fail a search.
type CachedService struct {
	next  source.Service
	cache *Cache
	log   *slog.Logger
}

var _ source.Service = (*CachedService)(nil)

// NewCachedService wraps next with c.
func NewCachedService(next source.Service, c *Cache, log *slog.Logger) *CachedService {
	return &CachedService{next: next, cache: c, log: log}
}

// SearchFlights serves from cache when possible and fills it on a miss.
func (s *CachedService) SearchFlights(ctx context.Context, origin, destination string, date time.Time) ([]travel.Flight, error) {
	cached, err := s.cache.GetFlights(ctx, origin, destination, date)
	if err != nil {
		s.log.Warn("flight cache read failed", "destination", destination, "err", err)
	} else if cached != nil {
		s.log.Debug("flight cache hit", "destination", destination)
		return cached, nil
	}

	flights, err := s.next.SearchFlights(ctx, origin, destination, date)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetFlights(ctx, origin, destination, date, flights); err != nil {
		s.log.Warn("flight cache write failed", "destination", destination, "err", err)
	}
	return flights, nil
}

// SearchHotels serves from cache when possible and fills it on a miss.
func (s *CachedService) SearchHotels(ctx context.Context, destination string, nights int) ([]travel.Hotel, error) {
	cached, err := s.cache.GetHotels(ctx, destination, nights)
	if err != nil {
		s.log.Warn("hotel cache read failed", "destination", destination, "err", err)
	} else if cached != nil {
		s.log.Debug("hotel cache hit", "destination", destination)
		return cached, nil
	}

	hotels, err := s.next.SearchHotels(ctx, destination, nights)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetHotels(ctx, destination, nights, hotels); err != nil {
		s.log.Warn("hotel cache write failed", "destination", destination, "err", err)
	}
	return hotels, nil
}

// Decorator adapts the cache for source.WithDecorator.
func Decorator(c *Cache, log *slog.Logger) func(source.Mode, source.Service) source.Service {
	return func(_ source.Mode, svc source.Service) source.Service {
		return NewCachedService(svc, c, log)
	}
}
