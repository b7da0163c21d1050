package cache_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/trip-planner/internal/cache"
	"github.com/neexbeast/trip-planner/internal/source"
	"github.com/neexbeast/trip-planner/internal/travel"
)

var day = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewCache(client, time.Minute), mr
}

func sampleFlights() []travel.Flight {
	return []travel.Flight{
		{ID: "f1", Airline: "Azul", Price: 650, Currency: "BRL"},
		{ID: "f2", Airline: "Gol", Price: 900, Currency: "BRL"},
	}
}

func sampleHotels() []travel.Hotel {
	return []travel.Hotel{{ID: "h1", Name: "Hotel Rome Plaza", PricePerNight: 300, TotalPrice: 900, Amenities: []string{"Wi-Fi"}}}
}

// ---- Cache ------------------------------------------------------------------

func TestCache_FlightsSetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetFlights(ctx, "GRU", "Rome", day, sampleFlights()))

	got, err := c.GetFlights(ctx, "GRU", "Rome", day)
	require.NoError(t, err)
	assert.Equal(t, sampleFlights(), got)
}

func TestCache_HotelsSetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetHotels(ctx, "Rome", 3, sampleHotels()))

	got, err := c.GetHotels(ctx, "Rome", 3)
	require.NoError(t, err)
	assert.Equal(t, sampleHotels(), got)

	miss, err := c.GetHotels(ctx, "Rome", 4)
	require.NoError(t, err)
	assert.Nil(t, miss, "different nights is a different entry")
}

func TestCache_Get_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.GetFlights(context.Background(), "GRU", "nowhere", day)
	require.NoError(t, err)
	assert.Nil(t, got, "cache miss should return nil, nil")
}

func TestCache_DestinationKeyIsNormalized(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetFlights(ctx, "GRU", "  PARIS ", day, sampleFlights()))

	got, err := c.GetFlights(ctx, "gru", "paris", day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, mr.Exists("flights:gru:paris:2026-06-01"))
}

func TestCache_TTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetHotels(ctx, "Rome", 2, sampleHotels()))
	assert.Equal(t, time.Minute, mr.TTL(cache.HotelsKey("Rome", 2)))

	mr.FastForward(2 * time.Minute)

	got, err := c.GetHotels(ctx, "Rome", 2)
	require.NoError(t, err)
	assert.Nil(t, got, "entry should have expired")
}

func TestCache_Get_CorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set(cache.HotelsKey("Rome", 1), "{not json"))

	_, err := c.GetHotels(context.Background(), "Rome", 1)
	require.Error(t, err)
}

func TestNewCache_DefaultTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := cache.NewCache(client, 0)
	require.NoError(t, c.SetHotels(context.Background(), "Rome", 1, sampleHotels()))
	assert.Equal(t, cache.DefaultTTL, mr.TTL(cache.HotelsKey("Rome", 1)))
}

// ---- CachedService ----------------------------------------------------------

type countingService struct {
	flightCalls atomic.Int32
	hotelCalls  atomic.Int32
	err         error
}

func (s *countingService) SearchFlights(context.Context, string, string, time.Time) ([]travel.Flight, error) {
	s.flightCalls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return sampleFlights(), nil
}

func (s *countingService) SearchHotels(context.Context, string, int) ([]travel.Hotel, error) {
	s.hotelCalls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return sampleHotels(), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCachedService_ReadThrough(t *testing.T) {
	c, _ := newTestCache(t)
	next := &countingService{}
	svc := cache.NewCachedService(next, c, discardLogger())
	ctx := context.Background()

	first, err := svc.SearchFlights(ctx, "GRU", "Rome", day)
	require.NoError(t, err)
	second, err := svc.SearchFlights(ctx, "GRU", "Rome", day)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), next.flightCalls.Load())

	_, err = svc.SearchHotels(ctx, "Rome", 3)
	require.NoError(t, err)
	_, err = svc.SearchHotels(ctx, "rome", 3)
	require.NoError(t, err)
	assert.Equal(t, int32(1), next.hotelCalls.Load())
}

func TestCachedService_ErrorsAreNotCached(t *testing.T) {
	c, mr := newTestCache(t)
	next := &countingService{err: source.ErrScrapingFailed}
	svc := cache.NewCachedService(next, c, discardLogger())

	_, err := svc.SearchHotels(context.Background(), "Rome", 3)

	require.ErrorIs(t, err, source.ErrScrapingFailed)
	assert.False(t, mr.Exists(cache.HotelsKey("Rome", 3)))
}

func TestCachedService_RedisDownFallsThrough(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	next := &countingService{}
	svc := cache.NewCachedService(next, c, discardLogger())

	flights, err := svc.SearchFlights(context.Background(), "GRU", "Rome", day)

	require.NoError(t, err)
	assert.Equal(t, sampleFlights(), flights)
	assert.Equal(t, int32(1), next.flightCalls.Load())
}

func TestDecorator_WrapsFactoryAdapters(t *testing.T) {
	c, _ := newTestCache(t)
	f := source.NewFactory(source.Config{Mode: source.ModeMock}, nil, discardLogger(),
		source.WithDecorator(cache.Decorator(c, discardLogger())))

	svc, err := f.Default()
	require.NoError(t, err)
	assert.IsType(t, &cache.CachedService{}, svc)
}

// ---- Open -------------------------------------------------------------------

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := cache.Open(context.Background(), "redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Ping(context.Background()))
}

func TestOpen_BadURL(t *testing.T) {
	_, err := cache.Open(context.Background(), "not a url", time.Minute)
	require.Error(t, err)
}
