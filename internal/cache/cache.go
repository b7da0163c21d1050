package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/trip-planner/internal/travel"
)

// DefaultTTL applies when NewCache is given a non-positive TTL.
const DefaultTTL = 5 * time.Minute

// Cache wraps a Redis client and stores flight and hotel search results.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache whose entries expire after ttl.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FlightsKey returns the Redis key for a flight search.
func FlightsKey(origin, destination string, date time.Time) string {
	return "flights:" + normalize(origin) + ":" + normalize(destination) + ":" + date.Format(travel.DateLayout)
}

// HotelsKey returns the Redis key for a hotel search.
func HotelsKey(destination string, nights int) string {
	return "hotels:" + normalize(destination) + ":" + strconv.Itoa(nights)
}

// GetFlights retrieves a cached flight search.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) GetFlights(ctx context.Context, origin, destination string, date time.Time) ([]travel.Flight, error) {
	var flights []travel.Flight
	found, err := c.get(ctx, FlightsKey(origin, destination, date), &flights)
	if err != nil || !found {
		return nil, err
	}
	return flights, nil
}

// SetFlights stores a flight search with the configured TTL.
func (c *Cache) SetFlights(ctx context.Context, origin, destination string, date time.Time, flights []travel.Flight) error {
	return c.set(ctx, FlightsKey(origin, destination, date), flights)
}

// GetHotels retrieves a cached hotel search.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) GetHotels(ctx context.Context, destination string, nights int) ([]travel.Hotel, error) {
	var hotels []travel.Hotel
	found, err := c.get(ctx, HotelsKey(destination, nights), &hotels)
	if err != nil || !found {
		return nil, err
	}
	return hotels, nil
}

// SetHotels stores a hotel search with the configured TTL.
func (c *Cache) SetHotels(ctx context.Context, destination string, nights int, hotels []travel.Hotel) error {
	return c.set(ctx, HotelsKey(destination, nights), hotels)
}

// Ping checks the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) get(ctx context.Context, key string, dst any) (bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get for %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(val), dst); err != nil {
		return false, fmt.Errorf("unmarshaling cached value for %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling value for %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for %s: %w", key, err)
	}
	return nil
}
