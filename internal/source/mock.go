package source

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neexbeast/trip-planner/internal/travel"
)

// DefaultMockLatency is the artificial delay applied to every mock search.
const DefaultMockLatency = time.Second

var airlines = []string{"Latam", "Azul", "Gol", "Emirates", "American Airlines"}

var amenityPool = []string{
	"Free Wi-Fi", "Pool", "Breakfast", "Gym", "Spa", "Parking", "Bar", "Restaurant",
}

var hotelSuffixes = []string{"Plaza", "Resort", "Suites", "Palace", "Boutique"}

// originCities names the cities behind origin codes the mock knows about.
var originCities = map[string]string{
	"GRU": "São Paulo",
	"GIG": "Rio de Janeiro",
	"BSB": "Brasília",
}

// MockAdapter fabricates plausible flights and hotels in-process.
// It holds no mutable state and is safe for concurrent use.
type MockAdapter struct {
	latency time.Duration
}

// NewMockAdapter constructs a MockAdapter that waits latency before answering.
// A zero latency answers immediately.
func NewMockAdapter(latency time.Duration) *MockAdapter {
	return &MockAdapter{latency: latency}
}

// SearchFlights returns between 3 and 6 random flights departing on date,
// cheapest first.
func (m *MockAdapter) SearchFlights(ctx context.Context, origin, destination string, date time.Time) ([]travel.Flight, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	count := 3 + rand.IntN(4)
	flights := make([]travel.Flight, 0, count)

	for range count {
		airline := airlines[rand.IntN(len(airlines))]
		stops := rand.IntN(3)
		price := float64(500+rand.IntN(2000)) - float64(stops*100)

		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		departure := day.Add(time.Duration(6+rand.IntN(16))*time.Hour + time.Duration(rand.IntN(60))*time.Minute)
		flightTime := time.Duration(2+rand.IntN(12))*time.Hour + time.Duration(rand.IntN(60))*time.Minute
		arrival := departure.Add(flightTime)

		flights = append(flights, travel.Flight{
			ID:           uuid.NewString(),
			Airline:      airline,
			FlightNumber: fmt.Sprintf("%s%d", strings.ToUpper(airline[:2]), 100+rand.IntN(900)),
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
			Duration:   travel.FormatDuration(flightTime),
			Price:      price,
			Currency:   travel.DefaultCurrency,
			Stops:      stops,
			CabinClass: "economy",
		})
	}

	travel.SortFlightsByPrice(flights)
	return flights, nil
}

// SearchHotels returns between 3 and 5 random hotels for a stay of nights,
// cheapest total first.
func (m *MockAdapter) SearchHotels(ctx context.Context, destination string, nights int) ([]travel.Hotel, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}
	nights = normalizeNights(nights)

	count := 3 + rand.IntN(3)
	hotels := make([]travel.Hotel, 0, count)

	for range count {
		perNight, total := travel.NewHotelPrice(float64(200+rand.IntN(800)), nights)
		rating := math.Round((3.5+rand.Float64()*1.5)*10) / 10

		hotels = append(hotels, travel.Hotel{
			ID:            uuid.NewString(),
			Name:          fmt.Sprintf("Hotel %s %s", destination, hotelSuffixes[rand.IntN(len(hotelSuffixes))]),
			Rating:        rating,
			Reviews:       50 + rand.IntN(1951),
			PricePerNight: perNight,
			TotalPrice:    total,
			Currency:      travel.DefaultCurrency,
			Amenities:     pickAmenities(3 + rand.IntN(4)),
			Location:      "Downtown, " + destination,
		})
	}

	travel.SortHotelsByTotal(hotels)
	return hotels, nil
}

// wait simulates network latency without blocking past ctx.
func (m *MockAdapter) wait(ctx context.Context) error {
	if m.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// pickAmenities returns n distinct amenities from the pool in random order.
func pickAmenities(n int) []string {
	shuffled := make([]string, len(amenityPool))
	copy(shuffled, amenityPool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:min(n, len(shuffled))]
}

func originCity(code string) string {
	if city, ok := originCities[strings.ToUpper(code)]; ok {
		return city
	}
	return code
}
