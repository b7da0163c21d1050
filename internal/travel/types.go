package travel

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates (ISO 8601, no time part).
const DateLayout = "2006-01-02"

// DefaultCurrency tags every price produced by the data sources.
const DefaultCurrency = "BRL"

// Endpoint is one end of a flight leg.
type Endpoint struct {
	Airport string    `json:"airport"`
	City    string    `json:"city"`
	Time    time.Time `json:"time"`
}

// Flight is a single priced flight offer.
type Flight struct {
	ID           string   `json:"id"`
	Airline      string   `json:"airline"`
	FlightNumber string   `json:"flight_number"`
	Departure    Endpoint `json:"departure"`
	Arrival      Endpoint `json:"arrival"`
	Duration     string   `json:"duration"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	Stops        int      `json:"stops"`
	CabinClass   string   `json:"cabin_class"`
}

// Hotel is a priced hotel offer for a fixed number of nights.
// TotalPrice is always PricePerNight multiplied by the nights searched.
type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	PricePerNight float64  `json:"price_per_night"`
	TotalPrice    float64  `json:"total_price"`
	Currency      string   `json:"currency"`
	Amenities     []string `json:"amenities"`
	Location      string   `json:"location"`
}

// NewHotelPrice returns the per-night and total price for nights, so the two
// can never disagree. Nights below 1 count as 1.
func NewHotelPrice(perNight float64, nights int) (float64, float64) {
	if nights < 1 {
		nights = 1
	}
	return perNight, perNight * float64(nights)
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// FormatDuration renders d as "8h 05m".
func FormatDuration(d time.Duration) string {
	total := int(d.Round(time.Minute).Minutes())
	return fmt.Sprintf("%dh %02dm", total/60, total%60)
}

// AirportCode derives a pseudo airport code from a city name: its first three
// letters, upper-cased. Collisions are possible.
func AirportCode(city string) string {
	city = strings.TrimSpace(city)
	r := []rune(city)
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}

// SortFlightsByPrice orders flights cheapest first. Ties keep their order.
func SortFlightsByPrice(flights []Flight) {
	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Price < flights[j].Price
	})
}

// SortHotelsByTotal orders hotels by total stay price, cheapest first.
func SortHotelsByTotal(hotels []Hotel) {
	sort.SliceStable(hotels, func(i, j int) bool {
		return hotels[i].TotalPrice < hotels[j].TotalPrice
	})
}

// FlightsSorted reports whether flights are in non-decreasing price order.
func FlightsSorted(flights []Flight) bool {
	return sort.SliceIsSorted(flights, func(i, j int) bool {
		return flights[i].Price < flights[j].Price
	})
}

// HotelsSorted reports whether hotels are in non-decreasing total price order.
func HotelsSorted(hotels []Hotel) bool {
	return sort.SliceIsSorted(hotels, func(i, j int) bool {
		return hotels[i].TotalPrice < hotels[j].TotalPrice
	})
}
