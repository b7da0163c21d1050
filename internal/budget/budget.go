// Package budget estimates the food and extras spend of a trip and combines
// it with search costs into a summary in several currencies.
package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neexbeast/trip-planner/pkg/currency"
)

// ErrUnknownFoodStyle is returned for a food style outside the known set.
var ErrUnknownFoodStyle = errors.New("unknown food style")

// FoodStyle selects the daily food spend per person.
type FoodStyle string

const (
	FoodEconomic    FoodStyle = "economic"
	FoodComfortable FoodStyle = "comfortable"
	FoodTourist     FoodStyle = "tourist"
)

// DefaultFoodStyle is used when no style is given.
const DefaultFoodStyle = FoodComfortable

// dailyFoodCost is BRL per person per day.
var dailyFoodCost = map[FoodStyle]float64{
	FoodEconomic:    80,
	FoodComfortable: 150,
	FoodTourist:     300,
}

// ParseFoodStyle accepts any casing; empty selects DefaultFoodStyle.
func ParseFoodStyle(s string) (FoodStyle, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultFoodStyle, nil
	}
	style := FoodStyle(s)
	if _, ok := dailyFoodCost[style]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFoodStyle, s)
	}
	return style, nil
}

// DailyFoodCost returns the BRL spend per person per day for style.
func DailyFoodCost(style FoodStyle) float64 {
	return dailyFoodCost[style]
}

// Input holds the user's spending choices.
type Input struct {
	FoodStyle       string  `json:"food_style"`
	BeveragesPerDay float64 `json:"beverages_per_day"`
	ExtrasPerPerson float64 `json:"extras_per_person"`
}

// Breakdown is the calculated spend in BRL.
type Breakdown struct {
	FoodStyle FoodStyle `json:"food_style"`
	Days      int       `json:"days"`
	Travelers int       `json:"travelers"`
	Food      float64   `json:"food"`
	Extras    float64   `json:"extras"`
	Total     float64   `json:"total"`
}

// Calculate prices the food and extras for travelers over days.
// Negative amounts and counts are treated as zero.
func Calculate(in Input, days, travelers int) (Breakdown, error) {
	style, err := ParseFoodStyle(in.FoodStyle)
	if err != nil {
		return Breakdown{}, err
	}

	days = max(days, 0)
	travelers = max(travelers, 0)
	beverages := max(in.BeveragesPerDay, 0)
	extras := max(in.ExtrasPerPerson, 0)

	personDays := float64(days * travelers)
	food := dailyFoodCost[style] * personDays
	extraSpend := beverages*personDays + extras*float64(travelers)

	return Breakdown{
		FoodStyle: style,
		Days:      days,
		Travelers: travelers,
		Food:      food,
		Extras:    extraSpend,
		Total:     food + extraSpend,
	}, nil
}

// Summary is the whole trip cost.
type Summary struct {
	FlightCost float64 `json:"flight_cost"`
	HotelCost  float64 `json:"hotel_cost"`
	FoodCost   float64 `json:"food_cost"`
	ExtrasCost float64 `json:"extras_cost"`
	TotalBRL   float64 `json:"total_brl"`
	TotalUSD   float64 `json:"total_usd"`
	TotalEUR   float64 `json:"total_eur"`

	// Display holds the three totals formatted for humans, keyed by currency code.
	Display map[currency.Code]string `json:"display"`
}

// Summarize adds search costs to a budget breakdown and converts the total.
func Summarize(flightCost, hotelCost float64, b Breakdown) Summary {
	total := flightCost + hotelCost + b.Food + b.Extras

	// Both codes are in the exchange table, so conversion cannot fail.
	usd, _ := currency.FromBRL(total, currency.USD)
	eur, _ := currency.FromBRL(total, currency.EUR)

	return Summary{
		FlightCost: flightCost,
		HotelCost:  hotelCost,
		FoodCost:   b.Food,
		ExtrasCost: b.Extras,
		TotalBRL:   total,
		TotalUSD:   usd,
		TotalEUR:   eur,
		Display: map[currency.Code]string{
			currency.BRL: currency.Format(total, currency.BRL),
			currency.USD: currency.Format(usd, currency.USD),
			currency.EUR: currency.Format(eur, currency.EUR),
		},
	}
}
