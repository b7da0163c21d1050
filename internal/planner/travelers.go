package planner

import "fmt"

// TravelerKind names one of the traveler counters.
type TravelerKind string

const (
	Adults   TravelerKind = "adults"
	Children TravelerKind = "children"
	Babies   TravelerKind = "babies"
)

// Travelers counts the people on the trip. Adults never drop below one.
type Travelers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Babies   int `json:"babies"`
}

// DefaultTravelers is a single adult.
func DefaultTravelers() Travelers {
	return Travelers{Adults: 1}
}

// Total is the number of people travelling.
func (t Travelers) Total() int {
	return t.Adults + t.Children + t.Babies
}

// Adjust adds delta to the counter for kind and clamps the result.
func (t Travelers) Adjust(kind TravelerKind, delta int) (Travelers, error) {
	switch kind {
	case Adults:
		t.Adults += delta
	case Children:
		t.Children += delta
	case Babies:
		t.Babies += delta
	default:
		return t, fmt.Errorf("unknown traveler kind %q", kind)
	}
	return t.clamp(), nil
}

func (t Travelers) clamp() Travelers {
	t.Adults = max(t.Adults, 1)
	t.Children = max(t.Children, 0)
	t.Babies = max(t.Babies, 0)
	return t
}
