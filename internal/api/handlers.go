package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/neexbeast/trip-planner/internal/budget"
	"github.com/neexbeast/trip-planner/internal/itinerary"
	"github.com/neexbeast/trip-planner/internal/planner"
	"github.com/neexbeast/trip-planner/internal/travel"
)

const maxBodyBytes = 1 << 20

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	sources ServiceResolver
	history HistoryRepo
	origin  string
	log     *slog.Logger
}

// NewHandlers constructs Handlers. Every flight search departs from origin.
// history may be nil, in which case the history endpoints answer 503.
func NewHandlers(sources ServiceResolver, history HistoryRepo, origin string, log *slog.Logger) *Handlers {
	return &Handlers{
		sources: sources,
		history: history,
		origin:  origin,
		log:     log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

// SearchFlights handles GET /api/flights?destination=&date=.
func (h *Handlers) SearchFlights(w http.ResponseWriter, r *http.Request) {
	destination := strings.TrimSpace(r.URL.Query().Get("destination"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if destination == "" || date == "" {
		writeError(w, http.StatusBadRequest, "Missing parameters")
		return
	}

	day, err := travel.ParseDate(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	svc, err := h.sources.Default()
	if err != nil {
		h.log.Error("flight search error", "destination", destination, "err", err)
		internalError(w)
		return
	}

	flights, err := svc.SearchFlights(r.Context(), h.origin, destination, day)
	if err != nil {
		h.log.Error("flight search error", "destination", destination, "date", date, "err", err)
		internalError(w)
		return
	}
	if flights == nil {
		flights = []travel.Flight{}
	}

	writeJSON(w, http.StatusOK, flights)
}

// SearchHotels handles GET /api/hotels?destination=&nights=.
// A missing, malformed or non-positive nights value means one night.
func (h *Handlers) SearchHotels(w http.ResponseWriter, r *http.Request) {
	destination := strings.TrimSpace(r.URL.Query().Get("destination"))
	if destination == "" {
		writeError(w, http.StatusBadRequest, "Missing parameters")
		return
	}
	nights := parseNights(r.URL.Query().Get("nights"))

	svc, err := h.sources.Default()
	if err != nil {
		h.log.Error("hotel search error", "destination", destination, "err", err)
		internalError(w)
		return
	}

	hotels, err := svc.SearchHotels(r.Context(), destination, nights)
	if err != nil {
		h.log.Error("hotel search error", "destination", destination, "nights", nights, "err", err)
		internalError(w)
		return
	}
	if hotels == nil {
		hotels = []travel.Hotel{}
	}

	writeJSON(w, http.StatusOK, hotels)
}

func parseNights(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ItineraryRequest is the body of POST /api/itinerary.
type ItineraryRequest struct {
	Trip   planner.State `json:"trip"`
	Budget budget.Input  `json:"budget"`
}

// ItineraryResponse is the answer of POST /api/itinerary.
type ItineraryResponse struct {
	Itinerary *itinerary.Result `json:"itinerary"`
	Budget    budget.Breakdown  `json:"budget"`
	Summary   budget.Summary    `json:"summary"`
}

// PlanItinerary handles POST /api/itinerary.
// It searches every stop in order and prices the whole trip.
func (h *Handlers) PlanItinerary(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req ItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	trip := req.Trip.WithTravelers(req.Trip.Travelers)
	if err := trip.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := budget.ParseFoodStyle(req.Budget.FoodStyle); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	travelers := trip.Travelers.Total()
	orch := itinerary.NewOrchestrator(itinerary.NewServiceSearcher(h.sources, h.origin), h.log)

	result, err := orch.Run(r.Context(), trip.Destinations, travelers)
	if err != nil {
		var stopErr *itinerary.StopError
		if errors.As(err, &stopErr) {
			h.log.Error("itinerary search failed", "stop", stopErr.Index+1, "city", stopErr.City, "err", stopErr.Err)
		} else {
			h.log.Error("itinerary search failed", "err", err)
		}
		internalError(w)
		return
	}

	breakdown, err := budget.Calculate(req.Budget, result.TotalNights, travelers)
	if err != nil {
		h.log.Error("budget calculation failed", "err", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, ItineraryResponse{
		Itinerary: result,
		Budget:    breakdown,
		Summary:   budget.Summarize(result.FlightCost, result.HotelCost, breakdown),
	})
}
