package client_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/trip-planner/internal/client"
	"github.com/neexbeast/trip-planner/internal/travel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func flightsHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/flights", r.URL.Path)
		assert.Equal(t, "Rio de Janeiro", r.URL.Query().Get("destination"))
		assert.Equal(t, "2026-06-01", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]travel.Flight{{ID: "f1", Airline: "Azul", Price: 700}})
	}
}

func TestClient_SearchFlights(t *testing.T) {
	srv := httptest.NewServer(flightsHandler(t))
	defer srv.Close()

	c := client.New(srv.URL+"/", discardLogger())
	flights, err := c.SearchFlights(context.Background(), "Rio de Janeiro", "2026-06-01")

	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "Azul", flights[0].Airline)
}

func TestClient_SearchHotels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/hotels", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("nights"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]travel.Hotel{{ID: "h1", TotalPrice: 900}})
	}))
	defer srv.Close()

	hotels, err := client.New(srv.URL, discardLogger()).SearchHotels(context.Background(), "Rome", 3)

	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, 900.0, hotels[0].TotalPrice)
}

func TestClient_FailuresBecomeEmptyResults(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		}},
		{"bad request", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}},
		{"malformed json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"id":`))
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			c := client.New(srv.URL, discardLogger())

			flights, err := c.SearchFlights(context.Background(), "Rome", "2026-06-01")
			require.NoError(t, err)
			assert.NotNil(t, flights)
			assert.Empty(t, flights)

			hotels, err := c.SearchHotels(context.Background(), "Rome", 1)
			require.NoError(t, err)
			assert.NotNil(t, hotels)
			assert.Empty(t, hotels)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	flights, err := client.New(url, discardLogger()).SearchFlights(context.Background(), "Rome", "2026-06-01")

	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestClient_CustomHTTPClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := client.New(srv.URL, discardLogger(), client.WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))

	start := time.Now()
	hotels, err := c.SearchHotels(context.Background(), "Rome", 1)

	require.NoError(t, err)
	assert.Empty(t, hotels)
	assert.Less(t, time.Since(start), time.Second)
}
