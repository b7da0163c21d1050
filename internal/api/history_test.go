package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/trip-planner/internal/storage"
)

func sampleEntry() storage.HistoryEntry {
	return storage.HistoryEntry{
		ID:          "6f1c2a9e-3b7d-4c1a-9f0e-2d5b8a7c4e10",
		CreatedAt:   time.Date(2026, 5, 20, 14, 30, 0, 0, time.UTC),
		Destination: "Rome",
		TripType:    "tourist",
		Travelers:   2,
		TotalBudget: 4321.5,
		Currency:    "BRL",
	}
}

func TestListHistory_OK(t *testing.T) {
	var gotFilter storage.HistoryFilter
	history := &mockHistory{
		listFn: func(_ context.Context, f storage.HistoryFilter) ([]storage.HistoryEntry, error) {
			gotFilter = f
			return []storage.HistoryEntry{sampleEntry()}, nil
		},
	}

	w := serve(buildRouter(&mockResolver{}, history, nil, nil), http.MethodGet, "/api/history?destination=rome&limit=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, storage.HistoryFilter{Destination: "rome", Limit: 5}, gotFilter)

	var got []storage.HistoryEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "tourist", got[0].TripType)
}

func TestListHistory_BadLimitFallsBackToDefault(t *testing.T) {
	var gotFilter storage.HistoryFilter
	history := &mockHistory{
		listFn: func(_ context.Context, f storage.HistoryFilter) ([]storage.HistoryEntry, error) {
			gotFilter = f
			return []storage.HistoryEntry{}, nil
		},
	}

	w := serve(buildRouter(&mockResolver{}, history, nil, nil), http.MethodGet, "/api/history?limit=lots", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, gotFilter.Limit)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestListHistory_DBError(t *testing.T) {
	history := &mockHistory{
		listFn: func(context.Context, storage.HistoryFilter) ([]storage.HistoryEntry, error) {
			return nil, errors.New("db down")
		},
	}

	w := serve(buildRouter(&mockResolver{}, history, nil, nil), http.MethodGet, "/api/history", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestGetHistory_OK(t *testing.T) {
	entry := sampleEntry()
	history := &mockHistory{
		getFn: func(_ context.Context, id string) (*storage.HistoryEntry, error) {
			assert.Equal(t, entry.ID, id)
			return &entry, nil
		},
	}

	w := serve(buildRouter(&mockResolver{}, history, nil, nil), http.MethodGet, "/api/history/"+entry.ID, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var got storage.HistoryEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, entry, got)
}

func TestGetHistory_NotFound(t *testing.T) {
	history := &mockHistory{
		getFn: func(context.Context, string) (*storage.HistoryEntry, error) {
			return nil, storage.ErrNotFound
		},
	}

	w := serve(buildRouter(&mockResolver{}, history, nil, nil), http.MethodGet, "/api/history/missing", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "History entry not found", decodeError(t, w))
}

func TestHistory_NotConfigured(t *testing.T) {
	router := buildRouter(&mockResolver{}, nil, nil, nil)

	for _, target := range []string{"/api/history", "/api/history/abc"} {
		w := serve(router, http.MethodGet, target, nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code, target)
		assert.Equal(t, "History store not configured", decodeError(t, w))
	}
}
