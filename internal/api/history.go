package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/trip-planner/internal/storage"
)

func (h *Handlers) historyConfigured(w http.ResponseWriter) bool {
	if h.history == nil {
		writeError(w, http.StatusServiceUnavailable, "History store not configured")
		return false
	}
	return true
}

// ListHistory handles GET /api/history?destination=&limit=.
func (h *Handlers) ListHistory(w http.ResponseWriter, r *http.Request) {
	if !h.historyConfigured(w) {
		return
	}

	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	entries, err := h.history.ListHistory(r.Context(), storage.HistoryFilter{
		Destination: q.Get("destination"),
		Limit:       limit,
	})
	if err != nil {
		h.log.Error("history list failed", "err", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// GetHistory handles GET /api/history/{id}.
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	if !h.historyConfigured(w) {
		return
	}

	id := chi.URLParam(r, "id")
	entry, err := h.history.GetHistory(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "History entry not found")
			return
		}
		h.log.Error("history get failed", "id", id, "err", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}
