package api

import (
	"context"
	"net/http"
	"strconv"
)

// RosterDependencies defines the interface for roster view reads.
type RosterDependencies interface {
	History(ctx context.Context, limit int) []string
	Names(ctx context.Context) []string
}

// RosterHandler handles history and name-set requests.
type RosterHandler struct {
	deps     RosterDependencies
	maxLimit int
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps RosterDependencies, maxLimit int) *RosterHandler {
	return &RosterHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetHistory handles GET /roster/history?limit=N requests.
// Without a limit the response is capped at the configured maximum.
func (h *RosterHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_history"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limit := h.maxLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		limit = n
	}
	history := h.deps.History(r.Context(), limit)
	writeJSON(w, http.StatusOK, history)
}

// HandleGetNames handles GET /roster/names requests.
func (h *RosterHandler) HandleGetNames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Names(r.Context()))
}
