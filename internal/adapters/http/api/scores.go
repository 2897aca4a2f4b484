package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	repository "github.com/okian/roster/internal/adapters/repository"
)

// ScoreDependencies defines the interface for latest-score reads.
type ScoreDependencies interface {
	Scores(ctx context.Context) ([]repository.Entry, error)
	Score(ctx context.Context, name string) (repository.Entry, error)
}

// ScoresHandler handles latest-score requests.
type ScoresHandler struct {
	deps ScoreDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoreDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// HandleGetScores handles GET /scores requests. Entries come back in
// ascending name order.
func (h *ScoresHandler) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_scores"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	entries, err := h.deps.Scores(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	out := make([]scoreResponse, len(entries))
	for i, e := range entries {
		out[i] = scoreResponse{Position: e.Position, Name: e.Name, Score: e.Score}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGetScore handles GET /scores/{name} requests.
func (h *ScoresHandler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_score"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/scores/")
	if name == "" || strings.Contains(name, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entry, err := h.deps.Score(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{Position: entry.Position, Name: entry.Name, Score: entry.Score})
}
