package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/okian/roster/internal/domain/dedupe"
	"github.com/okian/roster/internal/domain/model"
)

// RegistrationDependencies defines the interface for registration intake.
type RegistrationDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, reg model.Registration) bool
}

// RegistrationsHandler handles registration intake requests.
type RegistrationsHandler struct {
	deps RegistrationDependencies
}

// NewRegistrationsHandler creates a new registrations handler.
func NewRegistrationsHandler(deps RegistrationDependencies) *RegistrationsHandler {
	return &RegistrationsHandler{deps: deps}
}

// HandlePostRegistration handles POST /registrations requests.
func (h *RegistrationsHandler) HandlePostRegistration(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_registration"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Clients may omit reg_id; generate one so retries of the same request
	// body are still distinguishable from new registrations.
	if req.RegID == "" {
		req.RegID = uuid.NewString()
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.RegID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", RegID: req.RegID, Duplicate: true})
		return
	}

	ts := time.Now().UTC()
	if req.TS != "" {
		// validate() already checked the format
		ts, _ = time.Parse(time.RFC3339, req.TS)
	}

	reg := model.Registration{
		RegID: req.RegID,
		Name:  req.Name,
		Score: req.Score,
		TS:    ts,
	}
	if ok := h.deps.Enqueue(r.Context(), reg); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), req.RegID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", RegID: req.RegID, Duplicate: false})
}
