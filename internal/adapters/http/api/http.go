// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	repository "github.com/okian/roster/internal/adapters/repository"
	"github.com/okian/roster/internal/domain/dedupe"
	"github.com/okian/roster/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a registration for async processing. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, reg model.Registration) bool

	// Read operations expose the three roster views.
	History(ctx context.Context, limit int) []string
	Names(ctx context.Context) []string
	Scores(ctx context.Context) ([]repository.Entry, error)
	Score(ctx context.Context, name string) (repository.Entry, error)
	Report(ctx context.Context) (string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	registrationsHandler *RegistrationsHandler
	rosterHandler        *RosterHandler
	scoresHandler        *ScoresHandler
	reportHandler        *ReportHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxHistoryLimit int) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		registrationsHandler: NewRegistrationsHandler(deps),
		rosterHandler:        NewRosterHandler(deps, maxHistoryLimit),
		scoresHandler:        NewScoresHandler(deps),
		reportHandler:        NewReportHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/registrations", MetricsMiddleware(s.registrationsHandler.HandlePostRegistration, "registrations"))
	mux.HandleFunc("/roster/history", MetricsMiddleware(s.rosterHandler.HandleGetHistory, "roster_history"))
	mux.HandleFunc("/roster/names", MetricsMiddleware(s.rosterHandler.HandleGetNames, "roster_names"))
	mux.HandleFunc("/scores", MetricsMiddleware(s.scoresHandler.HandleGetScores, "scores"))
	mux.HandleFunc("/scores/", MetricsMiddleware(s.scoresHandler.HandleGetScore, "score"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
}

// registrationRequest mirrors the JSON schema for POST /registrations.
type registrationRequest struct {
	RegID string `json:"reg_id"`
	Name  string `json:"name"`
	Score int64  `json:"score"`
	TS    string `json:"ts"`
}

func (r registrationRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("missing name")
	}
	if r.TS != "" {
		if _, err := time.Parse(time.RFC3339, r.TS); err != nil {
			return errors.New("invalid ts; must be RFC3339")
		}
	}
	return nil
}

type ackResponse struct {
	Status    string `json:"status"`
	RegID     string `json:"reg_id"`
	Duplicate bool   `json:"duplicate"`
}

type scoreResponse struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Score    int64  `json:"score"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
