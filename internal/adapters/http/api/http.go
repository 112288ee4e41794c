// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/benchboard/internal/adapters/repository"
	service "github.com/okian/benchboard/internal/app"
	"github.com/okian/benchboard/internal/domain/elo"
	"github.com/okian/benchboard/internal/domain/types"
)

// Dependencies required by HTTP handlers.
type Dependencies interface {
	AccuracyLeaderboard(ctx context.Context, q service.Query) ([]types.AccuracyRow, error)
	EloLeaderboard(ctx context.Context, q service.Query) ([]types.EloRow, error)
	Winrates(ctx context.Context, q service.Query) (elo.Result, error)
	Marks(ctx context.Context, source string) ([]types.DateMark, error)
	Columns(ctx context.Context, board string) ([]types.ColumnDescriptor, error)
	Snapshot(ctx context.Context, q service.Query) (*service.Snapshot, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	leaderboardHandler *LeaderboardHandler
	displayHandler     *DisplayHandler
	snapshotHandler    *SnapshotHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		leaderboardHandler: NewLeaderboardHandler(deps),
		displayHandler:     NewDisplayHandler(deps),
		snapshotHandler:    NewSnapshotHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestIDMiddleware(MetricsMiddleware(getOnly(h), endpoint)))
	}
	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/leaderboard/accuracy", "leaderboard_accuracy", s.leaderboardHandler.HandleAccuracy)
	route("/leaderboard/elo", "leaderboard_elo", s.leaderboardHandler.HandleElo)
	route("/winrates", "winrates", s.leaderboardHandler.HandleWinrates)
	route("/marks", "marks", s.displayHandler.HandleMarks)
	route("/columns", "columns", s.displayHandler.HandleColumns)
	route("/snapshot", "snapshot", s.snapshotHandler.HandleSnapshot)
}

// getOnly answers every method but GET with 404.
func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusNotFound, "not_found", NewKind("api.route", ErrNotFound))
			return
		}
		next(w, r)
	}
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

// writeServiceError maps a service failure onto a status code.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidWindow),
		errors.Is(err, service.ErrInvalidK),
		errors.Is(err, service.ErrUnknownSource),
		errors.Is(err, service.ErrUnknownBoard):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, repository.ErrDatasetNotLoaded),
		errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
}
