package api

import (
	"context"
	"net/http"

	service "github.com/okian/benchboard/internal/app"
	"github.com/okian/benchboard/internal/domain/elo"
	"github.com/okian/benchboard/internal/domain/types"
)

// LeaderboardDependencies defines the leaderboard operations.
type LeaderboardDependencies interface {
	AccuracyLeaderboard(ctx context.Context, q service.Query) ([]types.AccuracyRow, error)
	EloLeaderboard(ctx context.Context, q service.Query) ([]types.EloRow, error)
	Winrates(ctx context.Context, q service.Query) (elo.Result, error)
}

// LeaderboardHandler serves the accuracy and ELO leaderboards.
type LeaderboardHandler struct {
	deps LeaderboardDependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandleAccuracy handles GET /leaderboard/accuracy?start=&end=.
func (h *LeaderboardHandler) HandleAccuracy(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_accuracy"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rows, err := h.deps.AccuracyLeaderboard(r.Context(), q)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleElo handles GET /leaderboard/elo?start=&end=&k=.
func (h *LeaderboardHandler) HandleElo(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_elo"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rows, err := h.deps.EloLeaderboard(r.Context(), q)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleWinrates handles GET /winrates?start=&end=&k=.
func (h *LeaderboardHandler) HandleWinrates(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_winrates"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Winrates(r.Context(), q)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
