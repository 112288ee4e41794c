package api

import (
	"context"
	"net/http"

	service "github.com/okian/benchboard/internal/app"
)

// SnapshotDependencies defines the combined view operation.
type SnapshotDependencies interface {
	Snapshot(ctx context.Context, q service.Query) (*service.Snapshot, error)
}

// SnapshotHandler serves every view of one window in a single response.
type SnapshotHandler struct {
	deps SnapshotDependencies
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(deps SnapshotDependencies) *SnapshotHandler {
	return &SnapshotHandler{deps: deps}
}

// HandleSnapshot handles GET /snapshot?start=&end=&k=.
func (h *SnapshotHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_snapshot"
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	snap, err := h.deps.Snapshot(r.Context(), q)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
