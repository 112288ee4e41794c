package api

import (
	"context"
	"net/http"

	"github.com/okian/benchboard/internal/domain/types"
)

// DisplayDependencies defines the axis and column operations.
type DisplayDependencies interface {
	Marks(ctx context.Context, source string) ([]types.DateMark, error)
	Columns(ctx context.Context, board string) ([]types.ColumnDescriptor, error)
}

// DisplayHandler serves timeline marks and column descriptors.
type DisplayHandler struct {
	deps DisplayDependencies
}

// NewDisplayHandler creates a new display handler.
func NewDisplayHandler(deps DisplayDependencies) *DisplayHandler {
	return &DisplayHandler{deps: deps}
}

// HandleMarks handles GET /marks?source=models|timestamps.
func (h *DisplayHandler) HandleMarks(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_marks"
	marks, err := h.deps.Marks(r.Context(), r.URL.Query().Get("source"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, marks)
}

// HandleColumns handles GET /columns?kind=accuracy|elo.
func (h *DisplayHandler) HandleColumns(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_columns"
	cols, err := h.deps.Columns(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}
