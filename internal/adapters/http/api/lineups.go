package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/okian/scoreline/internal/domain/lineup"
	"github.com/okian/scoreline/internal/domain/types"
)

// LineupDependencies defines the interface for lineup checks.
type LineupDependencies interface {
	CheckLineup(ctx context.Context, labels []string) (lineup.Checked, error)
}

// LineupHandler handles lineup requests.
type LineupHandler struct {
	deps     LineupDependencies
	validate *validator.Validate
}

// NewLineupHandler creates a new lineup handler.
func NewLineupHandler(deps LineupDependencies, v *validator.Validate) *LineupHandler {
	return &LineupHandler{deps: deps, validate: v}
}

// HandleCheck handles POST /lineups/check requests. An incomplete selection
// is a normal answer here, not an error.
func (h *LineupHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	const op = "api.lineups_check"
	var req types.LineupRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	c, err := h.deps.CheckLineup(r.Context(), req.Players)
	resp := types.LineupResponse{
		Complete: err == nil,
		Labels:   nonNil(c.Labels),
		Players:  nonNil(c.Players),
		Warnings: nonNil(c.Warnings),
	}
	if err != nil {
		if !errors.Is(err, lineup.ErrIncomplete) && !errors.Is(err, lineup.ErrTooMany) {
			writeFailure(w, Wrap(op, err))
			return
		}
		resp.Message = err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
