package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/scoreline/internal/domain/h2h"
)

// H2HDependencies defines the interface for head-to-head queries.
type H2HDependencies interface {
	HeadToHead(ctx context.Context, home, away string) (h2h.Summary, error)
}

// H2HHandler handles head-to-head requests.
type H2HHandler struct {
	deps H2HDependencies
}

// NewH2HHandler creates a new head-to-head handler.
func NewH2HHandler(deps H2HDependencies) *H2HHandler {
	return &H2HHandler{deps: deps}
}

type h2hResponse struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	h2h.Summary
}

// HandleH2H handles GET /h2h?home=&away= requests.
func (h *H2HHandler) HandleH2H(w http.ResponseWriter, r *http.Request) {
	const op = "api.h2h"
	home := strings.TrimSpace(r.URL.Query().Get("home"))
	away := strings.TrimSpace(r.URL.Query().Get("away"))
	if home == "" || away == "" {
		writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("home and away are required")))
		return
	}
	sum, err := h.deps.HeadToHead(r.Context(), home, away)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, h2hResponse{HomeTeam: home, AwayTeam: away, Summary: sum})
}
