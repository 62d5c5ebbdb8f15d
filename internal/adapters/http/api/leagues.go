package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/internal/domain/types"
)

// LeagueDependencies defines the interface for standings queries.
type LeagueDependencies interface {
	Leagues(ctx context.Context) ([]string, error)
	Standings(ctx context.Context, league string) ([]model.Standing, error)
}

// LeaguesHandler handles league requests.
type LeaguesHandler struct {
	deps LeagueDependencies
}

// NewLeaguesHandler creates a new leagues handler.
func NewLeaguesHandler(deps LeagueDependencies) *LeaguesHandler {
	return &LeaguesHandler{deps: deps}
}

// HandleLeagues handles GET /leagues requests.
func (h *LeaguesHandler) HandleLeagues(w http.ResponseWriter, r *http.Request) {
	const op = "api.leagues"
	leagues, err := h.deps.Leagues(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"leagues": leagues})
}

// HandleStandings handles GET /leagues/{league}/standings requests.
func (h *LeaguesHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	const op = "api.standings"
	league := strings.TrimSpace(r.PathValue("league"))
	if league == "" {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	rows, err := h.deps.Standings(r.Context(), league)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	resp := types.StandingsResponse{League: league, Rows: make([]types.StandingRow, 0, len(rows))}
	for _, s := range rows {
		resp.Rows = append(resp.Rows, types.StandingRow{
			Rank:         s.Rank,
			Squad:        s.Squad,
			Played:       s.Played,
			Won:          s.Won,
			Drawn:        s.Drawn,
			Lost:         s.Lost,
			GoalsFor:     s.GoalsFor,
			GoalsAgainst: s.GoalsAgainst,
			GoalDiff:     s.GoalDiff,
			Points:       s.Points,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
