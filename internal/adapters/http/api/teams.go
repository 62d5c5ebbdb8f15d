package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/scoreline/internal/adapters/repository"
	"github.com/okian/scoreline/internal/domain/lineup"
	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/internal/domain/types"
)

// headshotURL is the player picture location keyed by the profile id.
const headshotURL = "https://fbref.com/req/202302030/images/headshots/%s_2022.jpg"

// TeamDependencies defines the interface for team queries.
type TeamDependencies interface {
	Teams(ctx context.Context) ([]string, error)
	RatedTeams(ctx context.Context) ([]string, error)
	Roster(ctx context.Context, team string) ([]model.PlayerRating, error)
	PlayerStats(ctx context.Context, team string) ([]model.PlayerStats, error)
	TeamMatches(ctx context.Context, team string) ([]model.TeamMatch, repository.Record, error)
}

// TeamsHandler handles team requests.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleTeams handles GET /teams requests. The source query parameter picks
// the registry (default) or the teams present in the rating file.
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.teams"
	var (
		teams []string
		err   error
	)
	switch source := r.URL.Query().Get("source"); source {
	case "", "registry":
		teams, err = h.deps.Teams(r.Context())
	case "ratings":
		teams, err = h.deps.RatedTeams(r.Context())
	default:
		writeFailure(w, WrapKind(op, ErrBadRequest, fmt.Errorf("unknown source %q", source)))
		return
	}
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"teams": teams})
}

// HandleRoster handles GET /teams/{team}/players requests.
func (h *TeamsHandler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.team_players"
	team := strings.TrimSpace(r.PathValue("team"))
	if team == "" {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	roster, err := h.deps.Roster(r.Context(), team)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	resp := types.RosterResponse{Team: team, Groups: []types.PositionGroup{}, Options: lineup.Options(roster)}
	for _, g := range lineup.Groups(roster) {
		group := types.PositionGroup{Position: g.Position, Players: make([]types.Player, 0, len(g.Players))}
		for _, p := range g.Players {
			group.Players = append(group.Players, toPlayer(p))
		}
		resp.Groups = append(resp.Groups, group)
	}
	if resp.Options == nil {
		resp.Options = []string{}
	}

	stats, err := h.deps.PlayerStats(r.Context(), team)
	switch {
	case err == nil:
		resp.Stats = toStatRows(stats)
	case !errors.Is(err, repository.ErrNotLoaded) && !errors.Is(err, repository.ErrNotFound):
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleStats handles GET /teams/{team}/stats requests.
func (h *TeamsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	const op = "api.team_stats"
	team := strings.TrimSpace(r.PathValue("team"))
	if team == "" {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	stats, err := h.deps.PlayerStats(r.Context(), team)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.PlayerStatsResponse{Team: team, Players: toStatRows(stats)})
}

// HandleMatches handles GET /teams/{team}/matches requests.
func (h *TeamsHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.team_matches"
	team := strings.TrimSpace(r.PathValue("team"))
	if team == "" {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	log, rec, err := h.deps.TeamMatches(r.Context(), team)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}

	resp := types.TeamMatchesResponse{
		Team:    team,
		Record:  types.Record{Won: rec.Won, Drawn: rec.Drawn, Lost: rec.Lost},
		Matches: make([]types.MatchEntry, 0, len(log)),
	}
	for _, m := range log {
		entry := types.MatchEntry{
			Competition:  m.Competition,
			Round:        m.Round,
			Venue:        m.Venue,
			Result:       m.Result,
			GoalsFor:     m.GoalsFor,
			GoalsAgainst: m.GoalsAgainst,
			Opponent:     m.Opponent,
		}
		if !m.Date.IsZero() {
			entry.Date = m.Date.Format("2006-01-02")
		}
		resp.Matches = append(resp.Matches, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}

func toPlayer(p model.PlayerRating) types.Player {
	out := types.Player{
		Name:     p.Player,
		Position: p.Position,
		Label:    lineup.Label(p.Player, p.Position),
		Rating:   p.Score,
	}
	if id := p.PlayerID(); id != "" {
		out.HeadshotURL = fmt.Sprintf(headshotURL, id)
	}
	return out
}

func toStatRows(stats []model.PlayerStats) []types.PlayerStatRow {
	rows := make([]types.PlayerStatRow, 0, len(stats))
	for _, p := range stats {
		row := types.PlayerStatRow{
			Name:     p.Player,
			Age:      p.Age,
			Position: p.Position,
			Played:   p.Played,
			Nineties: p.Nineties,
			Goals:    p.Goals,
			Assists:  p.Assists,
			Yellow:   p.Yellow,
			Red:      p.Red,
		}
		if id := p.PlayerID(); id != "" {
			row.HeadshotURL = fmt.Sprintf(headshotURL, id)
		}
		rows = append(rows, row)
	}
	return rows
}
