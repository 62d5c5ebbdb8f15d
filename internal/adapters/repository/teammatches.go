package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/pkg/metrics"
)

var dateLayouts = []string{"2006-01-02", "02/01/2006", time.RFC3339}

// Record counts wins, draws and losses.
type Record struct {
	Won   int `json:"won"`
	Drawn int `json:"drawn"`
	Lost  int `json:"lost"`
}

// TeamMatchStore holds per-team match logs, most recent first.
type TeamMatchStore struct {
	byTeam map[string][]model.TeamMatch
}

// NewTeamMatchStore groups entries by team and orders each log by date,
// most recent first. Undated entries sort last.
func NewTeamMatchStore(entries []model.TeamMatch) *TeamMatchStore {
	s := &TeamMatchStore{byTeam: make(map[string][]model.TeamMatch)}
	for _, e := range entries {
		s.byTeam[e.Team] = append(s.byTeam[e.Team], e)
	}
	for _, log := range s.byTeam {
		sort.SliceStable(log, func(i, j int) bool {
			return log[i].Date.After(log[j].Date)
		})
	}
	return s
}

// LoadTeamMatches reads the semicolon-delimited team match log file.
func LoadTeamMatches(ctx context.Context, path string, opts ...Option) (*TeamMatchStore, error) {
	o := defaultLoadOptions(';', opts)
	t, err := readTable(ctx, path, o.delimiter)
	if err != nil {
		return nil, err
	}
	if err := t.require("Team", "Date", "Result"); err != nil {
		return nil, err
	}
	entries := make([]model.TeamMatch, 0, len(t.rows))
	for _, row := range t.rows {
		entries = append(entries, model.TeamMatch{
			Team:         t.cell(row, "Team"),
			Date:         parseDate(t.cell(row, "Date")),
			Competition:  t.cell(row, "Comp"),
			Round:        t.cell(row, "Round"),
			Venue:        t.cell(row, "Venue"),
			Result:       strings.ToUpper(t.cell(row, "Result")),
			GoalsFor:     model.ParseFloat(t.cell(row, "GF")),
			GoalsAgainst: model.ParseFloat(t.cell(row, "GA")),
			Opponent:     t.cell(row, "Opponent"),
		})
	}
	metrics.UpdateDatasetRows("team_matches", len(entries))
	return NewTeamMatchStore(entries), nil
}

// Matches returns the match log of team.
func (s *TeamMatchStore) Matches(team string) ([]model.TeamMatch, error) {
	log, ok := s.byTeam[team]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]model.TeamMatch(nil), log...), nil
}

// Tally counts results in a match log. Results other than W, D and L are ignored.
func Tally(log []model.TeamMatch) Record {
	var r Record
	for _, m := range log {
		switch m.Result {
		case "W":
			r.Won++
		case "D":
			r.Drawn++
		case "L":
			r.Lost++
		}
	}
	return r
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d
		}
	}
	return time.Time{}
}
