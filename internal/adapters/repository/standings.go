package repository

import (
	"context"
	"math"

	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/pkg/metrics"
)

// StandingsStore holds league tables keyed by league name.
type StandingsStore struct {
	leagues  []string
	byLeague map[string][]model.Standing
}

// NewStandingsStore groups rows by league, keeping first-seen league order.
func NewStandingsStore(rows []model.Standing) *StandingsStore {
	s := &StandingsStore{byLeague: make(map[string][]model.Standing)}
	for _, r := range rows {
		if _, ok := s.byLeague[r.League]; !ok {
			s.leagues = append(s.leagues, r.League)
		}
		s.byLeague[r.League] = append(s.byLeague[r.League], r)
	}
	return s
}

// LoadStandings reads the semicolon-delimited merged league table file.
func LoadStandings(ctx context.Context, path string, opts ...Option) (*StandingsStore, error) {
	o := defaultLoadOptions(';', opts)
	t, err := readTable(ctx, path, o.delimiter)
	if err != nil {
		return nil, err
	}
	if err := t.require("League", "Squad"); err != nil {
		return nil, err
	}
	rows := make([]model.Standing, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, model.Standing{
			League:       t.cell(row, "League"),
			Rank:         intCell(t, row, "Rk"),
			Squad:        t.cell(row, "Squad"),
			Played:       intCell(t, row, "MP"),
			Won:          intCell(t, row, "W"),
			Drawn:        intCell(t, row, "D"),
			Lost:         intCell(t, row, "L"),
			GoalsFor:     intCell(t, row, "GF"),
			GoalsAgainst: intCell(t, row, "GA"),
			GoalDiff:     intCell(t, row, "GD"),
			Points:       intCell(t, row, "Pts"),
		})
	}
	metrics.UpdateDatasetRows("standings", len(rows))
	return NewStandingsStore(rows), nil
}

// Leagues returns league names in file order.
func (s *StandingsStore) Leagues() []string {
	return append([]string(nil), s.leagues...)
}

// Standings returns the table of league.
func (s *StandingsStore) Standings(league string) ([]model.Standing, error) {
	rows, ok := s.byLeague[league]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]model.Standing(nil), rows...), nil
}

// intCell reads an integer column; absent or unreadable cells read as zero.
func intCell(t *table, row []string, name string) int {
	v := model.ParseFloat(t.cell(row, name))
	if !v.Valid {
		return 0
	}
	return int(math.Round(v.Value))
}
