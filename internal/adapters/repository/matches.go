package repository

import (
	"context"

	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/pkg/metrics"
)

// Column names of the match history file.
const (
	colHomeTeam  = "home_team"
	colAwayTeam  = "away_team"
	colHomeScore = "home_score"
	colAwayScore = "away_score"
	colHomeXG    = "home_xg"
	colAwayXG    = "away_xg"
)

// MatchStore is the read-only match history, kept in file order.
type MatchStore struct {
	matches []model.Match
}

// NewMatchStore builds a store from fixtures in chronological (file) order.
// Each fixture's Index is reset to its position.
func NewMatchStore(matches []model.Match) *MatchStore {
	s := &MatchStore{matches: make([]model.Match, len(matches))}
	for i, m := range matches {
		m.Index = i
		s.matches[i] = m
	}
	return s
}

// LoadMatches reads the match history file. The file must carry both
// home_team and away_team columns; score and xG columns are optional and
// unreadable cells load as missing.
func LoadMatches(ctx context.Context, path string, opts ...Option) (*MatchStore, error) {
	o := defaultLoadOptions(',', opts)
	t, err := readTable(ctx, path, o.delimiter)
	if err != nil {
		return nil, err
	}
	if err := t.require(colHomeTeam, colAwayTeam); err != nil {
		return nil, err
	}
	matches := make([]model.Match, 0, len(t.rows))
	for _, row := range t.rows {
		matches = append(matches, model.Match{
			HomeTeam:  t.cell(row, colHomeTeam),
			AwayTeam:  t.cell(row, colAwayTeam),
			HomeScore: model.ParseFloat(t.cell(row, colHomeScore)),
			AwayScore: model.ParseFloat(t.cell(row, colAwayScore)),
			HomeXG:    model.ParseFloat(t.cell(row, colHomeXG)),
			AwayXG:    model.ParseFloat(t.cell(row, colAwayXG)),
		})
	}
	s := NewMatchStore(matches)
	metrics.UpdateDatasetRows("matches", s.Len())
	return s, nil
}

// Between returns every meeting of a and b in either orientation, most
// recent first.
func (s *MatchStore) Between(a, b string) []model.Match {
	var out []model.Match
	for i := len(s.matches) - 1; i >= 0; i-- {
		if s.matches[i].Involves(a, b) {
			out = append(out, s.matches[i])
		}
	}
	return out
}

// Len returns the number of fixtures.
func (s *MatchStore) Len() int { return len(s.matches) }
