package repository

import (
	"context"
	"sort"

	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/pkg/metrics"
)

// PlayerStatsStore holds per-team player season statistics.
type PlayerStatsStore struct {
	byTeam map[string][]model.PlayerStats
}

// NewPlayerStatsStore groups rows by team and orders each squad by position,
// then by appearances with the most used players first.
func NewPlayerStatsStore(rows []model.PlayerStats) *PlayerStatsStore {
	s := &PlayerStatsStore{byTeam: make(map[string][]model.PlayerStats)}
	for _, r := range rows {
		s.byTeam[r.Team] = append(s.byTeam[r.Team], r)
	}
	for _, squad := range s.byTeam {
		sort.SliceStable(squad, func(i, j int) bool {
			if squad[i].Position != squad[j].Position {
				return squad[i].Position < squad[j].Position
			}
			return squad[i].Played > squad[j].Played
		})
	}
	return s
}

// LoadPlayerStats reads the semicolon-delimited player statistics file.
func LoadPlayerStats(ctx context.Context, path string, opts ...Option) (*PlayerStatsStore, error) {
	o := defaultLoadOptions(';', opts)
	t, err := readTable(ctx, path, o.delimiter)
	if err != nil {
		return nil, err
	}
	if err := t.require("Team", "Player", "Age", "Pos", "MP", "90s", "Gls", "Ast", "CrdY", "CrdR"); err != nil {
		return nil, err
	}
	rows := make([]model.PlayerStats, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, model.PlayerStats{
			Team:      t.cell(row, "Team"),
			Player:    t.cell(row, "Player"),
			PlayerURL: t.cell(row, "Player_URL"),
			Age:       t.cell(row, "Age"),
			Position:  t.cell(row, "Pos"),
			Played:    intCell(t, row, "MP"),
			Nineties:  model.ParseFloat(t.cell(row, "90s")),
			Goals:     intCell(t, row, "Gls"),
			Assists:   intCell(t, row, "Ast"),
			Yellow:    intCell(t, row, "CrdY"),
			Red:       intCell(t, row, "CrdR"),
		})
	}
	metrics.UpdateDatasetRows("player_stats", len(rows))
	return NewPlayerStatsStore(rows), nil
}

// Stats returns the players of team in display order.
func (s *PlayerStatsStore) Stats(team string) ([]model.PlayerStats, error) {
	squad, ok := s.byTeam[team]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]model.PlayerStats(nil), squad...), nil
}

// Len returns the number of loaded rows.
func (s *PlayerStatsStore) Len() int {
	n := 0
	for _, squad := range s.byTeam {
		n += len(squad)
	}
	return n
}
