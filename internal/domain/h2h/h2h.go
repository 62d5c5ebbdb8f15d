// Package h2h summarises recent head-to-head meetings between two teams.
package h2h

import (
	"github.com/okian/scoreline/internal/domain/model"
)

// DefaultLookback is the number of most recent meetings considered.
const DefaultLookback = 3

// MatchSource returns the meetings between two teams, most recent first.
type MatchSource interface {
	Between(a, b string) []model.Match
}

// Summary is the head-to-head view from the queried home team's side.
// With no meetings both sums are missing, not zero.
type Summary struct {
	Matches     int               `json:"matches"`
	GoalDiffs   []model.NullFloat `json:"goal_diffs"`
	XGDiffs     []model.NullFloat `json:"xg_diffs"`
	GoalDiffSum model.NullFloat   `json:"goal_diff_sum"`
	XGDiffSum   model.NullFloat   `json:"xg_diff_sum"`
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithLookback sets how many recent meetings are summarised.
func WithLookback(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.lookback = n
		}
	}
}

// Aggregator computes head-to-head summaries over a match source.
type Aggregator struct {
	source   MatchSource
	lookback int
}

// New creates an Aggregator over source.
func New(source MatchSource, opts ...Option) *Aggregator {
	a := &Aggregator{source: source, lookback: DefaultLookback}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Lookback returns the configured number of meetings.
func (a *Aggregator) Lookback() int { return a.lookback }

// Summarize returns the differentials of the last meetings of home and away.
func (a *Aggregator) Summarize(home, away string) Summary {
	meetings := a.source.Between(home, away)
	if len(meetings) > a.lookback {
		meetings = meetings[:a.lookback]
	}

	s := Summary{
		Matches:   len(meetings),
		GoalDiffs: make([]model.NullFloat, 0, len(meetings)),
		XGDiffs:   make([]model.NullFloat, 0, len(meetings)),
	}
	if len(meetings) == 0 {
		return s
	}

	var goalSum, xgSum float64
	for _, m := range meetings {
		m = Orient(m, home)
		gd := diff(m.HomeScore, m.AwayScore)
		xd := diff(m.HomeXG, m.AwayXG)
		s.GoalDiffs = append(s.GoalDiffs, gd)
		s.XGDiffs = append(s.XGDiffs, xd)
		if gd.Valid {
			goalSum += gd.Value
		}
		if xd.Valid {
			xgSum += xd.Value
		}
	}
	s.GoalDiffSum = model.Float(goalSum)
	s.XGDiffSum = model.Float(xgSum)
	return s
}

// Orient swaps the sides of m when home played away in the stored fixture.
func Orient(m model.Match, home string) model.Match {
	if m.HomeTeam == home {
		return m
	}
	m.HomeTeam, m.AwayTeam = m.AwayTeam, m.HomeTeam
	m.HomeScore, m.AwayScore = m.AwayScore, m.HomeScore
	m.HomeXG, m.AwayXG = m.AwayXG, m.HomeXG
	return m
}

func diff(a, b model.NullFloat) model.NullFloat {
	if !a.Valid || !b.Valid {
		return model.Missing()
	}
	return model.Float(a.Value - b.Value)
}
