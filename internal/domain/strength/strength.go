// Package strength turns a named starting eleven into a team strength score.
//
// Names that cannot be resolved, neither under the team nor anywhere in the
// rating table, are credited with the league-wide mean rating. This is an
// intentional degradation: a typo or a roster mismatch lowers the precision
// of a prediction but never blocks it. The unresolved names are reported
// alongside the total so callers can surface them.
package strength

import (
	"context"
	"sort"
	"strings"

	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/pkg/logger"
)

// Source tells where a contribution came from.
type Source string

// Contribution sources.
const (
	SourceTeam     Source = "team"
	SourceLeague   Source = "league"
	SourceFallback Source = "fallback"
)

// RatingSource is the read side of the player rating table.
type RatingSource interface {
	ByTeamAndName(team, name string) []model.PlayerRating
	ByName(name string) []model.PlayerRating
	Mean() model.NullFloat
}

// Contribution is one rating counted in a team total.
type Contribution struct {
	Player string          `json:"player"`
	Team   string          `json:"team"`
	Rating model.NullFloat `json:"rating"`
	Source Source          `json:"source"`
}

// Score is the aggregated strength of a lineup.
type Score struct {
	Team          string         `json:"team"`
	Total         float64        `json:"total"`
	Contributions []Contribution `json:"contributions"`
	// Missing lists names found in no row of the rating table, before
	// the mean fallback was applied.
	Missing []string `json:"missing"`
}

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger used for lookup diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// Aggregator sums player ratings for a lineup.
type Aggregator struct {
	ratings RatingSource
	logger  logger.Logger
}

// New creates an Aggregator over ratings.
func New(ratings RatingSource, opts ...Option) *Aggregator {
	a := &Aggregator{ratings: ratings}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Score sums the ratings of players for team. Blank slots are dropped and
// repeated names count once. It never fails.
func (a *Aggregator) Score(ctx context.Context, team string, players []string) Score {
	names := distinct(players)
	s := Score{Team: team, Contributions: make([]Contribution, 0, len(names))}

	var unresolved []string
	for _, name := range names {
		rows := a.ratings.ByTeamAndName(team, name)
		if len(rows) == 0 {
			unresolved = append(unresolved, name)
			continue
		}
		s.add(rows, SourceTeam)
	}

	if len(unresolved) > 0 {
		a.debug(ctx, "players not found under team, trying whole table",
			logger.String("team", team), logger.Any("players", unresolved))
	}

	for _, name := range unresolved {
		rows := a.ratings.ByName(name)
		if len(rows) == 0 {
			s.Missing = append(s.Missing, name)
			continue
		}
		s.add(rows, SourceLeague)
	}

	mean := a.ratings.Mean()
	for _, name := range s.Missing {
		s.Contributions = append(s.Contributions, Contribution{
			Player: name,
			Team:   team,
			Rating: mean,
			Source: SourceFallback,
		})
		if mean.Valid {
			s.Total += mean.Value
		}
	}
	sort.Strings(s.Missing)
	return s
}

func (s *Score) add(rows []model.PlayerRating, src Source) {
	for _, r := range rows {
		s.Contributions = append(s.Contributions, Contribution{
			Player: r.Player,
			Team:   r.Team,
			Rating: r.Score,
			Source: src,
		})
		if r.Score.Valid {
			s.Total += r.Score.Value
		}
	}
}

func (a *Aggregator) debug(ctx context.Context, msg string, fields ...logger.Field) {
	if a.logger != nil {
		a.logger.Debug(ctx, msg, fields...)
	}
}

func distinct(players []string) []string {
	seen := make(map[string]struct{}, len(players))
	out := make([]string, 0, len(players))
	for _, p := range players {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
