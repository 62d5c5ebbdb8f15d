// Package prediction assembles head-to-head and lineup strength features and
// queries the home and away goal regressors.
package prediction

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/scoreline/internal/domain/h2h"
	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/internal/domain/strength"
	"github.com/okian/scoreline/pkg/logger"
)

// Regressor predicts one scalar from a feature row in Schema order.
type Regressor interface {
	Predict(ctx context.Context, row []float64) (float64, error)
}

// TeamDomain encodes team names over the fixed category domain.
type TeamDomain interface {
	Code(name string) (int, bool)
}

// HeadToHead summarises recent meetings.
type HeadToHead interface {
	Summarize(home, away string) h2h.Summary
}

// Strength scores a lineup.
type Strength interface {
	Score(ctx context.Context, team string, players []string) strength.Score
}

// Request names the two teams and their starting players.
type Request struct {
	HomeTeam    string
	HomePlayers []string
	AwayTeam    string
	AwayPlayers []string
}

// Outcome of a predicted scoreline.
type Outcome string

// Outcomes.
const (
	OutcomeHome Outcome = "home"
	OutcomeAway Outcome = "away"
	OutcomeDraw Outcome = "draw"
)

// Result is a predicted scoreline. When Valid is false one of the teams is
// outside the registry, goals are missing and no model was queried.
type Result struct {
	Valid     bool
	Reason    string
	HomeGoals model.NullFloat
	AwayGoals model.NullFloat
	Features  Features
	H2H       h2h.Summary
	Home      strength.Score
	Away      strength.Score
}

// Outcome returns which side the scoreline favours. It is empty for an
// invalid result.
func (r Result) Outcome() Outcome {
	switch {
	case !r.Valid:
		return ""
	case r.HomeGoals.Value > r.AwayGoals.Value:
		return OutcomeHome
	case r.AwayGoals.Value > r.HomeGoals.Value:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

// Colors returns the display colours of the home and away goals: green for
// the favourite, red for the other side, white on a draw. Both are empty for
// an invalid result.
func (r Result) Colors() (home, away string) {
	switch r.Outcome() {
	case OutcomeHome:
		return "green", "red"
	case OutcomeAway:
		return "red", "green"
	case OutcomeDraw:
		return "white", "white"
	default:
		return "", ""
	}
}

// Option applies a configuration option to the Predictor.
type Option func(*Predictor)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(p *Predictor) {
		if l != nil {
			p.logger = l
		}
	}
}

// Predictor produces scorelines. It holds read-only collaborators and is
// safe to share.
type Predictor struct {
	teams    TeamDomain
	h2h      HeadToHead
	strength Strength
	home     Regressor
	away     Regressor
	logger   logger.Logger
}

// New creates a Predictor.
func New(teams TeamDomain, hh HeadToHead, st Strength, home, away Regressor, opts ...Option) *Predictor {
	p := &Predictor{
		teams:    teams,
		h2h:      hh,
		strength: st,
		home:     home,
		away:     away,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Predict returns the rounded scoreline for req. An unknown team yields an
// invalid Result and a nil error; errors come from the regressors only.
func (p *Predictor) Predict(ctx context.Context, req Request) (Result, error) {
	homeCode, okHome := p.teams.Code(req.HomeTeam)
	awayCode, okAway := p.teams.Code(req.AwayTeam)
	if !okHome || !okAway {
		p.warn(ctx, "team outside registry",
			logger.String("home_team", req.HomeTeam), logger.String("away_team", req.AwayTeam))
		return Result{Reason: fmt.Sprintf("%s or %s: %v", req.HomeTeam, req.AwayTeam, ErrUnknownTeam)}, nil
	}

	res := Result{Valid: true}
	res.H2H = p.h2h.Summarize(req.HomeTeam, req.AwayTeam)
	res.Home = p.strength.Score(ctx, req.HomeTeam, req.HomePlayers)
	res.Away = p.strength.Score(ctx, req.AwayTeam, req.AwayPlayers)

	if len(res.Home.Missing) > 0 || len(res.Away.Missing) > 0 {
		p.warn(ctx, "players unresolved, mean rating used",
			logger.String("home_team", req.HomeTeam),
			logger.String("away_team", req.AwayTeam),
			logger.Any("home_missing", res.Home.Missing),
			logger.Any("away_missing", res.Away.Missing),
		)
	}

	res.Features = Features{
		HomeTeam:         Category{Name: req.HomeTeam, Code: homeCode},
		AwayTeam:         Category{Name: req.AwayTeam, Code: awayCode},
		H2HGoalDiffSum:   res.H2H.GoalDiffSum,
		H2HXGDiffSum:     res.H2H.XGDiffSum,
		HomePlayersScore: model.Float(res.Home.Total),
		AwayPlayersScore: model.Float(res.Away.Total),
	}
	row := res.Features.Vector()

	homeGoals, err := p.home.Predict(ctx, row)
	if err != nil {
		return Result{}, fmt.Errorf("home goals: %w: %w", ErrModel, err)
	}
	awayGoals, err := p.away.Predict(ctx, row)
	if err != nil {
		return Result{}, fmt.Errorf("away goals: %w: %w", ErrModel, err)
	}
	res.HomeGoals = model.Float(Round1(homeGoals))
	res.AwayGoals = model.Float(Round1(awayGoals))
	return res, nil
}

// Round1 rounds x to one decimal place, halves away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func (p *Predictor) warn(ctx context.Context, msg string, fields ...logger.Field) {
	if p.logger != nil {
		p.logger.Warn(ctx, msg, fields...)
	}
}
