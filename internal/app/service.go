// Package service loads the static datasets and models and exposes the
// prediction and statistics operations required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/scoreline/internal/adapters/repository"
	"github.com/okian/scoreline/internal/domain/h2h"
	"github.com/okian/scoreline/internal/domain/lineup"
	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/internal/domain/prediction"
	"github.com/okian/scoreline/internal/domain/strength"
	"github.com/okian/scoreline/pkg/logger"
	"github.com/okian/scoreline/pkg/metrics"
)

// Service implements the API dependencies.
type Service struct {
	mu sync.RWMutex

	// Loaded state
	catalog   *Catalog
	h2h       *h2h.Aggregator
	predictor *prediction.Predictor

	// Configuration
	paths     Paths
	lookback  int
	squadSize int

	// State
	started   bool
	startedAt time.Time

	// Counters
	predictions atomic.Int64
	rejected    atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPaths sets the dataset and model locations.
func WithPaths(p Paths) Option {
	return func(s *Service) {
		s.paths = p
	}
}

// WithLookback sets how many recent meetings feed the head-to-head features.
func WithLookback(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.lookback = n
		}
	}
}

// WithSquadSize sets the number of players each side must select.
func WithSquadSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.squadSize = n
		}
	}
}

// WithCatalog uses an already loaded catalog; Start then skips loading.
func WithCatalog(c *Catalog) Option {
	return func(s *Service) {
		s.catalog = c
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		lookback:  h2h.DefaultLookback,
		squadSize: lineup.SquadSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the catalog, unless one was supplied, and builds the
// aggregators and predictor. Any load failure is returned and the service
// stays stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting prediction service...")

	if s.catalog == nil {
		start := time.Now()
		c, err := LoadCatalog(ctx, s.paths)
		if err != nil {
			s.logger.Error(ctx, "failed to load datasets", logger.Error(err))
			metrics.RecordErrorByComponent("service", "load")
			return err
		}
		s.catalog = c
		s.logger.Info(ctx, "datasets loaded", logger.Int("ms", int(time.Since(start).Milliseconds())))
	}

	c := s.catalog
	s.h2h = h2h.New(c.Matches, h2h.WithLookback(s.lookback))
	s.predictor = prediction.New(
		c.Teams,
		s.h2h,
		strength.New(c.Ratings, strength.WithLogger(s.logger.Named("strength"))),
		timedRegressor{side: "home", model: c.HomeModel},
		timedRegressor{side: "away", model: c.AwayModel},
		prediction.WithLogger(s.logger.Named("predictor")),
	)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "prediction service started",
		logger.Int("teams", c.Teams.Len()),
		logger.Int("matches", c.Matches.Len()),
		logger.Int("ratings", c.Ratings.Len()),
		logger.Bool("standings", c.Standings != nil),
		logger.Bool("team_matches", c.TeamMatches != nil),
		logger.Int("lookback", s.lookback),
	)

	return nil
}

// Stop marks the service stopped. Loaded data is kept for a later Start.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "prediction service stopped")
}

type loaded struct {
	catalog   *Catalog
	h2h       *h2h.Aggregator
	predictor *prediction.Predictor
}

func (s *Service) loaded() (loaded, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return loaded{}, ErrNotStarted
	}
	return loaded{catalog: s.catalog, h2h: s.h2h, predictor: s.predictor}, nil
}

// SquadSize returns the number of players a side must select.
func (s *Service) SquadSize() int { return s.squadSize }

// Teams returns the registry in category order.
func (s *Service) Teams(_ context.Context) ([]string, error) {
	l, err := s.loaded()
	if err != nil {
		return nil, err
	}
	return l.catalog.Teams.Names(), nil
}

// RatedTeams returns the distinct teams of the rating dataset, sorted.
func (s *Service) RatedTeams(_ context.Context) ([]string, error) {
	l, err := s.loaded()
	if err != nil {
		return nil, err
	}
	return l.catalog.Ratings.Teams(), nil
}

// Roster returns the rated players of a team.
func (s *Service) Roster(_ context.Context, team string) ([]model.PlayerRating, error) {
	l, err := s.loaded()
	if err != nil {
		return nil, err
	}
	roster := l.catalog.Ratings.Roster(team)
	if len(roster) == 0 && !l.catalog.Teams.Contains(team) {
		return nil, fmt.Errorf("team %q: %w", team, repository.ErrNotFound)
	}
	return roster, nil
}

// TeamMatches returns the match log of a team with its W/D/L record.
func (s *Service) TeamMatches(_ context.Context, team string) ([]model.TeamMatch, repository.Record, error) {
	l, err := s.loaded()
	if err != nil {
		return nil, repository.Record{}, err
	}
	if l.catalog.TeamMatches == nil {
		return nil, repository.Record{}, fmt.Errorf("team matches: %w", repository.ErrNotLoaded)
	}
	log, err := l.catalog.TeamMatches.Matches(team)
	if err != nil {
		return nil, repository.Record{}, fmt.Errorf("team %q: %w", team, err)
	}
	return log, repository.Tally(log), nil
}

// PlayerStats returns the season statistics of the players of a team,
// ordered by position then appearances.
func (s *Service) PlayerStats(_ context.Context, team string) ([]model.PlayerStats, error) {
	l, err := s.loaded()
	if err != nil {
		return nil, err
	}
	if l.catalog.PlayerStats == nil {
		return nil, fmt.Errorf("player stats: %w", repository.ErrNotLoaded)
	}
	rows, err := l.catalog.PlayerStats.Stats(team)
	if err != nil {
		return nil, fmt.Errorf("team %q: %w", team, err)
	}
	return rows, nil
}

// Leagues returns the leagues with a standings table.
func (s *Service) Leagues(_ context.Context) ([]string, error) {
	l, err := s.loaded()
	if err != nil {
		return nil, err
	}
	if l.catalog.Standings == nil {
		return nil, fmt.Errorf("standings: %w", repository.ErrNotLoaded)
	}
	return l.catalog.Standings.Leagues(), nil
}

// Standings returns the table of one league.
func (s *Service) Standings(_ context.Context, league string) ([]model.Standing, error) {
	l, err := s.loaded()
	if err != nil {
		return nil, err
	}
	if l.catalog.Standings == nil {
		return nil, fmt.Errorf("standings: %w", repository.ErrNotLoaded)
	}
	rows, err := l.catalog.Standings.Standings(league)
	if err != nil {
		return nil, fmt.Errorf("league %q: %w", league, err)
	}
	return rows, nil
}

// HeadToHead summarises the recent meetings of two registered teams.
func (s *Service) HeadToHead(_ context.Context, home, away string) (h2h.Summary, error) {
	l, err := s.loaded()
	if err != nil {
		return h2h.Summary{}, err
	}
	for _, team := range []string{home, away} {
		if !l.catalog.Teams.Contains(team) {
			return h2h.Summary{}, fmt.Errorf("team %q: %w", team, prediction.ErrUnknownTeam)
		}
	}
	return l.h2h.Summarize(home, away), nil
}

// CheckLineup applies the goalkeeper and squad size rules to a selection.
func (s *Service) CheckLineup(_ context.Context, labels []string) (lineup.Checked, error) {
	return lineup.Check(labels, s.squadSize)
}

// Predict runs the predictor and records prediction metrics. An unknown team
// returns an invalid result and a nil error.
func (s *Service) Predict(ctx context.Context, req prediction.Request) (prediction.Result, error) {
	l, err := s.loaded()
	if err != nil {
		return prediction.Result{}, err
	}

	res, err := l.predictor.Predict(ctx, req)
	if err != nil {
		metrics.RecordErrorByComponent("predictor", "model_error")
		metrics.RecordErrorByType("model_error", "high")
		s.logger.Error(ctx, "prediction failed",
			logger.String("home_team", req.HomeTeam),
			logger.String("away_team", req.AwayTeam),
			logger.Error(err),
		)
		return prediction.Result{}, err
	}
	if !res.Valid {
		s.rejected.Add(1)
		metrics.RecordInvalidPrediction("invalid_team")
		return res, nil
	}

	s.predictions.Add(1)
	metrics.RecordPrediction(string(res.Outcome()))
	metrics.RecordFallbackPlayers(len(res.Home.Missing) + len(res.Away.Missing))
	if !res.H2H.GoalDiffSum.Valid {
		metrics.RecordMissingH2H()
	}

	s.logger.Debug(ctx, "scoreline predicted",
		logger.String("home_team", req.HomeTeam),
		logger.String("away_team", req.AwayTeam),
		logger.Float64("home_goals", res.HomeGoals.Value),
		logger.Float64("away_goals", res.AwayGoals.Value),
	)
	return res, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"lookback":    s.lookback,
		"squadSize":   s.squadSize,
		"predictions": s.predictions.Load(),
		"rejected":    s.rejected.Load(),
	}

	if s.started {
		c := s.catalog
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
		stats["teams"] = c.Teams.Len()
		stats["matches"] = c.Matches.Len()
		stats["ratings"] = c.Ratings.Len()
		stats["standingsLoaded"] = c.Standings != nil
		stats["teamMatchesLoaded"] = c.TeamMatches != nil
		stats["playerStatsLoaded"] = c.PlayerStats != nil
		if c.PlayerStats != nil {
			stats["playerStats"] = c.PlayerStats.Len()
		}
	}

	return stats
}
