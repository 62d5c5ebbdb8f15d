package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/okian/scoreline/internal/adapters/repository"
	"github.com/okian/scoreline/internal/adapters/xgb"
	"github.com/okian/scoreline/internal/domain/prediction"
	"github.com/okian/scoreline/internal/domain/registry"
)

// Paths locates the datasets and model artifacts. Standings, TeamMatches and
// PlayerStats are optional and skipped when empty.
type Paths struct {
	Teams       string
	Players     string
	Schedule    string
	Standings   string
	TeamMatches string
	PlayerStats string
	HomeModel   string
	AwayModel   string
}

// Catalog holds everything loaded at start. It is never mutated afterwards
// and is shared by reference.
type Catalog struct {
	Teams       *registry.Registry
	Matches     *repository.MatchStore
	Ratings     *repository.RatingStore
	Standings   *repository.StandingsStore
	TeamMatches *repository.TeamMatchStore
	PlayerStats *repository.PlayerStatsStore
	HomeModel   prediction.Regressor
	AwayModel   prediction.Regressor
}

// LoadCatalog reads all datasets and both models concurrently. The first
// failure cancels the rest and is returned.
func LoadCatalog(ctx context.Context, p Paths) (*Catalog, error) {
	var c Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		c.Teams, err = repository.LoadRegistry(gctx, p.Teams)
		return err
	})
	g.Go(func() (err error) {
		c.Matches, err = repository.LoadMatches(gctx, p.Schedule)
		return err
	})
	g.Go(func() (err error) {
		c.Ratings, err = repository.LoadRatings(gctx, p.Players)
		return err
	})
	if p.Standings != "" {
		g.Go(func() (err error) {
			c.Standings, err = repository.LoadStandings(gctx, p.Standings)
			return err
		})
	}
	if p.TeamMatches != "" {
		g.Go(func() (err error) {
			c.TeamMatches, err = repository.LoadTeamMatches(gctx, p.TeamMatches)
			return err
		})
	}
	if p.PlayerStats != "" {
		g.Go(func() (err error) {
			c.PlayerStats, err = repository.LoadPlayerStats(gctx, p.PlayerStats)
			return err
		})
	}
	g.Go(func() error {
		m, err := xgb.Load(p.HomeModel, xgb.WithSchema(prediction.Schema))
		if err != nil {
			return err
		}
		c.HomeModel = m
		return nil
	})
	g.Go(func() error {
		m, err := xgb.Load(p.AwayModel, xgb.WithSchema(prediction.Schema))
		if err != nil {
			return err
		}
		c.AwayModel = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return &c, nil
}
