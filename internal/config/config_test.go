package config_test

import (
	"errors"
	"testing"

	"github.com/okian/scoreline/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.TeamsPath, convey.ShouldEqual, "data/teams.csv")
			convey.So(cfg.H2HLookback, convey.ShouldEqual, 3)
			convey.So(cfg.SquadSize, convey.ShouldEqual, 11)
			convey.So(cfg.StandingsPath, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid values", t, func() {
		cases := map[string]func(*config.Config){
			"addr":            func(c *config.Config) { c.Addr = " " },
			"teams_path":      func(c *config.Config) { c.TeamsPath = "" },
			"players_path":    func(c *config.Config) { c.PlayersPath = "" },
			"schedule_path":   func(c *config.Config) { c.SchedulePath = "" },
			"home_model_path": func(c *config.Config) { c.HomeModelPath = "" },
			"away_model_path": func(c *config.Config) { c.AwayModelPath = "" },
			"h2h_lookback":    func(c *config.Config) { c.H2HLookback = 0 },
			"squad_size":      func(c *config.Config) { c.SquadSize = -1 },
		}

		for key, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, key)
		}
	})
}
