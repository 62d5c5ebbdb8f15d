package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/scoreline/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.PlayersPath, convey.ShouldEqual, "data/players_scores.csv")
				convey.So(cfg.H2HLookback, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SCORELINE_ADDR", ":8080")
			_ = os.Setenv("SCORELINE_H2H_LOOKBACK", "5")
			_ = os.Setenv("SCORELINE_TEAMS_PATH", "/srv/teams.csv")
			_ = os.Setenv("SCORELINE_ALLOWED_ORIGINS", "https://a.example,https://b.example")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.H2HLookback, convey.ShouldEqual, 5)
				convey.So(cfg.TeamsPath, convey.ShouldEqual, "/srv/teams.csv")
				convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
				convey.So(cfg.SchedulePath, convey.ShouldEqual, "data/schedule.csv")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
# datasets
addr: ":9090"  # listen
log_level: debug
h2h_lookback: 4
standings_path: data/merged_teams_data.csv
player_stats_path: data/players_data.csv
allowed_origins:
  - http://localhost:8501
`
			tmpFile := createTempConfigFile(t, yamlContent)
			_ = os.Setenv("SCORELINE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.H2HLookback, convey.ShouldEqual, 4)
				convey.So(cfg.StandingsPath, convey.ShouldEqual, "data/merged_teams_data.csv")
				convey.So(cfg.PlayerStatsPath, convey.ShouldEqual, "data/players_data.csv")
				convey.So(cfg.TeamMatchesPath, convey.ShouldBeEmpty)
				convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"http://localhost:8501"})
				convey.So(cfg.SquadSize, convey.ShouldEqual, 11)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(t, "addr: \":9090\"\nh2h_lookback: 4\n")
			_ = os.Setenv("SCORELINE_CONFIG", tmpFile)
			_ = os.Setenv("SCORELINE_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.H2HLookback, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("SCORELINE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SCORELINE_CONFIG", "/non/existent/scoreline.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("SCORELINE_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive lookback", func() {
			_ = os.Setenv("SCORELINE_H2H_LOOKBACK", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SCORELINE_SQUAD_SIZE", "eleven")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SCORELINE_CONFIG",
		"SCORELINE_ADDR",
		"SCORELINE_H2H_LOOKBACK",
		"SCORELINE_TEAMS_PATH",
		"SCORELINE_ALLOWED_ORIGINS",
		"SCORELINE_SQUAD_SIZE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "scoreline-config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpFile.Name()
}
