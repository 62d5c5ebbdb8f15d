// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load layers file and env on top.
// - Dataset paths are plain file paths; optional datasets are disabled by
//   an empty path.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// AllowedOrigins lists the CORS origins allowed to call the API. Empty
	// allows any origin.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// TeamsPath is the team registry file (column "team").
	TeamsPath string `koanf:"teams_path"`

	// PlayersPath is the semicolon separated player rating file.
	PlayersPath string `koanf:"players_path"`

	// SchedulePath is the match history file.
	SchedulePath string `koanf:"schedule_path"`

	// StandingsPath, TeamMatchesPath and PlayerStatsPath are optional
	// statistics files.
	StandingsPath   string `koanf:"standings_path"`
	TeamMatchesPath string `koanf:"team_matches_path"`
	PlayerStatsPath string `koanf:"player_stats_path"`

	// HomeModelPath and AwayModelPath are the XGBoost JSON goal models.
	HomeModelPath string `koanf:"home_model_path"`
	AwayModelPath string `koanf:"away_model_path"`

	// H2HLookback is the number of most recent meetings summed into the
	// head-to-head features.
	H2HLookback int `koanf:"h2h_lookback"`

	// SquadSize is the number of players each side must select.
	SquadSize int `koanf:"squad_size"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		TeamsPath:     "data/teams.csv",
		PlayersPath:   "data/players_scores.csv",
		SchedulePath:  "data/schedule.csv",
		HomeModelPath: "data/home_score_model.json",
		AwayModelPath: "data/away_score_model.json",
		H2HLookback:   3,
		SquadSize:     11,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	required := []struct{ key, value string }{
		{"teams_path", c.TeamsPath},
		{"players_path", c.PlayersPath},
		{"schedule_path", c.SchedulePath},
		{"home_model_path", c.HomeModelPath},
		{"away_model_path", c.AwayModelPath},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, r.key)
		}
	}
	if c.H2HLookback <= 0 {
		return fmt.Errorf("%w: h2h_lookback must be positive, got %d", ErrInvalidConfig, c.H2HLookback)
	}
	if c.SquadSize <= 0 {
		return fmt.Errorf("%w: squad_size must be positive, got %d", ErrInvalidConfig, c.SquadSize)
	}
	return nil
}
