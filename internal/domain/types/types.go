// Package types contains the request and response shapes shared by the HTTP
// API and its clients.
package types

import "github.com/okian/scoreline/internal/domain/model"

// PredictRequest is the body of POST /predict. Players may be option labels
// ("Name (POS)") or plain names.
type PredictRequest struct {
	HomeTeam    string   `json:"home_team" yaml:"home_team" koanf:"home_team" validate:"required,max=128"`
	HomePlayers []string `json:"home_players" yaml:"home_players" koanf:"home_players" validate:"required,max=64,dive,max=128"`
	AwayTeam    string   `json:"away_team" yaml:"away_team" koanf:"away_team" validate:"required,max=128"`
	AwayPlayers []string `json:"away_players" yaml:"away_players" koanf:"away_players" validate:"required,max=64,dive,max=128"`
}

// Features mirrors the model input row.
type Features struct {
	HomeTeam         string          `json:"home_team"`
	HomeTeamCode     int             `json:"home_team_code"`
	AwayTeam         string          `json:"away_team"`
	AwayTeamCode     int             `json:"away_team_code"`
	H2HGoalDiffSum   model.NullFloat `json:"h2h_goal_diff_sum"`
	H2HXGDiffSum     model.NullFloat `json:"h2h_xg_diff_sum"`
	HomePlayersScore model.NullFloat `json:"home_team_players_score"`
	AwayPlayersScore model.NullFloat `json:"away_team_players_score"`
}

// PredictResponse is a predicted scoreline.
type PredictResponse struct {
	RequestID   string   `json:"request_id"`
	HomeTeam    string   `json:"home_team"`
	AwayTeam    string   `json:"away_team"`
	HomeGoals   float64  `json:"home_goals"`
	AwayGoals   float64  `json:"away_goals"`
	Outcome     string   `json:"outcome"`
	HomeColor   string   `json:"home_color"`
	AwayColor   string   `json:"away_color"`
	Features    Features `json:"features"`
	HomeMissing []string `json:"home_missing"`
	AwayMissing []string `json:"away_missing"`
	Warnings    []string `json:"warnings,omitempty"`
}

// LineupRequest is the body of POST /lineups/check.
type LineupRequest struct {
	Players []string `json:"players" validate:"required,max=64,dive,max=128"`
}

// LineupResponse is a selection after the lineup rules were applied.
type LineupResponse struct {
	Complete bool     `json:"complete"`
	Message  string   `json:"message,omitempty"`
	Labels   []string `json:"labels"`
	Players  []string `json:"players"`
	Warnings []string `json:"warnings"`
}

// Player is one selectable player of a roster.
type Player struct {
	Name        string          `json:"name"`
	Position    string          `json:"position"`
	Label       string          `json:"label"`
	Rating      model.NullFloat `json:"rating"`
	HeadshotURL string          `json:"headshot_url,omitempty"`
}

// PositionGroup lists the players of one position.
type PositionGroup struct {
	Position string   `json:"position"`
	Players  []Player `json:"players"`
}

// RosterResponse is the body of GET /teams/{team}/players. Stats is set
// when the player statistics file is loaded.
type RosterResponse struct {
	Team    string          `json:"team"`
	Groups  []PositionGroup `json:"groups"`
	Options []string        `json:"options"`
	Stats   []PlayerStatRow `json:"stats,omitempty"`
}

// PlayerStatRow is the season line of one player.
type PlayerStatRow struct {
	Name        string          `json:"name"`
	Age         string          `json:"age"`
	Position    string          `json:"position"`
	Played      int             `json:"matches_played"`
	Nineties    model.NullFloat `json:"nineties"`
	Goals       int             `json:"goals"`
	Assists     int             `json:"assists"`
	Yellow      int             `json:"yellow_cards"`
	Red         int             `json:"red_cards"`
	HeadshotURL string          `json:"headshot_url,omitempty"`
}

// PlayerStatsResponse is the body of GET /teams/{team}/stats.
type PlayerStatsResponse struct {
	Team    string          `json:"team"`
	Players []PlayerStatRow `json:"players"`
}

// MatchEntry is one row of a team match log.
type MatchEntry struct {
	Date         string          `json:"date"`
	Competition  string          `json:"competition"`
	Round        string          `json:"round"`
	Venue        string          `json:"venue"`
	Result       string          `json:"result"`
	GoalsFor     model.NullFloat `json:"goals_for"`
	GoalsAgainst model.NullFloat `json:"goals_against"`
	Opponent     string          `json:"opponent"`
}

// Record counts wins, draws and losses.
type Record struct {
	Won   int `json:"won"`
	Drawn int `json:"drawn"`
	Lost  int `json:"lost"`
}

// TeamMatchesResponse is the body of GET /teams/{team}/matches.
type TeamMatchesResponse struct {
	Team    string       `json:"team"`
	Record  Record       `json:"record"`
	Matches []MatchEntry `json:"matches"`
}

// StandingRow is one row of a league table.
type StandingRow struct {
	Rank         int    `json:"rank"`
	Squad        string `json:"squad"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

// StandingsResponse is the body of GET /leagues/{league}/standings.
type StandingsResponse struct {
	League string        `json:"league"`
	Rows   []StandingRow `json:"rows"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
