// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// NullFloat is a numeric feature that may be absent. Absent values are never
// coerced to zero; they surface as NaN in model input and null in JSON.
type NullFloat struct {
	Value float64
	Valid bool
}

// Float wraps a present value. NaN is treated as absent.
func Float(v float64) NullFloat {
	if math.IsNaN(v) {
		return NullFloat{}
	}
	return NullFloat{Value: v, Valid: true}
}

// Missing returns an absent value.
func Missing() NullFloat { return NullFloat{} }

// ParseFloat reads a tabular cell. Blank, "NA" and unparseable cells are absent.
func ParseFloat(s string) NullFloat {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "nan", "<na>", "null":
		return NullFloat{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NullFloat{}
	}
	return Float(v)
}

// Float64 returns the value, or NaN when absent.
func (n NullFloat) Float64() float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Value
}

// MarshalJSON encodes absent values as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts a number or null.
func (n *NullFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Float(v)
	return nil
}

// Match is one historical fixture. Index is the row position in the
// schedule file; higher means more recent.
type Match struct {
	Index     int
	HomeTeam  string
	AwayTeam  string
	HomeScore NullFloat
	AwayScore NullFloat
	HomeXG    NullFloat
	AwayXG    NullFloat
}

// Involves reports whether the fixture is between a and b in either orientation.
func (m Match) Involves(a, b string) bool {
	return (m.HomeTeam == a && m.AwayTeam == b) || (m.HomeTeam == b && m.AwayTeam == a)
}

// PlayerRating maps a player of a team to a scalar rating.
type PlayerRating struct {
	Team      string
	Player    string
	Position  string
	Score     NullFloat
	PlayerURL string
}

// PlayerID extracts the id segment from the player profile URL.
func (p PlayerRating) PlayerID() string { return playerID(p.PlayerURL) }

// playerID returns the <id> of ".../players/<id>/<slug>".
func playerID(url string) string {
	parts := strings.Split(strings.TrimSpace(url), "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// PlayerStats is the season line of a player: appearances, goal
// contributions and cards.
type PlayerStats struct {
	Team      string
	Player    string
	PlayerURL string
	Age       string
	Position  string
	Played    int
	Nineties  NullFloat
	Goals     int
	Assists   int
	Yellow    int
	Red       int
}

// PlayerID extracts the id segment from the player profile URL.
func (p PlayerStats) PlayerID() string { return playerID(p.PlayerURL) }

// Standing is one row of a league table.
type Standing struct {
	League       string
	Rank         int
	Squad        string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Points       int
}

// TeamMatch is one entry of a team's match log.
type TeamMatch struct {
	Team         string
	Date         time.Time
	Competition  string
	Round        string
	Venue        string
	Result       string // W, D or L
	GoalsFor     NullFloat
	GoalsAgainst NullFloat
	Opponent     string
}
