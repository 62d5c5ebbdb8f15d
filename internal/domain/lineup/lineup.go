// Package lineup builds player selection options and enforces the lineup
// rules applied before a prediction: eleven players per side and at most
// one goalkeeper.
package lineup

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/scoreline/internal/domain/model"
)

// SquadSize is the number of players a side must field.
const SquadSize = 11

// Separator divides position groups in an option list.
const Separator = "-------"

// Position codes in display order.
const (
	Goalkeeper = "GK"
	Defender   = "DF"
	Midfielder = "MF"
	Forward    = "FW"
)

// Positions lists the position groups in display order.
var Positions = []string{Goalkeeper, Defender, Midfielder, Forward}

// Sentinel kinds for lineup errors.
var (
	ErrIncomplete = errors.New("incomplete selection")
	ErrTooMany    = errors.New("too many players selected")
)

// Warning messages returned with a checked selection.
const (
	WarnSecondGoalkeeper = "only one goalkeeper (GK) may be selected; goalkeepers were removed"
	WarnSeparator        = "group separators are not players and were removed"
)

// Label renders a selectable option, e.g. "Anthony Lopes (GK)".
func Label(player, position string) string {
	return fmt.Sprintf("%s (%s)", player, position)
}

// ParseLabel returns the player name of an option. Plain names pass through.
func ParseLabel(label string) string {
	name, _, _ := strings.Cut(label, " (")
	return strings.TrimSpace(name)
}

// IsGoalkeeper reports whether an option is tagged as a goalkeeper.
func IsGoalkeeper(label string) bool {
	return strings.Contains(label, " ("+Goalkeeper+")")
}

// Group is the players of one position group.
type Group struct {
	Position string               `json:"position"`
	Players  []model.PlayerRating `json:"-"`
}

// Groups splits a roster into position groups, sorted by position code. A
// player whose position lists several codes (e.g. "DF,MF") appears in each.
// Empty groups are omitted.
func Groups(roster []model.PlayerRating) []Group {
	sorted := append([]model.PlayerRating(nil), roster...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	var out []Group
	for _, pos := range Positions {
		var players []model.PlayerRating
		for _, p := range sorted {
			if strings.Contains(p.Position, pos) {
				players = append(players, p)
			}
		}
		if len(players) > 0 {
			out = append(out, Group{Position: pos, Players: players})
		}
	}
	return out
}

// Options renders the selectable option list for a roster: labels grouped
// GK, DF, MF, FW with a Separator after every group but forwards.
func Options(roster []model.PlayerRating) []string {
	var out []string
	for _, g := range Groups(roster) {
		for _, p := range g.Players {
			out = append(out, Label(p.Player, p.Position))
		}
		if g.Position != Forward {
			out = append(out, Separator)
		}
	}
	return out
}

// FilterGoalkeepers enforces the single goalkeeper rule. When more than one
// goalkeeper is selected every goalkeeper is dropped, leaving the user to
// pick one again. It reports whether the selection changed.
func FilterGoalkeepers(labels []string) ([]string, bool) {
	gk := 0
	for _, l := range labels {
		if IsGoalkeeper(l) {
			gk++
		}
	}
	if gk <= 1 {
		return labels, false
	}
	out := make([]string, 0, len(labels)-gk)
	for _, l := range labels {
		if !IsGoalkeeper(l) {
			out = append(out, l)
		}
	}
	return out, true
}

// Checked is a selection after the lineup rules were applied.
type Checked struct {
	Labels   []string `json:"labels"`
	Players  []string `json:"players"`
	Warnings []string `json:"warnings"`
}

// Check applies the goalkeeper rule, drops blanks and separators and
// requires exactly size entries. The filtered selection is returned even on error so callers
// can show it back.
func Check(labels []string, size int) (Checked, error) {
	var c Checked
	kept := make([]string, 0, len(labels))
	separators := 0
	for _, l := range labels {
		switch strings.TrimSpace(l) {
		case "":
		case Separator:
			separators++
		default:
			kept = append(kept, l)
		}
	}
	if separators > 0 {
		c.Warnings = append(c.Warnings, WarnSeparator)
	}

	kept, changed := FilterGoalkeepers(kept)
	if changed {
		c.Warnings = append(c.Warnings, WarnSecondGoalkeeper)
	}

	c.Labels = kept
	c.Players = make([]string, len(kept))
	for i, l := range kept {
		c.Players[i] = ParseLabel(l)
	}

	switch {
	case len(kept) > size:
		return c, fmt.Errorf("%w: %d selected, %d allowed", ErrTooMany, len(kept), size)
	case len(kept) < size:
		return c, fmt.Errorf("%w: %d of %d players selected", ErrIncomplete, len(kept), size)
	}
	return c, nil
}
