package repository

import (
	"context"
	"sort"

	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/pkg/metrics"
)

// Column names of the player rating file.
const (
	colRatingTeam   = "Team"
	colRatingPlayer = "Player"
	colRatingPos    = "Pos"
	colRatingScore  = "player_score"
	colRatingURL    = "Player_URL"
)

// RatingStore is the read-only player rating table with team and name
// indexes and the precomputed global mean rating.
type RatingStore struct {
	ratings []model.PlayerRating
	byTeam  map[string][]int
	byName  map[string][]int
	mean    model.NullFloat
}

// NewRatingStore indexes the given ratings.
func NewRatingStore(ratings []model.PlayerRating) *RatingStore {
	s := &RatingStore{
		ratings: append([]model.PlayerRating(nil), ratings...),
		byTeam:  make(map[string][]int),
		byName:  make(map[string][]int),
	}
	var sum float64
	var n int
	for i, r := range s.ratings {
		s.byTeam[r.Team] = append(s.byTeam[r.Team], i)
		s.byName[r.Player] = append(s.byName[r.Player], i)
		if r.Score.Valid {
			sum += r.Score.Value
			n++
		}
	}
	if n > 0 {
		s.mean = model.Float(sum / float64(n))
	}
	return s
}

// LoadRatings reads the semicolon-delimited player rating file.
func LoadRatings(ctx context.Context, path string, opts ...Option) (*RatingStore, error) {
	o := defaultLoadOptions(';', opts)
	t, err := readTable(ctx, path, o.delimiter)
	if err != nil {
		return nil, err
	}
	if err := t.require(colRatingTeam, colRatingPlayer, colRatingScore); err != nil {
		return nil, err
	}
	ratings := make([]model.PlayerRating, 0, len(t.rows))
	for _, row := range t.rows {
		ratings = append(ratings, model.PlayerRating{
			Team:      t.cell(row, colRatingTeam),
			Player:    t.cell(row, colRatingPlayer),
			Position:  t.cell(row, colRatingPos),
			Score:     model.ParseFloat(t.cell(row, colRatingScore)),
			PlayerURL: t.cell(row, colRatingURL),
		})
	}
	s := NewRatingStore(ratings)
	metrics.UpdateDatasetRows("ratings", s.Len())
	return s, nil
}

// ByTeamAndName returns the rows of player name registered under team.
func (s *RatingStore) ByTeamAndName(team, name string) []model.PlayerRating {
	var out []model.PlayerRating
	for _, i := range s.byName[name] {
		if s.ratings[i].Team == team {
			out = append(out, s.ratings[i])
		}
	}
	return out
}

// ByName returns every row of player name regardless of team.
func (s *RatingStore) ByName(name string) []model.PlayerRating {
	return s.pick(s.byName[name])
}

// Roster returns the players of team in file order.
func (s *RatingStore) Roster(team string) []model.PlayerRating {
	return s.pick(s.byTeam[team])
}

// Teams returns the distinct team names, sorted.
func (s *RatingStore) Teams() []string {
	out := make([]string, 0, len(s.byTeam))
	for t := range s.byTeam {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Mean is the average rating over the whole table, ignoring missing scores.
func (s *RatingStore) Mean() model.NullFloat { return s.mean }

// Len returns the number of rows.
func (s *RatingStore) Len() int { return len(s.ratings) }

func (s *RatingStore) pick(idx []int) []model.PlayerRating {
	if len(idx) == 0 {
		return nil
	}
	out := make([]model.PlayerRating, len(idx))
	for k, i := range idx {
		out[k] = s.ratings[i]
	}
	return out
}
