package strength_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/okian/scoreline/internal/adapters/repository"
	"github.com/okian/scoreline/internal/domain/model"
	"github.com/okian/scoreline/internal/domain/strength"
	. "github.com/smartystreets/goconvey/convey"
)

// squad returns eleven Lyon players rated 1..11 plus two Nice players.
func squad() ([]string, *repository.RatingStore) {
	var names []string
	var rows []model.PlayerRating
	for i := 1; i <= 11; i++ {
		name := fmt.Sprintf("Lyon Player %d", i)
		names = append(names, name)
		rows = append(rows, model.PlayerRating{Team: "Lyon", Player: name, Score: model.Float(float64(i))})
	}
	rows = append(rows,
		model.PlayerRating{Team: "Nice", Player: "Loaned Striker", Score: model.Float(14)},
		model.PlayerRating{Team: "Nice", Player: "Unrated", Score: model.Missing()},
	)
	return names, repository.NewRatingStore(rows)
}

func TestScore(t *testing.T) {
	Convey("Given a rating table", t, func() {
		ctx := context.Background()
		names, store := squad()
		agg := strength.New(store)
		mean := store.Mean().Value // (66 + 14) / 12

		Convey("When all eleven players are rated under the team", func() {
			s := agg.Score(ctx, "Lyon", names)

			Convey("Then the total is the exact sum with nothing missing", func() {
				So(s.Total, ShouldEqual, 66)
				So(s.Missing, ShouldBeEmpty)
				So(len(s.Contributions), ShouldEqual, 11)
			})
		})

		Convey("When one name is absent from the whole table", func() {
			lineup := append(append([]string{}, names[:10]...), "Nobody Known")
			s := agg.Score(ctx, "Lyon", lineup)

			Convey("Then the global mean stands in for it", func() {
				So(s.Total, ShouldAlmostEqual, 55+mean, 1e-9)
				So(s.Missing, ShouldResemble, []string{"Nobody Known"})
				last := s.Contributions[len(s.Contributions)-1]
				So(last.Source, ShouldEqual, strength.SourceFallback)
				So(len(s.Contributions), ShouldEqual, 11)
			})
		})

		Convey("When a player is listed under another team", func() {
			lineup := append(append([]string{}, names[:10]...), "Loaned Striker")
			s := agg.Score(ctx, "Lyon", lineup)

			Convey("Then the unscoped lookup resolves it", func() {
				So(s.Total, ShouldEqual, 55+14)
				So(s.Missing, ShouldBeEmpty)
				So(s.Contributions[10].Source, ShouldEqual, strength.SourceLeague)
				So(s.Contributions[10].Team, ShouldEqual, "Nice")
			})
		})

		Convey("When some slots are blank", func() {
			lineup := append(append([]string{}, names[:9]...), "", "  ")
			s := agg.Score(ctx, "Lyon", lineup)

			Convey("Then blank slots are dropped, not replaced", func() {
				So(s.Total, ShouldEqual, 45)
				So(len(s.Contributions), ShouldEqual, 9)
				So(s.Missing, ShouldBeEmpty)
			})
		})

		Convey("When a name is repeated", func() {
			s := agg.Score(ctx, "Lyon", []string{names[0], names[0], names[1]})

			So(s.Total, ShouldEqual, 3)
		})

		Convey("When a resolved player has no rating", func() {
			s := agg.Score(ctx, "Nice", []string{"Unrated", "Loaned Striker"})

			Convey("Then it contributes nothing but is not reported missing", func() {
				So(s.Total, ShouldEqual, 14)
				So(s.Missing, ShouldBeEmpty)
			})
		})
	})

	Convey("Given an empty rating table", t, func() {
		s := strength.New(repository.NewRatingStore(nil)).Score(context.Background(), "Lyon", []string{"A", "B"})

		Convey("Then the score degrades to zero without failing", func() {
			So(s.Total, ShouldEqual, 0)
			So(s.Missing, ShouldResemble, []string{"A", "B"})
		})
	})
}
