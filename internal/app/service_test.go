package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/scoreline/internal/adapters/repository"
	service "github.com/okian/scoreline/internal/app"
	"github.com/okian/scoreline/internal/domain/lineup"
	"github.com/okian/scoreline/internal/domain/prediction"
	"github.com/okian/scoreline/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// stumpModel is a one-split XGBoost JSON model on feature: values below
// threshold (or missing) score left, others right, on top of a 0.5 base.
func stumpModel(feature int, threshold, left, right float64) string {
	return fmt.Sprintf(`{
  "learner": {
    "feature_names": ["home_team", "away_team", "h2h_goal_diff_sum", "h2h_xg_diff_sum", "home_team_players_score", "away_team_players_score"],
    "feature_types": ["c", "c", "float", "float", "float", "float"],
    "gradient_booster": {"name": "gbtree", "model": {"trees": [{
      "left_children": [1, -1, -1], "right_children": [2, -1, -1],
      "split_indices": [%d, 0, 0], "split_conditions": [%g, %g, %g],
      "default_left": [1, 0, 0], "split_type": [0, 0, 0],
      "categories": [], "categories_nodes": [], "categories_segments": [], "categories_sizes": []
    }]}},
    "learner_model_param": {"base_score": "5E-1", "num_class": "0", "num_feature": "6", "num_target": "1"},
    "objective": {"name": "reg:squarederror"}
  },
  "version": [2, 0, 3]
}`, feature, threshold, left, right)
}

func squad(team string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", team, i+1)
	}
	return out
}

func ratingsCSV() string {
	var b strings.Builder
	b.WriteString("Team;Player;Pos;player_score;Player_URL\n")
	for i, p := range squad("Lyon", 11) {
		pos := "MF"
		if i == 0 {
			pos = "GK"
		}
		fmt.Fprintf(&b, "Lyon;%s;%s;1;https://fbref.com/en/players/ly%02d/%s\n", p, pos, i, strings.ReplaceAll(p, " ", "-"))
	}
	for _, p := range squad("Lens", 11) {
		fmt.Fprintf(&b, "Lens;%s;DF;2;\n", p)
	}
	return b.String()
}

type fixture struct {
	dir   string
	paths service.Paths
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}
	return fixture{
		dir: dir,
		paths: service.Paths{
			Teams:    write("teams.csv", "team\nLyon\nLens\nNice\n"),
			Players:  write("players_scores.csv", ratingsCSV()),
			Schedule: write("schedule.csv", "home_team,away_team,home_score,away_score,home_xg,away_xg\nLyon,Lens,2,1,1.5,0.5\nLens,Lyon,0,0,0.2,0.4\n"),
			// home goals follow home_team_players_score, away goals follow away_team_players_score
			HomeModel: write("home_score_model.json", stumpModel(4, 15, 0.5, 1.5)),
			AwayModel: write("away_score_model.json", stumpModel(5, 15, 0.25, 1.25)),
		},
	}
}

func (f fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func startedService(t *testing.T, paths service.Paths) *service.Service {
	t.Helper()
	svc := service.New(service.WithPaths(paths), service.WithLogger(logger.Nop()))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	return svc
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service with a complete fixture", t, func() {
		f := newFixture(t)
		svc := service.New(service.WithPaths(f.paths))
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["teams"], ShouldEqual, 3)
				So(stats["ratings"], ShouldEqual, 22)
				So(stats["standingsLoaded"], ShouldEqual, false)
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})
	})

	Convey("Given a fixture whose away model is missing", t, func() {
		f := newFixture(t)
		f.paths.AwayModel = filepath.Join(f.dir, "missing.json")
		svc := service.New(service.WithPaths(f.paths), service.WithLogger(logger.Nop()))

		Convey("Then start fails and nothing is served", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, service.ErrLoad), ShouldBeTrue)
			So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)

			_, err = svc.Teams(context.Background())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})
	})

	Convey("Given a schedule without the away_team column", t, func() {
		f := newFixture(t)
		f.paths.Schedule = f.write(t, "schedule.csv", "home_team,home_score\nLyon,1\n")
		svc := service.New(service.WithPaths(f.paths), service.WithLogger(logger.Nop()))

		Convey("Then start fails with a missing column", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
		})
	})
}

func TestService_Stop(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(t, newFixture(t).paths)

		Convey("When stopping the service", func() {
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
				_, err := svc.Predict(context.Background(), prediction.Request{})
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})
	})
}

func TestService_Predict(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(t, newFixture(t).paths)
		defer svc.Stop()
		ctx := context.Background()

		Convey("When both lineups are rated", func() {
			res, err := svc.Predict(ctx, prediction.Request{
				HomeTeam: "Lyon", HomePlayers: squad("Lyon", 11),
				AwayTeam: "Lens", AwayPlayers: squad("Lens", 11),
			})

			Convey("Then the scoreline follows the lineup strengths", func() {
				So(err, ShouldBeNil)
				So(res.Valid, ShouldBeTrue)
				So(res.Features.HomePlayersScore.Value, ShouldEqual, 11)
				So(res.Features.AwayPlayersScore.Value, ShouldEqual, 22)
				So(res.HomeGoals.Value, ShouldEqual, 1.0)
				So(res.AwayGoals.Value, ShouldEqual, 1.8)
				So(res.Outcome(), ShouldEqual, prediction.OutcomeAway)
				So(res.H2H.GoalDiffSum.Value, ShouldEqual, 1)
				So(svc.GetStats()["predictions"], ShouldEqual, int64(1))
			})
		})

		Convey("When a team is outside the registry", func() {
			res, err := svc.Predict(ctx, prediction.Request{HomeTeam: "Lyon", AwayTeam: "Paris FC"})

			Convey("Then the result is invalid without an error", func() {
				So(err, ShouldBeNil)
				So(res.Valid, ShouldBeFalse)
				So(res.HomeGoals.Valid, ShouldBeFalse)
				So(svc.GetStats()["rejected"], ShouldEqual, int64(1))
			})
		})

		Convey("When a lineup is checked", func() {
			c, err := svc.CheckLineup(ctx, append(squad("Lens", 10), "Lyon 1 (GK)"))

			So(err, ShouldBeNil)
			So(len(c.Players), ShouldEqual, lineup.SquadSize)
		})
	})
}

func TestService_Queries(t *testing.T) {
	Convey("Given a started service without statistics files", t, func() {
		svc := startedService(t, newFixture(t).paths)
		defer svc.Stop()
		ctx := context.Background()

		Convey("Then teams come in registry order", func() {
			teams, err := svc.Teams(ctx)
			So(err, ShouldBeNil)
			So(teams, ShouldResemble, []string{"Lyon", "Lens", "Nice"})
		})

		Convey("Then rated teams come sorted from the rating file", func() {
			teams, err := svc.RatedTeams(ctx)
			So(err, ShouldBeNil)
			So(teams, ShouldResemble, []string{"Lens", "Lyon"})
		})

		Convey("Then rosters are served for registered teams", func() {
			roster, err := svc.Roster(ctx, "Lyon")
			So(err, ShouldBeNil)
			So(len(roster), ShouldEqual, 11)

			roster, err = svc.Roster(ctx, "Nice")
			So(err, ShouldBeNil)
			So(roster, ShouldBeEmpty)

			_, err = svc.Roster(ctx, "Atlantis")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then head-to-head requires registered teams", func() {
			sum, err := svc.HeadToHead(ctx, "Lens", "Lyon")
			So(err, ShouldBeNil)
			So(sum.GoalDiffSum.Value, ShouldEqual, -1)

			_, err = svc.HeadToHead(ctx, "Lens", "Atlantis")
			So(errors.Is(err, prediction.ErrUnknownTeam), ShouldBeTrue)
		})

		Convey("Then statistics report they are not loaded", func() {
			_, err := svc.Leagues(ctx)
			So(errors.Is(err, repository.ErrNotLoaded), ShouldBeTrue)

			_, _, err = svc.TeamMatches(ctx, "Lyon")
			So(errors.Is(err, repository.ErrNotLoaded), ShouldBeTrue)

			_, err = svc.PlayerStats(ctx, "Lyon")
			So(errors.Is(err, repository.ErrNotLoaded), ShouldBeTrue)
			So(svc.GetStats()["playerStatsLoaded"], ShouldBeFalse)
		})
	})

	Convey("Given a started service with statistics files", t, func() {
		f := newFixture(t)
		f.paths.Standings = f.write(t, "merged_teams_data.csv",
			"League;Rk;Squad;MP;W;D;L;GF;GA;GD;Pts\nLigue 1;1;Lyon;2;1;1;0;2;1;1;4\nLigue 1;2;Lens;2;0;1;1;1;2;-1;1\n")
		f.paths.TeamMatches = f.write(t, "matches_history.csv",
			"Team;Date;Comp;Round;Venue;Result;GF;GA;Opponent\nLyon;2024-08-18;Ligue 1;Matchweek 1;Home;W;2;1;Lens\nLyon;2024-08-25;Ligue 1;Matchweek 2;Away;D;0;0;Lens\n")
		f.paths.PlayerStats = f.write(t, "players_data.csv",
			"Team;Player;Age;Pos;MP;90s;Gls;Ast;CrdY;CrdR\nLyon;Lyon 2;24;MF;10;8.5;2;1;3;0\nLyon;Lyon 1;31;GK;12;12.0;0;0;0;0\nLyon;Lyon 3;22;MF;14;11.0;4;0;1;1\n")
		svc := startedService(t, f.paths)
		defer svc.Stop()
		ctx := context.Background()

		Convey("Then player statistics are ordered by position then appearances", func() {
			rows, err := svc.PlayerStats(ctx, "Lyon")
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, 3)
			So(rows[0].Player, ShouldEqual, "Lyon 1")
			So(rows[1].Player, ShouldEqual, "Lyon 3")
			So(rows[2].Player, ShouldEqual, "Lyon 2")
			So(svc.GetStats()["playerStats"], ShouldEqual, 3)

			_, err = svc.PlayerStats(ctx, "Nice")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then standings are served per league", func() {
			leagues, err := svc.Leagues(ctx)
			So(err, ShouldBeNil)
			So(leagues, ShouldResemble, []string{"Ligue 1"})

			rows, err := svc.Standings(ctx, "Ligue 1")
			So(err, ShouldBeNil)
			So(rows[0].Squad, ShouldEqual, "Lyon")
			So(rows[1].GoalDiff, ShouldEqual, -1)

			_, err = svc.Standings(ctx, "Serie A")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then the match log is newest first with a record", func() {
			log, rec, err := svc.TeamMatches(ctx, "Lyon")
			So(err, ShouldBeNil)
			So(log[0].Result, ShouldEqual, "D")
			So(rec, ShouldResemble, repository.Record{Won: 1, Drawn: 1})
		})
	})
}
