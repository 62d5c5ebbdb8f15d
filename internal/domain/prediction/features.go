package prediction

import (
	"github.com/okian/scoreline/internal/domain/model"
)

// Feature names in the order the regressors were trained with.
const (
	FeatureHomeTeam         = "home_team"
	FeatureAwayTeam         = "away_team"
	FeatureH2HGoalDiffSum   = "h2h_goal_diff_sum"
	FeatureH2HXGDiffSum     = "h2h_xg_diff_sum"
	FeatureHomePlayersScore = "home_team_players_score"
	FeatureAwayPlayersScore = "away_team_players_score"
)

// Schema lists the feature names in column order.
var Schema = []string{
	FeatureHomeTeam,
	FeatureAwayTeam,
	FeatureH2HGoalDiffSum,
	FeatureH2HXGDiffSum,
	FeatureHomePlayersScore,
	FeatureAwayPlayersScore,
}

// Category is a team encoded over the registry domain.
type Category struct {
	Name string `json:"name"`
	Code int    `json:"code"`
}

// Features is the single-row model input built for one prediction.
type Features struct {
	HomeTeam         Category        `json:"home_team"`
	AwayTeam         Category        `json:"away_team"`
	H2HGoalDiffSum   model.NullFloat `json:"h2h_goal_diff_sum"`
	H2HXGDiffSum     model.NullFloat `json:"h2h_xg_diff_sum"`
	HomePlayersScore model.NullFloat `json:"home_team_players_score"`
	AwayPlayersScore model.NullFloat `json:"away_team_players_score"`
}

// Vector returns the row in Schema order. Categories are their codes and
// missing numerics are NaN.
func (f Features) Vector() []float64 {
	return []float64{
		float64(f.HomeTeam.Code),
		float64(f.AwayTeam.Code),
		f.H2HGoalDiffSum.Float64(),
		f.H2HXGDiffSum.Float64(),
		f.HomePlayersScore.Float64(),
		f.AwayPlayersScore.Float64(),
	}
}
