package predictclient

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/scoreline/internal/domain/types"
)

// fixturesKey holds a list of fixtures; a file without it is one fixture.
const fixturesKey = "fixtures"

// LoadFixtures reads the fixtures of a YAML file. The file is either a
// single request:
//
//	home_team: Lyon
//	home_players: [...]
//	away_team: Lens
//	away_players: [...]
//
// or a list of them under "fixtures".
func LoadFixtures(path string) ([]Fixture, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	conf := koanf.UnmarshalConf{Tag: "koanf"}
	var reqs []types.PredictRequest
	if k.Exists(fixturesKey) {
		if err := k.UnmarshalWithConf(fixturesKey, &reqs, conf); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		var req types.PredictRequest
		if err := k.UnmarshalWithConf("", &req, conf); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if req.HomeTeam != "" || req.AwayTeam != "" {
			reqs = append(reqs, req)
		}
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoFixtures)
	}

	out := make([]Fixture, len(reqs))
	for i, r := range reqs {
		out[i] = Fixture{Source: fmt.Sprintf("%s#%d", path, i+1), Request: r}
	}
	return out, nil
}
