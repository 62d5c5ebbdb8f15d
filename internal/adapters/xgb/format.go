package xgb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// document mirrors the parts of an XGBoost JSON model (save_model("*.json"))
// needed for inference.
type document struct {
	Learner learner `json:"learner"`
	Version []int   `json:"version"`
}

type learner struct {
	Attributes      map[string]string `json:"attributes"`
	FeatureNames    []string          `json:"feature_names"`
	FeatureTypes    []string          `json:"feature_types"`
	GradientBooster booster           `json:"gradient_booster"`
	ModelParam      learnerParam      `json:"learner_model_param"`
	Objective       objectiveParam    `json:"objective"`
}

type learnerParam struct {
	BaseScore  string `json:"base_score"`
	NumClass   string `json:"num_class"`
	NumFeature string `json:"num_feature"`
	NumTarget  string `json:"num_target"`
}

type objectiveParam struct {
	Name string `json:"name"`
}

type booster struct {
	Name  string      `json:"name"`
	Model boosterBody `json:"model"`
}

type boosterBody struct {
	Param           gbtreeParam `json:"gbtree_model_param"`
	IterationIndptr []int       `json:"iteration_indptr"`
	Trees           []tree      `json:"trees"`
	TreeInfo        []int       `json:"tree_info"`
}

type gbtreeParam struct {
	NumParallelTree string `json:"num_parallel_tree"`
	NumTrees        string `json:"num_trees"`
}

type tree struct {
	ID                 int       `json:"id"`
	LeftChildren       []int     `json:"left_children"`
	RightChildren      []int     `json:"right_children"`
	SplitIndices       []int     `json:"split_indices"`
	SplitConditions    []float32 `json:"split_conditions"`
	DefaultLeft        []flag    `json:"default_left"`
	SplitType          []int     `json:"split_type"`
	Categories         []int     `json:"categories"`
	CategoriesNodes    []int     `json:"categories_nodes"`
	CategoriesSegments []int     `json:"categories_segments"`
	CategoriesSizes    []int     `json:"categories_sizes"`
}

// flag accepts the 0/1 integers of JSON models as well as booleans.
type flag bool

func (f *flag) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true", "1":
		*f = true
	case "false", "0":
		*f = false
	default:
		return fmt.Errorf("%w: invalid default_left value %s", ErrModelFormat, b)
	}
	return nil
}

// parseBaseScore reads base_score, which newer releases store as a vector
// literal such as "[5E-1]".
func parseBaseScore(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if s == "" {
		return defaultBaseScore, nil
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		return 0, fmt.Errorf("%w: multi-target base_score %q", ErrUnsupported, s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: base_score %q: %v", ErrModelFormat, s, err)
	}
	return v, nil
}

func parseCount(name, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrModelFormat, name, s, err)
	}
	return v, nil
}

// bestIteration reads the early stopping attribute; -1 when absent.
func bestIteration(attrs map[string]string) (int, error) {
	s, ok := attrs["best_iteration"]
	if !ok || strings.TrimSpace(s) == "" {
		return -1, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: best_iteration %q", ErrModelFormat, s)
	}
	return v, nil
}

func decode(data []byte) (document, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("%w: %v", ErrModelFormat, err)
	}
	return doc, nil
}
