// Package xgb evaluates gradient boosted regression trees saved by XGBoost in
// its JSON model format. Numeric and categorical splits and missing values
// are supported; training is not.
package xgb

import (
	"context"
	"fmt"
	"math"
	"os"
	"slices"
)

const (
	defaultBaseScore = 0.5
	leaf             = -1
	categoricalSplit = 1
)

// link maps a raw margin to the model output.
type link int

const (
	identity link = iota
	exponential
	logistic
)

var objectives = map[string]link{ //nolint:gochecknoglobals // read-only lookup table
	"reg:squarederror":     identity,
	"reg:squaredlogerror":  identity,
	"reg:absoluteerror":    identity,
	"reg:pseudohubererror": identity,
	"reg:quantileerror":    identity,
	"reg:linear":           identity,
	"count:poisson":        exponential,
	"reg:gamma":            exponential,
	"reg:tweedie":          exponential,
	"reg:logistic":         logistic,
	"binary:logistic":      logistic,
}

// Model is an immutable, loaded regressor. It is safe for concurrent use.
type Model struct {
	name       string
	features   []string
	numFeature int
	maxFeature int
	objective  string
	link       link
	margin     float32
	best       int
	trees      []compiledTree
}

type node struct {
	left, right int32
	feature     int32
	value       float32 // threshold, or leaf value
	defaultLeft bool
	categorical bool
	categories  []int // sorted category codes sent right
}

type compiledTree struct {
	nodes []node
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	schema []string
	name   string
}

// WithSchema requires the model's feature names, when it records them, to
// equal schema in order. The row width is checked against len(schema) too.
func WithSchema(schema []string) Option {
	return func(o *loadOptions) {
		o.schema = schema
	}
}

// WithName labels the model in errors.
func WithName(name string) Option {
	return func(o *loadOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// Load reads and compiles a JSON model file.
func Load(path string, opts ...Option) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	opts = append([]Option{WithName(path)}, opts...)
	return Parse(data, opts...)
}

// Parse compiles a JSON model document.
func Parse(data []byte, opts ...Option) (*Model, error) {
	o := loadOptions{name: "model"}
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.name, err)
	}
	m, err := compile(doc, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.name, err)
	}
	return m, nil
}

func compile(doc document, o loadOptions) (*Model, error) {
	l := doc.Learner
	if l.GradientBooster.Name != "" && l.GradientBooster.Name != "gbtree" {
		return nil, fmt.Errorf("%w: booster %q", ErrUnsupported, l.GradientBooster.Name)
	}

	lk, ok := objectives[l.Objective.Name]
	if !ok {
		return nil, fmt.Errorf("%w: objective %q", ErrUnsupported, l.Objective.Name)
	}

	numClass, err := parseCount("num_class", l.ModelParam.NumClass)
	if err != nil {
		return nil, err
	}
	numTarget, err := parseCount("num_target", l.ModelParam.NumTarget)
	if err != nil {
		return nil, err
	}
	if numClass > 1 || numTarget > 1 {
		return nil, fmt.Errorf("%w: %d classes, %d targets", ErrUnsupported, numClass, numTarget)
	}

	numFeature, err := parseCount("num_feature", l.ModelParam.NumFeature)
	if err != nil {
		return nil, err
	}
	if len(l.FeatureNames) > 0 {
		if numFeature == 0 {
			numFeature = len(l.FeatureNames)
		}
		if len(l.FeatureNames) != numFeature {
			return nil, fmt.Errorf("%w: %d feature names for %d features", ErrModelFormat, len(l.FeatureNames), numFeature)
		}
	}
	if o.schema != nil {
		if len(l.FeatureNames) > 0 && !slices.Equal(l.FeatureNames, o.schema) {
			return nil, fmt.Errorf("%w: model has %v, want %v", ErrFeatureMismatch, l.FeatureNames, o.schema)
		}
		if numFeature > len(o.schema) {
			return nil, fmt.Errorf("%w: model uses %d features, schema has %d", ErrFeatureMismatch, numFeature, len(o.schema))
		}
		numFeature = len(o.schema)
	}

	base, err := parseBaseScore(l.ModelParam.BaseScore)
	if err != nil {
		return nil, err
	}
	margin, err := baseMargin(lk, base)
	if err != nil {
		return nil, err
	}

	m := &Model{
		name:       o.name,
		features:   l.FeatureNames,
		numFeature: numFeature,
		objective:  l.Objective.Name,
		link:       lk,
		margin:     margin,
		trees:      make([]compiledTree, 0, len(l.GradientBooster.Model.Trees)),
	}
	for i, t := range l.GradientBooster.Model.Trees {
		ct, err := compileTree(t, numFeature)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		for _, nd := range ct.nodes {
			if nd.left != leaf {
				m.maxFeature = max(m.maxFeature, int(nd.feature))
			}
		}
		m.trees = append(m.trees, ct)
	}

	m.best, err = bestIteration(l.Attributes)
	if err != nil {
		return nil, err
	}
	limit, err := treeLimit(l.GradientBooster.Model, m.best)
	if err != nil {
		return nil, err
	}
	m.trees = m.trees[:limit]
	return m, nil
}

// treeLimit returns how many leading trees take part in prediction. An
// early stopped model only uses the trees of its first best_iteration+1
// boosting rounds.
func treeLimit(body boosterBody, best int) (int, error) {
	total := len(body.Trees)
	if best < 0 {
		return total, nil
	}
	rounds := best + 1

	if len(body.IterationIndptr) > 0 {
		if rounds >= len(body.IterationIndptr) {
			return total, nil
		}
		return min(body.IterationIndptr[rounds], total), nil
	}

	parallel, err := parseCount("num_parallel_tree", body.Param.NumParallelTree)
	if err != nil {
		return 0, err
	}
	return min(rounds*max(parallel, 1), total), nil
}

func baseMargin(lk link, base float64) (float32, error) {
	switch lk {
	case exponential:
		if base <= 0 {
			return 0, fmt.Errorf("%w: base_score %v must be positive", ErrModelFormat, base)
		}
		return float32(math.Log(base)), nil
	case logistic:
		if base <= 0 || base >= 1 {
			return 0, fmt.Errorf("%w: base_score %v must be in (0, 1)", ErrModelFormat, base)
		}
		return float32(math.Log(base / (1 - base))), nil
	default:
		return float32(base), nil
	}
}

func compileTree(t tree, numFeature int) (compiledTree, error) {
	n := len(t.LeftChildren)
	if n == 0 {
		return compiledTree{}, fmt.Errorf("%w: empty tree", ErrModelFormat)
	}
	if len(t.RightChildren) != n || len(t.SplitIndices) != n || len(t.SplitConditions) != n {
		return compiledTree{}, fmt.Errorf("%w: node arrays differ in length", ErrModelFormat)
	}
	if len(t.DefaultLeft) != 0 && len(t.DefaultLeft) != n {
		return compiledTree{}, fmt.Errorf("%w: default_left has %d entries for %d nodes", ErrModelFormat, len(t.DefaultLeft), n)
	}
	if len(t.SplitType) != 0 && len(t.SplitType) != n {
		return compiledTree{}, fmt.Errorf("%w: split_type has %d entries for %d nodes", ErrModelFormat, len(t.SplitType), n)
	}

	nodes := make([]node, n)
	for i := range nodes {
		l, r := t.LeftChildren[i], t.RightChildren[i]
		nd := node{left: int32(l), right: int32(r), value: t.SplitConditions[i]}
		if l == leaf {
			nodes[i] = nd
			continue
		}
		// children always follow their parent, which also rules out cycles
		if l <= i || r <= i || l >= n || r >= n {
			return compiledTree{}, fmt.Errorf("%w: node %d has children %d/%d", ErrModelFormat, i, l, r)
		}
		f := t.SplitIndices[i]
		if f < 0 || (numFeature > 0 && f >= numFeature) {
			return compiledTree{}, fmt.Errorf("%w: node %d splits on feature %d", ErrModelFormat, i, f)
		}
		nd.feature = int32(f)
		if len(t.DefaultLeft) > 0 {
			nd.defaultLeft = bool(t.DefaultLeft[i])
		}
		if len(t.SplitType) > 0 && t.SplitType[i] == categoricalSplit {
			nd.categorical = true
		}
		nodes[i] = nd
	}

	if err := attachCategories(nodes, t); err != nil {
		return compiledTree{}, err
	}
	return compiledTree{nodes: nodes}, nil
}

func attachCategories(nodes []node, t tree) error {
	if len(t.CategoriesNodes) != len(t.CategoriesSegments) || len(t.CategoriesNodes) != len(t.CategoriesSizes) {
		return fmt.Errorf("%w: category arrays differ in length", ErrModelFormat)
	}
	for i, nid := range t.CategoriesNodes {
		if nid < 0 || nid >= len(nodes) || !nodes[nid].categorical {
			return fmt.Errorf("%w: categories for non-categorical node %d", ErrModelFormat, nid)
		}
		beg, size := t.CategoriesSegments[i], t.CategoriesSizes[i]
		if beg < 0 || size < 0 || beg+size > len(t.Categories) {
			return fmt.Errorf("%w: category segment of node %d out of range", ErrModelFormat, nid)
		}
		cats := slices.Clone(t.Categories[beg : beg+size])
		slices.Sort(cats)
		nodes[nid].categories = cats
	}
	return nil
}

// Predict evaluates the model on one row. NaN marks a missing value.
func (m *Model) Predict(ctx context.Context, row []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if m.numFeature > 0 && len(row) != m.numFeature {
		return 0, fmt.Errorf("%s: %w: got %d, want %d", m.name, ErrFeatureCount, len(row), m.numFeature)
	}
	if len(row) <= m.maxFeature {
		return 0, fmt.Errorf("%s: %w: got %d, need more than %d", m.name, ErrFeatureCount, len(row), m.maxFeature)
	}

	sum := m.margin
	for i := range m.trees {
		sum += m.trees[i].eval(row)
	}
	return m.transform(sum), nil
}

func (m *Model) transform(margin float32) float64 {
	x := float64(margin)
	switch m.link {
	case exponential:
		return math.Exp(x)
	case logistic:
		return 1 / (1 + math.Exp(-x))
	default:
		return x
	}
}

// FeatureNames returns the feature names recorded in the model, if any.
func (m *Model) FeatureNames() []string {
	return slices.Clone(m.features)
}

// Objective returns the training objective name.
func (m *Model) Objective() string { return m.objective }

// NumTrees returns the number of trees evaluated by Predict.
func (m *Model) NumTrees() int { return len(m.trees) }

// BestIteration returns the early stopping round recorded in the model, or
// -1 when the model was trained without early stopping.
func (m *Model) BestIteration() int { return m.best }

func (t compiledTree) eval(row []float64) float32 {
	nid := int32(0)
	for {
		nd := &t.nodes[nid]
		if nd.left == leaf {
			return nd.value
		}
		nid = nd.next(row[nd.feature])
	}
}

func (nd *node) next(v float64) int32 {
	if math.IsNaN(v) {
		if nd.defaultLeft {
			return nd.left
		}
		return nd.right
	}
	if nd.categorical {
		if isCategory(v) {
			if _, ok := slices.BinarySearch(nd.categories, int(v)); ok {
				return nd.right
			}
		}
		return nd.left
	}
	if float32(v) < nd.value {
		return nd.left
	}
	return nd.right
}

// isCategory reports whether v is a valid category code.
func isCategory(v float64) bool {
	return v >= 0 && v == math.Trunc(v) && v < math.MaxInt32
}
