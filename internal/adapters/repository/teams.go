package repository

import (
	"context"

	"github.com/okian/scoreline/internal/domain/registry"
	"github.com/okian/scoreline/pkg/metrics"
)

// Column names of the team registry file.
const colTeam = "team"

// LoadRegistry reads the team registry file. Team order in the file defines
// the categorical codes handed to the models.
func LoadRegistry(ctx context.Context, path string, opts ...Option) (*registry.Registry, error) {
	o := defaultLoadOptions(',', opts)
	t, err := readTable(ctx, path, o.delimiter)
	if err != nil {
		return nil, err
	}
	if err := t.require(colTeam); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		names = append(names, t.cell(row, colTeam))
	}
	r, err := registry.New(names)
	if err != nil {
		return nil, err
	}
	metrics.UpdateDatasetRows("teams", r.Len())
	return r, nil
}
