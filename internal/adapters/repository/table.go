// Package repository loads the static tabular datasets into read-only stores.
package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// table is a parsed delimited file: a header index and the data rows.
type table struct {
	path    string
	columns map[string]int
	rows    [][]string
}

func readTable(ctx context.Context, path string, delim rune) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return parseTable(path, f, delim)
}

func parseTable(path string, r io.Reader, delim rune) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", path, err)
	}

	t := &table{path: path, columns: make(map[string]int, len(header))}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		t.columns[strings.TrimSpace(name)] = i
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w: %v", path, line, ErrMalformedRow, err)
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

// require fails when any of the named columns is absent from the header.
func (t *table) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := t.columns[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: %w: %s", t.path, ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// cell returns the trimmed value of column name in row, or "" when the
// column or the cell is absent.
func (t *table) cell(row []string, name string) string {
	i, ok := t.columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
