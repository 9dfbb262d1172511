package entity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Column names every submitted dataset must expose (exact, case-sensitive).
const (
	ColumnEquipmentName = "Equipment Name"
	ColumnType          = "Type"
	ColumnFlowrate      = "Flowrate"
	ColumnPressure      = "Pressure"
	ColumnTemperature   = "Temperature"
)

// RequiredColumns lists the columns the schema validator checks for.
func RequiredColumns() []string {
	return []string{ColumnEquipmentName, ColumnType, ColumnFlowrate, ColumnPressure, ColumnTemperature}
}

// Dataset is the ephemeral in-memory form of an uploaded CSV: a header row
// plus zero or more data rows. It is never persisted as an entity; the raw
// bytes are kept in blob storage instead so statistics can be re-derived.
type Dataset struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// ParseDataset reads CSV bytes into a Dataset.
//
// The first line is the header. Every data row must have the same number of
// fields as the header; anything else is not parseable tabular data.
func ParseDataset(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("invalid file: empty input")
		}
		return nil, fmt.Errorf("invalid file: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid file: %w", err)
		}
		rows = append(rows, row)
	}

	return &Dataset{Header: header, Rows: rows, index: index}, nil
}

// MissingColumns returns the required columns absent from the header, in the
// required-column order. An empty result means the schema is valid; a dataset
// with zero rows and a correct header is valid.
func (d *Dataset) MissingColumns() []string {
	var missing []string
	for _, name := range RequiredColumns() {
		if _, ok := d.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Column returns the raw cell values of the named column.
func (d *Dataset) Column(name string) ([]string, bool) {
	idx, ok := d.index[name]
	if !ok {
		return nil, false
	}

	values := make([]string, 0, len(d.Rows))
	for _, row := range d.Rows {
		values = append(values, row[idx])
	}
	return values, true
}

// NumericColumn parses the named column into float64 values.
//
// A cell that does not parse as a number is a malformed-data error naming the
// column and row; values are never silently coerced or excluded.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	cells, ok := d.Column(name)
	if !ok {
		return nil, fmt.Errorf("missing columns: %s", name)
	}

	values := make([]float64, 0, len(cells))
	for i, cell := range cells {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed data in column %q: row %d value %q is not numeric", name, i+1, cell)
		}
		values = append(values, v)
	}
	return values, nil
}

// TypeCounts tallies the Type column into a Distribution ordered by
// descending count, ties broken by first appearance.
func (d *Dataset) TypeCounts() Distribution {
	cells, ok := d.Column(ColumnType)
	if !ok {
		return nil
	}

	counts := make(map[string]int, len(cells))
	order := make([]string, 0, len(cells))
	for _, cell := range cells {
		if _, seen := counts[cell]; !seen {
			order = append(order, cell)
		}
		counts[cell]++
	}

	dist := make(Distribution, 0, len(order))
	for _, value := range order {
		dist = append(dist, TypeCount{Type: value, Count: counts[value]})
	}

	sort.SliceStable(dist, func(i, j int) bool {
		return dist[i].Count > dist[j].Count
	})

	return dist
}

// RowMaps returns up to limit rows as column-name keyed maps, suitable for a
// preview. Cells of the numeric required columns are emitted as float64 when
// they parse; everything else stays a string.
func (d *Dataset) RowMaps(limit int) []map[string]any {
	if limit > len(d.Rows) {
		limit = len(d.Rows)
	}

	numeric := map[string]struct{}{
		ColumnFlowrate:    {},
		ColumnPressure:    {},
		ColumnTemperature: {},
	}

	maps := make([]map[string]any, 0, limit)
	for _, row := range d.Rows[:limit] {
		m := make(map[string]any, len(d.Header))
		for name, idx := range d.index {
			cell := row[idx]
			if _, isNumeric := numeric[name]; isNumeric {
				if v, err := strconv.ParseFloat(cell, 64); err == nil {
					m[name] = v
					continue
				}
			}
			m[name] = cell
		}
		maps = append(maps, m)
	}
	return maps
}
