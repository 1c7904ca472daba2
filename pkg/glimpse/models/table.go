// Package models defines the data structures shared by the glimpse packages.
package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrRaggedRow indicates a row whose cell count differs from the column count.
var ErrRaggedRow = errors.New("row width does not match column count")

// Table is a read-only tabular query result.
type Table struct {
	// Columns holds the column names in order.
	Columns []string `json:"columns"`
	// Rows holds string cells; every row has len(Columns) cells.
	Rows [][]string `json:"rows"`
}

// NewTable validates rows against columns and returns the table.
func NewTable(columns []string, rows [][]string) (Table, error) {
	t := Table{Columns: columns, Rows: rows}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Validate checks that every row has the same width as the column list.
func (t Table) Validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), len(t.Columns), ErrRaggedRow)
		}
	}
	return nil
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the named column or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Select returns a table holding the given rows, in the given order.
// Columns are shared with the receiver; row slices are copied.
func (t Table) Select(indices []int) Table {
	rows := make([][]string, 0, len(indices))
	for _, idx := range indices {
		row := make([]string, len(t.Rows[idx]))
		copy(row, t.Rows[idx])
		rows = append(rows, row)
	}
	return Table{Columns: t.Columns, Rows: rows}
}

// ParseNumber parses a numeric cell. Thousands separators and surrounding
// whitespace are accepted; empty, non-numeric, NaN and infinite cells
// report false.
func ParseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
