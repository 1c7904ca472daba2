// Package reshape splits a query result table into one sub-table per
// qualifier key (scenario, region, sector, ...).
package reshape

import (
	"fmt"
	"strings"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

// KeySeparator joins normalized identity cells into a qualifier key.
const KeySeparator = " "

// InvalidRangeError reports an identity column count outside [0, columns].
type InvalidRangeError struct {
	Count   int
	Columns int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("identity column count %d out of range [0,%d]", e.Count, e.Columns)
}

// QualifierKey builds the key of a row from its first cnt cells. Each
// cell is trimmed and inner whitespace runs collapse to one space.
func QualifierKey(row []string, cnt int) string {
	parts := make([]string, 0, cnt)
	for i := 0; i < cnt && i < len(row); i++ {
		parts = append(parts, strings.Join(strings.Fields(row[i]), " "))
	}
	return strings.TrimSpace(strings.Join(parts, KeySeparator))
}

// Grouping maps qualifier keys to the rows that share them. Keys keep
// first-seen order; row indices keep table order.
type Grouping struct {
	table models.Table
	count int
	keys  []string
	rows  map[string][]int
}

// Group scans t and records the row indices of every qualifier key built
// from the first cnt columns. Rows need not be sorted by key.
func Group(t models.Table, cnt int) (*Grouping, error) {
	if cnt < 0 || cnt > len(t.Columns) {
		return nil, &InvalidRangeError{Count: cnt, Columns: len(t.Columns)}
	}

	g := &Grouping{
		table: t,
		count: cnt,
		rows:  make(map[string][]int),
	}
	for i, row := range t.Rows {
		key := QualifierKey(row, cnt)
		if _, seen := g.rows[key]; !seen {
			g.keys = append(g.keys, key)
		}
		g.rows[key] = append(g.rows[key], i)
	}
	return g, nil
}

// IdentityColumns returns the identity column count the grouping was built with.
func (g *Grouping) IdentityColumns() int {
	return g.count
}

// Table returns the grouped table.
func (g *Grouping) Table() models.Table {
	return g.table
}

// Len returns the number of distinct keys.
func (g *Grouping) Len() int {
	return len(g.keys)
}

// Keys returns the qualifier keys in first-seen order.
func (g *Grouping) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Rows returns the row indices sharing key, or nil for an unknown key.
func (g *Grouping) Rows(key string) []int {
	return append([]int(nil), g.rows[key]...)
}

// SubTable returns the rows of key with every column.
func (g *Grouping) SubTable(key string) (models.Table, bool) {
	idx, ok := g.rows[key]
	if !ok {
		return models.Table{}, false
	}
	return g.table.Select(idx), true
}

// KeyGroup is one qualifier key with its rows.
type KeyGroup struct {
	Key   string       `json:"key"`
	Rows  []int        `json:"rows"`
	Table models.Table `json:"table"`
}

// Groups returns every group in key order.
func (g *Grouping) Groups() []KeyGroup {
	out := make([]KeyGroup, len(g.keys))
	for i, key := range g.keys {
		idx := g.rows[key]
		out[i] = KeyGroup{
			Key:   key,
			Rows:  append([]int(nil), idx...),
			Table: g.table.Select(idx),
		}
	}
	return out
}

// SubTables returns the sub-tables in key order.
func (g *Grouping) SubTables() []models.Table {
	out := make([]models.Table, len(g.keys))
	for i, key := range g.keys {
		out[i] = g.table.Select(g.rows[key])
	}
	return out
}

// GroupAll is Group followed by Groups.
func GroupAll(t models.Table, cnt int) ([]KeyGroup, error) {
	g, err := Group(t, cnt)
	if err != nil {
		return nil, err
	}
	return g.Groups(), nil
}

// Concat appends the rows of tables sharing the same columns.
func Concat(tables ...models.Table) (models.Table, error) {
	if len(tables) == 0 {
		return models.Table{}, nil
	}

	out := models.Table{Columns: tables[0].Columns}
	for i, t := range tables {
		if !sameColumns(out.Columns, t.Columns) {
			return models.Table{}, fmt.Errorf("table %d: columns %v differ from %v", i, t.Columns, out.Columns)
		}
		out.Rows = append(out.Rows, t.Rows...)
	}
	return out, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
