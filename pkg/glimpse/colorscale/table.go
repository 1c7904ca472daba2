package colorscale

import (
	"fmt"
	"sort"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

// FromTable builds a store from a query result with one column per year.
// Year columns are the columns whose header is numeric. Rows sharing a
// scenario, region and year are summed; blank cells are skipped.
func FromTable(t models.Table, scenarioCol, regionCol int) (Store, error) {
	if scenarioCol < 0 || scenarioCol >= len(t.Columns) {
		return nil, fmt.Errorf("scenario column %d out of range [0,%d)", scenarioCol, len(t.Columns))
	}
	if regionCol < 0 || regionCol >= len(t.Columns) {
		return nil, fmt.Errorf("region column %d out of range [0,%d)", regionCol, len(t.Columns))
	}

	years := YearColumns(t)
	if len(years) == 0 {
		return nil, fmt.Errorf("table has no year columns")
	}

	store := make(Store)
	for _, row := range t.Rows {
		for _, c := range years {
			v, ok := models.ParseNumber(row[c])
			if !ok {
				continue
			}
			store.Set(Selection{Scenario: row[scenarioCol], Year: t.Columns[c]}, row[regionCol], v)
		}
	}
	return store, nil
}

// FromTableColumns is FromTable with columns given by name.
func FromTableColumns(t models.Table, scenario, region string) (Store, error) {
	sc := t.ColumnIndex(scenario)
	if sc < 0 {
		return nil, fmt.Errorf("no column named %q", scenario)
	}
	rc := t.ColumnIndex(region)
	if rc < 0 {
		return nil, fmt.Errorf("no column named %q", region)
	}
	return FromTable(t, sc, rc)
}

// YearColumns returns the indices of columns with a numeric header.
func YearColumns(t models.Table) []int {
	var out []int
	for i, c := range t.Columns {
		if _, ok := models.ParseNumber(c); ok {
			out = append(out, i)
		}
	}
	return out
}

// sortYears orders numerically when both labels are numbers, else
// lexically, numbers first.
func sortYears(labels []string) {
	sort.SliceStable(labels, func(i, j int) bool {
		a, aok := models.ParseNumber(labels[i])
		b, bok := models.ParseNumber(labels[j])
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return labels[i] < labels[j]
		}
	})
}
