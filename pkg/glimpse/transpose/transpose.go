// Package transpose swaps "series within a chart" and "one chart per
// series" across a set of charts.
package transpose

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

// Source is the narrow view of a chart the transposer needs.
// models.ChartSpec satisfies it.
type Source interface {
	// Legend returns the comma-joined series names, for display.
	Legend() string
	// SeriesNames returns the series names; position i names SeriesData(i).
	SeriesNames() []string
	// SeriesData returns the values of series i.
	SeriesData(i int) []float64
	// Meta returns the string identifying the chart.
	Meta() string
	// Categories returns the category labels of the data rows.
	Categories() []string
}

// UnsupportedTransposeError reports input that cannot be transposed.
type UnsupportedTransposeError struct {
	Reason string
}

func (e *UnsupportedTransposeError) Error() string {
	return "transpose not supported: " + e.Reason
}

// NameKey normalizes a series name for matching: Unicode case folding,
// trimmed, inner whitespace runs collapsed.
func NameKey(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// SplitLegend splits a comma-joined legend into trimmed, non-empty names.
func SplitLegend(legend string) []string {
	var names []string
	for _, part := range strings.Split(legend, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// MasterLegend returns the distinct series names of all legends in
// first-seen order, compared by NameKey.
func MasterLegend(legends ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, names := range legends {
		for _, name := range names {
			key := NameKey(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, name)
		}
	}
	return out
}

// Transpose builds one chart per distinct series name. Series are matched
// by SeriesNames, so a name may contain commas. Its rows are the
// matching series of each input chart, in input order; a chart without
// that series contributes a row of zeros. The new series are named by
// each input chart's Meta. Nil sources are skipped.
func Transpose(sources []Source) ([]models.ChartSpec, error) {
	var charts []Source
	for _, s := range sources {
		if s != nil {
			charts = append(charts, s)
		}
	}
	if len(charts) < 2 {
		return nil, &UnsupportedTransposeError{Reason: fmt.Sprintf("need at least 2 charts, got %d", len(charts))}
	}

	legends := make([][]string, len(charts))
	index := make([]map[string]int, len(charts))
	for i, c := range charts {
		index[i] = make(map[string]int)
		for j, raw := range c.SeriesNames() {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			legends[i] = append(legends[i], name)
			key := NameKey(name)
			if _, dup := index[i][key]; !dup {
				index[i][key] = j
			}
		}
		if len(legends[i]) == 0 {
			return nil, &UnsupportedTransposeError{Reason: fmt.Sprintf("chart %d (%s) has no series names", i+1, c.Meta())}
		}
	}

	master := MasterLegend(legends...)
	out := make([]models.ChartSpec, 0, len(master))
	for _, name := range master {
		key := NameKey(name)

		rows := make([][]float64, len(charts))
		width := 0
		var categories []string
		for i, c := range charts {
			j, ok := index[i][key]
			if !ok {
				continue
			}
			rows[i] = c.SeriesData(j)
			if len(rows[i]) > width {
				width = len(rows[i])
			}
			if categories == nil {
				categories = c.Categories()
			}
		}

		ds := models.CategoryDataset{
			Categories: categories,
			Series:     make([]models.ChartSeries, len(charts)),
		}
		for i, c := range charts {
			values := make([]float64, width)
			copy(values, rows[i])
			ds.Series[i] = models.ChartSeries{Name: c.Meta(), Values: values}
		}
		out = append(out, models.NewChartSpec(name, name, name, ds))
	}

	return out, nil
}

// Charts adapts chart specs to sources.
func Charts(specs []models.ChartSpec) []Source {
	out := make([]Source, len(specs))
	for i := range specs {
		out[i] = specs[i]
	}
	return out
}
