// Package charts turns grouped query results into chart specs and lays
// them out in thumbnail grids.
package charts

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/reshape"
)

// UnitsColumn is the conventional trailing units column of a result table.
const UnitsColumn = "Units"

// BuildOptions configures chart construction.
type BuildOptions struct {
	// Kind is the plot family of the built charts.
	Kind models.ChartKind
	// LegendColumn names the column labelling each series. When empty the
	// label joins every non-numeric column after the identity columns.
	LegendColumn string
}

// Build creates one chart per qualifier key of g. Value columns are the
// numeric-header columns after the identity columns. Rows of a group with
// the same label are summed into one series; blank or non-numeric value
// cells count as zero.
func Build(g *reshape.Grouping, opts BuildOptions) ([]models.ChartSpec, error) {
	t := g.Table()
	cnt := g.IdentityColumns()

	var valueCols, labelCols []int
	for i := cnt; i < len(t.Columns); i++ {
		if _, ok := models.ParseNumber(t.Columns[i]); ok {
			valueCols = append(valueCols, i)
		} else if !strings.EqualFold(t.Columns[i], UnitsColumn) {
			labelCols = append(labelCols, i)
		}
	}
	if len(valueCols) == 0 {
		return nil, fmt.Errorf("no numeric value columns after column %d", cnt)
	}
	if opts.LegendColumn != "" {
		idx := t.ColumnIndex(opts.LegendColumn)
		if idx < 0 {
			return nil, fmt.Errorf("no column named %q", opts.LegendColumn)
		}
		labelCols = []int{idx}
	}

	categories := make([]string, len(valueCols))
	for i, c := range valueCols {
		categories[i] = t.Columns[c]
	}

	kind := opts.Kind
	if kind == "" {
		kind = models.KindCategory
	}

	out := make([]models.ChartSpec, 0, g.Len())
	for n, key := range g.Keys() {
		sub, _ := g.SubTable(key)
		series := seriesOf(sub, labelCols, valueCols)

		var ds models.Dataset
		switch kind {
		case models.KindXY:
			ds = xyDataset(categories, series)
		case models.KindBoxAndWhisker:
			ds = boxDataset(key, categories, series)
		default:
			ds = models.CategoryDataset{Categories: categories, Series: series}
		}

		title := key
		if title == "" {
			title = "All"
		}
		out = append(out, models.NewChartSpec("chart "+strconv.Itoa(n+1), title, key, ds))
	}
	return out, nil
}

// seriesOf builds one series per distinct row label, in first-seen order.
func seriesOf(t models.Table, labelCols, valueCols []int) []models.ChartSeries {
	var out []models.ChartSeries
	pos := make(map[string]int)

	for r, row := range t.Rows {
		label := rowLabel(row, labelCols)
		if label == "" {
			label = "Series " + strconv.Itoa(r+1)
		}
		i, ok := pos[label]
		if !ok {
			i = len(out)
			pos[label] = i
			out = append(out, models.ChartSeries{Name: label, Values: make([]float64, len(valueCols))})
		}
		for j, c := range valueCols {
			if v, ok := models.ParseNumber(row[c]); ok {
				out[i].Values[j] += v
			}
		}
	}
	return out
}

func rowLabel(row []string, cols []int) string {
	var parts []string
	for _, c := range cols {
		if cell := strings.TrimSpace(row[c]); cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, " ")
}

func xyDataset(categories []string, series []models.ChartSeries) models.XYDataset {
	xs := make([]float64, len(categories))
	for i, c := range categories {
		xs[i], _ = models.ParseNumber(c)
	}
	ds := models.XYDataset{Series: make([]models.XYSeries, len(series))}
	for i, s := range series {
		pts := make([]models.XY, len(s.Values))
		for j, v := range s.Values {
			pts[j] = models.XY{X: xs[j], Y: v}
		}
		ds.Series[i] = models.XYSeries{Name: s.Name, Points: pts}
	}
	return ds
}

// boxDataset summarizes, per category, the values of every series.
func boxDataset(name string, categories []string, series []models.ChartSeries) models.BoxAndWhiskerDataset {
	if name == "" {
		name = "All"
	}
	items := make([]models.BoxItem, len(categories))
	for j := range categories {
		samples := make([]float64, 0, len(series))
		for _, s := range series {
			samples = append(samples, s.Values[j])
		}
		items[j] = models.NewBoxItem(samples)
	}
	return models.BoxAndWhiskerDataset{
		Categories: categories,
		Series:     []models.BoxSeries{{Name: name, Items: items}},
	}
}

// GridLayout returns the rows and columns of a near-square thumbnail grid
// holding n charts.
func GridLayout(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return rows, cols
}
