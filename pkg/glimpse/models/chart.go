package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tiendc/go-deepcopy"
	"gonum.org/v1/gonum/stat"
)

// ChartKind is the plot family of a chart.
type ChartKind string

const (
	// KindCategory is a category plot (bars, stacked bars, lines over categories).
	KindCategory ChartKind = "category"
	// KindXY is a numeric x/y plot.
	KindXY ChartKind = "xy"
	// KindBoxAndWhisker is a box-and-whisker plot per category.
	KindBoxAndWhisker ChartKind = "box"
)

// ParseChartKind parses a kind name.
func ParseChartKind(s string) (ChartKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "category", "bar", "line", "":
		return KindCategory, nil
	case "xy", "scatter":
		return KindXY, nil
	case "box", "boxandwhisker", "box-and-whisker":
		return KindBoxAndWhisker, nil
	default:
		return "", fmt.Errorf("unknown chart kind %q (must be category, xy, or box)", s)
	}
}

// Dataset is the typed data carried by a chart. The concrete type decides
// the chart kind.
type Dataset interface {
	// Kind returns the plot family for this dataset.
	Kind() ChartKind
	// SeriesNames returns the legend labels in series order.
	SeriesNames() []string
	// Row returns a copy of the value vector of series i, or nil.
	Row(i int) []float64
	// Labels returns the category labels (x values for XY data).
	Labels() []string

	clone() Dataset
}

// ChartSeries is a named numeric vector.
type ChartSeries struct {
	// Name is the legend label.
	Name string `json:"name"`
	// Values holds one value per category.
	Values []float64 `json:"values"`
}

// CategoryDataset holds series aligned to shared categories.
type CategoryDataset struct {
	Categories []string      `json:"categories"`
	Series     []ChartSeries `json:"series"`
}

func (d CategoryDataset) Kind() ChartKind { return KindCategory }

func (d CategoryDataset) SeriesNames() []string {
	names := make([]string, len(d.Series))
	for i, s := range d.Series {
		names[i] = s.Name
	}
	return names
}

func (d CategoryDataset) Row(i int) []float64 {
	if i < 0 || i >= len(d.Series) {
		return nil
	}
	return append([]float64(nil), d.Series[i].Values...)
}

func (d CategoryDataset) Labels() []string {
	return append([]string(nil), d.Categories...)
}

func (d CategoryDataset) clone() Dataset { return cloneValue(d) }

// XY is a single data point.
type XY struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// XYSeries is a named sequence of points.
type XYSeries struct {
	Name   string `json:"name"`
	Points []XY   `json:"points"`
}

// XYDataset holds numeric x/y series.
type XYDataset struct {
	Series []XYSeries `json:"series"`
}

func (d XYDataset) Kind() ChartKind { return KindXY }

func (d XYDataset) SeriesNames() []string {
	names := make([]string, len(d.Series))
	for i, s := range d.Series {
		names[i] = s.Name
	}
	return names
}

// Row returns the y values of series i.
func (d XYDataset) Row(i int) []float64 {
	if i < 0 || i >= len(d.Series) {
		return nil
	}
	ys := make([]float64, len(d.Series[i].Points))
	for j, p := range d.Series[i].Points {
		ys[j] = p.Y
	}
	return ys
}

// Labels formats the x values of the longest series.
func (d XYDataset) Labels() []string {
	longest := -1
	for i, s := range d.Series {
		if longest < 0 || len(s.Points) > len(d.Series[longest].Points) {
			longest = i
		}
	}
	if longest < 0 {
		return nil
	}
	labels := make([]string, len(d.Series[longest].Points))
	for j, p := range d.Series[longest].Points {
		labels[j] = strconv.FormatFloat(p.X, 'g', -1, 64)
	}
	return labels
}

func (d XYDataset) clone() Dataset { return cloneValue(d) }

// BoxItem holds the summary statistics of one sample set.
type BoxItem struct {
	Min     float64   `json:"min"`
	Q1      float64   `json:"q1"`
	Median  float64   `json:"median"`
	Q3      float64   `json:"q3"`
	Max     float64   `json:"max"`
	Mean    float64   `json:"mean"`
	Samples []float64 `json:"samples,omitempty"`
}

// NewBoxItem computes box statistics for samples. An empty sample set
// gives the zero item.
func NewBoxItem(samples []float64) BoxItem {
	if len(samples) == 0 {
		return BoxItem{}
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	return BoxItem{
		Min:     sorted[0],
		Q1:      stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Median:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q3:      stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Max:     sorted[len(sorted)-1],
		Mean:    stat.Mean(sorted, nil),
		Samples: append([]float64(nil), samples...),
	}
}

// BoxSeries is a named sequence of box items, one per category.
type BoxSeries struct {
	Name  string    `json:"name"`
	Items []BoxItem `json:"items"`
}

// BoxAndWhiskerDataset holds per-category sample statistics.
type BoxAndWhiskerDataset struct {
	Categories []string    `json:"categories"`
	Series     []BoxSeries `json:"series"`
}

func (d BoxAndWhiskerDataset) Kind() ChartKind { return KindBoxAndWhisker }

func (d BoxAndWhiskerDataset) SeriesNames() []string {
	names := make([]string, len(d.Series))
	for i, s := range d.Series {
		names[i] = s.Name
	}
	return names
}

// Row returns the medians of series i.
func (d BoxAndWhiskerDataset) Row(i int) []float64 {
	if i < 0 || i >= len(d.Series) {
		return nil
	}
	out := make([]float64, len(d.Series[i].Items))
	for j, item := range d.Series[i].Items {
		out[j] = item.Median
	}
	return out
}

func (d BoxAndWhiskerDataset) Labels() []string {
	return append([]string(nil), d.Categories...)
}

func (d BoxAndWhiskerDataset) clone() Dataset { return cloneValue(d) }

// ChartSpec is an immutable chart description. Use Apply to derive a
// modified copy.
type ChartSpec struct {
	// Name is the chart identifier (sheet drawing name or generated).
	Name string
	// Title is the chart title.
	Title string
	// Qualifier identifies what the chart shows (the qualifier key for
	// charts built from a table).
	Qualifier string
	// LegendVisible controls legend rendering.
	LegendVisible bool
	// Annotations are text labels drawn on the plot.
	Annotations []Annotation
	// Dataset carries the typed data.
	Dataset Dataset
	// W and H are the embedded chart size in pixels (nil if unknown).
	W *int
	H *int
}

// NewChartSpec creates a chart spec with a visible legend.
func NewChartSpec(name, title, qualifier string, ds Dataset) ChartSpec {
	return ChartSpec{
		Name:          name,
		Title:         title,
		Qualifier:     qualifier,
		LegendVisible: true,
		Dataset:       ds,
	}
}

// Kind returns the plot family, or "" when the chart has no dataset.
func (c ChartSpec) Kind() ChartKind {
	if c.Dataset == nil {
		return ""
	}
	return c.Dataset.Kind()
}

// Legend returns the comma-joined series names.
func (c ChartSpec) Legend() string {
	if c.Dataset == nil {
		return ""
	}
	return strings.Join(c.Dataset.SeriesNames(), ",")
}

// SeriesNames returns the series names in series order. Unlike Legend,
// names containing commas survive intact.
func (c ChartSpec) SeriesNames() []string {
	if c.Dataset == nil {
		return nil
	}
	return c.Dataset.SeriesNames()
}

// SeriesData returns the value row of series i.
func (c ChartSpec) SeriesData(i int) []float64 {
	if c.Dataset == nil {
		return nil
	}
	return c.Dataset.Row(i)
}

// Meta returns the identifying string of the chart: the qualifier when
// set, else the title, else the name.
func (c ChartSpec) Meta() string {
	switch {
	case c.Qualifier != "":
		return c.Qualifier
	case c.Title != "":
		return c.Title
	default:
		return c.Name
	}
}

// Categories returns the category labels of the dataset.
func (c ChartSpec) Categories() []string {
	if c.Dataset == nil {
		return nil
	}
	return c.Dataset.Labels()
}

// Clone returns a deep copy of the chart.
func (c ChartSpec) Clone() ChartSpec {
	out := c
	out.Annotations = append([]Annotation(nil), c.Annotations...)
	if c.Dataset != nil {
		out.Dataset = c.Dataset.clone()
	}
	if c.W != nil {
		w := *c.W
		out.W = &w
	}
	if c.H != nil {
		h := *c.H
		out.H = &h
	}
	return out
}

// MarshalJSON tags the dataset with the chart kind.
func (c ChartSpec) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name          string       `json:"name,omitempty"`
		Kind          ChartKind    `json:"kind"`
		Title         string       `json:"title,omitempty"`
		Qualifier     string       `json:"qualifier,omitempty"`
		LegendVisible bool         `json:"legend_visible"`
		Annotations   []Annotation `json:"annotations,omitempty"`
		Dataset       Dataset      `json:"dataset"`
		W             *int         `json:"w,omitempty"`
		H             *int         `json:"h,omitempty"`
	}{c.Name, c.Kind(), c.Title, c.Qualifier, c.LegendVisible, c.Annotations, c.Dataset, c.W, c.H})
}

func cloneValue[T any](v T) T {
	var out T
	if err := deepcopy.Copy(&out, v); err != nil {
		panic(fmt.Sprintf("models: deep copy of %T: %v", v, err))
	}
	return out
}
