package transpose

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

func categoryChart(meta string, categories []string, series ...models.ChartSeries) models.ChartSpec {
	return models.NewChartSpec(meta, meta, meta, models.CategoryDataset{
		Categories: categories,
		Series:     series,
	})
}

// fakeSource exercises the interface without a chart spec behind it.
type fakeSource struct {
	legend string
	rows   [][]float64
	meta   string
}

func (f fakeSource) Legend() string             { return f.legend }
func (f fakeSource) SeriesNames() []string      { return strings.Split(f.legend, ",") }
func (f fakeSource) SeriesData(i int) []float64 { return f.rows[i] }
func (f fakeSource) Meta() string               { return f.meta }
func (f fakeSource) Categories() []string       { return []string{"2020", "2030", "2040"} }

func TestTransposeMissingSeriesIsZero(t *testing.T) {
	years := []string{"2020", "2030", "2040"}
	chartA := categoryChart("USA", years,
		models.ChartSeries{Name: "A", Values: []float64{1, 2, 3}},
		models.ChartSeries{Name: "B", Values: []float64{4, 5, 6}},
	)
	chartB := categoryChart("EU", years,
		models.ChartSeries{Name: "B", Values: []float64{7, 8, 9}},
		models.ChartSeries{Name: "C", Values: []float64{10, 11, 12}},
	)

	out, err := Transpose(Charts([]models.ChartSpec{chartA, chartB}))
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "A", out[0].Title)
	assert.Equal(t, "B", out[1].Title)
	assert.Equal(t, "C", out[2].Title)

	assert.Equal(t, "USA,EU", out[0].Legend())
	assert.Equal(t, []float64{1, 2, 3}, out[0].SeriesData(0))
	assert.Equal(t, []float64{0, 0, 0}, out[0].SeriesData(1))

	assert.Equal(t, []float64{4, 5, 6}, out[1].SeriesData(0))
	assert.Equal(t, []float64{7, 8, 9}, out[1].SeriesData(1))

	assert.Equal(t, []float64{0, 0, 0}, out[2].SeriesData(0))
	assert.Equal(t, []float64{10, 11, 12}, out[2].SeriesData(1))
	assert.Equal(t, years, out[2].Categories())
}

func TestTransposeMasterLegendSize(t *testing.T) {
	sources := []Source{
		fakeSource{legend: "coal, Gas", rows: [][]float64{{1}, {2}}, meta: "r1"},
		fakeSource{legend: "gas,oil", rows: [][]float64{{3}, {4}}, meta: "r2"},
		fakeSource{legend: " COAL ,nuclear  power", rows: [][]float64{{5}, {6}}, meta: "r3"},
		fakeSource{legend: "Nuclear power", rows: [][]float64{{7}}, meta: "r4"},
	}

	out, err := Transpose(sources)
	require.NoError(t, err)

	titles := make([]string, len(out))
	for i, c := range out {
		titles[i] = c.Title
	}
	assert.Equal(t, []string{"coal", "Gas", "oil", "nuclear  power"}, titles)

	// "coal" is series 0 in r1 and r3.
	assert.Equal(t, []float64{1}, out[0].SeriesData(0))
	assert.Equal(t, []float64{0}, out[0].SeriesData(1))
	assert.Equal(t, []float64{5}, out[0].SeriesData(2))
	assert.Equal(t, []float64{7}, out[3].SeriesData(3))
}

func TestTransposeKeepsSeriesIndexAcrossEmptyNames(t *testing.T) {
	sources := []Source{
		fakeSource{legend: "a,,b", rows: [][]float64{{1}, {2}, {3}}, meta: "x"},
		fakeSource{legend: "b", rows: [][]float64{{4}}, meta: "y"},
	}

	out, err := Transpose(sources)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, []float64{3}, out[1].SeriesData(0))
	assert.Equal(t, []float64{4}, out[1].SeriesData(1))
}

func TestTransposeCommaInSeriesName(t *testing.T) {
	years := []string{"2020"}
	chartA := categoryChart("A", years,
		models.ChartSeries{Name: "Coal, Oil", Values: []float64{1}},
		models.ChartSeries{Name: "Gas", Values: []float64{7}},
	)
	chartB := categoryChart("B", years, models.ChartSeries{Name: "Gas", Values: []float64{9}})

	out, err := Transpose(Charts([]models.ChartSpec{chartA, chartB}))
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Coal, Oil", out[0].Title)
	assert.Equal(t, []float64{1}, out[0].SeriesData(0))
	assert.Equal(t, []float64{0}, out[0].SeriesData(1))

	assert.Equal(t, "Gas", out[1].Title)
	assert.Equal(t, []float64{7}, out[1].SeriesData(0))
	assert.Equal(t, []float64{9}, out[1].SeriesData(1))
}

func TestTransposePadsToWidestRow(t *testing.T) {
	sources := []Source{
		fakeSource{legend: "a", rows: [][]float64{{1, 2}}, meta: "x"},
		fakeSource{legend: "a", rows: [][]float64{{3, 4, 5}}, meta: "y"},
	}

	out, err := Transpose(sources)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 0}, out[0].SeriesData(0))
	assert.Equal(t, []float64{3, 4, 5}, out[0].SeriesData(1))
}

func TestTransposeUnsupported(t *testing.T) {
	valid := fakeSource{legend: "a", rows: [][]float64{{1}}, meta: "x"}

	tests := []struct {
		name    string
		sources []Source
	}{
		{"empty", nil},
		{"single", []Source{valid}},
		{"nil padded", []Source{nil, valid, nil}},
		{"blank legend", []Source{valid, fakeSource{legend: " , ", meta: "y"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Transpose(tt.sources)
			var unsupported *UnsupportedTransposeError
			assert.True(t, errors.As(err, &unsupported))
		})
	}
}

func TestTransposeDoesNotModifyInput(t *testing.T) {
	chartA := categoryChart("x", []string{"1"}, models.ChartSeries{Name: "a", Values: []float64{1}})
	chartB := categoryChart("y", []string{"1"}, models.ChartSeries{Name: "a", Values: []float64{2}})

	out, err := Transpose(Charts([]models.ChartSpec{chartA, chartB}))
	require.NoError(t, err)

	ds := out[0].Dataset.(models.CategoryDataset)
	ds.Series[0].Values[0] = 99
	assert.Equal(t, []float64{1}, chartA.SeriesData(0))
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, NameKey("Natural  Gas"), NameKey(" natural gas "))
	assert.Equal(t, NameKey("STRASSE"), NameKey("strasse"))
	assert.NotEqual(t, NameKey("gas"), NameKey("oil"))
}

func TestSplitLegend(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, SplitLegend(" a ,, b c ,"))
	assert.Empty(t, SplitLegend(""))
}
