package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func energyChart() ChartSpec {
	return NewChartSpec("chart 1", "Ref USA", "Ref USA", CategoryDataset{
		Categories: []string{"2020", "2050"},
		Series: []ChartSeries{
			{Name: "coal", Values: []float64{10, 4}},
			{Name: "gas", Values: []float64{20, 30}},
		},
	})
}

func TestChartSpecAccessors(t *testing.T) {
	spec := energyChart()

	assert.Equal(t, KindCategory, spec.Kind())
	assert.True(t, spec.LegendVisible)
	assert.Equal(t, "coal,gas", spec.Legend())
	assert.Equal(t, []float64{20, 30}, spec.SeriesData(1))
	assert.Nil(t, spec.SeriesData(2))
	assert.Equal(t, []string{"2020", "2050"}, spec.Categories())
	assert.Equal(t, "Ref USA", spec.Meta())

	// Returned rows are copies.
	spec.SeriesData(0)[0] = 99
	assert.Equal(t, []float64{10, 4}, spec.SeriesData(0))

	empty := ChartSpec{Name: "blank"}
	assert.Equal(t, ChartKind(""), empty.Kind())
	assert.Equal(t, "", empty.Legend())
	assert.Nil(t, empty.Categories())
	assert.Equal(t, "blank", empty.Meta())
}

func TestMetaFallsBackToTitle(t *testing.T) {
	spec := NewChartSpec("chart 2", "Emissions", "", CategoryDataset{})
	assert.Equal(t, "Emissions", spec.Meta())
}

func TestXYDatasetLabels(t *testing.T) {
	ds := XYDataset{Series: []XYSeries{
		{Name: "a", Points: []XY{{X: 2020, Y: 1}}},
		{Name: "b", Points: []XY{{X: 2020, Y: 2}, {X: 2050.5, Y: 3}}},
	}}
	assert.Equal(t, []string{"2020", "2050.5"}, ds.Labels())
	assert.Equal(t, []float64{2, 3}, ds.Row(1))
	assert.Nil(t, XYDataset{}.Labels())
}

func TestNewBoxItem(t *testing.T) {
	item := NewBoxItem([]float64{4, 1, 3, 2})
	assert.Equal(t, 1.0, item.Min)
	assert.Equal(t, 1.0, item.Q1)
	assert.Equal(t, 2.0, item.Median)
	assert.Equal(t, 3.0, item.Q3)
	assert.Equal(t, 4.0, item.Max)
	assert.InDelta(t, 2.5, item.Mean, 1e-12)
	assert.Equal(t, []float64{4, 1, 3, 2}, item.Samples)

	assert.Equal(t, BoxItem{}, NewBoxItem(nil))

	ds := BoxAndWhiskerDataset{
		Categories: []string{"2020"},
		Series:     []BoxSeries{{Name: "all", Items: []BoxItem{item}}},
	}
	assert.Equal(t, []float64{2}, ds.Row(0))
}

func TestClone(t *testing.T) {
	w := 480
	spec := energyChart()
	spec.W = &w
	spec.Annotations = []Annotation{{Text: "peak"}}

	c := spec.Clone()
	c.Dataset.(CategoryDataset).Series[0].Values[0] = -1
	c.Annotations[0].Text = "changed"
	*c.W = 1

	assert.Equal(t, []float64{10, 4}, spec.SeriesData(0))
	assert.Equal(t, "peak", spec.Annotations[0].Text)
	assert.Equal(t, 480, *spec.W)
}

func TestChartSpecJSON(t *testing.T) {
	data, err := json.Marshal(energyChart())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "category", got["kind"])
	assert.Equal(t, "chart 1", got["name"])
	assert.Equal(t, true, got["legend_visible"])
	assert.NotContains(t, got, "w")

	ds, ok := got["dataset"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, ds["series"], 2)
}

func TestParseChartKind(t *testing.T) {
	for in, want := range map[string]ChartKind{
		"":        KindCategory,
		"Bar":     KindCategory,
		"xy":      KindXY,
		"scatter": KindXY,
		" box ":   KindBoxAndWhisker,
	} {
		got, err := ParseChartKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseChartKind("pie")
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	_, err := NewTable([]string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})
	assert.ErrorIs(t, err, ErrRaggedRow)

	tbl, err := NewTable([]string{"scenario", "2020"}, [][]string{{"Ref", "1"}, {"Pol", "2"}, {"Ref", "3"}})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, 1, tbl.ColumnIndex("2020"))
	assert.Equal(t, -1, tbl.ColumnIndex("region"))

	sub := tbl.Select([]int{2, 0})
	assert.Equal(t, [][]string{{"Ref", "3"}, {"Ref", "1"}}, sub.Rows)
	sub.Rows[0][1] = "x"
	assert.Equal(t, "3", tbl.Rows[2][1])
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"2020", 2020, true},
		{" 1,234.5 ", 1234.5, true},
		{"-0.25", -0.25, true},
		{"", 0, false},
		{"EJ", 0, false},
		{"NaN", 0, false},
		{"-Inf", 0, false},
		{"1e400", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestColorInterval(t *testing.T) {
	outer := ColorInterval{Min: -10, Max: 10}
	assert.True(t, outer.Contains(ColorInterval{Min: -3, Max: 10}))
	assert.False(t, outer.Contains(ColorInterval{Min: -11, Max: 0}))
	assert.Equal(t, 20.0, outer.Width())
}
