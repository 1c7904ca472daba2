package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

func specs() []models.ChartSpec {
	category := models.NewChartSpec("c", "Ref USA", "Ref USA", models.CategoryDataset{
		Categories: []string{"2020", "2050"},
		Series: []models.ChartSeries{
			{Name: "coal", Values: []float64{1, 2}},
			{Name: "gas", Values: []float64{3, 1}},
		},
	})
	xy := models.NewChartSpec("x", "trend", "", models.XYDataset{
		Series: []models.XYSeries{{Name: "gas", Points: []models.XY{{X: 2020, Y: 1}, {X: 2050, Y: 4}}}},
	})
	box := models.NewChartSpec("b", "spread", "", models.BoxAndWhiskerDataset{
		Categories: []string{"2020", "2050"},
		Series: []models.BoxSeries{{Name: "all", Items: []models.BoxItem{
			models.NewBoxItem([]float64{1, 2, 3, 4}),
			models.NewBoxItem(nil),
		}}},
	})
	return []models.ChartSpec{category, xy, box}
}

func TestPlotEveryKind(t *testing.T) {
	for _, spec := range specs() {
		annotated, err := models.Apply(spec, models.AddAnnotation(models.Annotation{Text: "peak", X: 1, Y: 2}))
		require.NoError(t, err)

		p, err := Plot(annotated)
		require.NoError(t, err, spec.Name)
		assert.Equal(t, spec.Title, p.Title.Text)
	}
}

func TestPlotWithoutDataset(t *testing.T) {
	_, err := Plot(models.ChartSpec{Name: "empty"})
	assert.Error(t, err)
}

func TestSavePNGAndGrid(t *testing.T) {
	dir := t.TempDir()

	single := filepath.Join(dir, "single.png")
	require.NoError(t, SavePNG(specs()[0], single, 4*vg.Inch, 3*vg.Inch))
	info, err := os.Stat(single)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	grid := filepath.Join(dir, "grid.png")
	require.NoError(t, SaveGrid(specs(), grid, 8*vg.Inch, 6*vg.Inch))
	info, err = os.Stat(grid)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, SaveGrid(nil, grid, vg.Inch, vg.Inch))
}

func TestBoxChartWithLegend(t *testing.T) {
	box := models.NewChartSpec("b", "spread", "", models.BoxAndWhiskerDataset{
		Categories: []string{"2020", "2050"},
		Series: []models.BoxSeries{
			{Name: "Ref", Items: []models.BoxItem{models.NewBoxItem([]float64{1, 2, 3}), models.NewBoxItem([]float64{2, 4, 6})}},
			{Name: "Policy", Items: []models.BoxItem{models.NewBoxItem([]float64{0, 1, 2}), models.NewBoxItem(nil)}},
		},
	})
	require.True(t, box.LegendVisible)

	path := filepath.Join(t.TempDir(), "box.png")
	require.NoError(t, SavePNG(box, path, 4*vg.Inch, 3*vg.Inch))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	swatch, err := legendSwatch(color.Black)
	require.NoError(t, err)
	assert.Implements(t, (*plot.Thumbnailer)(nil), swatch)
}
