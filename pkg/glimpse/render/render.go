// Package render draws chart specs to image files with gonum/plot.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/charts"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

// barWidth is the width of one bar in a group, in points.
const barWidth vg.Length = 8

// Plot builds a plot for spec: grouped bars for category data, lines for
// XY data and box plots for box data.
func Plot(spec models.ChartSpec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Legend.Top = true

	var err error
	switch ds := spec.Dataset.(type) {
	case models.CategoryDataset:
		err = addBars(p, ds, spec.LegendVisible)
	case models.XYDataset:
		err = addLines(p, ds, spec.LegendVisible)
	case models.BoxAndWhiskerDataset:
		err = addBoxes(p, ds, spec.LegendVisible)
	default:
		err = fmt.Errorf("chart %q has no dataset", spec.Name)
	}
	if err != nil {
		return nil, err
	}

	for _, a := range spec.Annotations {
		labels, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: a.X, Y: a.Y}},
			Labels: []string{a.Text},
		})
		if err != nil {
			return nil, fmt.Errorf("annotation %q: %w", a.Text, err)
		}
		p.Add(labels)
	}

	return p, nil
}

func addBars(p *plot.Plot, ds models.CategoryDataset, legend bool) error {
	n := len(ds.Series)
	for i, s := range ds.Series {
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), barWidth)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = 0
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * barWidth
		p.Add(bars)
		if legend {
			p.Legend.Add(s.Name, bars)
		}
	}
	p.NominalX(ds.Categories...)
	return nil
}

func addLines(p *plot.Plot, ds models.XYDataset, legend bool) error {
	for i, s := range ds.Series {
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		if legend {
			p.Legend.Add(s.Name, line)
		}
	}
	return nil
}

func addBoxes(p *plot.Plot, ds models.BoxAndWhiskerDataset, legend bool) error {
	n := len(ds.Series)
	for i, s := range ds.Series {
		offset := float64(i) - float64(n-1)/2
		drawn := false
		for j, item := range s.Items {
			if len(item.Samples) == 0 {
				continue
			}
			box, err := plotter.NewBoxPlot(barWidth, float64(j), plotter.Values(item.Samples))
			if err != nil {
				return fmt.Errorf("series %q category %d: %w", s.Name, j, err)
			}
			box.FillColor = plotutil.Color(i)
			box.Offset = vg.Length(offset) * barWidth
			p.Add(box)
			drawn = true
		}
		if legend && drawn {
			swatch, err := legendSwatch(plotutil.Color(i))
			if err != nil {
				return fmt.Errorf("series %q legend: %w", s.Name, err)
			}
			p.Legend.Add(s.Name, swatch)
		}
	}
	p.NominalX(ds.Categories...)
	return nil
}

// legendSwatch is a filled legend entry for plotters that draw no
// thumbnail of their own, such as box plots.
func legendSwatch(c color.Color) (plot.Thumbnailer, error) {
	bar, err := plotter.NewBarChart(plotter.Values{1}, barWidth)
	if err != nil {
		return nil, err
	}
	bar.Color = c
	bar.LineStyle.Width = 0
	return bar, nil
}

// SavePNG renders spec to path; the extension selects the image format.
func SavePNG(spec models.ChartSpec, path string, w, h vg.Length) error {
	p, err := Plot(spec)
	if err != nil {
		return err
	}
	return p.Save(w, h, path)
}

// SaveGrid renders specs as a thumbnail grid in a single PNG.
func SaveGrid(specs []models.ChartSpec, path string, w, h vg.Length) error {
	if len(specs) == 0 {
		return errors.New("no charts to render")
	}

	rows, cols := charts.GridLayout(len(specs))
	plots := make([][]*plot.Plot, rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, cols)
		for c := range plots[r] {
			i := r*cols + c
			if i >= len(specs) {
				blank := plot.New()
				blank.HideAxes()
				plots[r][c] = blank
				continue
			}
			p, err := Plot(specs[i])
			if err != nil {
				return err
			}
			plots[r][c] = p
		}
	}

	img := vgimg.New(w, h)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}

	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
