package models

import (
	"errors"
	"fmt"
)

// ErrUnsupportedConversion is returned by ConvertKind for conversions that
// cannot be derived from the available data.
var ErrUnsupportedConversion = errors.New("unsupported chart kind conversion")

// Edit derives a new chart spec from an existing one. Edits receive a
// private copy and may modify it freely.
type Edit func(ChartSpec) (ChartSpec, error)

// Apply runs edits in order against a copy of spec. The input is never
// modified.
func Apply(spec ChartSpec, edits ...Edit) (ChartSpec, error) {
	out := spec.Clone()
	for _, e := range edits {
		var err error
		if out, err = e(out); err != nil {
			return spec, err
		}
	}
	return out, nil
}

// SetTitle replaces the chart title.
func SetTitle(title string) Edit {
	return func(c ChartSpec) (ChartSpec, error) {
		c.Title = title
		return c, nil
	}
}

// ShowLegend toggles legend visibility.
func ShowLegend(visible bool) Edit {
	return func(c ChartSpec) (ChartSpec, error) {
		c.LegendVisible = visible
		return c, nil
	}
}

// AddAnnotation appends a text annotation.
func AddAnnotation(a Annotation) Edit {
	return func(c ChartSpec) (ChartSpec, error) {
		c.Annotations = append(c.Annotations, a)
		return c, nil
	}
}

// RemoveAnnotation deletes the annotation at index i.
func RemoveAnnotation(i int) Edit {
	return func(c ChartSpec) (ChartSpec, error) {
		if i < 0 || i >= len(c.Annotations) {
			return c, fmt.Errorf("annotation %d out of range [0,%d)", i, len(c.Annotations))
		}
		c.Annotations = append(c.Annotations[:i], c.Annotations[i+1:]...)
		return c, nil
	}
}

// ClearAnnotations removes every annotation.
func ClearAnnotations() Edit {
	return func(c ChartSpec) (ChartSpec, error) {
		c.Annotations = nil
		return c, nil
	}
}

// ConvertKind switches the chart to another plot family.
// Category and XY convert both ways; box data converts to category data
// using medians. Nothing converts to box data.
func ConvertKind(kind ChartKind) Edit {
	return func(c ChartSpec) (ChartSpec, error) {
		if c.Dataset == nil {
			return c, fmt.Errorf("chart %q has no dataset: %w", c.Name, ErrUnsupportedConversion)
		}
		if c.Dataset.Kind() == kind {
			return c, nil
		}
		switch src := c.Dataset.(type) {
		case CategoryDataset:
			if kind == KindXY {
				c.Dataset = categoryToXY(src)
				return c, nil
			}
		case XYDataset:
			if kind == KindCategory {
				c.Dataset = xyToCategory(src)
				return c, nil
			}
		case BoxAndWhiskerDataset:
			if kind == KindCategory {
				c.Dataset = boxToCategory(src)
				return c, nil
			}
		}
		return c, fmt.Errorf("%s to %s: %w", c.Dataset.Kind(), kind, ErrUnsupportedConversion)
	}
}

// categoryToXY uses numeric category labels as x values, falling back to
// the category index.
func categoryToXY(d CategoryDataset) XYDataset {
	xs := make([]float64, len(d.Categories))
	for i, cat := range d.Categories {
		if v, ok := ParseNumber(cat); ok {
			xs[i] = v
		} else {
			xs[i] = float64(i)
		}
	}
	out := XYDataset{Series: make([]XYSeries, len(d.Series))}
	for i, s := range d.Series {
		pts := make([]XY, len(s.Values))
		for j, v := range s.Values {
			x := float64(j)
			if j < len(xs) {
				x = xs[j]
			}
			pts[j] = XY{X: x, Y: v}
		}
		out.Series[i] = XYSeries{Name: s.Name, Points: pts}
	}
	return out
}

func xyToCategory(d XYDataset) CategoryDataset {
	out := CategoryDataset{Categories: d.Labels(), Series: make([]ChartSeries, len(d.Series))}
	for i, s := range d.Series {
		out.Series[i] = ChartSeries{Name: s.Name, Values: d.Row(i)}
	}
	return out
}

func boxToCategory(d BoxAndWhiskerDataset) CategoryDataset {
	out := CategoryDataset{Categories: d.Labels(), Series: make([]ChartSeries, len(d.Series))}
	for i, s := range d.Series {
		out.Series[i] = ChartSeries{Name: s.Name, Values: d.Row(i)}
	}
	return out
}
