// Package palette maps values onto ColorBrewer classes over a color
// interval.
package palette

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette/brewer"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

// DefaultID is the palette used when none is configured.
var DefaultID = models.PaletteID{Name: "RdYlBu", Classes: 9, Reversed: true}

// Painter assigns palette classes to values.
type Painter struct {
	id       models.PaletteID
	interval models.ColorInterval
	colors   []color.Color
}

// New looks up a ColorBrewer palette and binds it to an interval.
func New(id models.PaletteID, interval models.ColorInterval) (*Painter, error) {
	if interval.Min > interval.Max {
		return nil, fmt.Errorf("invalid interval [%g, %g]", interval.Min, interval.Max)
	}
	p, err := brewer.GetPalette(brewer.TypeAny, id.Name, id.Classes)
	if err != nil {
		return nil, fmt.Errorf("palette %s/%d: %w", id.Name, id.Classes, err)
	}

	colors := append([]color.Color(nil), p.Colors()...)
	if id.Reversed {
		for i, j := 0, len(colors)-1; i < j; i, j = i+1, j-1 {
			colors[i], colors[j] = colors[j], colors[i]
		}
	}
	return &Painter{id: id, interval: interval, colors: colors}, nil
}

// ID returns the palette identifier.
func (p *Painter) ID() models.PaletteID {
	return p.id
}

// Interval returns the bound interval.
func (p *Painter) Interval() models.ColorInterval {
	return p.interval
}

// Class returns the class index of v in [0, n). Values outside the
// interval clamp to the end classes.
func (p *Painter) Class(v float64) int {
	n := len(p.colors)
	w := p.interval.Width()
	if w <= 0 || math.IsNaN(v) {
		return 0
	}
	pos := math.Floor((v - p.interval.Min) / w * float64(n))
	return int(max(0, min(pos, float64(n-1))))
}

// Color returns the palette color of v.
func (p *Painter) Color(v float64) color.Color {
	return p.colors[p.Class(v)]
}

// Hex returns the color of v as #rrggbb.
func (p *Painter) Hex(v float64) string {
	return Hex(p.Color(v))
}

// Colors returns the class colors in order.
func (p *Painter) Colors() []color.Color {
	return append([]color.Color(nil), p.colors...)
}

// Breaks returns the n+1 class boundaries from Min to Max.
func (p *Painter) Breaks() []float64 {
	n := len(p.colors)
	out := make([]float64, n+1)
	step := p.interval.Width() / float64(n)
	for i := range out {
		out[i] = p.interval.Min + step*float64(i)
	}
	out[n] = p.interval.Max
	return out
}

// Hex formats a color as #rrggbb.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
