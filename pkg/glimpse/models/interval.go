package models

// ColorInterval is the value domain mapped onto a palette. Min <= Max.
type ColorInterval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether other lies inside the interval.
func (c ColorInterval) Contains(other ColorInterval) bool {
	return c.Min <= other.Min && other.Max <= c.Max
}

// Width returns Max - Min.
func (c ColorInterval) Width() float64 {
	return c.Max - c.Min
}

// PaletteID identifies a ColorBrewer palette.
type PaletteID struct {
	// Name is the ColorBrewer scheme name (e.g. "RdBu", "YlOrRd").
	Name string `json:"name" yaml:"name"`
	// Classes is the number of color classes.
	Classes int `json:"classes" yaml:"classes"`
	// Reversed flips the color order.
	Reversed bool `json:"reversed" yaml:"reversed"`
}
