package models

// Annotation is a text label pinned to a data coordinate of a chart.
type Annotation struct {
	// Text is the label content.
	Text string `json:"text"`
	// X is the category index (category charts) or x value (XY charts).
	X float64 `json:"x"`
	// Y is the value-axis coordinate.
	Y float64 `json:"y"`
}
