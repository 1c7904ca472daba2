package models

import "fmt"

// Area represents cell coordinate bounds.
type Area struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Rows returns the number of rows covered by the area.
func (a Area) Rows() int {
	return a.R2 - a.R1 + 1
}

// Cols returns the number of columns covered by the area.
func (a Area) Cols() int {
	return a.C2 - a.C1 + 1
}

// RangeRef is a sheet-qualified cell range such as 'Sheet 1'!$B$2:$D$9.
type RangeRef struct {
	// Sheet is the sheet name; empty when the reference is unqualified.
	Sheet string `json:"sheet,omitempty"`
	// Area is the covered cell block.
	Area Area `json:"area"`
}

func (r RangeRef) String() string {
	return fmt.Sprintf("%s!R%dC%d:R%dC%d", r.Sheet, r.Area.R1, r.Area.C1, r.Area.R2, r.Area.C2)
}
