package models

// Workbook represents a loaded result file with per-sheet data.
type Workbook struct {
	// BookName is the file name (no path).
	BookName string `json:"book_name"`
	// SheetOrder lists sheet names in workbook order.
	SheetOrder []string `json:"sheet_order"`
	// Sheets maps sheet name to SheetData.
	Sheets map[string]SheetData `json:"sheets"`
	// DefinedRanges maps defined names to their ranges.
	DefinedRanges map[string]RangeRef `json:"defined_ranges,omitempty"`
}

// Tables returns the sheets that carry a table, in workbook order.
func (w *Workbook) Tables() []NamedTable {
	var out []NamedTable
	for _, name := range w.SheetOrder {
		if sd, ok := w.Sheets[name]; ok && sd.Table != nil {
			out = append(out, NamedTable{Name: name, Table: *sd.Table})
		}
	}
	return out
}

// Charts returns every embedded chart, in workbook order.
func (w *Workbook) Charts() []ChartSpec {
	var out []ChartSpec
	for _, name := range w.SheetOrder {
		out = append(out, w.Sheets[name].Charts...)
	}
	return out
}

// NamedTable pairs a table with a display name.
type NamedTable struct {
	Name  string `json:"name"`
	Table Table  `json:"table"`
}
