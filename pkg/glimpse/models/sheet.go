package models

// SheetData represents structured data for a single sheet.
type SheetData struct {
	// Table is the tabular query result found on the sheet (nil if none).
	Table *Table `json:"table,omitempty"`
	// TableRange is the cell block the table was read from.
	TableRange *Area `json:"table_range,omitempty"`
	// Charts contains embedded charts with resolved series values.
	Charts []ChartSpec `json:"charts,omitempty"`
}
