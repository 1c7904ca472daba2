package glimpse

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidFormat indicates the input is neither a readable xlsx nor csv file.
	ErrInvalidFormat = errors.New("invalid input format")
	// ErrUnknownRange indicates that Options.Range names nothing in the workbook.
	ErrUnknownRange = errors.New("unknown range")
)

// Component names the part of a sheet that failed to load.
type Component string

const (
	ComponentTable  Component = "table"
	ComponentCharts Component = "charts"
)

// ExtractionError reports a failure reading one part of a sheet. An empty
// SheetName means the failure concerned the whole workbook.
type ExtractionError struct {
	SheetName string
	Component Component
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("load %s: %v", e.Component, e.Err)
	}
	return fmt.Sprintf("sheet %q: load %s: %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName string, component Component, err error) *ExtractionError {
	return &ExtractionError{SheetName: sheetName, Component: component, Err: err}
}
