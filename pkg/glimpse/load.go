package glimpse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/parser"
)

// Load reads a result file. Xlsx workbooks yield one table per sheet
// (plus embedded charts unless in light mode); csv files yield a single
// sheet named after the file. Per-sheet problems do not fail the load and
// are returned as warnings.
func Load(path string, opts Options) (*models.Workbook, []error, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return loadCSV(path, opts)
	}
	return loadXLSX(path, opts)
}

func loadCSV(path string, opts Options) (*models.Workbook, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var area *models.Area
	if opts.Range != "" {
		ref, err := parser.ParseRangeRef(opts.Range)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", opts.Range, ErrUnknownRange)
		}
		area = &ref.Area
	}

	table, area, err := parser.ReadCSVArea(f, area)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &models.Workbook{
		BookName:   filepath.Base(path),
		SheetOrder: []string{name},
		Sheets: map[string]models.SheetData{
			name: {Table: table, TableRange: area},
		},
	}, nil, nil
}

func loadXLSX(path string, opts Options) (*models.Workbook, []error, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	wb := &models.Workbook{
		BookName:      filepath.Base(path),
		SheetOrder:    f.GetSheetList(),
		Sheets:        make(map[string]models.SheetData),
		DefinedRanges: parser.ExtractDefinedRanges(f),
	}

	var target *models.RangeRef
	if opts.Range != "" {
		ref, err := resolveRange(wb, opts.Range)
		if err != nil {
			return nil, nil, err
		}
		target = &ref
	}

	var warnings []error
	for _, sheetName := range wb.SheetOrder {
		var sd models.SheetData

		switch {
		case target == nil:
			table, area, err := parser.ExtractTable(f, sheetName, nil)
			if err == nil {
				sd.Table, sd.TableRange = table, area
			} else if !errors.Is(err, parser.ErrNoTable) {
				warnings = append(warnings, NewExtractionError(sheetName, ComponentTable, err))
			}
		case target.Sheet == sheetName:
			area := target.Area
			table, _, err := parser.ExtractTable(f, sheetName, &area)
			if err != nil {
				return nil, nil, NewExtractionError(sheetName, ComponentTable, err)
			}
			sd.Table, sd.TableRange = table, &area
		}

		wb.Sheets[sheetName] = sd
	}

	if opts.ShouldLoadCharts() {
		refs, err := parser.ExtractCharts(path)
		if err != nil {
			warnings = append(warnings, NewExtractionError("", ComponentCharts, err))
		}
		for _, sheetName := range wb.SheetOrder {
			if len(refs[sheetName]) == 0 {
				continue
			}
			specs, errs := parser.ResolveCharts(f, sheetName, refs[sheetName], opts.ShouldIncludeChartSize())
			for _, e := range errs {
				warnings = append(warnings, NewExtractionError(sheetName, ComponentCharts, e))
			}
			sd := wb.Sheets[sheetName]
			sd.Charts = specs
			wb.Sheets[sheetName] = sd
		}
	}

	return wb, warnings, nil
}

// resolveRange looks up a defined name, then falls back to an A1
// reference. Unqualified references apply to the first sheet.
func resolveRange(wb *models.Workbook, spec string) (models.RangeRef, error) {
	if ref, ok := wb.DefinedRanges[spec]; ok {
		return ref, nil
	}
	ref, err := parser.ParseRangeRef(spec)
	if err != nil {
		return models.RangeRef{}, fmt.Errorf("%s: %w", spec, ErrUnknownRange)
	}
	if ref.Sheet == "" && len(wb.SheetOrder) > 0 {
		ref.Sheet = wb.SheetOrder[0]
	}
	for _, name := range wb.SheetOrder {
		if name == ref.Sheet {
			return ref, nil
		}
	}
	return models.RangeRef{}, fmt.Errorf("sheet %q: %w", ref.Sheet, ErrUnknownRange)
}
