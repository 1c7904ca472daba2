package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

// maxSheetName is the Excel sheet name length limit.
const maxSheetName = 31

// WriteTables writes each table to its own sheet. Numeric cells are
// stored as numbers.
func WriteTables(path string, tables []models.NamedTable) error {
	f := excelize.NewFile()
	defer f.Close()

	names := newSheetNamer()
	for i, nt := range tables {
		sheet := names.next(nt.Name)
		if err := addSheet(f, i, sheet); err != nil {
			return err
		}
		if err := writeRow(f, sheet, 1, toCells(nt.Table.Columns, false)); err != nil {
			return err
		}
		for r, row := range nt.Table.Rows {
			if err := writeRow(f, sheet, r+2, toCells(row, true)); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

// WriteCharts writes the data matrix of each chart to its own sheet:
// a header row of categories, then one row per series.
func WriteCharts(path string, specs []models.ChartSpec) error {
	f := excelize.NewFile()
	defer f.Close()

	names := newSheetNamer()
	for i, spec := range specs {
		sheet := names.next(spec.Meta())
		if err := addSheet(f, i, sheet); err != nil {
			return err
		}

		header := []interface{}{spec.Title}
		for _, c := range spec.Categories() {
			header = append(header, c)
		}
		if err := writeRow(f, sheet, 1, header); err != nil {
			return err
		}

		if spec.Dataset == nil {
			continue
		}
		for s, name := range spec.Dataset.SeriesNames() {
			row := []interface{}{name}
			for _, v := range spec.SeriesData(s) {
				row = append(row, v)
			}
			if err := writeRow(f, sheet, s+2, row); err != nil {
				return err
			}
		}
	}
	return f.SaveAs(path)
}

// addSheet renames the default sheet for the first entry and appends the rest.
func addSheet(f *excelize.File, i int, name string) error {
	if i == 0 {
		return f.SetSheetName(f.GetSheetName(0), name)
	}
	_, err := f.NewSheet(name)
	return err
}

func writeRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(row []string, numeric bool) []interface{} {
	out := make([]interface{}, len(row))
	for i, c := range row {
		if numeric {
			if v, ok := models.ParseNumber(c); ok {
				out[i] = v
				continue
			}
		}
		out[i] = c
	}
	return out
}

// sheetNamer produces valid, unique sheet names.
type sheetNamer struct {
	used map[string]bool
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: make(map[string]bool)}
}

// SanitizeSheetName replaces characters Excel rejects and truncates to
// the sheet name limit.
func SanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Sheet"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

func (n *sheetNamer) next(name string) string {
	base := SanitizeSheetName(name)
	candidate := base
	for i := 2; n.used[strings.ToLower(candidate)]; i++ {
		suffix := " (" + strconv.Itoa(i) + ")"
		r := []rune(base)
		if len(r)+len([]rune(suffix)) > maxSheetName {
			r = r[:maxSheetName-len([]rune(suffix))]
		}
		candidate = string(r) + suffix
	}
	n.used[strings.ToLower(candidate)] = true
	return candidate
}
