package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoTable indicates that no table-like region was found.
var ErrNoTable = errors.New("no table found")

// ExtractTable reads a sheet into a table. When area is nil the table
// region is detected; the first row of the region is the header.
func ExtractTable(f *excelize.File, sheetName string, area *models.Area) (*models.Table, *models.Area, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, err
	}
	return TableFromRows(rows, area)
}

// ReadCSV reads a csv result file into a table. Lines starting with '#'
// are comments; a single-cell title line above the header is skipped.
func ReadCSV(r io.Reader) (*models.Table, *models.Area, error) {
	return ReadCSVArea(r, nil)
}

// ReadCSVArea is ReadCSV restricted to an explicit area.
func ReadCSVArea(r io.Reader, area *models.Area) (*models.Table, *models.Area, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	return TableFromRows(rows, area)
}

// TableFromRows crops raw sheet rows to area (or the detected region) and
// builds a table. Blank header cells are named by column position, short
// rows are padded, and rows with no content are dropped.
func TableFromRows(rows [][]string, area *models.Area) (*models.Table, *models.Area, error) {
	if area == nil {
		area = DetectTableArea(rows, DefaultTableParams())
		if area == nil {
			return nil, nil, ErrNoTable
		}
		skipTitleRows(rows, area)
	}
	if area.R1 < 1 || area.C1 < 1 || area.R2 < area.R1 || area.C2 < area.C1 {
		return nil, nil, fmt.Errorf("invalid table area %+v", *area)
	}

	width := area.Cols()
	header := cropRow(rows, area.R1-1, area.C1-1, width)
	columns := make([]string, width)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "col" + strconv.Itoa(i+1)
		}
		columns[i] = h
	}

	var body [][]string
	for r := area.R1; r < area.R2; r++ {
		row := cropRow(rows, r, area.C1-1, width)
		if isBlank(row) {
			continue
		}
		body = append(body, row)
	}

	t, err := models.NewTable(columns, body)
	if err != nil {
		return nil, nil, err
	}
	return &t, area, nil
}

// cropRow returns width trimmed cells of rows[r] starting at column c,
// padding missing cells with "".
func cropRow(rows [][]string, r, c, width int) []string {
	out := make([]string, width)
	if r >= len(rows) {
		return out
	}
	src := rows[r]
	for i := 0; i < width; i++ {
		if c+i < len(src) {
			out[i] = strings.TrimSpace(src[c+i])
		}
	}
	return out
}

// skipTitleRows moves the area start past single-cell title lines sitting
// above a wider header.
func skipTitleRows(rows [][]string, area *models.Area) {
	width := area.Cols()
	for area.R1 < area.R2 {
		cur := countFilled(cropRow(rows, area.R1-1, area.C1-1, width))
		next := countFilled(cropRow(rows, area.R1, area.C1-1, width))
		if cur != 1 || next <= 1 {
			return
		}
		area.R1++
	}
}

func countFilled(row []string) int {
	n := 0
	for _, cell := range row {
		if cell != "" {
			n++
		}
	}
	return n
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
