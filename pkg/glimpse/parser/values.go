package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
	"github.com/xuri/excelize/v2"
)

// ResolveCharts reads the series ranges of chart refs from the workbook and
// builds chart specs. Charts whose ranges cannot be read are returned in
// the error list and left out of the result.
func ResolveCharts(f *excelize.File, sheetName string, refs []ChartRef, includeSize bool) ([]models.ChartSpec, []error) {
	var specs []models.ChartSpec
	var errs []error

	for i, ref := range refs {
		spec, err := resolveChart(f, sheetName, ref)
		if err != nil {
			errs = append(errs, fmt.Errorf("chart %d (%s): %w", i+1, ref.Name, err))
			continue
		}
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("%s chart %d", sheetName, i+1)
		}
		if includeSize {
			w, h := ref.W, ref.H
			spec.W, spec.H = &w, &h
		}
		specs = append(specs, spec)
	}

	return specs, errs
}

func resolveChart(f *excelize.File, sheetName string, ref ChartRef) (models.ChartSpec, error) {
	names := make([]string, len(ref.Series))
	values := make([][]float64, len(ref.Series))
	xs := make([][]string, len(ref.Series))

	for i, s := range ref.Series {
		name := s.Name
		if name == "" && s.NameRange != "" {
			cells, err := ReadRangeCells(f, sheetName, s.NameRange)
			if err != nil {
				return models.ChartSpec{}, err
			}
			name = strings.Join(nonEmpty(cells), " ")
		}
		if name == "" {
			name = "Series " + strconv.Itoa(i+1)
		}
		names[i] = name

		if s.YRange != "" {
			cells, err := ReadRangeCells(f, sheetName, s.YRange)
			if err != nil {
				return models.ChartSpec{}, err
			}
			values[i] = toNumbers(cells)
		}
		if s.XRange != "" {
			cells, err := ReadRangeCells(f, sheetName, s.XRange)
			if err != nil {
				return models.ChartSpec{}, err
			}
			xs[i] = cells
		}
	}

	var ds models.Dataset
	if KindForChartType(ref.ChartType) == models.KindXY {
		xy := models.XYDataset{Series: make([]models.XYSeries, len(names))}
		for i := range names {
			pts := make([]models.XY, len(values[i]))
			for j, y := range values[i] {
				x := float64(j + 1)
				if j < len(xs[i]) {
					if v, ok := models.ParseNumber(xs[i][j]); ok {
						x = v
					}
				}
				pts[j] = models.XY{X: x, Y: y}
			}
			xy.Series[i] = models.XYSeries{Name: names[i], Points: pts}
		}
		ds = xy
	} else {
		cat := models.CategoryDataset{Series: make([]models.ChartSeries, len(names))}
		width := 0
		for i := range names {
			cat.Series[i] = models.ChartSeries{Name: names[i], Values: values[i]}
			if len(values[i]) > width {
				width = len(values[i])
			}
			if cat.Categories == nil && len(xs[i]) > 0 {
				cat.Categories = xs[i]
			}
		}
		if cat.Categories == nil {
			cat.Categories = make([]string, width)
			for j := range cat.Categories {
				cat.Categories[j] = strconv.Itoa(j + 1)
			}
		}
		ds = cat
	}

	spec := models.NewChartSpec(ref.Name, ref.Title, "", ds)
	return spec, nil
}

// ReadRangeCells returns the cell strings of a range reference in
// row-major order. Unqualified references resolve against sheetName.
func ReadRangeCells(f *excelize.File, sheetName, ref string) ([]string, error) {
	refs, err := ParseRangeRefs(ref)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, r := range refs {
		sheet := r.Sheet
		if sheet == "" {
			sheet = sheetName
		}
		for row := r.Area.R1; row <= r.Area.R2; row++ {
			for col := r.Area.C1; col <= r.Area.C2; col++ {
				cell, err := excelize.CoordinatesToCellName(col, row)
				if err != nil {
					return nil, err
				}
				v, err := f.GetCellValue(sheet, cell)
				if err != nil {
					return nil, fmt.Errorf("read %s!%s: %w", sheet, cell, err)
				}
				out = append(out, strings.TrimSpace(v))
			}
		}
	}
	return out, nil
}

// toNumbers converts cells to values; blank or non-numeric cells are zero.
func toNumbers(cells []string) []float64 {
	out := make([]float64, len(cells))
	for i, c := range cells {
		if v, ok := models.ParseNumber(c); ok {
			out[i] = v
		}
	}
	return out
}

func nonEmpty(cells []string) []string {
	var out []string
	for _, c := range cells {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
