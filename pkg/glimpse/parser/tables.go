package parser

import (
	"strings"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	// DensityMin is the smallest share of filled cells in the bounding box.
	DensityMin float64
	// MinNonemptyCells rejects sheets holding only a stray note or two.
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// DetectTableArea returns the bounding box of the filled cells of a sheet,
// or nil when the box is too sparse to be a table. Cells holding only
// whitespace count as empty.
func DetectTableArea(rows [][]string, params TableDetectionParams) *models.Area {
	var (
		box    *models.Area
		filled int
	)
	for r, row := range rows {
		for c, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			filled++
			if box == nil {
				box = &models.Area{R1: r + 1, C1: c + 1, R2: r + 1, C2: c + 1}
				continue
			}
			box.R2 = r + 1
			box.C1 = min(box.C1, c+1)
			box.C2 = max(box.C2, c+1)
		}
	}

	if box == nil || filled < params.MinNonemptyCells {
		return nil
	}
	if float64(filled)/float64(box.Rows()*box.Cols()) < params.DensityMin {
		return nil
	}
	return box
}
