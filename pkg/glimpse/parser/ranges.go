package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
	"github.com/xuri/excelize/v2"
)

// ExtractDefinedRanges returns the workbook's defined names that refer to
// a single cell block. Built-in names (_xlnm.*) are skipped.
func ExtractDefinedRanges(f *excelize.File) map[string]models.RangeRef {
	result := make(map[string]models.RangeRef)

	for _, dn := range f.GetDefinedName() {
		if strings.HasPrefix(strings.ToLower(dn.Name), "_xlnm.") {
			continue
		}
		refs, err := ParseRangeRefs(dn.RefersTo)
		if err != nil || len(refs) != 1 {
			continue
		}
		result[dn.Name] = refs[0]
	}

	return result
}

// ParseRangeRefs parses a reference list such as
// 'Sheet 1'!$A$1:$D$10,Sheet2!$B$2 into its areas.
func ParseRangeRefs(ref string) ([]models.RangeRef, error) {
	ref = strings.TrimSpace(ref)
	ref = strings.TrimPrefix(ref, "=")
	ref = strings.TrimSuffix(strings.TrimPrefix(ref, "("), ")")

	var refs []models.RangeRef
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		r, err := ParseRangeRef(part)
		if err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("empty range reference %q", ref)
	}
	return refs, nil
}

// ParseRangeRef parses one reference: Sheet!$A$1:$D$10, 'My Sheet'!B2, or A1:C3.
func ParseRangeRef(ref string) (models.RangeRef, error) {
	var out models.RangeRef
	rangeStr := strings.TrimSpace(ref)

	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		sheet := rangeStr[:idx]
		if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
		out.Sheet = sheet
		rangeStr = rangeStr[idx+1:]
	}

	area, err := parseArea(rangeStr)
	if err != nil {
		return models.RangeRef{}, fmt.Errorf("parse range %q: %w", ref, err)
	}
	out.Area = area
	return out, nil
}

// parseArea parses $A$1:$D$10 or a single cell into an area.
func parseArea(rangeStr string) (models.Area, error) {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.Area{}, fmt.Errorf("malformed area %q", rangeStr)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Area{}, err
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.Area{}, err
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return models.Area{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, nil
}

func atoi(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	return v, err == nil
}
