package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/output"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/reshape"
)

// groupView is the JSON form of one series group.
type groupView struct {
	Sheet string `json:"sheet"`
	reshape.KeyGroup
}

func newGroupsCmd(a *app) *cobra.Command {
	var xlsxOut string

	cmd := &cobra.Command{
		Use:   "groups [input]",
		Short: "Split each result table into one sub-table per qualifier key",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			wb, err := a.load(args[0])
			if err != nil {
				return err
			}

			views := []groupView{}
			var tables []models.NamedTable
			for _, nt := range a.tables(wb) {
				groups, err := reshape.GroupAll(nt.Table, a.cfg.IdentityColumns)
				if err != nil {
					a.skipGrouping(nt.Name, err)
					continue
				}
				for _, grp := range groups {
					views = append(views, groupView{Sheet: nt.Name, KeyGroup: grp})
					tables = append(tables, models.NamedTable{Name: groupSheetName(nt.Name, grp.Key), Table: grp.Table})
				}
			}
			a.log.Info("grouped", "groups", len(views))

			if xlsxOut != "" {
				if err := output.WriteTables(xlsxOut, tables); err != nil {
					return fmt.Errorf("write %s: %w", xlsxOut, err)
				}
				a.open(xlsxOut, "xlsx")
			}
			return a.emit(views)
		},
	}

	cmd.Flags().StringVar(&xlsxOut, "xlsx-out", "", "Also write each group to a sheet of this workbook")
	return cmd
}

// group splits a table by the configured identity columns. Out-of-range
// counts are logged and the table is skipped.
func (a *app) group(nt models.NamedTable) (*reshape.Grouping, bool) {
	g, err := reshape.Group(nt.Table, a.cfg.IdentityColumns)
	if err != nil {
		a.skipGrouping(nt.Name, err)
		return nil, false
	}
	return g, true
}

func (a *app) skipGrouping(sheet string, err error) {
	var rangeErr *reshape.InvalidRangeError
	if errors.As(err, &rangeErr) {
		a.log.Warn("grouping skipped", "sheet", sheet, "identity_columns", rangeErr.Count, "columns", rangeErr.Columns)
		return
	}
	a.log.Warn("grouping skipped", "sheet", sheet, "error", err)
}

// tables returns the result tables of wb. With --merge-sheets, tables
// sharing a header are concatenated into the first of them.
func (a *app) tables(wb *models.Workbook) []models.NamedTable {
	all := wb.Tables()
	if !mergeSheets {
		return all
	}

	var out []models.NamedTable
	for _, nt := range all {
		merged := false
		for i := range out {
			t, err := reshape.Concat(out[i].Table, nt.Table)
			if err != nil {
				continue
			}
			out[i].Table = t
			merged = true
			a.log.Debug("sheets merged", "into", out[i].Name, "sheet", nt.Name)
			break
		}
		if !merged {
			out = append(out, nt)
		}
	}
	return out
}

func groupSheetName(sheet, key string) string {
	if key == "" {
		return sheet
	}
	return key
}
