package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

func newTransposeCmd(a *app) *cobra.Command {
	var (
		fromTables bool
		outs       chartOutputs
	)

	cmd := &cobra.Command{
		Use:   "transpose [input]",
		Short: "Turn the series of a set of charts into charts of their own",
		Long: `transpose reads the charts embedded in the input workbook (or, with
--from-tables or when none are embedded, builds them from the result
tables) and emits one chart per distinct series name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			wb, err := a.load(args[0])
			if err != nil {
				return err
			}

			specs := wb.Charts()
			if fromTables || len(specs) == 0 {
				if specs, err = a.build(wb); err != nil {
					return err
				}
			}

			out, ok := a.transpose(specs)
			if !ok {
				out = []models.ChartSpec{}
			}
			if out, err = a.edit(out, outs); err != nil {
				return err
			}
			if err := a.writeCharts(out, outs); err != nil {
				return err
			}
			return a.emit(out)
		},
	}

	cmd.Flags().BoolVar(&fromTables, "from-tables", false, "Build charts from the result tables instead of reading embedded charts")
	outs.register(cmd.Flags())
	return cmd
}
