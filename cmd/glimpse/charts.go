package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/plot/vg"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/charts"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/output"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/render"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/transpose"
)

// chartOutputs are the presentation edits and optional file outputs
// shared by charts and transpose.
type chartOutputs struct {
	convert    string
	hideLegend bool
	pngDir     string
	grid       string
	xlsxOut    string
}

func (o *chartOutputs) register(fs *pflag.FlagSet) {
	fs.StringVar(&o.convert, "convert", "", "Convert the resulting charts to this kind: category, xy")
	fs.BoolVar(&o.hideLegend, "hide-legend", false, "Hide chart legends")
	fs.StringVar(&o.pngDir, "png-dir", "", "Render each chart to a PNG in this directory")
	fs.StringVar(&o.grid, "grid", "", "Render all charts as one thumbnail grid PNG")
	fs.StringVar(&o.xlsxOut, "xlsx-out", "", "Write each chart's data to a sheet of this workbook")
}

// edit applies the requested presentation edits. A chart that cannot be
// edited is kept unchanged.
func (a *app) edit(specs []models.ChartSpec, outs chartOutputs) ([]models.ChartSpec, error) {
	var edits []models.Edit
	if outs.convert != "" {
		kind, err := models.ParseChartKind(outs.convert)
		if err != nil {
			return nil, err
		}
		edits = append(edits, models.ConvertKind(kind))
	}
	if outs.hideLegend {
		edits = append(edits, models.ShowLegend(false))
	}
	if len(edits) == 0 {
		return specs, nil
	}

	out := make([]models.ChartSpec, len(specs))
	for i, spec := range specs {
		edited, err := models.Apply(spec, edits...)
		if err != nil {
			a.log.Warn("chart edit skipped", "chart", spec.Name, "error", err)
		}
		out[i] = edited
	}
	return out, nil
}

func newChartsCmd(a *app) *cobra.Command {
	var (
		kind         string
		legendColumn string
		transposed   bool
		outs         chartOutputs
	)

	cmd := &cobra.Command{
		Use:   "charts [input]",
		Short: "Build one chart per qualifier key of each result table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("kind") {
				a.cfg.ChartKind = kind
			}
			if cmd.Flags().Changed("legend-column") {
				a.cfg.LegendColumn = legendColumn
			}

			wb, err := a.load(args[0])
			if err != nil {
				return err
			}
			specs, err := a.build(wb)
			if err != nil {
				return err
			}
			if transposed {
				if out, ok := a.transpose(specs); ok {
					specs = out
				}
			}
			if specs, err = a.edit(specs, outs); err != nil {
				return err
			}
			if err := a.writeCharts(specs, outs); err != nil {
				return err
			}
			return a.emit(specs)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Chart kind: category, xy, box")
	cmd.Flags().StringVar(&legendColumn, "legend-column", "", "Column labelling each series")
	cmd.Flags().BoolVar(&transposed, "transpose", false, "Transpose the built charts")
	outs.register(cmd.Flags())
	return cmd
}

// build groups every table and builds its charts.
func (a *app) build(wb *models.Workbook) ([]models.ChartSpec, error) {
	kind, err := models.ParseChartKind(a.cfg.ChartKind)
	if err != nil {
		return nil, err
	}
	opts := charts.BuildOptions{Kind: kind, LegendColumn: a.cfg.LegendColumn}

	var out []models.ChartSpec
	for _, nt := range a.tables(wb) {
		g, ok := a.group(nt)
		if !ok {
			continue
		}
		specs, err := charts.Build(g, opts)
		if err != nil {
			a.log.Warn("charts skipped", "sheet", nt.Name, "error", err)
			continue
		}
		out = append(out, specs...)
	}
	a.log.Info("charts built", "charts", len(out), "kind", kind)
	return out, nil
}

// transpose swaps series and charts. An unsupported set is logged and
// reported as not ok.
func (a *app) transpose(specs []models.ChartSpec) ([]models.ChartSpec, bool) {
	out, err := transpose.Transpose(transpose.Charts(specs))
	if err != nil {
		var unsupported *transpose.UnsupportedTransposeError
		if errors.As(err, &unsupported) {
			a.log.Warn("transpose skipped", "reason", unsupported.Reason)
		} else {
			a.log.Warn("transpose skipped", "error", err)
		}
		return nil, false
	}
	a.log.Info("transposed", "charts", len(specs), "series", len(out))
	return out, true
}

func (a *app) writeCharts(specs []models.ChartSpec, outs chartOutputs) error {
	w, h := vg.Length(a.cfg.Render.Width), vg.Length(a.cfg.Render.Height)

	if outs.pngDir != "" {
		if err := os.MkdirAll(outs.pngDir, 0755); err != nil {
			return err
		}
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, spec := range specs {
			spec := spec
			path := filepath.Join(outs.pngDir, pngName(i, spec))
			g.Go(func() error {
				if err := render.SavePNG(spec, path, w, h); err != nil {
					return fmt.Errorf("render %s: %w", spec.Name, err)
				}
				a.open(path, "png")
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	if outs.grid != "" && len(specs) > 0 {
		rows, cols := charts.GridLayout(len(specs))
		if err := render.SaveGrid(specs, outs.grid, w*vg.Length(cols), h*vg.Length(rows)); err != nil {
			return fmt.Errorf("render grid: %w", err)
		}
		a.open(outs.grid, "png")
	}

	if outs.xlsxOut != "" {
		if err := output.WriteCharts(outs.xlsxOut, specs); err != nil {
			return fmt.Errorf("write %s: %w", outs.xlsxOut, err)
		}
		a.open(outs.xlsxOut, "xlsx")
	}
	return nil
}

// pngName numbers files so charts with the same title do not collide.
func pngName(i int, spec models.ChartSpec) string {
	return strconv.Itoa(i+1) + "_" + output.SanitizeSheetName(spec.Meta()) + ".png"
}
