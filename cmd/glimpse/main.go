// Package main provides the CLI entry point for glimpse-go.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/glimpse-go/internal/config"
	"github.com/ukaji3/glimpse-go/pkg/glimpse"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/output"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/session"
)

var (
	configPath   string
	logLevel     string
	outputPath   string
	pretty       bool
	mode         string
	rangeRef     string
	identityCols int
	mergeSheets  bool
)

// app is the state shared by subcommands after flags and config are
// resolved.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	views  *session.Registry
	stdout io.Writer
}

func main() {
	a := &app{}
	if err := a.execute(newRootCmd(a)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glimpse",
		Short: "Reshape, chart and color-scale GCAM query results",
		Long: `glimpse-go reads GCAM query results (xlsx or csv), splits them into
series groups, builds and transposes charts, and computes choropleth color
intervals. Results are written as JSON.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.StringVar(&mode, "mode", "", "Loading mode: light, standard, verbose")
	pf.StringVar(&rangeRef, "range", "", "Defined name or A1 range holding the table")
	pf.IntVar(&identityCols, "identity-columns", 0, "Number of leading qualifier columns")
	pf.BoolVar(&mergeSheets, "merge-sheets", false, "Concatenate tables with identical headers across sheets")

	rootCmd.AddCommand(
		newGroupsCmd(a),
		newChartsCmd(a),
		newTransposeCmd(a),
		newColorscaleCmd(a),
	)
	return rootCmd
}

// init loads the config and lets explicitly set flags override it.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("mode") {
		cfg.Mode = mode
	}
	if flags.Changed("identity-columns") {
		cfg.IdentityColumns = identityCols
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.stdout = cmd.OutOrStdout()
	a.log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	a.views = session.NewRegistry()
	return nil
}

// execute runs cmd and closes the views it registered, whether or not the
// command succeeded.
func (a *app) execute(cmd *cobra.Command) error {
	defer a.close()
	return cmd.Execute()
}

func (a *app) close() {
	if a.views == nil {
		return
	}
	for _, v := range a.views.CloseAll() {
		a.log.Debug("view closed", "id", v.ID, "name", v.Name, "kind", v.Kind)
	}
}

// load reads the input file and logs per-sheet warnings.
func (a *app) load(path string) (*models.Workbook, error) {
	opts := a.cfg.LoadOptions()
	opts.Range = rangeRef

	a.log.Info("loading", "path", path, "mode", opts.Mode)
	wb, warnings, err := glimpse.Load(path, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	for _, w := range warnings {
		var ee *glimpse.ExtractionError
		if errors.As(w, &ee) {
			a.log.Warn("sheet part skipped", "sheet", ee.SheetName, "component", ee.Component, "error", ee.Err)
			continue
		}
		a.log.Warn("sheet skipped", "error", w)
	}
	a.log.Info("loaded", "sheets", len(wb.SheetOrder), "tables", len(wb.Tables()), "charts", len(wb.Charts()))
	return wb, nil
}

// open registers an output file as a view.
func (a *app) open(name, kind string) {
	v, err := a.views.Open(name, kind)
	if err != nil {
		a.log.Warn("view not registered", "name", name, "error", err)
		return
	}
	a.log.Debug("view opened", "id", v.ID, "name", v.Name, "kind", v.Kind)
}

// emit writes v as JSON to --output or stdout.
func (a *app) emit(v any) error {
	if outputPath == "" {
		return output.WriteJSON(a.stdout, v, pretty)
	}
	data, err := output.ToJSON(v, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.open(outputPath, "json")
	return nil
}
