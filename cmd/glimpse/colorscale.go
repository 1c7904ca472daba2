package main

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/colorscale"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
	"github.com/ukaji3/glimpse-go/pkg/glimpse/palette"
)

// regionColor is one painted region of a map view.
type regionColor struct {
	Region string  `json:"region"`
	Value  float64 `json:"value"`
	Class  int     `json:"class"`
	Color  string  `json:"color"`
}

// mapView is the JSON form of one colored map.
type mapView struct {
	Sheet     string               `json:"sheet"`
	Selection colorscale.Selection `json:"selection"`
	Scope     colorscale.Scope     `json:"scope"`
	Interval  models.ColorInterval `json:"interval"`
	Palette   models.PaletteID     `json:"palette"`
	Breaks    []float64            `json:"breaks"`
	Colors    []string             `json:"colors"`
	Regions   []regionColor        `json:"regions"`
}

func newColorscaleCmd(a *app) *cobra.Command {
	var (
		scenarioCol string
		regionCol   string
		scenario    string
		year        string
		scope       string
		symmetric   bool
		paletteName string
		classes     int
		reversed    bool
	)

	cmd := &cobra.Command{
		Use:   "colorscale [input]",
		Short: "Compute the choropleth color interval of a scenario and year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("scope") {
				s, err := colorscale.ParseScope(scope)
				if err != nil {
					return err
				}
				a.cfg.Scope = s
			}
			if flags.Changed("symmetric") {
				a.cfg.Symmetric = symmetric
			}
			if flags.Changed("palette") {
				a.cfg.Palette.Name = paletteName
			}
			if flags.Changed("classes") {
				a.cfg.Palette.Classes = classes
			}
			if flags.Changed("reversed") {
				a.cfg.Palette.Reversed = reversed
			}

			wb, err := a.load(args[0])
			if err != nil {
				return err
			}

			views := []mapView{}
			for _, nt := range a.tables(wb) {
				store, err := colorscale.FromTableColumns(nt.Table, scenarioCol, regionCol)
				if err != nil {
					a.log.Warn("color scale skipped", "sheet", nt.Name, "error", err)
					continue
				}
				view, err := a.paint(store, scenario, year)
				if err != nil {
					var empty *colorscale.EmptyDatasetError
					if errors.As(err, &empty) {
						a.log.Warn("color scale skipped", "sheet", nt.Name, "reason", err.Error())
						continue
					}
					return fmt.Errorf("sheet %s: %w", nt.Name, err)
				}
				view.Sheet = nt.Name
				views = append(views, view)
			}
			a.log.Info("color scales computed", "maps", len(views), "scope", a.cfg.Scope)
			return a.emit(views)
		},
	}

	f := cmd.Flags()
	f.StringVar(&scenarioCol, "scenario-col", "scenario", "Scenario column name")
	f.StringVar(&regionCol, "region-col", "region", "Region column name")
	f.StringVar(&scenario, "scenario", "", "Scenario to show (default: first)")
	f.StringVar(&year, "year", "", "Year to show (default: first)")
	f.StringVar(&scope, "scope", "", "Interval scope: local, across-year, global")
	f.BoolVar(&symmetric, "symmetric", false, "Center zero-straddling intervals on zero")
	f.StringVar(&paletteName, "palette", "", "ColorBrewer palette name")
	f.IntVar(&classes, "classes", 0, "Number of palette classes")
	f.BoolVar(&reversed, "reversed", false, "Reverse the palette")
	return cmd
}

// paint normalizes the selection and colors each of its regions.
func (a *app) paint(store colorscale.Store, scenario, year string) (mapView, error) {
	if scenario == "" {
		if all := store.Scenarios(); len(all) > 0 {
			scenario = all[0]
		}
	}
	if year == "" {
		if years := store.Years(scenario); len(years) > 0 {
			year = years[0]
		}
	}
	sel := colorscale.Selection{Scenario: scenario, Year: year}

	interval, err := colorscale.Normalize(store, sel, a.cfg.Scope, colorscale.Options{Symmetric: a.cfg.Symmetric})
	if err != nil {
		return mapView{}, err
	}
	p, err := palette.New(a.cfg.Palette, interval)
	if err != nil {
		return mapView{}, err
	}

	view := mapView{
		Selection: sel,
		Scope:     a.cfg.Scope,
		Interval:  interval,
		Palette:   p.ID(),
		Breaks:    p.Breaks(),
	}
	for _, c := range p.Colors() {
		view.Colors = append(view.Colors, palette.Hex(c))
	}

	regions := make([]string, 0, len(store[sel]))
	for r, v := range store[sel] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		regions = append(regions, r)
	}
	sort.Strings(regions)
	for _, r := range regions {
		v := store[sel][r]
		view.Regions = append(view.Regions, regionColor{Region: r, Value: v, Class: p.Class(v), Color: p.Hex(v)})
	}
	return view, nil
}
