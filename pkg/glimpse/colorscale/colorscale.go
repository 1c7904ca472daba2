// Package colorscale computes the value interval that drives a choropleth
// palette.
package colorscale

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

// Scope selects how much data the interval covers.
type Scope int

const (
	// ScopeLocal uses the selected year and scenario only.
	ScopeLocal Scope = iota
	// ScopeAcrossYear uses every year of the selected scenario.
	ScopeAcrossYear
	// ScopeGlobal uses every year of every scenario.
	ScopeGlobal
)

func (s Scope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeAcrossYear:
		return "across-year"
	case ScopeGlobal:
		return "global"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// ParseScope parses local, across-year or global.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local", "":
		return ScopeLocal, nil
	case "across-year", "across_year", "acrossyear", "year":
		return ScopeAcrossYear, nil
	case "global":
		return ScopeGlobal, nil
	default:
		return 0, fmt.Errorf("unknown scope %q (must be local, across-year, or global)", s)
	}
}

// MarshalText encodes the scope by name.
func (s Scope) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a scope name.
func (s *Scope) UnmarshalText(b []byte) error {
	v, err := ParseScope(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Selection is one (scenario, year) view of the map.
type Selection struct {
	Scenario string `json:"scenario"`
	Year     string `json:"year"`
}

// Store holds region values per selection.
type Store map[Selection]map[string]float64

// Set records a value, adding to any value already stored for the region.
func (s Store) Set(sel Selection, region string, v float64) {
	m, ok := s[sel]
	if !ok {
		m = make(map[string]float64)
		s[sel] = m
	}
	m[region] += v
}

// EmptyDatasetError reports that the requested scope has no values.
type EmptyDatasetError struct {
	Selection Selection
	Scope     Scope
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no values for scenario %q year %q (scope %s)", e.Selection.Scenario, e.Selection.Year, e.Scope)
}

// Options tune interval post-processing.
type Options struct {
	// Symmetric centers a zero-straddling interval on zero.
	Symmetric bool
}

// Normalize computes the palette interval for sel under scope.
//
// A zero-width interval widens to [min, max+max(0.1, 0.1*|min|)]. With
// opts.Symmetric and min < 0 < max the result is [-m, m] where
// m = max(|min|, max). NaN values are ignored.
func Normalize(store Store, sel Selection, scope Scope, opts Options) (models.ColorInterval, error) {
	values := collect(store, sel, scope)
	if len(values) == 0 {
		return models.ColorInterval{}, &EmptyDatasetError{Selection: sel, Scope: scope}
	}
	return Interval(values, opts), nil
}

// Interval computes the palette interval of a non-empty value set.
func Interval(values []float64, opts Options) models.ColorInterval {
	lo, hi := floats.Min(values), floats.Max(values)

	if lo == hi {
		hi += math.Max(0.1, 0.1*math.Abs(lo))
	}
	if opts.Symmetric && lo < 0 && hi > 0 {
		m := math.Max(math.Abs(lo), hi)
		lo, hi = -m, m
	}
	return models.ColorInterval{Min: lo, Max: hi}
}

func collect(store Store, sel Selection, scope Scope) []float64 {
	var out []float64
	add := func(m map[string]float64) {
		for _, v := range m {
			if !math.IsNaN(v) {
				out = append(out, v)
			}
		}
	}

	switch scope {
	case ScopeLocal:
		add(store[sel])
	case ScopeAcrossYear:
		for k, m := range store {
			if k.Scenario == sel.Scenario {
				add(m)
			}
		}
	default:
		for _, m := range store {
			add(m)
		}
	}
	return out
}

// Years returns the distinct years in the store for scenario, sorted.
func (s Store) Years(scenario string) []string {
	seen := make(map[string]bool)
	var out []string
	for k := range s {
		if k.Scenario == scenario && !seen[k.Year] {
			seen[k.Year] = true
			out = append(out, k.Year)
		}
	}
	sortYears(out)
	return out
}

// Scenarios returns the distinct scenarios in the store, sorted.
func (s Store) Scenarios() []string {
	seen := make(map[string]bool)
	var out []string
	for k := range s {
		if !seen[k.Scenario] {
			seen[k.Scenario] = true
			out = append(out, k.Scenario)
		}
	}
	sortYears(out)
	return out
}
