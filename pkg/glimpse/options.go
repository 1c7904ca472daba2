// Package glimpse loads GCAM query results and the charts embedded next to
// them for reshaping, transposing and color scaling.
package glimpse

// Mode represents the loading mode.
type Mode string

const (
	// ModeLight loads tables only.
	ModeLight Mode = "light"
	// ModeStandard loads tables and embedded charts with resolved values.
	ModeStandard Mode = "standard"
	// ModeVerbose additionally records embedded chart dimensions.
	ModeVerbose Mode = "verbose"
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLight, ModeStandard, ModeVerbose:
		return Mode(s), true
	}
	return "", false
}

// Options configures loading behavior.
type Options struct {
	// Mode specifies the loading mode (light, standard, verbose).
	Mode Mode
	// Range restricts table extraction to a defined name or a
	// sheet-qualified A1 range. Empty means detect per sheet.
	Range string
	// IncludeChartSize specifies whether to keep chart dimensions.
	// If nil, defaults to true for verbose mode, false otherwise.
	IncludeChartSize *bool
}

// DefaultOptions returns default loading options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

// ShouldIncludeChartSize returns whether to keep chart dimensions.
func (o Options) ShouldIncludeChartSize() bool {
	if o.IncludeChartSize != nil {
		return *o.IncludeChartSize
	}
	return o.Mode == ModeVerbose
}

// ShouldLoadCharts returns whether embedded charts are read.
func (o Options) ShouldLoadCharts() bool {
	return o.Mode != ModeLight
}
