package colorscale

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/glimpse-go/pkg/glimpse/models"
)

func TestIntervalSymmetric(t *testing.T) {
	got := Interval([]float64{-3, 2, 10}, Options{Symmetric: true})
	assert.Equal(t, models.ColorInterval{Min: -10, Max: 10}, got)

	got = Interval([]float64{-12, 2, 10}, Options{Symmetric: true})
	assert.Equal(t, models.ColorInterval{Min: -12, Max: 12}, got)
}

func TestIntervalSymmetricNeedsStraddle(t *testing.T) {
	got := Interval([]float64{1, 10}, Options{Symmetric: true})
	assert.Equal(t, models.ColorInterval{Min: 1, Max: 10}, got)

	got = Interval([]float64{-3, 10}, Options{})
	assert.Equal(t, models.ColorInterval{Min: -3, Max: 10}, got)
}

func TestIntervalDegenerate(t *testing.T) {
	tests := []struct {
		value float64
		want  models.ColorInterval
	}{
		{5.0, models.ColorInterval{Min: 5.0, Max: 5.5}},
		{0, models.ColorInterval{Min: 0, Max: 0.1}},
		{0.2, models.ColorInterval{Min: 0.2, Max: 0.30000000000000004}},
		{-20, models.ColorInterval{Min: -20, Max: -18}},
	}

	for _, tt := range tests {
		got := Interval([]float64{tt.value}, Options{})
		assert.InDelta(t, tt.want.Min, got.Min, 1e-12, "value %v", tt.value)
		assert.InDelta(t, tt.want.Max, got.Max, 1e-12, "value %v", tt.value)
	}
}

func TestNormalizeScopes(t *testing.T) {
	store := Store{}
	store.Set(Selection{"Ref", "2020"}, "USA", 1)
	store.Set(Selection{"Ref", "2020"}, "EU", 4)
	store.Set(Selection{"Ref", "2050"}, "USA", 9)
	store.Set(Selection{"Policy", "2020"}, "USA", -2)

	sel := Selection{"Ref", "2020"}

	local, err := Normalize(store, sel, ScopeLocal, Options{})
	require.NoError(t, err)
	assert.Equal(t, models.ColorInterval{Min: 1, Max: 4}, local)

	across, err := Normalize(store, sel, ScopeAcrossYear, Options{})
	require.NoError(t, err)
	assert.Equal(t, models.ColorInterval{Min: 1, Max: 9}, across)

	global, err := Normalize(store, sel, ScopeGlobal, Options{})
	require.NoError(t, err)
	assert.Equal(t, models.ColorInterval{Min: -2, Max: 9}, global)

	symmetric, err := Normalize(store, sel, ScopeGlobal, Options{Symmetric: true})
	require.NoError(t, err)
	assert.Equal(t, models.ColorInterval{Min: -9, Max: 9}, symmetric)
}

func TestNormalizeEmpty(t *testing.T) {
	store := Store{}
	store.Set(Selection{"Ref", "2020"}, "USA", math.NaN())

	for _, scope := range []Scope{ScopeLocal, ScopeAcrossYear, ScopeGlobal} {
		_, err := Normalize(store, Selection{"Ref", "2020"}, scope, Options{})
		var empty *EmptyDatasetError
		assert.True(t, errors.As(err, &empty), scope.String())
	}

	_, err := Normalize(store, Selection{"Other", "2020"}, ScopeLocal, Options{})
	assert.Error(t, err)
}

// The global interval covers every non-degenerate local interval.
func TestGlobalContainsLocal(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 100; trial++ {
		store := Store{}
		for s := 0; s < 3; s++ {
			for y := 0; y < 4; y++ {
				sel := Selection{Scenario: "s" + strconv.Itoa(s), Year: strconv.Itoa(2020 + 10*y)}
				store.Set(sel, "a", rng.NormFloat64()*10)
				store.Set(sel, "b", rng.NormFloat64()*10+1)
			}
		}

		for _, symmetric := range []bool{false, true} {
			opts := Options{Symmetric: symmetric}
			sel := Selection{Scenario: "s1", Year: "2040"}
			local, err := Normalize(store, sel, ScopeLocal, opts)
			require.NoError(t, err)
			across, err := Normalize(store, sel, ScopeAcrossYear, opts)
			require.NoError(t, err)
			global, err := Normalize(store, sel, ScopeGlobal, opts)
			require.NoError(t, err)

			assert.True(t, across.Contains(local))
			assert.True(t, global.Contains(across))
			assert.LessOrEqual(t, global.Min, global.Max)
		}
	}
}

func TestParseScope(t *testing.T) {
	for input, want := range map[string]Scope{
		"local":       ScopeLocal,
		"":            ScopeLocal,
		"Across-Year": ScopeAcrossYear,
		"global":      ScopeGlobal,
	} {
		got, err := ParseScope(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseScope("planet")
	assert.Error(t, err)

	var s Scope
	require.NoError(t, s.UnmarshalText([]byte("global")))
	assert.Equal(t, ScopeGlobal, s)
}

func TestFromTable(t *testing.T) {
	table := models.Table{
		Columns: []string{"scenario", "region", "sector", "2020", "2050", "Units"},
		Rows: [][]string{
			{"Ref", "USA", "building", "1", "2", "EJ"},
			{"Ref", "USA", "transport", "3", "", "EJ"},
			{"Ref", "EU", "building", "5", "6", "EJ"},
			{"Policy", "EU", "building", "7", "n/a", "EJ"},
		},
	}

	store, err := FromTableColumns(table, "scenario", "region")
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{"USA": 4, "EU": 5}, store[Selection{"Ref", "2020"}])
	assert.Equal(t, map[string]float64{"USA": 2, "EU": 6}, store[Selection{"Ref", "2050"}])
	assert.NotContains(t, store, Selection{"Policy", "2050"})
	assert.Equal(t, []string{"2020", "2050"}, store.Years("Ref"))
	assert.Equal(t, []string{"Policy", "Ref"}, store.Scenarios())

	_, err = FromTableColumns(table, "scenario", "country")
	assert.Error(t, err)
	_, err = FromTable(table, 0, 9)
	assert.Error(t, err)
}
