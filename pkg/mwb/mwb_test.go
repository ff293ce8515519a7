package mwb

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

func baseInput(stream []Observation) Input {
	return Input{
		CustomerID:   "c1",
		ItemID:       "i1",
		Quantity:     decimal.NewFromInt(1),
		AsOf:         testAsOf,
		Observations: stream,
		Tier:         "STANDARD",
		Item:         ItemText{Name: "Widget"},
	}
}

func risingHistory() []Observation {
	return series(
		[]string{"100", "105", "110", "115", "120", "125"},
		[]int{150, 120, 90, 60, 30, 10},
	)
}

func TestCompute_CustomerItem(t *testing.T) {
	t.Parallel()

	res := Compute(baseInput(risingHistory()), DefaultParams())

	assert.Equal(t, domain.LevelCustomerItem, res.SourceLevel)
	assert.True(t, res.UnitPrice.IsPositive())
	assert.GreaterOrEqual(t, res.ConfidenceScore, 0.0)
	assert.LessOrEqual(t, res.ConfidenceScore, 1.0)
	assert.Contains(t, []ConfidenceLabel{ConfidenceLow, ConfidenceMedium, ConfidenceHigh}, res.Confidence)

	exp := res.Explanation
	require.NotNil(t, exp.Rounding)
	require.NotNil(t, exp.Model)
	require.NotNil(t, exp.Selected)
	assert.True(t, res.UnitPrice.Mod(exp.Rounding.Increment).IsZero(),
		"%s is not a multiple of %s", res.UnitPrice, exp.Rounding.Increment)
	assert.Equal(t, 6, exp.RawObservationCount)
	assert.False(t, exp.Blend.Applied)
	assert.Len(t, exp.Quantiles, len(DefaultParams().CandidateQuantiles))
	assert.NotEmpty(t, exp.Candidates)
	assert.True(t, exp.Trend.Applied)
}

func TestCompute_SparseFallsBack(t *testing.T) {
	t.Parallel()

	stream := append(
		[]Observation{obs("c1", "i1", "100", 5)},
		repeatObs("c2", "i1", "110", 5, 3)...,
	)

	res := Compute(baseInput(stream), DefaultParams())

	assert.Equal(t, domain.LevelGlobalItem, res.SourceLevel)
	assert.NotEqual(t, domain.LevelCustomerItem, res.SourceLevel)
	assertWarning(t, res.Explanation.Warnings, "sparse data at customer_item")
	assert.True(t, res.UnitPrice.IsPositive())
}

func TestCompute_NoObservations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		listPrice   string
		lastKnown   *decimal.Decimal
		want        string
		wantWarning string
	}{
		{name: "list price", listPrice: "250", want: "250", wantWarning: "using list price"},
		{name: "last recorded price", lastKnown: decPtr("80"), want: "80", wantWarning: "most recent recorded price"},
		{name: "nothing at all", want: "0", wantWarning: "no price recommended"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := baseInput(nil)
			if tt.listPrice != "" {
				in.ListPrice = dec(tt.listPrice)
			}
			in.LastKnownPrice = tt.lastKnown

			res := Compute(in, DefaultParams())

			assert.True(t, dec(tt.want).Equal(res.UnitPrice), "got %s", res.UnitPrice)
			assert.Equal(t, ConfidenceLow, res.Confidence)
			assert.InDelta(t, 0.0, res.ConfidenceScore, 0)
			assert.Equal(t, domain.LevelGlobalGlobal, res.SourceLevel)
			assertWarning(t, res.Explanation.Warnings, tt.wantWarning)
			assert.Nil(t, res.Explanation.Selected)
		})
	}
}

func TestCompute_CostFloor(t *testing.T) {
	t.Parallel()

	in := baseInput(series(
		[]string{"30", "31", "32", "33", "34"},
		[]int{50, 40, 30, 20, 10},
	))
	in.LandedCost = decPtr("40")

	res := Compute(in, DefaultParams())

	assert.True(t, res.UnitPrice.GreaterThanOrEqual(dec("42")), "got %s", res.UnitPrice)
	assert.True(t, dec("45").Equal(res.UnitPrice), "got %s", res.UnitPrice)
	assertWarning(t, res.Explanation.Warnings, "cost_floor raised price")
	assertWarning(t, res.Explanation.Warnings, "stay above cost floor")

	var floorFired bool
	for _, c := range res.Explanation.Guardrails {
		if c.Name == GuardrailCostFloor {
			floorFired = c.Fired
		}
	}
	assert.True(t, floorFired)
}

func TestCompute_BlendsMarket(t *testing.T) {
	t.Parallel()

	stream := append(
		series([]string{"100", "100", "100", "100", "100", "100"}, []int{10, 20, 30, 40, 50, 60}),
		repeatObs("c2", "i1", "120", 4, 5)...,
	)

	res := Compute(baseInput(stream), DefaultParams())

	exp := res.Explanation
	assert.Equal(t, domain.LevelCustomerItem, res.SourceLevel)
	assert.True(t, exp.Blend.Applied)
	assert.Equal(t, 6, exp.RawObservationCount)
	assert.Equal(t, 10, exp.BlendedObservationCount)
	assert.Equal(t, 4, exp.Blend.MarketObservations)
	assertWarning(t, exp.Warnings, "blended 4 market observations")
}

func TestCompute_CandidateSources(t *testing.T) {
	t.Parallel()

	in := baseInput(risingHistory())
	in.CurrentQuote = decPtr("118.37")
	in.ListPrice = dec("140")

	res := Compute(in, DefaultParams())

	sources := make(map[string]bool)
	for _, c := range res.Explanation.Candidates {
		sources[c.Source] = true
	}
	assert.True(t, sources[CandidateCurrentQuote])
	assert.True(t, sources[CandidateListPrice])
	assert.True(t, sources["p50"])
}

func TestCompute_SourceWarningsLead(t *testing.T) {
	t.Parallel()

	in := baseInput(risingHistory())
	in.Warnings = []string{"observation read truncated at 6 lines", ""}

	res := Compute(in, DefaultParams())

	require.NotEmpty(t, res.Explanation.Warnings)
	assert.Equal(t, "observation read truncated at 6 lines", res.Explanation.Warnings[0])
	assert.NotContains(t, res.Explanation.Warnings, "")

	empty := baseInput(nil)
	empty.Warnings = []string{"observation read truncated at 6 lines"}
	assert.Equal(t, "observation read truncated at 6 lines", Compute(empty, DefaultParams()).Explanation.Warnings[0])
}

func TestCompute_UnknownTier(t *testing.T) {
	t.Parallel()

	in := baseInput(risingHistory())
	in.Tier = "DIAMOND"

	res := Compute(in, DefaultParams())

	require.NotNil(t, res.Explanation.Model)
	assert.Equal(t, domain.TierStandard, res.Explanation.Model.Tier)
	assertWarning(t, res.Explanation.Warnings, `unknown customer tier "DIAMOND"`)
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	in := baseInput(append(risingHistory(), repeatObs("c2", "i1", "118", 3, 4)...))
	in.LandedCost = decPtr("60")
	in.ListPrice = dec("130")

	first, err := json.Marshal(Compute(in, DefaultParams()))
	require.NoError(t, err)
	for range 5 {
		again, err := json.Marshal(Compute(in, DefaultParams()))
		require.NoError(t, err)
		assert.JSONEq(t, string(first), string(again))
	}
}

func TestQuantileLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "p50", quantileLabel(0.50))
	assert.Equal(t, "p92", quantileLabel(0.92))
	assert.Equal(t, "p95", quantileLabel(0.95))
}
