package mwb

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

var noDiscount = QuantityDiscountResult{Factor: 1}

func TestNewAcceptanceModel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		p50        float64
		p75        float64
		p90        float64
		trend      float64
		tier       domain.Tier
		wantPivot  float64
		wantSpread float64
	}{
		{name: "standard", p50: 100, p75: 110, p90: 130, tier: domain.TierStandard, wantPivot: 110, wantSpread: 15},
		{name: "gold", p50: 100, p75: 110, p90: 130, tier: domain.TierGold, wantPivot: 113.3, wantSpread: 17.25},
		{name: "trend nudges pivot", p50: 100, p75: 110, p90: 130, trend: 5, tier: domain.TierStandard, wantPivot: 115, wantSpread: 15},
		{name: "flat distribution floors spread at a cent", p50: 100, p75: 100, p90: 100, tier: domain.TierStandard, wantPivot: 100, wantSpread: 0.01},
		{name: "tight distribution keeps its spread", p50: 100, p75: 100.5, p90: 101, tier: domain.TierStandard, wantPivot: 100.5, wantSpread: 0.5},
		{name: "tight spread scaled by tier", p50: 100, p75: 100.5, p90: 101, tier: domain.TierPlatinum, wantPivot: 105.525, wantSpread: 0.6},
		{name: "tiny prices floor at a cent", p50: 0.5, p75: 0.5, p90: 0.5, tier: domain.TierStandard, wantPivot: 0.5, wantSpread: 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewAcceptanceModel(tt.p50, tt.p75, tt.p90, tt.trend, tt.tier, TierProfileFor(tt.tier), noDiscount)
			assert.InDelta(t, tt.wantPivot, m.Pivot, 1e-9)
			assert.InDelta(t, tt.wantSpread, m.Spread, 1e-9)
			assert.Equal(t, tt.tier, m.Tier)
			assert.InDelta(t, 0.5, m.Acceptance(m.Pivot), 1e-12)
		})
	}
}

func TestAcceptance(t *testing.T) {
	t.Parallel()

	m := NewAcceptanceModel(100, 110, 130, 0, domain.TierStandard, TierProfileFor(domain.TierStandard), noDiscount)

	prev := m.Acceptance(1)
	for p := 5.0; p < 400; p += 5 {
		got := m.Acceptance(p)
		assert.LessOrEqual(t, got, prev, "acceptance rose at %.2f", p)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
		prev = got
	}

	discounted := m
	discounted.QuantityDiscountFactor = 0.8
	assert.InDelta(t, 0.4, discounted.Acceptance(m.Pivot), 1e-12)
}

func TestSigmoid(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.5, Sigmoid(0), 1e-12)
	assert.InDelta(t, 1.0, Sigmoid(50), 1e-12)
	assert.InDelta(t, 0.0, Sigmoid(-50), 1e-12)
}

func TestBuildCandidates(t *testing.T) {
	t.Parallel()

	got := BuildCandidates([]CandidateSeed{
		{Price: dec("120.004"), Source: "p50"},
		{Price: dec("100"), Source: CandidateListPrice},
		{Price: dec("120"), Source: CandidateCurrentQuote},
		{Price: dec("-5"), Source: "p60"},
		{Price: decimal.Zero, Source: "p70"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, CandidateListPrice, got[0].Source)
	assert.True(t, dec("100").Equal(got[0].Price))
	assert.Equal(t, "p50", got[1].Source)
	assert.True(t, dec("120").Equal(got[1].Price))
}

func TestSelectCandidate(t *testing.T) {
	t.Parallel()

	row := func(price, revenue string) CandidateRow {
		return CandidateRow{Price: dec(price), ExpectedRevenue: dec(revenue)}
	}

	tests := []struct {
		name   string
		rows   []CandidateRow
		want   string
		wantOK bool
	}{
		{name: "empty", rows: nil},
		{name: "tie keeps lower price", rows: []CandidateRow{row("50", "10"), row("100", "10")}, want: "50", wantOK: true},
		{name: "higher revenue wins", rows: []CandidateRow{row("50", "10"), row("100", "12")}, want: "100", wantOK: true},
		{name: "peak in the middle", rows: []CandidateRow{row("50", "10"), row("70", "30"), row("90", "20")}, want: "70", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := SelectCandidate(tt.rows)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.True(t, dec(tt.want).Equal(got.Price), got.Price.String())
			}
		})
	}
}

func TestRankCandidates(t *testing.T) {
	t.Parallel()

	rows := []CandidateRow{
		{Price: dec("50"), ExpectedRevenue: dec("10")},
		{Price: dec("100"), ExpectedRevenue: dec("12")},
		{Price: dec("80"), ExpectedRevenue: dec("10")},
	}

	ranked := RankCandidates(rows)
	require.Len(t, ranked, 3)
	assert.True(t, dec("100").Equal(ranked[0].Price))
	assert.True(t, dec("50").Equal(ranked[1].Price))
	assert.True(t, dec("80").Equal(ranked[2].Price))

	// Input order is untouched.
	assert.True(t, dec("50").Equal(rows[0].Price))
}

func TestScoreCandidates(t *testing.T) {
	t.Parallel()

	m := NewAcceptanceModel(100, 110, 130, 0, domain.TierStandard, TierProfileFor(domain.TierStandard), noDiscount)
	rows := ScoreCandidates([]CandidateSeed{{Price: dec("110"), Source: "p75"}}, m)

	require.Len(t, rows, 1)
	assert.InDelta(t, 0.5, rows[0].AcceptanceProbability, 1e-12)
	assert.True(t, dec("55").Equal(rows[0].ExpectedRevenue), rows[0].ExpectedRevenue.String())
}
