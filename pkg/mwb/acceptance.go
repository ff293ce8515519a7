package mwb

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// Candidate sources besides the quantile labels.
const (
	CandidateLastCustomerPrice = "last_customer_price"
	CandidateListPrice         = "list_price"
	CandidateCurrentQuote      = "current_quote"
)

const minSpread = 0.01

// AcceptanceModel records the sigmoid parameters used to score candidates.
type AcceptanceModel struct {
	Tier                   domain.Tier `json:"tier"`
	BasePivot              float64     `json:"base_pivot"`
	Pivot                  float64     `json:"pivot"`
	BaseSpread             float64     `json:"base_spread"`
	Spread                 float64     `json:"spread"`
	PivotShift             float64     `json:"pivot_shift"`
	ScaleFactor            float64     `json:"scale_factor"`
	TrendAdjustment        float64     `json:"trend_adjustment"`
	QuantityDiscountFactor float64     `json:"quantity_discount_factor"`
	MedianQuantity         float64     `json:"median_quantity"`
}

// NewAcceptanceModel derives the pivot from P75 plus the trend nudge, then
// applies the tier shift; the spread is half the P50-P90 distance scaled by
// the tier. A flat distribution (zero spread) is floored at one cent.
func NewAcceptanceModel(
	p50, p75, p90, trend float64,
	tier domain.Tier,
	profile TierProfile,
	discount QuantityDiscountResult,
) AcceptanceModel {
	m := AcceptanceModel{
		Tier:                   tier,
		BasePivot:              p75,
		BaseSpread:             (p90 - p50) / 2,
		PivotShift:             profile.PivotShift,
		ScaleFactor:            profile.ScaleFactor,
		TrendAdjustment:        trend,
		QuantityDiscountFactor: discount.Factor,
		MedianQuantity:         discount.MedianQuantity,
	}
	m.Pivot, m.Spread = ApplyTier(p75+trend, m.BaseSpread, profile)
	if m.Spread <= 0 {
		m.Spread = minSpread
	}
	return m
}

// Acceptance is the modeled probability that the customer accepts price p.
func (m AcceptanceModel) Acceptance(p float64) float64 {
	return clamp01(1-Sigmoid((p-m.Pivot)/m.Spread)) * m.QuantityDiscountFactor
}

// Sigmoid is the logistic function.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// CandidateSeed is an unscored trial price.
type CandidateSeed struct {
	Price  decimal.Decimal
	Source string
}

// CandidateRow is a trial price with its modeled acceptance and revenue.
type CandidateRow struct {
	Price                 decimal.Decimal `json:"price"`
	Source                string          `json:"source"`
	AcceptanceProbability float64         `json:"acceptance_probability"`
	ExpectedRevenue       decimal.Decimal `json:"expected_revenue"`
}

// BuildCandidates quantizes seeds to cents, drops non-positive prices,
// collapses duplicates onto the first source seen and sorts by ascending
// price.
func BuildCandidates(seeds []CandidateSeed) []CandidateSeed {
	out := make([]CandidateSeed, 0, len(seeds))
	seen := make(map[string]struct{}, len(seeds))
	for _, s := range seeds {
		p := Money(s.Price)
		if !p.IsPositive() {
			continue
		}
		key := p.StringFixed(moneyPlaces)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, CandidateSeed{Price: p, Source: s.Source})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Price.LessThan(out[j].Price)
	})
	return out
}

// ScoreCandidates evaluates each seed under the acceptance model. The
// returned rows keep the seed order.
func ScoreCandidates(seeds []CandidateSeed, m AcceptanceModel) []CandidateRow {
	rows := make([]CandidateRow, 0, len(seeds))
	for _, s := range seeds {
		acc := m.Acceptance(floatOf(s.Price))
		rows = append(rows, CandidateRow{
			Price:                 s.Price,
			Source:                s.Source,
			AcceptanceProbability: acc,
			ExpectedRevenue:       s.Price.Mul(decimal.NewFromFloat(acc)).Round(revenuePlaces),
		})
	}
	return rows
}

// SelectCandidate returns the row with the highest expected revenue. Rows
// must be in ascending price order; a strict comparison keeps the lower
// price among equal revenues.
func SelectCandidate(rows []CandidateRow) (CandidateRow, bool) {
	if len(rows) == 0 {
		return CandidateRow{}, false
	}
	best := rows[0]
	for _, r := range rows[1:] {
		if r.ExpectedRevenue.GreaterThan(best.ExpectedRevenue) {
			best = r
		}
	}
	return best, true
}

// RankCandidates orders rows by expected revenue descending, then price
// ascending.
func RankCandidates(rows []CandidateRow) []CandidateRow {
	ranked := append([]CandidateRow(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if !ranked[i].ExpectedRevenue.Equal(ranked[j].ExpectedRevenue) {
			return ranked[i].ExpectedRevenue.GreaterThan(ranked[j].ExpectedRevenue)
		}
		return ranked[i].Price.LessThan(ranked[j].Price)
	})
	return ranked
}
