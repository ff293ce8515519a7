// Package mwb implements the Market-Weighted Bid price recommendation core.
//
// Everything in this package is a pure function of its inputs: callers fetch
// an observation stream once, hand it to Compute together with the item and
// customer master data, and get back a priced Result with a full Explanation.
// No package-level mutable state is kept between calls.
package mwb

// Params holds every tunable of the recommendation pipeline.
type Params struct {
	LookbackMonths    int
	MinObservations   int
	BlendThreshold    int
	MarketWeightRatio float64
	HalfLifeDays      float64

	TrendHorizonDays float64
	TrendCapFraction float64

	QuantityDiscountFloor float64

	MinMarkup             float64
	StatCeilingMultiplier float64
	ListCeilingMultiplier float64

	FreshnessWindowDays  int
	ConfidenceSaturation int
	CandidateQuantiles   []float64
	RoundingRules        []RoundingRule
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		LookbackMonths:    24,
		MinObservations:   5,
		BlendThreshold:    15,
		MarketWeightRatio: 0.5,
		HalfLifeDays:      180,

		TrendHorizonDays: 30,
		TrendCapFraction: 0.10,

		QuantityDiscountFloor: 0.75,

		MinMarkup:             1.05,
		StatCeilingMultiplier: 1.10,
		ListCeilingMultiplier: 1.20,

		FreshnessWindowDays:  90,
		ConfidenceSaturation: 20,
		CandidateQuantiles:   []float64{0.50, 0.60, 0.70, 0.75, 0.80, 0.85, 0.90, 0.92, 0.95},
		RoundingRules:        DefaultRoundingRules(),
	}
}
