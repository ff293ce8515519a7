package mwb

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// Input is everything one recommendation depends on.
type Input struct {
	CustomerID string
	ItemID     string
	Quantity   decimal.Decimal
	AsOf       time.Time

	// Observations is the full stream fetched for this call. Filtering by
	// window and fallback level happens here, not at the source.
	Observations []Observation

	Tier      string
	ListPrice decimal.Decimal
	Item      ItemText

	// LandedCost is nil when the item has no supplier cost link.
	LandedCost *decimal.Decimal
	// CurrentQuote is an optional externally supplied quoted price.
	CurrentQuote *decimal.Decimal
	// LastKnownPrice is the last-resort price used when there are no
	// observations and no list price.
	LastKnownPrice *decimal.Decimal

	// Warnings are notes about how Observations was read, such as a
	// truncated fetch. They lead the explanation's warnings.
	Warnings []string
}

// Result is a priced recommendation.
type Result struct {
	UnitPrice       decimal.Decimal    `json:"unit_price"`
	SourceLevel     domain.SourceLevel `json:"source_level"`
	Confidence      ConfidenceLabel    `json:"confidence"`
	ConfidenceScore float64            `json:"confidence_score"`
	Explanation     Explanation        `json:"explanation"`
}

// Compute runs the full recommendation pipeline. It never fails on sparse
// data; degraded inputs show up as warnings in the explanation.
func Compute(in Input, p Params) Result {
	window := Window{From: in.AsOf.AddDate(0, -p.LookbackMonths, 0), To: in.AsOf}

	sel := SelectObservations(in.Observations, in.CustomerID, in.ItemID, window, p.MinObservations)
	exp := newExplanation(sel, in.Warnings)

	tier, profile, note := LookupTier(in.Tier)
	exp.warn(note)

	conf := ScoreConfidence(
		sel.Observations, sel.Level, in.AsOf, p.FreshnessWindowDays, p.ConfidenceSaturation,
	)
	exp.Confidence = conf

	if len(sel.Observations) == 0 {
		return fallbackResult(in, exp)
	}

	blend := Blend(sel, in.Observations, in.ItemID, window, p.BlendThreshold, p.MarketWeightRatio)
	exp.BlendedObservationCount = len(blend.Observations)
	exp.Blend = BlendSummary{
		Applied:              blend.Applied,
		CustomerWeight:       blend.CustomerWeight,
		MarketWeight:         blend.MarketWeight,
		CustomerObservations: blend.CustomerCount,
		MarketObservations:   blend.MarketCount,
	}
	if blend.Applied {
		exp.warn(fmt.Sprintf(
			"blended %d market observations at weight %.4f with %d customer observations at weight %.4f",
			blend.MarketCount, blend.MarketWeight, blend.CustomerCount, blend.CustomerWeight,
		))
	}

	target := floatOf(in.Quantity)
	weights := EffectiveWeights(blend.Observations, blend.Multipliers, target, in.AsOf, p.HalfLifeDays)
	if sumWeights(weights) <= epsilon {
		exp.warn("observation weights sum to zero, percentiles use the positional median")
	}

	prices := make([]float64, len(blend.Observations))
	quantities := make([]float64, len(blend.Observations))
	for i := range blend.Observations {
		prices[i] = blend.Observations[i].price()
		quantities[i] = blend.Observations[i].qty()
	}
	quantile := func(q float64) float64 { return WeightedQuantile(prices, weights, q) }

	seeds := make([]CandidateSeed, 0, len(p.CandidateQuantiles)+3)
	for _, q := range p.CandidateQuantiles {
		v := moneyFromFloat(quantile(q))
		exp.Quantiles = append(exp.Quantiles, QuantilePoint{Quantile: q, Value: v})
		seeds = append(seeds, CandidateSeed{Price: v, Source: quantileLabel(q)})
	}
	if last, ok := lastCustomerPrice(in.Observations, in.CustomerID, in.ItemID, window); ok {
		seeds = append(seeds, CandidateSeed{Price: last, Source: CandidateLastCustomerPrice})
	}
	if in.ListPrice.IsPositive() {
		seeds = append(seeds, CandidateSeed{Price: in.ListPrice, Source: CandidateListPrice})
	}
	if in.CurrentQuote != nil && in.CurrentQuote.IsPositive() {
		seeds = append(seeds, CandidateSeed{Price: *in.CurrentQuote, Source: CandidateCurrentQuote})
	}

	trend := TrendAdjustment(blend.Observations, weights, p.TrendHorizonDays, p.TrendCapFraction)
	exp.Trend = trend

	discount := QuantityDiscount(target, quantities, profile.VolumeDiscountBeta, p.QuantityDiscountFloor)
	exp.QuantityDiscount = discount

	p50, p75, p90, p95 := quantile(0.50), quantile(0.75), quantile(0.90), quantile(0.95)
	model := NewAcceptanceModel(p50, p75, p90, trend.Adjustment, tier, profile, discount)
	exp.Model = &model

	rows := ScoreCandidates(BuildCandidates(seeds), model)
	exp.Candidates = RankCandidates(rows)

	selectedPrice := moneyFromFloat(p50)
	if best, ok := SelectCandidate(rows); ok {
		exp.Selected = &best
		selectedPrice = best.Price
	}

	var observed []decimal.Decimal
	for i := range blend.Observations {
		if blend.Observations[i].CustomerID == in.CustomerID {
			observed = append(observed, blend.Observations[i].UnitPrice)
		}
	}

	guard := ApplyGuardrails(GuardrailInput{
		Price:                 selectedPrice,
		LandedCost:            in.LandedCost,
		MinMarkup:             p.MinMarkup,
		P95:                   moneyFromFloat(p95),
		StatCeilingMultiplier: p.StatCeilingMultiplier,
		ListPrice:             in.ListPrice,
		ListCeilingMultiplier: p.ListCeilingMultiplier,
		ObservedPrices:        observed,
	})
	exp.Guardrails = guard.Checks
	exp.warn(guard.Warnings...)

	rounding, warnings := NewRounder(p.RoundingRules).Round(guard.Price, in.Item, guard.Floor, guard.HasFloor)
	exp.Rounding = &rounding
	exp.warn(warnings...)

	return Result{
		UnitPrice:       rounding.After,
		SourceLevel:     sel.Level,
		Confidence:      conf.Label,
		ConfidenceScore: conf.Score,
		Explanation:     *exp,
	}
}

// fallbackResult prices a call with no observations at any level.
func fallbackResult(in Input, exp *Explanation) Result {
	price := decimal.Zero
	switch {
	case in.ListPrice.IsPositive():
		price = Money(in.ListPrice)
		exp.warn("no observations at any fallback level, using list price")
	case in.LastKnownPrice != nil && in.LastKnownPrice.IsPositive():
		price = Money(*in.LastKnownPrice)
		exp.warn("no observations at any fallback level and no list price, using most recent recorded price")
	default:
		exp.warn("no observations, list price or recorded price available, no price recommended")
	}

	return Result{
		UnitPrice:       price,
		SourceLevel:     exp.SourceLevel,
		Confidence:      ConfidenceLow,
		ConfidenceScore: 0,
		Explanation:     *exp,
	}
}

// lastCustomerPrice returns the customer's most recent same-item price in
// the window.
func lastCustomerPrice(stream []Observation, customerID, itemID string, window Window) (decimal.Decimal, bool) {
	var (
		best  decimal.Decimal
		when  time.Time
		found bool
	)
	for i := range stream {
		o := &stream[i]
		if o.CustomerID != customerID || o.ItemID != itemID || !window.Contains(o.TransactionDate) {
			continue
		}
		if !found || o.TransactionDate.After(when) {
			best, when, found = o.UnitPrice, o.TransactionDate, true
		}
	}
	return best, found
}

func quantileLabel(q float64) string {
	return "p" + strconv.Itoa(int(math.Round(q*100)))
}
