package mwb

import (
	"math"
	"time"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// BlendResult is the pricing observation set after market blending.
type BlendResult struct {
	Observations   []Observation
	Multipliers    []float64
	Applied        bool
	CustomerWeight float64
	MarketWeight   float64
	CustomerCount  int
	MarketCount    int
}

// Blend augments a sparse customer_item selection with cross-customer
// observations for the same item. Market rows matching a customer row on
// (date, price) are dropped; market rows are never deduplicated among
// themselves. Customer observations carry
// min(1, n/threshold); market observations carry (1 - that) × marketRatio.
// Any other level, or a selection at or above the threshold, passes through
// with unit multipliers.
func Blend(
	sel Selection,
	stream []Observation,
	itemID string,
	window Window,
	threshold int,
	marketRatio float64,
) BlendResult {
	n := len(sel.Observations)
	res := BlendResult{
		Observations:   sel.Observations,
		Multipliers:    ones(n),
		CustomerWeight: 1,
		CustomerCount:  n,
	}

	if sel.Level != domain.LevelCustomerItem || threshold <= 0 || n >= threshold {
		return res
	}

	seen := make(map[string]struct{}, n)
	for i := range sel.Observations {
		seen[dedupKey(&sel.Observations[i])] = struct{}{}
	}

	var market []Observation
	for i := range stream {
		o := stream[i]
		if o.ItemID != itemID || !window.Contains(o.TransactionDate) {
			continue
		}
		if _, dup := seen[dedupKey(&o)]; dup {
			continue
		}
		o.Source = SourceMarket
		market = append(market, o)
	}

	if len(market) == 0 {
		return res
	}

	customerWeight := math.Min(1, float64(n)/float64(threshold))
	marketWeight := (1 - customerWeight) * marketRatio

	combined := make([]Observation, 0, n+len(market))
	combined = append(combined, sel.Observations...)
	combined = append(combined, market...)

	multipliers := make([]float64, 0, len(combined))
	for range sel.Observations {
		multipliers = append(multipliers, customerWeight)
	}
	for range market {
		multipliers = append(multipliers, marketWeight)
	}

	return BlendResult{
		Observations:   combined,
		Multipliers:    multipliers,
		Applied:        true,
		CustomerWeight: customerWeight,
		MarketWeight:   marketWeight,
		CustomerCount:  n,
		MarketCount:    len(market),
	}
}

func dedupKey(o *Observation) string {
	return o.TransactionDate.UTC().Format(time.RFC3339Nano) + "|" + o.UnitPrice.String()
}

func ones(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}
	return s
}
