package mwb

import (
	"math"
	"time"
)

// RecencyWeight decays exponentially with age: exp(-age/halfLife).
// A non-positive half-life disables decay.
func RecencyWeight(ageDays, halfLifeDays float64) float64 {
	if halfLifeDays <= 0 {
		return 1
	}
	return math.Exp(-math.Max(0, ageDays) / halfLifeDays)
}

// QuantityWeight favours observations whose quantity is close to the target.
func QuantityWeight(qty, target float64) float64 {
	return 1 / (1 + math.Abs(qty-target)/math.Max(1, target))
}

// EffectiveWeights returns recency × quantity-distance × blend multiplier for
// each observation. A nil multipliers slice means no blending took place.
func EffectiveWeights(
	obs []Observation,
	multipliers []float64,
	target float64,
	asOf time.Time,
	halfLifeDays float64,
) []float64 {
	weights := make([]float64, len(obs))
	for i := range obs {
		m := 1.0
		if multipliers != nil {
			m = weightAt(multipliers, i)
		}
		w := RecencyWeight(ageDays(asOf, obs[i].TransactionDate), halfLifeDays) *
			QuantityWeight(obs[i].qty(), target) *
			m
		weights[i] = math.Max(0, w)
	}
	return weights
}
