package mwb

import (
	"math"
	"sort"
)

// WeightedQuantile returns the smallest value whose cumulative weight, over
// values sorted ascending, reaches q times the total weight.
//
// Ties in value keep their input order. q <= 0 yields the minimum and q >= 1
// the maximum. Empty input yields 0, and a near-zero total weight yields the
// middle element of the sorted values. Negative or missing weights count as 0.
func WeightedQuantile(values, weights []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	if q <= 0 {
		return values[order[0]]
	}
	if q >= 1 {
		return values[order[n-1]]
	}

	var total float64
	for i := range values {
		total += weightAt(weights, i)
	}
	if total <= epsilon {
		return values[order[n/2]]
	}

	target := q * total
	var cum float64
	for _, i := range order {
		cum += weightAt(weights, i)
		if cum+epsilon >= target {
			return values[i]
		}
	}
	return values[order[n-1]]
}

func weightAt(weights []float64, i int) float64 {
	if i >= len(weights) {
		return 0
	}
	w := weights[i]
	if math.IsNaN(w) || w < 0 {
		return 0
	}
	return w
}

func sumWeights(weights []float64) float64 {
	var total float64
	for i := range weights {
		total += weightAt(weights, i)
	}
	return total
}
