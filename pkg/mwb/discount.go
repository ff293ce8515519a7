package mwb

import (
	"math"
	"sort"
)

// QuantityDiscountResult is the volume discount applied to acceptance.
type QuantityDiscountResult struct {
	Factor         float64 `json:"factor"`
	MedianQuantity float64 `json:"median_quantity"`
	Applied        bool    `json:"applied"`
}

// QuantityDiscount computes 1 - beta × ln(target/median) for targets above
// the median historical quantity, clamped to [floor, 1].
func QuantityDiscount(target float64, quantities []float64, beta, floor float64) QuantityDiscountResult {
	med := median(quantities)
	res := QuantityDiscountResult{Factor: 1, MedianQuantity: med}
	if med <= 0 || target <= med {
		return res
	}

	f := 1 - beta*math.Log(target/med)
	res.Factor = math.Min(1, math.Max(floor, f))
	res.Applied = res.Factor < 1
	return res
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 0 {
		return (s[mid-1] + s[mid]) / 2
	}
	return s[mid]
}
