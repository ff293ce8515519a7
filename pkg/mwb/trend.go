package mwb

import "math"

const minTrendObservations = 3

// Trend is the outcome of the weighted price-over-time regression.
type Trend struct {
	Slope      float64 `json:"slope_per_day"`
	Raw        float64 `json:"raw"`
	Cap        float64 `json:"cap"`
	Adjustment float64 `json:"adjustment"`
	Applied    bool    `json:"applied"`
}

// TrendAdjustment fits price against days since the oldest observation with
// weighted least squares. Only a rising trend produces an adjustment: the
// slope projected horizonDays forward, capped at capFraction of the weighted
// mean price. Fewer than three observations, zero variance in time or a
// near-zero total weight give no adjustment.
func TrendAdjustment(obs []Observation, weights []float64, horizonDays, capFraction float64) Trend {
	if len(obs) < minTrendObservations {
		return Trend{}
	}

	oldest := obs[0].TransactionDate
	for i := range obs {
		if obs[i].TransactionDate.Before(oldest) {
			oldest = obs[i].TransactionDate
		}
	}

	var sw, sx, sy float64
	xs := make([]float64, len(obs))
	ys := make([]float64, len(obs))
	for i := range obs {
		w := weightAt(weights, i)
		xs[i] = ageDays(obs[i].TransactionDate, oldest)
		ys[i] = obs[i].price()
		sw += w
		sx += w * xs[i]
		sy += w * ys[i]
	}
	if sw <= epsilon {
		return Trend{}
	}

	meanX := sx / sw
	meanY := sy / sw

	var sxx, sxy float64
	for i := range obs {
		w := weightAt(weights, i)
		dx := xs[i] - meanX
		sxx += w * dx * dx
		sxy += w * dx * (ys[i] - meanY)
	}
	if sxx <= epsilon {
		return Trend{}
	}

	t := Trend{
		Slope: sxy / sxx,
		Cap:   capFraction * meanY,
	}
	if t.Slope <= 0 {
		return t
	}

	t.Raw = t.Slope * horizonDays
	t.Adjustment = math.Max(0, math.Min(t.Raw, t.Cap))
	t.Applied = t.Adjustment > 0
	return t
}
