package mwb

import (
	"math"
	"time"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// ConfidenceLabel buckets the numeric confidence score.
type ConfidenceLabel string

// Confidence labels.
const (
	ConfidenceLow    ConfidenceLabel = "Low"
	ConfidenceMedium ConfidenceLabel = "Medium"
	ConfidenceHigh   ConfidenceLabel = "High"
)

const (
	volumeWeight      = 0.4
	freshnessWeight   = 0.3
	consistencyWeight = 0.3

	highThreshold   = 0.65
	mediumThreshold = 0.35
)

var levelPenalty = map[domain.SourceLevel]float64{
	domain.LevelCustomerItem:   0,
	domain.LevelCustomerGlobal: 0.15,
	domain.LevelGlobalItem:     0.20,
	domain.LevelGlobalGlobal:   0.35,
}

// Confidence is the reliability score with its components.
type Confidence struct {
	Score       float64         `json:"score"`
	Label       ConfidenceLabel `json:"label"`
	Volume      float64         `json:"volume"`
	Freshness   float64         `json:"freshness"`
	Consistency float64         `json:"consistency"`
	Penalty     float64         `json:"penalty"`
}

// ScoreConfidence scores the raw (pre-blend) selected observations.
func ScoreConfidence(
	obs []Observation,
	level domain.SourceLevel,
	asOf time.Time,
	freshnessWindowDays, saturation int,
) Confidence {
	if len(obs) == 0 {
		return Confidence{Label: ConfidenceLow}
	}

	n := float64(len(obs))
	c := Confidence{Penalty: levelPenalty[level]}

	if saturation > 0 {
		c.Volume = math.Min(1, n/float64(saturation)) * volumeWeight
	} else {
		c.Volume = volumeWeight
	}

	window := time.Duration(freshnessWindowDays) * 24 * time.Hour
	var fresh, sum float64
	for i := range obs {
		if asOf.Sub(obs[i].TransactionDate) <= window {
			fresh++
		}
		sum += obs[i].price()
	}
	c.Freshness = fresh / n * freshnessWeight

	mean := sum / n
	var cv float64
	if mean > 0 {
		var ss float64
		for i := range obs {
			d := obs[i].price() - mean
			ss += d * d
		}
		cv = math.Sqrt(ss/n) / mean
	}
	c.Consistency = math.Max(0, 1-2*cv) * consistencyWeight

	c.Score = roundScore(clamp01(c.Volume + c.Freshness + c.Consistency - c.Penalty))
	c.Label = LabelFor(c.Score)
	return c
}

// LabelFor maps a score to its label.
func LabelFor(score float64) ConfidenceLabel {
	switch {
	case score >= highThreshold:
		return ConfidenceHigh
	case score >= mediumThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func roundScore(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
