package mwb

import (
	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// QuantilePoint is one weighted percentile of the pricing set.
type QuantilePoint struct {
	Quantile float64         `json:"quantile"`
	Value    decimal.Decimal `json:"value"`
}

// BlendSummary describes market blending.
type BlendSummary struct {
	Applied              bool    `json:"applied"`
	CustomerWeight       float64 `json:"customer_weight"`
	MarketWeight         float64 `json:"market_weight"`
	CustomerObservations int     `json:"customer_observations"`
	MarketObservations   int     `json:"market_observations"`
}

// Explanation is the audit trace of one computation.
type Explanation struct {
	SourceLevel             domain.SourceLevel     `json:"source_level"`
	RawObservationCount     int                    `json:"raw_observation_count"`
	BlendedObservationCount int                    `json:"blended_observation_count"`
	Blend                   BlendSummary           `json:"blend"`
	Quantiles               []QuantilePoint        `json:"quantiles"`
	Model                   *AcceptanceModel       `json:"acceptance_model,omitempty"`
	Trend                   Trend                  `json:"trend"`
	QuantityDiscount        QuantityDiscountResult `json:"quantity_discount"`
	Guardrails              []GuardrailCheck       `json:"guardrails"`
	Rounding                *RoundingResult        `json:"rounding,omitempty"`
	Candidates              []CandidateRow         `json:"candidates"`
	Selected                *CandidateRow          `json:"selected,omitempty"`
	Confidence              Confidence             `json:"confidence"`
	Warnings                []string               `json:"warnings"`
}

func newExplanation(sel Selection, sourceNotes []string) *Explanation {
	e := &Explanation{
		SourceLevel:         sel.Level,
		RawObservationCount: len(sel.Observations),
		Quantiles:           []QuantilePoint{},
		Guardrails:          []GuardrailCheck{},
		Candidates:          []CandidateRow{},
		Warnings:            []string{},
		QuantityDiscount:    QuantityDiscountResult{Factor: 1},
	}
	e.warn(sourceNotes...)
	e.warn(sel.Warnings...)
	return e
}

func (e *Explanation) warn(msgs ...string) {
	for _, m := range msgs {
		if m != "" {
			e.Warnings = append(e.Warnings, m)
		}
	}
}
