package mwb

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	moneyPlaces   = 2
	revenuePlaces = 4

	// epsilon bounds "near-zero" total weight and cumulative weight comparisons.
	epsilon = 1e-12

	hoursPerDay = 24.0
)

// Observation source tags.
const (
	SourceHistory = "history"
	SourceMarket  = "market"
)

// Observation is one historical sale used as a pricing data point.
type Observation struct {
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        decimal.Decimal `json:"quantity"`
	TransactionDate time.Time       `json:"transaction_date"`
	ItemID          string          `json:"item_id,omitempty"`
	CustomerID      string          `json:"customer_id,omitempty"`
	Source          string          `json:"source"`
}

func (o *Observation) price() float64 {
	f, _ := o.UnitPrice.Float64()
	return f
}

func (o *Observation) qty() float64 {
	f, _ := o.Quantity.Float64()
	return f
}

// Window is an inclusive time range of usable observations.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls within the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Money quantizes d to cents using round-half-up.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// moneyFromFloat converts a statistical float back into a quantized amount.
// Non-finite values map to zero.
func moneyFromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f).Round(moneyPlaces)
}

func floatOf(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func ageDays(asOf, t time.Time) float64 {
	age := asOf.Sub(t).Hours() / hoursPerDay
	return math.Max(0, age)
}

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
