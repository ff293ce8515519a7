package mwb

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Guardrail names.
const (
	GuardrailCostFloor      = "cost_floor"
	GuardrailStatCeiling    = "statistical_ceiling"
	GuardrailListCeiling    = "list_price_ceiling"
	reasonObservedAboveCap  = "observed customer price above cap"
	reasonCeilingBelowFloor = "cap below cost floor"
)

// GuardrailCheck records one evaluated guardrail.
type GuardrailCheck struct {
	Name      string          `json:"name"`
	Threshold decimal.Decimal `json:"threshold"`
	Fired     bool            `json:"fired"`
	Skipped   bool            `json:"skipped,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	Before    decimal.Decimal `json:"before"`
	After     decimal.Decimal `json:"after"`
}

// GuardrailInput carries everything the guardrails look at.
type GuardrailInput struct {
	Price decimal.Decimal

	// LandedCost is nil when no supplier cost is known.
	LandedCost *decimal.Decimal
	MinMarkup  float64

	P95                   decimal.Decimal
	StatCeilingMultiplier float64

	ListPrice             decimal.Decimal
	ListCeilingMultiplier float64

	// ObservedPrices are this customer's prices in the pricing set. A ceiling
	// does not clamp when one of them already exceeds it.
	ObservedPrices []decimal.Decimal
}

// GuardrailResult is the guarded price plus the trace of every check.
type GuardrailResult struct {
	Price    decimal.Decimal
	Floor    decimal.Decimal
	HasFloor bool
	Checks   []GuardrailCheck
	Warnings []string
}

// ApplyGuardrails runs the cost floor, statistical ceiling and list-price
// ceiling in that order. A ceiling never clamps below the floor. Applying
// the result again with the same input yields the same price.
func ApplyGuardrails(in GuardrailInput) GuardrailResult {
	res := GuardrailResult{Price: Money(in.Price)}

	if in.LandedCost != nil && in.LandedCost.IsPositive() {
		floor := Money(in.LandedCost.Mul(decimal.NewFromFloat(in.MinMarkup)))
		res.Floor = floor
		res.HasFloor = true

		check := GuardrailCheck{Name: GuardrailCostFloor, Threshold: floor, Before: res.Price}
		if res.Price.LessThan(floor) {
			check.Fired = true
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s raised price from %s to %s",
				GuardrailCostFloor, res.Price.StringFixed(moneyPlaces), floor.StringFixed(moneyPlaces),
			))
			res.Price = floor
		}
		check.After = res.Price
		res.Checks = append(res.Checks, check)
	}

	if in.P95.IsPositive() {
		ceiling := Money(in.P95.Mul(decimal.NewFromFloat(in.StatCeilingMultiplier)))
		res.applyCeiling(GuardrailStatCeiling, ceiling, in.ObservedPrices)
	}

	if in.ListPrice.IsPositive() {
		ceiling := Money(in.ListPrice.Mul(decimal.NewFromFloat(in.ListCeilingMultiplier)))
		res.applyCeiling(GuardrailListCeiling, ceiling, in.ObservedPrices)
	}

	return res
}

func (res *GuardrailResult) applyCeiling(name string, ceiling decimal.Decimal, observed []decimal.Decimal) {
	check := GuardrailCheck{Name: name, Threshold: ceiling, Before: res.Price, After: res.Price}
	defer func() { res.Checks = append(res.Checks, check) }()

	if !res.Price.GreaterThan(ceiling) {
		return
	}

	for _, p := range observed {
		if p.GreaterThan(ceiling) {
			check.Skipped = true
			check.Reason = reasonObservedAboveCap
			return
		}
	}

	if res.HasFloor && ceiling.LessThan(res.Floor) {
		check.Skipped = true
		check.Reason = reasonCeilingBelowFloor
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"%s of %s is below cost floor %s, not applied",
			name, ceiling.StringFixed(moneyPlaces), res.Floor.StringFixed(moneyPlaces),
		))
		return
	}

	check.Fired = true
	res.Warnings = append(res.Warnings, fmt.Sprintf(
		"%s clamped price from %s to %s",
		name, res.Price.StringFixed(moneyPlaces), ceiling.StringFixed(moneyPlaces),
	))
	res.Price = ceiling
	check.After = ceiling
}
