package mwb

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RuleMagnitude names the price-magnitude fallback increment.
const RuleMagnitude = "magnitude"

// RoundingRule maps category keywords to a rounding increment.
type RoundingRule struct {
	Name      string
	Keywords  []string
	Increment decimal.Decimal
}

// DefaultRoundingRules returns the built-in keyword table, checked in order.
func DefaultRoundingRules() []RoundingRule {
	return []RoundingRule{
		{
			Name:      "monument",
			Keywords:  []string{"monument", "headstone", "memorial"},
			Increment: decimal.NewFromInt(10),
		},
		{
			Name:      "accessory",
			Keywords:  []string{"accessory", "accessories", "vase", "plaque"},
			Increment: decimal.NewFromInt(5),
		},
	}
}

// magnitudeSteps are checked top down; the first threshold the price
// reaches wins.
var magnitudeSteps = []struct {
	min       decimal.Decimal
	increment decimal.Decimal
}{
	{min: decimal.NewFromInt(500), increment: decimal.NewFromInt(25)},
	{min: decimal.NewFromInt(100), increment: decimal.NewFromInt(10)},
	{min: decimal.NewFromInt(20), increment: decimal.NewFromInt(5)},
}

// ItemText is the free text the keyword rules match against.
type ItemText struct {
	Name        string
	Description string
	SKU         string
}

func (t ItemText) haystack() string {
	return strings.ToLower(t.Name + " " + t.Description + " " + t.SKU)
}

// Rounder snaps prices to category or magnitude increments.
type Rounder struct {
	rules []RoundingRule
}

// NewRounder builds a Rounder over an ordered rule table. Rules with a
// non-positive increment are ignored.
func NewRounder(rules []RoundingRule) *Rounder {
	r := &Rounder{}
	for _, rule := range rules {
		if rule.Increment.IsPositive() {
			r.rules = append(r.rules, rule)
		}
	}
	return r
}

// Increment returns the increment for an item at the given price and the
// name of the rule that chose it.
func (r *Rounder) Increment(text ItemText, price decimal.Decimal) (decimal.Decimal, string) {
	hay := text.haystack()
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(hay, strings.ToLower(kw)) {
				return rule.Increment, rule.Name
			}
		}
	}
	for _, step := range magnitudeSteps {
		if price.GreaterThanOrEqual(step.min) {
			return step.increment, RuleMagnitude
		}
	}
	return decimal.NewFromInt(1), RuleMagnitude
}

// RoundingResult records how the guarded price was snapped.
type RoundingResult struct {
	Increment decimal.Decimal `json:"increment"`
	Rule      string          `json:"rule"`
	Before    decimal.Decimal `json:"before"`
	After     decimal.Decimal `json:"after"`
	Changed   bool            `json:"changed"`
}

// Round snaps price to the nearest multiple of its increment, half up. When
// hasFloor is set and the rounded value would drop below floor, it rounds up
// to the next multiple instead. A result that would not be positive keeps
// the unrounded price.
func (r *Rounder) Round(
	price decimal.Decimal,
	text ItemText,
	floor decimal.Decimal,
	hasFloor bool,
) (RoundingResult, []string) {
	price = Money(price)
	inc, rule := r.Increment(text, price)
	res := RoundingResult{Increment: inc, Rule: rule, Before: price}

	var warnings []string
	after := RoundToIncrement(price, inc)
	if hasFloor && after.LessThan(floor) {
		after = Money(price.Div(inc).Ceil().Mul(inc))
		warnings = append(warnings, fmt.Sprintf(
			"rounding up to stay above cost floor %s", floor.StringFixed(moneyPlaces),
		))
	}
	if !after.IsPositive() {
		warnings = append(warnings, fmt.Sprintf(
			"rounding %s to increment %s would not be positive, left unrounded",
			price.StringFixed(moneyPlaces), inc.StringFixed(moneyPlaces),
		))
		after = price
	}

	res.After = after
	if !after.Equal(price) {
		res.Changed = true
		warnings = append(warnings, fmt.Sprintf(
			"rounded %s to %s (increment %s, rule %s)",
			price.StringFixed(moneyPlaces), after.StringFixed(moneyPlaces),
			inc.StringFixed(moneyPlaces), rule,
		))
	}
	return res, warnings
}

// RoundToIncrement rounds price to the nearest multiple of inc, half up.
func RoundToIncrement(price, inc decimal.Decimal) decimal.Decimal {
	if !inc.IsPositive() {
		return Money(price)
	}
	return Money(price.Div(inc).Round(0).Mul(inc))
}
