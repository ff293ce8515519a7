package mwb

import (
	"fmt"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// Selection is the outcome of walking the fallback hierarchy.
type Selection struct {
	Level        domain.SourceLevel
	Observations []Observation
	Warnings     []string
}

// levelMatch reports whether an observation belongs to a fallback level.
func levelMatch(level domain.SourceLevel, o *Observation, customerID, itemID string) bool {
	switch level {
	case domain.LevelCustomerItem:
		return o.CustomerID == customerID && o.ItemID == itemID
	case domain.LevelCustomerGlobal:
		return o.CustomerID == customerID
	case domain.LevelGlobalItem:
		return o.ItemID == itemID
	default:
		return true
	}
}

// SelectObservations walks customer_item, customer_global, global_item and
// global_global in order and returns the first level holding at least
// minObs observations inside the window. When no level qualifies the widest
// level is returned with whatever it holds.
func SelectObservations(
	stream []Observation,
	customerID, itemID string,
	window Window,
	minObs int,
) Selection {
	var inWindow []Observation
	for i := range stream {
		if window.Contains(stream[i].TransactionDate) {
			inWindow = append(inWindow, stream[i])
		}
	}

	sel := Selection{}
	for _, level := range domain.SourceLevels {
		var matched []Observation
		for i := range inWindow {
			if levelMatch(level, &inWindow[i], customerID, itemID) {
				matched = append(matched, inWindow[i])
			}
		}

		if len(matched) >= minObs {
			sel.Level = level
			sel.Observations = matched
			return sel
		}

		if level == domain.LevelGlobalGlobal {
			sel.Level = level
			sel.Observations = matched
			sel.Warnings = append(sel.Warnings, fmt.Sprintf(
				"insufficient data: %d observations at widest level %s (minimum %d)",
				len(matched), level, minObs,
			))
			return sel
		}

		sel.Warnings = append(sel.Warnings, fmt.Sprintf(
			"sparse data at %s: %d of %d required observations, falling back",
			level, len(matched), minObs,
		))
	}

	return sel
}
