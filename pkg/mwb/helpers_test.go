package mwb

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testAsOf = time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// obs builds a single-unit observation daysAgo days before testAsOf.
func obs(customerID, itemID, price string, daysAgo int) Observation {
	return Observation{
		UnitPrice:       dec(price),
		Quantity:        decimal.NewFromInt(1),
		TransactionDate: testAsOf.AddDate(0, 0, -daysAgo),
		ItemID:          itemID,
		CustomerID:      customerID,
		Source:          SourceHistory,
	}
}

func obsQty(customerID, itemID, price string, qty int64, daysAgo int) Observation {
	o := obs(customerID, itemID, price, daysAgo)
	o.Quantity = decimal.NewFromInt(qty)
	return o
}

func testWindow() Window {
	return Window{From: testAsOf.AddDate(0, -24, 0), To: testAsOf}
}

// assertWarning fails unless some warning contains sub.
func assertWarning(t *testing.T, warnings []string, sub string) {
	t.Helper()
	for _, w := range warnings {
		if strings.Contains(w, sub) {
			return
		}
	}
	t.Errorf("no warning contains %q in %q", sub, warnings)
}
