// Package domain defines the core business types read by the MWB pricing
// engine: customers, items, supplier costs and historical transaction lines.
package domain

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel errors surfaced to callers of the pricing engine.
var (
	// ErrNotFound is returned when a customer or item does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for non-positive quantities, negative prices
	// or missing identifiers.
	ErrInvalidInput = errors.New("invalid input")
)

// Tier is a customer loyalty tier.
type Tier string

// Tier constants.
const (
	TierStandard Tier = "STANDARD"
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// Tiers lists every known tier in ascending loyalty order.
var Tiers = []Tier{TierStandard, TierBronze, TierSilver, TierGold, TierPlatinum}

// ParseTier normalizes a raw tier string. The second return value is false
// when the string is not a known tier; the returned tier is then STANDARD.
func ParseTier(raw string) (Tier, bool) {
	t := Tier(strings.ToUpper(strings.TrimSpace(raw)))
	if slices.Contains(Tiers, t) {
		return t, true
	}
	return TierStandard, false
}

// SourceLevel names the fallback level that produced an observation set.
type SourceLevel string

// Source level constants, from most to least specific.
const (
	LevelCustomerItem   SourceLevel = "customer_item"
	LevelCustomerGlobal SourceLevel = "customer_global"
	LevelGlobalItem     SourceLevel = "global_item"
	LevelGlobalGlobal   SourceLevel = "global_global"
)

// SourceLevels lists the fallback hierarchy in evaluation order.
var SourceLevels = []SourceLevel{
	LevelCustomerItem,
	LevelCustomerGlobal,
	LevelGlobalItem,
	LevelGlobalGlobal,
}

// LineStatus is the status of the invoice a transaction line belongs to.
type LineStatus string

// Line status constants.
const (
	StatusDraft     LineStatus = "draft"
	StatusSent      LineStatus = "sent"
	StatusPaid      LineStatus = "paid"
	StatusPartial   LineStatus = "partially_paid"
	StatusOverdue   LineStatus = "overdue"
	StatusCancelled LineStatus = "cancelled"
	StatusVoid      LineStatus = "void"
)

// ExcludedStatuses are never used as pricing observations.
var ExcludedStatuses = []LineStatus{StatusCancelled, StatusVoid}

// IsSettled reports whether a line with this status counts as a sale.
func (s LineStatus) IsSettled() bool {
	return !slices.Contains(ExcludedStatuses, s)
}

// Customer is the read-only customer view used for tier lookups.
type Customer struct {
	ID   string `json:"id"   db:"id"`
	Name string `json:"name" db:"name"`
	Tier string `json:"tier" db:"tier"`
}

// Item is the read-only item master record.
type Item struct {
	ID          string          `json:"id"                    db:"id"`
	SKU         string          `json:"sku"                   db:"sku"`
	Name        string          `json:"name"                  db:"name"`
	Description string          `json:"description,omitempty" db:"description"`
	ListPrice   decimal.Decimal `json:"list_price"            db:"list_price"`
}

// SupplierCost is the optional supplier cost link for an item.
type SupplierCost struct {
	ItemID       string          `json:"item_id"       db:"item_id"`
	SupplierCost decimal.Decimal `json:"supplier_cost" db:"supplier_cost"`
	FreightCost  decimal.Decimal `json:"freight_cost"  db:"freight_cost"`
	TariffCost   decimal.Decimal `json:"tariff_cost"   db:"tariff_cost"`
}

// Landed returns supplier, freight and tariff cost combined.
func (c *SupplierCost) Landed() decimal.Decimal {
	return c.SupplierCost.Add(c.FreightCost).Add(c.TariffCost)
}

// TransactionLine is one historical invoice line.
type TransactionLine struct {
	ID              string          `json:"id"               db:"id"`
	InvoiceID       string          `json:"invoice_id"       db:"invoice_id"`
	CustomerID      string          `json:"customer_id"      db:"customer_id"`
	ItemID          string          `json:"item_id"          db:"item_id"`
	UnitPrice       decimal.Decimal `json:"unit_price"       db:"unit_price"`
	Quantity        decimal.Decimal `json:"quantity"         db:"quantity"`
	TransactionDate time.Time       `json:"transaction_date" db:"transaction_date"`
	Status          LineStatus      `json:"status"           db:"status"`
}
