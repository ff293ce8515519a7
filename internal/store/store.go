// Package store defines the read-only datastore abstraction for the pricing
// engine. Pricing logic depends on the Store interface (or the narrower
// capability interfaces in internal/engine), never on the concrete Postgres
// implementation, so it can be exercised with mocks and no running database.
package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// LineQuery defines optional filters for transaction line queries.
type LineQuery struct {
	CustomerID *string
	ItemID     *string
	Since      *time.Time
	Until      *time.Time

	// ExcludeStatuses drops lines whose invoice has one of these statuses.
	ExcludeStatuses []domain.LineStatus

	// PreferCustomerID and PreferItemID move matching lines to the front of
	// the result so a bounded read keeps the most specific history first.
	PreferCustomerID string
	PreferItemID     string

	Limit  int // default 100
	Offset int
}

// Store defines all data access operations used for pricing.
type Store interface {
	// Master data
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	CustomerTier(ctx context.Context, customerID string) (string, error)
	SupplierCost(ctx context.Context, itemID string) (*domain.SupplierCost, error)

	// Transaction history
	ListTransactionLines(ctx context.Context, q *LineQuery) ([]domain.TransactionLine, error)
	CountTransactionLines(ctx context.Context, q *LineQuery) (int, error)
	LatestItemPrice(ctx context.Context, itemID string, asOf time.Time) (*decimal.Decimal, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
