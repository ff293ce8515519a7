package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// PostgresStore methods need a live Postgres and are covered by postgres_integration_test.go.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PoolOption tunes the pgxpool configuration before connecting.
type PoolOption func(*pgxpool.Config)

// WithMaxConns overrides the pool size. Non-positive values are ignored.
func WithMaxConns(n int32) PoolOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = n
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string, opts ...PoolOption) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// GetItem retrieves an item by ID. Unknown items return domain.ErrNotFound.
func (s *PostgresStore) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	var (
		it        domain.Item
		listPrice string
	)
	err := s.pool.QueryRow(ctx, queryGetItem, id).Scan(
		&it.ID, &it.SKU, &it.Name, &it.Description, &listPrice,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("item %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}

	if it.ListPrice, err = decimal.NewFromString(listPrice); err != nil {
		return nil, fmt.Errorf("parsing list price of item %q: %w", id, err)
	}
	return &it, nil
}

// CustomerTier returns the raw tier string of a customer. Unknown customers
// return domain.ErrNotFound.
func (s *PostgresStore) CustomerTier(ctx context.Context, customerID string) (string, error) {
	var tier string
	err := s.pool.QueryRow(ctx, queryCustomerTier, customerID).Scan(&tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("customer %q: %w", customerID, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("getting customer tier: %w", err)
	}
	return tier, nil
}

// SupplierCost returns the supplier cost link of an item, or nil when the
// item has none.
func (s *PostgresStore) SupplierCost(ctx context.Context, itemID string) (*domain.SupplierCost, error) {
	var (
		c                         domain.SupplierCost
		supplier, freight, tariff string
	)
	err := s.pool.QueryRow(ctx, querySupplierCost, itemID).Scan(
		&c.ItemID, &supplier, &freight, &tariff,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting supplier cost: %w", err)
	}

	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{supplier, &c.SupplierCost},
		{freight, &c.FreightCost},
		{tariff, &c.TariffCost},
	} {
		if *f.dst, err = decimal.NewFromString(f.raw); err != nil {
			return nil, fmt.Errorf("parsing supplier cost of item %q: %w", itemID, err)
		}
	}
	return &c, nil
}

// ListTransactionLines queries invoice lines with optional filters.
func (s *PostgresStore) ListTransactionLines(
	ctx context.Context,
	q *LineQuery,
) ([]domain.TransactionLine, error) {
	dataSQL, args := q.ToSQL()

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transaction lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.TransactionLine
	for rows.Next() {
		var l domain.TransactionLine
		if err := scanLine(rows, &l); err != nil {
			return nil, fmt.Errorf("scanning transaction line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction lines: %w", err)
	}

	return lines, nil
}

// CountTransactionLines counts invoice lines matching the query filters.
func (s *PostgresStore) CountTransactionLines(ctx context.Context, q *LineQuery) (int, error) {
	countSQL, args := q.CountSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting transaction lines: %w", err)
	}
	return total, nil
}

// LatestItemPrice returns the most recent settled unit price of an item on or
// before asOf, or nil when the item was never sold.
func (s *PostgresStore) LatestItemPrice(
	ctx context.Context,
	itemID string,
	asOf time.Time,
) (*decimal.Decimal, error) {
	var raw string
	err := s.pool.QueryRow(ctx, queryLatestItemPrice, itemID, asOf).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting latest item price: %w", err)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing latest price of item %q: %w", itemID, err)
	}
	return &price, nil
}

// scanLine scans one transaction line row, parsing numeric text columns.
func scanLine(rows pgx.Rows, l *domain.TransactionLine) error {
	var (
		price, qty string
		status     string
	)
	if err := rows.Scan(
		&l.ID, &l.InvoiceID, &l.CustomerID, &l.ItemID,
		&price, &qty, &l.TransactionDate, &status,
	); err != nil {
		return err
	}

	var err error
	if l.UnitPrice, err = decimal.NewFromString(price); err != nil {
		return fmt.Errorf("unit price of line %q: %w", l.ID, err)
	}
	if l.Quantity, err = decimal.NewFromString(qty); err != nil {
		return fmt.Errorf("quantity of line %q: %w", l.ID, err)
	}
	l.Status = domain.LineStatus(status)
	return nil
}
