package store

// SQL query constants organized by entity.
// All fixed SQL lives here; PostgresStore methods reference these constants.
// Numeric columns are read as text and parsed into decimals.

// Master data queries.
const (
	queryGetItem = `
		SELECT id, sku, name, description, COALESCE(list_price, 0)::text
		FROM items
		WHERE id = $1`

	queryCustomerTier = `
		SELECT COALESCE(tier, '')
		FROM customers
		WHERE id = $1`

	// The preferred supplier wins; otherwise the cheapest landed cost.
	querySupplierCost = `
		SELECT item_id, supplier_cost::text, freight_cost::text, tariff_cost::text
		FROM supplier_items
		WHERE item_id = $1
		ORDER BY is_preferred DESC, (supplier_cost + freight_cost + tariff_cost) ASC, supplier_id ASC
		LIMIT 1`
)

// Transaction history queries.
const (
	// Ignores the lookback window; only used when nothing else is known.
	queryLatestItemPrice = `
		SELECT l.unit_price::text
		FROM invoice_lines l
		JOIN invoices inv ON inv.id = l.invoice_id
		WHERE l.item_id = $1
			AND inv.invoice_date <= $2
			AND inv.status NOT IN ('cancelled', 'void')
		ORDER BY inv.invoice_date DESC, l.id DESC
		LIMIT 1`
)
