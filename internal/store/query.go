package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 100
	maxLimit     = 100000
)

const baseLinesSelect = `SELECT l.id, l.invoice_id, inv.customer_id, l.item_id,
	l.unit_price::text, l.quantity::text, inv.invoice_date, inv.status
FROM invoice_lines l
JOIN invoices inv ON inv.id = l.invoice_id`

const countLinesSelect = `SELECT COUNT(*)
FROM invoice_lines l
JOIN invoices inv ON inv.id = l.invoice_id`

const defaultLinesOrder = "inv.invoice_date DESC, l.id ASC"

// where builds the shared WHERE clause and its positional parameters.
func (q *LineQuery) where() (clause string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("inv.customer_id = $%d", paramIdx))
		args = append(args, *q.CustomerID)
		paramIdx++
	}

	if q.ItemID != nil {
		conditions = append(conditions, fmt.Sprintf("l.item_id = $%d", paramIdx))
		args = append(args, *q.ItemID)
		paramIdx++
	}

	if q.Since != nil {
		conditions = append(conditions, fmt.Sprintf("inv.invoice_date >= $%d", paramIdx))
		args = append(args, *q.Since)
		paramIdx++
	}

	if q.Until != nil {
		conditions = append(conditions, fmt.Sprintf("inv.invoice_date <= $%d", paramIdx))
		args = append(args, *q.Until)
		paramIdx++
	}

	if len(q.ExcludeStatuses) > 0 {
		placeholders := make([]string, len(q.ExcludeStatuses))
		for i, s := range q.ExcludeStatuses {
			placeholders[i] = fmt.Sprintf("$%d", paramIdx)
			args = append(args, string(s))
			paramIdx++
		}
		conditions = append(conditions, fmt.Sprintf(
			"inv.status NOT IN (%s)", strings.Join(placeholders, ", "),
		))
	}

	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}
	return clause, args
}

// ToSQL builds the data query: WHERE clause, preference ordering, LIMIT and
// OFFSET, with its positional parameters.
func (q *LineQuery) ToSQL() (string, []any) {
	whereClause, args := q.where()
	paramIdx := len(args) + 1

	var order []string
	custParam, itemParam := "", ""
	if q.PreferCustomerID != "" {
		custParam = fmt.Sprintf("$%d", paramIdx)
		args = append(args, q.PreferCustomerID)
		paramIdx++
	}
	if q.PreferItemID != "" {
		itemParam = fmt.Sprintf("$%d", paramIdx)
		args = append(args, q.PreferItemID)
	}
	if custParam != "" && itemParam != "" {
		order = append(order, fmt.Sprintf(
			"(inv.customer_id = %s AND l.item_id = %s) DESC", custParam, itemParam,
		))
	}
	if custParam != "" {
		order = append(order, fmt.Sprintf("(inv.customer_id = %s) DESC", custParam))
	}
	if itemParam != "" {
		order = append(order, fmt.Sprintf("(l.item_id = %s) DESC", itemParam))
	}
	order = append(order, defaultLinesOrder)

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL := fmt.Sprintf(
		"%s%s ORDER BY %s LIMIT %d OFFSET %d",
		baseLinesSelect, whereClause, strings.Join(order, ", "), limit, offset,
	)
	return dataSQL, args
}

// CountSQL builds the count query for the same filters. Preference and
// paging fields do not affect it.
func (q *LineQuery) CountSQL() (string, []any) {
	whereClause, args := q.where()
	return countLinesSelect + whereClause, args
}
