package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestLineQuery_ToSQL(t *testing.T) {
	t.Parallel()

	since := time.Date(2023, time.June, 30, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		query         LineQuery
		wantArgs      []any
		wantCountArgs []any
		wantDataHas   []string // substrings that must appear in dataSQL
		wantDataNotIn []string // substrings that must NOT appear
		wantCountSQL  string
	}{
		{
			name:  "empty query uses defaults",
			query: LineQuery{},
			wantDataHas: []string{
				"FROM invoice_lines l",
				"JOIN invoices inv ON inv.id = l.invoice_id",
				"ORDER BY inv.invoice_date DESC, l.id ASC",
				"LIMIT 100",
				"OFFSET 0",
			},
			wantDataNotIn: []string{"WHERE"},
			wantCountSQL:  countLinesSelect,
		},
		{
			name:          "customer filter",
			query:         LineQuery{CustomerID: ptr("c1")},
			wantDataHas:   []string{"WHERE inv.customer_id = $1"},
			wantCountSQL:  countLinesSelect + " WHERE inv.customer_id = $1",
			wantArgs:      []any{"c1"},
			wantCountArgs: []any{"c1"},
		},
		{
			name:  "customer and item filter",
			query: LineQuery{CustomerID: ptr("c1"), ItemID: ptr("i1")},
			wantDataHas: []string{
				"WHERE inv.customer_id = $1 AND l.item_id = $2",
			},
			wantCountSQL:  countLinesSelect + " WHERE inv.customer_id = $1 AND l.item_id = $2",
			wantArgs:      []any{"c1", "i1"},
			wantCountArgs: []any{"c1", "i1"},
		},
		{
			name: "window and excluded statuses",
			query: LineQuery{
				Since:           &since,
				Until:           &until,
				ExcludeStatuses: domain.ExcludedStatuses,
			},
			wantDataHas: []string{
				"inv.invoice_date >= $1",
				"inv.invoice_date <= $2",
				"inv.status NOT IN ($3, $4)",
			},
			wantCountSQL: countLinesSelect +
				" WHERE inv.invoice_date >= $1 AND inv.invoice_date <= $2 AND inv.status NOT IN ($3, $4)",
			wantArgs:      []any{since, until, "cancelled", "void"},
			wantCountArgs: []any{since, until, "cancelled", "void"},
		},
		{
			name: "preference ordering follows filters",
			query: LineQuery{
				Since:            &since,
				PreferCustomerID: "c1",
				PreferItemID:     "i1",
			},
			wantDataHas: []string{
				"WHERE inv.invoice_date >= $1",
				"ORDER BY (inv.customer_id = $2 AND l.item_id = $3) DESC, " +
					"(inv.customer_id = $2) DESC, (l.item_id = $3) DESC, inv.invoice_date DESC, l.id ASC",
			},
			wantCountSQL:  countLinesSelect + " WHERE inv.invoice_date >= $1",
			wantArgs:      []any{since, "c1", "i1"},
			wantCountArgs: []any{since},
		},
		{
			name:  "item preference only",
			query: LineQuery{PreferItemID: "i1"},
			wantDataHas: []string{
				"ORDER BY (l.item_id = $1) DESC, inv.invoice_date DESC",
			},
			wantDataNotIn: []string{"inv.customer_id = $"},
			wantCountSQL:  countLinesSelect,
			wantArgs:      []any{"i1"},
		},
		{
			name:        "limit capped",
			query:       LineQuery{Limit: 500000},
			wantDataHas: []string{"LIMIT 100000"},
		},
		{
			name:        "custom limit and offset",
			query:       LineQuery{Limit: 25, Offset: 50},
			wantDataHas: []string{"LIMIT 25 OFFSET 50"},
		},
		{
			name:        "negative offset clamped",
			query:       LineQuery{Offset: -5},
			wantDataHas: []string{"OFFSET 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dataSQL, args := tt.query.ToSQL()
			countSQL, countArgs := tt.query.CountSQL()

			for _, s := range tt.wantDataHas {
				assert.Contains(t, dataSQL, s)
			}
			for _, s := range tt.wantDataNotIn {
				assert.NotContains(t, dataSQL, s)
			}
			if tt.wantCountSQL != "" {
				assert.Equal(t, tt.wantCountSQL, countSQL)
			}
			assert.Equal(t, tt.wantArgs, args)
			assert.Equal(t, tt.wantCountArgs, countArgs)
		})
	}
}

func TestMigrationVersions(t *testing.T) {
	t.Parallel()

	versions, err := migrationVersions(migrationsFS)
	assert.NoError(t, err)
	assert.Equal(t, []string{"001_initial_schema.sql", "002_history_indexes.sql"}, versions)
}
