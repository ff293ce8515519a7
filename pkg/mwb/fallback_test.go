package mwb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

func repeatObs(customerID, itemID, price string, n, startDay int) []Observation {
	out := make([]Observation, 0, n)
	for i := range n {
		out = append(out, obs(customerID, itemID, price, startDay+i*7))
	}
	return out
}

func TestSelectObservations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		stream       []Observation
		wantLevel    domain.SourceLevel
		wantCount    int
		wantWarnings int
		wantContains string
	}{
		{
			name:      "customer item has enough",
			stream:    repeatObs("c1", "i1", "100", 5, 1),
			wantLevel: domain.LevelCustomerItem,
			wantCount: 5,
		},
		{
			name: "falls back to customer global",
			stream: append(
				repeatObs("c1", "i1", "100", 1, 1),
				repeatObs("c1", "i2", "40", 4, 1)...,
			),
			wantLevel:    domain.LevelCustomerGlobal,
			wantCount:    5,
			wantWarnings: 1,
			wantContains: "sparse data at customer_item: 1 of 5",
		},
		{
			name: "falls back to global item",
			stream: append(
				repeatObs("c1", "i1", "100", 1, 1),
				repeatObs("c2", "i1", "110", 4, 1)...,
			),
			wantLevel:    domain.LevelGlobalItem,
			wantCount:    5,
			wantWarnings: 2,
			wantContains: "sparse data at customer_global: 1 of 5",
		},
		{
			name: "nothing qualifies",
			stream: append(
				repeatObs("c1", "i1", "100", 1, 1),
				repeatObs("c2", "i9", "15", 2, 1)...,
			),
			wantLevel:    domain.LevelGlobalGlobal,
			wantCount:    3,
			wantWarnings: 4,
			wantContains: "insufficient data: 3 observations at widest level global_global",
		},
		{
			name:         "empty stream",
			stream:       nil,
			wantLevel:    domain.LevelGlobalGlobal,
			wantCount:    0,
			wantWarnings: 4,
			wantContains: "insufficient data: 0 observations",
		},
		{
			name: "observations outside the window are ignored",
			stream: append(
				repeatObs("c1", "i1", "100", 5, 800),
				obs("c1", "i1", "100", -3),
			),
			wantLevel:    domain.LevelGlobalGlobal,
			wantCount:    0,
			wantWarnings: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sel := SelectObservations(tt.stream, "c1", "i1", testWindow(), 5)

			assert.Equal(t, tt.wantLevel, sel.Level)
			assert.Len(t, sel.Observations, tt.wantCount)
			require.Len(t, sel.Warnings, tt.wantWarnings)
			if tt.wantContains != "" {
				assertWarning(t, sel.Warnings, tt.wantContains)
			}
		})
	}
}

func TestSelectObservations_WindowInclusive(t *testing.T) {
	t.Parallel()

	w := testWindow()
	edge := obs("c1", "i1", "100", 0)
	edge.TransactionDate = w.From

	stream := append(repeatObs("c1", "i1", "100", 4, 1), edge)
	sel := SelectObservations(stream, "c1", "i1", w, 5)

	assert.Equal(t, domain.LevelCustomerItem, sel.Level)
	assert.Len(t, sel.Observations, 5)
}
