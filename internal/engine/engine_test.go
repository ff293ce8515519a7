package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/mwb-pricing/internal/metrics"
	"github.com/donaldgifford/mwb-pricing/internal/store"
	storeMocks "github.com/donaldgifford/mwb-pricing/internal/store/mocks"
	"github.com/donaldgifford/mwb-pricing/pkg/mwb"
	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

var testNow = time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(s store.Store, opts ...EngineOption) *Engine {
	base := []EngineOption{
		WithLogger(quietLogger()),
		WithNowFunc(func() time.Time { return testNow }),
	}
	return NewEngine(s, append(base, opts...)...)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(id, customerID, itemID, price string, daysAgo int, status domain.LineStatus) domain.TransactionLine {
	return domain.TransactionLine{
		ID:              id,
		InvoiceID:       "inv-" + id,
		CustomerID:      customerID,
		ItemID:          itemID,
		UnitPrice:       dec(price),
		Quantity:        decimal.NewFromInt(1),
		TransactionDate: testNow.AddDate(0, 0, -daysAgo),
		Status:          status,
	}
}

func history() []domain.TransactionLine {
	return []domain.TransactionLine{
		line("l1", "c1", "i1", "100", 150, domain.StatusPaid),
		line("l2", "c1", "i1", "105", 120, domain.StatusPaid),
		line("l3", "c1", "i1", "110", 90, domain.StatusSent),
		line("l4", "c1", "i1", "115", 60, domain.StatusPaid),
		line("l5", "c1", "i1", "120", 30, domain.StatusOverdue),
		line("l6", "c1", "i1", "125", 10, domain.StatusPaid),
	}
}

func widget(listPrice string) *domain.Item {
	return &domain.Item{ID: "i1", SKU: "W-1", Name: "Widget", ListPrice: dec(listPrice)}
}

func TestNewEngine_Defaults(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	eng := NewEngine(ms)

	assert.Equal(t, mwb.DefaultParams().LookbackMonths, eng.params.LookbackMonths)
	assert.Equal(t, defaultMaxObservations, eng.maxObservations)
	assert.NotNil(t, eng.log)
	assert.NotNil(t, eng.now)
	assert.NotNil(t, eng.tracer)
	assert.Equal(t, ms, eng.costs)
}

func TestNewEngine_WithOptions(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	p := mwb.DefaultParams()
	p.MinObservations = 3

	l := quietLogger()
	eng := NewEngine(ms,
		WithLogger(l),
		WithParams(p),
		WithMaxObservations(10),
		WithMaxObservations(-1),
		WithCostLookup(nil),
	)

	assert.Equal(t, l, eng.log)
	assert.Equal(t, 3, eng.Params().MinObservations)
	assert.Equal(t, 10, eng.maxObservations)
	assert.Nil(t, eng.costs)
}

func TestComputePrice_InvalidInput(t *testing.T) {
	t.Parallel()

	negative := dec("-1")

	tests := []struct {
		name string
		req  PriceRequest
		want string
	}{
		{name: "missing customer", req: PriceRequest{ItemID: "i1", Quantity: dec("1")}, want: "customer_id is required"},
		{name: "blank item", req: PriceRequest{CustomerID: "c1", ItemID: "  ", Quantity: dec("1")}, want: "item_id is required"},
		{name: "zero quantity", req: PriceRequest{CustomerID: "c1", ItemID: "i1"}, want: "quantity must be positive"},
		{name: "negative quantity", req: PriceRequest{CustomerID: "c1", ItemID: "i1", Quantity: dec("-2")}, want: "quantity must be positive"},
		{
			name: "negative quote",
			req:  PriceRequest{CustomerID: "c1", ItemID: "i1", Quantity: dec("1"), CurrentQuote: &negative},
			want: "current_quote must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// No expectations: validation must fail before any read.
			ms := storeMocks.NewMockStore(t)
			eng := newTestEngine(ms)

			res, err := eng.ComputePrice(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestComputePrice_NotFound(t *testing.T) {
	t.Parallel()

	t.Run("item", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetItem(mock.Anything, "nope").
			Return(nil, fmt.Errorf("item %q: %w", "nope", domain.ErrNotFound))

		_, err := newTestEngine(ms).ComputePrice(context.Background(), PriceRequest{
			CustomerID: "c1", ItemID: "nope", Quantity: dec("1"),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("customer", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetItem(mock.Anything, "i1").Return(widget("0"), nil)
		ms.EXPECT().CustomerTier(mock.Anything, "ghost").
			Return("", fmt.Errorf("customer %q: %w", "ghost", domain.ErrNotFound))

		_, err := newTestEngine(ms).ComputePrice(context.Background(), PriceRequest{
			CustomerID: "ghost", ItemID: "i1", Quantity: dec("1"),
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestComputePrice_ReadFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetItem(mock.Anything, "i1").Return(widget("0"), nil)
	ms.EXPECT().CustomerTier(mock.Anything, "c1").Return("GOLD", nil)
	ms.EXPECT().SupplierCost(mock.Anything, "i1").Return(nil, nil)
	ms.EXPECT().ListTransactionLines(mock.Anything, mock.Anything).Return(nil, boom)

	_, err := newTestEngine(ms).ComputePrice(context.Background(), PriceRequest{
		CustomerID: "c1", ItemID: "i1", Quantity: dec("1"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "reading observations")
}

func TestComputePrice_SingleBoundedRead(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetItem(mock.Anything, "i1").Return(widget("0"), nil)
	ms.EXPECT().CustomerTier(mock.Anything, "c1").Return("gold", nil)
	ms.EXPECT().SupplierCost(mock.Anything, "i1").Return(nil, nil)
	ms.EXPECT().ListTransactionLines(mock.Anything, mock.MatchedBy(func(q *store.LineQuery) bool {
		return q.Limit == 500 &&
			q.PreferCustomerID == "c1" &&
			q.PreferItemID == "i1" &&
			q.Since != nil && q.Since.Equal(testNow.AddDate(-2, 0, 0)) &&
			q.Until != nil && q.Until.Equal(testNow) &&
			len(q.ExcludeStatuses) == len(domain.ExcludedStatuses)
	})).Return(history(), nil).Once()

	eng := newTestEngine(ms, WithMaxObservations(500))
	res, err := eng.ComputePrice(context.Background(), PriceRequest{
		CustomerID: "c1", ItemID: "i1", Quantity: dec("1"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.LevelCustomerItem, res.SourceLevel)
	assert.True(t, res.UnitPrice.IsPositive())
	require.NotNil(t, res.Explanation.Model)
	assert.Equal(t, domain.TierGold, res.Explanation.Model.Tier)
}

func TestComputePrice_TruncatedRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		limit         int
		wantTruncated bool
	}{
		{name: "read hits bound", limit: 6, wantTruncated: true},
		{name: "read under bound", limit: 7, wantTruncated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			ms.EXPECT().GetItem(mock.Anything, "i1").Return(widget("0"), nil)
			ms.EXPECT().CustomerTier(mock.Anything, "c1").Return("", nil)
			ms.EXPECT().SupplierCost(mock.Anything, "i1").Return(nil, nil)
			ms.EXPECT().ListTransactionLines(mock.Anything, mock.Anything).Return(history(), nil)

			res, err := newTestEngine(ms, WithMaxObservations(tt.limit)).ComputePrice(
				context.Background(), PriceRequest{CustomerID: "c1", ItemID: "i1", Quantity: dec("1")},
			)
			require.NoError(t, err)

			warnings := res.Explanation.Warnings
			truncated := len(warnings) > 0 && strings.Contains(warnings[0], "observation read truncated at")
			assert.Equal(t, tt.wantTruncated, truncated, "warnings: %q", warnings)
		})
	}
}

func TestComputePrice_NoHistory(t *testing.T) {
	t.Parallel()

	t.Run("list price", func(t *testing.T) {
		t.Parallel()

		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetItem(mock.Anything, "i1").Return(widget("249.99"), nil)
		ms.EXPECT().CustomerTier(mock.Anything, "c1").Return("", nil)
		ms.EXPECT().SupplierCost(mock.Anything, "i1").Return(nil, nil)
		ms.EXPECT().ListTransactionLines(mock.Anything, mock.Anything).Return(nil, nil)

		res, err := newTestEngine(ms).ComputePrice(context.Background(), PriceRequest{
			CustomerID: "c1", ItemID: "i1", Quantity: dec("1"),
		})
		require.NoError(t, err)
		assert.True(t, dec("249.99").Equal(res.UnitPrice), res.UnitPrice.String())
		assert.Equal(t, mwb.ConfidenceLow, res.Confidence)
		assert.InDelta(t, 0.0, res.ConfidenceScore, 0)
	})

	t.Run("last recorded price", func(t *testing.T) {
		t.Parallel()

		last := dec("80")
		ms := storeMocks.NewMockStore(t)
		ms.EXPECT().GetItem(mock.Anything, "i1").Return(widget("0"), nil)
		ms.EXPECT().CustomerTier(mock.Anything, "c1").Return("", nil)
		ms.EXPECT().SupplierCost(mock.Anything, "i1").Return(nil, nil)
		ms.EXPECT().ListTransactionLines(mock.Anything, mock.Anything).Return(nil, nil)
		ms.EXPECT().LatestItemPrice(mock.Anything, "i1", testNow).Return(&last, nil)

		res, err := newTestEngine(ms).ComputePrice(context.Background(), PriceRequest{
			CustomerID: "c1", ItemID: "i1", Quantity: dec("1"),
		})
		require.NoError(t, err)
		assert.True(t, last.Equal(res.UnitPrice), res.UnitPrice.String())
	})
}

// staticCosts is an in-memory CostLookup.
type staticCosts map[string]*domain.SupplierCost

func (s staticCosts) SupplierCost(_ context.Context, itemID string) (*domain.SupplierCost, error) {
	return s[itemID], nil
}

// staticTiers is an in-memory TierLookup.
type staticTiers map[string]string

func (s staticTiers) CustomerTier(_ context.Context, customerID string) (string, error) {
	tier, ok := s[customerID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return tier, nil
}

func TestComputePrice_InjectedLookups(t *testing.T) {
	t.Parallel()

	cheap := []domain.TransactionLine{
		line("l1", "c1", "i1", "30", 50, domain.StatusPaid),
		line("l2", "c1", "i1", "31", 40, domain.StatusPaid),
		line("l3", "c1", "i1", "32", 30, domain.StatusPaid),
		line("l4", "c1", "i1", "33", 20, domain.StatusPaid),
		line("l5", "c1", "i1", "34", 10, domain.StatusPaid),
	}

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetItem(mock.Anything, "i1").Return(widget("0"), nil)
	ms.EXPECT().ListTransactionLines(mock.Anything, mock.Anything).Return(cheap, nil)

	eng := newTestEngine(ms,
		WithTierLookup(staticTiers{"c1": "PLATINUM"}),
		WithCostLookup(staticCosts{"i1": {
			ItemID:       "i1",
			SupplierCost: dec("35"),
			FreightCost:  dec("4"),
			TariffCost:   dec("1"),
		}}),
	)

	res, err := eng.ComputePrice(context.Background(), PriceRequest{
		CustomerID: "c1", ItemID: "i1", Quantity: dec("1"),
	})
	require.NoError(t, err)

	assert.True(t, res.UnitPrice.GreaterThanOrEqual(dec("42")), res.UnitPrice.String())
	assert.Equal(t, domain.TierPlatinum, res.Explanation.Model.Tier)

	var fired bool
	for _, g := range res.Explanation.Guardrails {
		if g.Name == mwb.GuardrailCostFloor && g.Fired {
			fired = true
		}
	}
	assert.True(t, fired)
}

func TestComputePrice_CostLookupDisabled(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetItem(mock.Anything, "i1").Return(widget("0"), nil)
	ms.EXPECT().CustomerTier(mock.Anything, "c1").Return("", nil)
	ms.EXPECT().ListTransactionLines(mock.Anything, mock.Anything).Return(history(), nil)

	res, err := newTestEngine(ms, WithCostLookup(nil)).ComputePrice(context.Background(), PriceRequest{
		CustomerID: "c1", ItemID: "i1", Quantity: dec("1"),
	})
	require.NoError(t, err)
	for _, g := range res.Explanation.Guardrails {
		assert.NotEqual(t, mwb.GuardrailCostFloor, g.Name)
	}
}

func TestComputePrice_ErrorMetrics(t *testing.T) {
	t.Parallel()

	counter := metrics.PriceComputationErrorsTotal.WithLabelValues("invalid_input")
	before := ptestutil.ToFloat64(counter)

	ms := storeMocks.NewMockStore(t)
	_, err := newTestEngine(ms).ComputePrice(context.Background(), PriceRequest{})
	require.Error(t, err)

	assert.GreaterOrEqual(t, ptestutil.ToFloat64(counter), before+1)
}

func TestToObservations(t *testing.T) {
	t.Parallel()

	lines := []domain.TransactionLine{
		line("ok", "c1", "i1", "10", 1, domain.StatusPaid),
		line("void", "c1", "i1", "10", 1, domain.StatusVoid),
		line("cancelled", "c1", "i1", "10", 1, domain.StatusCancelled),
		line("free", "c1", "i1", "0", 1, domain.StatusPaid),
	}
	zeroQty := line("zero-qty", "c1", "i1", "10", 1, domain.StatusPaid)
	zeroQty.Quantity = decimal.Zero
	lines = append(lines, zeroQty)

	obs := toObservations(lines)
	require.Len(t, obs, 1)
	assert.Equal(t, "c1", obs[0].CustomerID)
	assert.Equal(t, mwb.SourceHistory, obs[0].Source)
}

func TestErrorReason(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "invalid_input", errorReason(fmt.Errorf("x: %w", domain.ErrInvalidInput)))
	assert.Equal(t, "not_found", errorReason(fmt.Errorf("x: %w", domain.ErrNotFound)))
	assert.Equal(t, "canceled", errorReason(context.Canceled))
	assert.Equal(t, "read", errorReason(errors.New("boom")))
}
