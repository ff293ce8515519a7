package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/mwb-pricing/internal/config"
	engineMocks "github.com/donaldgifford/mwb-pricing/internal/engine/mocks"
	storeMocks "github.com/donaldgifford/mwb-pricing/internal/store/mocks"
	"github.com/donaldgifford/mwb-pricing/pkg/logger"
	"github.com/donaldgifford/mwb-pricing/pkg/mwb"
	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second},
		RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 1},
	}
}

func TestNewServer_Routes(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().Ping(mock.Anything).Return(nil)

	mp := engineMocks.NewMockPricer(t)
	mp.EXPECT().ComputePrice(mock.Anything, mock.Anything).Return(&mwb.Result{
		UnitPrice:   decimal.NewFromInt(45),
		SourceLevel: domain.LevelCustomerItem,
		Confidence:  mwb.ConfidenceHigh,
	}, nil).Once()

	e := newServer(testConfig(), ms, mp, logger.Discard())

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/readyz", "").Code)

	metricsRec := serve(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, metricsRec.Code)
	assert.Contains(t, metricsRec.Body.String(), "mwb_")

	openapi := serve(http.MethodGet, "/openapi.json", "")
	assert.Equal(t, http.StatusOK, openapi.Code)
	assert.Contains(t, openapi.Body.String(), "/api/v1/price")
	assert.Contains(t, openapi.Body.String(), "/api/v1/observations")

	price := serve(http.MethodPost, "/api/v1/price", `{"customer_id":"c1","item_id":"i1","quantity":"1"}`)
	require.Equal(t, http.StatusOK, price.Code, price.Body.String())
	assert.Contains(t, price.Body.String(), `"unit_price":"45"`)
	assert.NotEmpty(t, price.Header().Get("X-Request-ID"))

	// The single-token bucket is spent; probes stay outside the limit.
	limited := serve(http.MethodPost, "/api/v1/price", `{"customer_id":"c1","item_id":"i1","quantity":"1"}`)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/healthz", "").Code)
}

func TestNewEngine_FromConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Pricing: config.PricingConfig{
		LookbackMonths:   6,
		MaxObservations:  123,
		DisableCostFloor: true,
	}}

	eng := newEngine(cfg, storeMocks.NewMockStore(t), logger.Discard())
	assert.Equal(t, 6, eng.Params().LookbackMonths)
}

func TestBatchWatches(t *testing.T) {
	t.Parallel()

	got := batchWatches(&config.BatchConfig{Watches: []config.WatchConfig{
		{Name: "key-account", CustomerID: "c1", ItemID: "i1", Quantity: "2.5"},
	}})

	require.Len(t, got, 1)
	assert.Equal(t, "key-account", got[0].Name)
	assert.True(t, decimal.RequireFromString("2.5").Equal(got[0].Quantity))
}

func TestPriceFlags_Request(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   priceFlags
		wantErr string
	}{
		{
			name:  "defaults",
			flags: priceFlags{customerID: "c1", itemID: "i1", quantity: "1"},
		},
		{
			name:  "as-of and quote",
			flags: priceFlags{customerID: "c1", itemID: "i1", quantity: "3", asOf: "2025-06-30", quote: "120.50"},
		},
		{name: "bad quantity", flags: priceFlags{quantity: "many"}, wantErr: "invalid --quantity"},
		{name: "bad date", flags: priceFlags{quantity: "1", asOf: "30/06/2025"}, wantErr: "invalid --as-of"},
		{name: "bad quote", flags: priceFlags{quantity: "1", quote: "cheap"}, wantErr: "invalid --quote"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := tt.flags.request()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.flags.customerID, req.CustomerID)
			assert.True(t, decimal.RequireFromString(tt.flags.quantity).Equal(req.Quantity))
			if tt.flags.asOf != "" {
				assert.Equal(t, tt.flags.asOf, req.AsOf.Format(time.DateOnly))
			}
			if tt.flags.quote != "" {
				require.NotNil(t, req.CurrentQuote)
				assert.Equal(t, "120.5", req.CurrentQuote.String())
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	c := versionCommand()
	c.SetOut(&out)
	require.NoError(t, c.Execute())
	assert.Equal(t, "mwb-server dev\n", out.String())
}
