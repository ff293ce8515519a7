package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/mwb-pricing/pkg/mwb"
	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

func TestClient_ConnectionRefused(t *testing.T) {
	t.Parallel()

	c := New("http://127.0.0.1:1") // nothing listening
	_, err := c.Health(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API server not running")
}

func TestClient_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"item not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Price(context.Background(), &PriceRequest{CustomerID: "c1", ItemID: "ghost", Quantity: decimal.NewFromInt(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error (HTTP 404)")
	assert.True(t, IsNotFound(err))
}

func TestClient_Price(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	quote := decimal.RequireFromString("120.00")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/price", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "c1", body["customer_id"])
		assert.Equal(t, "5", body["quantity"])
		assert.Equal(t, "120", body["current_quote"])
		assert.Equal(t, "2025-06-30T00:00:00Z", body["as_of"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(mwb.Result{
			UnitPrice:       decimal.RequireFromString("115"),
			SourceLevel:     domain.LevelCustomerItem,
			Confidence:      mwb.ConfidenceMedium,
			ConfidenceScore: 0.55,
		})
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	res, err := c.Price(context.Background(), &PriceRequest{
		CustomerID:   "c1",
		ItemID:       "i1",
		Quantity:     decimal.NewFromInt(5),
		AsOf:         &asOf,
		CurrentQuote: &quote,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(115).Equal(res.UnitPrice))
	assert.Equal(t, domain.LevelCustomerItem, res.SourceLevel)
	assert.Equal(t, mwb.ConfidenceMedium, res.Confidence)
}

func TestClient_Observations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		params    *ObservationsParams
		wantQuery string
	}{
		{name: "no filters", params: &ObservationsParams{}, wantQuery: ""},
		{
			name: "all filters",
			params: &ObservationsParams{
				CustomerID: "c1",
				ItemID:     "i1",
				Since:      time.Date(2024, time.July, 1, 15, 0, 0, 0, time.UTC),
				Limit:      10,
				Offset:     20,
			},
			wantQuery: "customer_id=c1&item_id=i1&limit=10&offset=20&since=2024-07-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/observations", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"lines":[{"id":"l1","unit_price":"42.5","quantity":"3","status":"paid"}],"total":1,"limit":100,"offset":0}`))
			}))
			defer srv.Close()

			resp, err := New(srv.URL).Observations(context.Background(), tt.params)
			require.NoError(t, err)
			require.Len(t, resp.Lines, 1)
			assert.Equal(t, 1, resp.Total)
			assert.Equal(t, domain.StatusPaid, resp.Lines[0].Status)
			assert.True(t, decimal.RequireFromString("42.5").Equal(resp.Lines[0].UnitPrice))
		})
	}
}

func TestClient_Health(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		readyCode int
		readyBody string
		want      Health
	}{
		{name: "ready", readyCode: http.StatusOK, readyBody: `{"status":"ready"}`, want: Health{Live: true, Ready: true}},
		{name: "not ready", readyCode: http.StatusServiceUnavailable, readyBody: `{"status":"unavailable"}`, want: Health{Live: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if r.URL.Path == "/readyz" {
					w.WriteHeader(tt.readyCode)
					_, _ = w.Write([]byte(tt.readyBody))
					return
				}
				_, _ = w.Write([]byte(`{"status":"ok"}`))
			}))
			defer srv.Close()

			h, err := New(srv.URL, WithTimeout(5*time.Second)).Health(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, *h)
		})
	}
}
