package client

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/donaldgifford/mwb-pricing/pkg/mwb"
)

// PriceRequest is the body of POST /api/v1/price.
type PriceRequest struct {
	CustomerID   string           `json:"customer_id"`
	ItemID       string           `json:"item_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	AsOf         *time.Time       `json:"as_of,omitempty"`
	CurrentQuote *decimal.Decimal `json:"current_quote,omitempty"`
}

// Price asks the server for a recommendation.
func (c *Client) Price(ctx context.Context, req *PriceRequest) (*mwb.Result, error) {
	var res mwb.Result
	if err := c.post(ctx, "/api/v1/price", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
