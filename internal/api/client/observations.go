package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// ObservationsResponse is one page of settled transaction lines.
type ObservationsResponse struct {
	Lines  []domain.TransactionLine `json:"lines"`
	Total  int                      `json:"total"`
	Limit  int                      `json:"limit"`
	Offset int                      `json:"offset"`
}

// ObservationsParams filters the observation listing.
type ObservationsParams struct {
	CustomerID string
	ItemID     string
	Since      time.Time
	Limit      int
	Offset     int
}

// Observations lists settled transaction lines.
func (c *Client) Observations(
	ctx context.Context,
	params *ObservationsParams,
) (*ObservationsResponse, error) {
	q := url.Values{}
	if params.CustomerID != "" {
		q.Set("customer_id", params.CustomerID)
	}
	if params.ItemID != "" {
		q.Set("item_id", params.ItemID)
	}
	if !params.Since.IsZero() {
		q.Set("since", params.Since.Format(time.DateOnly))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	path := "/api/v1/observations"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ObservationsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("listing observations: %w", err)
	}
	return &resp, nil
}
