package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/donaldgifford/mwb-pricing/internal/engine"
	"github.com/donaldgifford/mwb-pricing/pkg/mwb"
	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// PriceHandler serves price recommendations.
type PriceHandler struct {
	pricer engine.Pricer
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(p engine.Pricer) *PriceHandler {
	return &PriceHandler{pricer: p}
}

// PriceInput is the request body of the price endpoint. Decimal fields are
// JSON strings.
type PriceInput struct {
	Body struct {
		CustomerID   string           `json:"customer_id"             minLength:"1" doc:"Customer to price for"                    example:"cust-001"`
		ItemID       string           `json:"item_id"                 minLength:"1" doc:"Item to price"                            example:"item-042"`
		Quantity     decimal.Decimal  `json:"quantity"                              doc:"Requested quantity, must be positive"     example:"5"`
		AsOf         *time.Time       `json:"as_of,omitempty"                       doc:"Reference time, defaults to now"`
		CurrentQuote *decimal.Decimal `json:"current_quote,omitempty"               doc:"Price already quoted, added as a candidate" example:"120.00"`
	}
}

// PriceOutput is the recommendation with its explanation.
type PriceOutput struct {
	Body *mwb.Result
}

// Price computes a recommendation for one customer, item and quantity.
func (h *PriceHandler) Price(ctx context.Context, input *PriceInput) (*PriceOutput, error) {
	req := engine.PriceRequest{
		CustomerID:   input.Body.CustomerID,
		ItemID:       input.Body.ItemID,
		Quantity:     input.Body.Quantity,
		CurrentQuote: input.Body.CurrentQuote,
	}
	if input.Body.AsOf != nil {
		req.AsOf = *input.Body.AsOf
	}

	res, err := h.pricer.ComputePrice(ctx, req)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return nil, huma.Error400BadRequest(err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return nil, huma.Error404NotFound(err.Error())
	case err != nil:
		return nil, huma.Error500InternalServerError("price computation failed: " + err.Error())
	}

	return &PriceOutput{Body: res}, nil
}

// RegisterPriceRoutes registers the price endpoint with the Huma API.
func RegisterPriceRoutes(api huma.API, h *PriceHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "compute-price",
		Method:      http.MethodPost,
		Path:        "/api/v1/price",
		Summary:     "Recommend a unit price",
		Description: "Computes the market-weighted bid for a customer, item and quantity " +
			"from transaction history and returns the price with its full explanation.",
		Tags: []string{"pricing"},
		Errors: []int{
			http.StatusBadRequest,
			http.StatusNotFound,
			http.StatusInternalServerError,
		},
	}, h.Price)
}
