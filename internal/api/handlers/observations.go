package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/mwb-pricing/internal/store"
	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

const defaultObservationLimit = 100

// ObservationReader lists settled transaction lines.
type ObservationReader interface {
	ListTransactionLines(ctx context.Context, q *store.LineQuery) ([]domain.TransactionLine, error)
	CountTransactionLines(ctx context.Context, q *store.LineQuery) (int, error)
}

// ObservationsHandler exposes the observation stream for audits.
type ObservationsHandler struct {
	reader ObservationReader
}

// NewObservationsHandler creates a new ObservationsHandler.
func NewObservationsHandler(r ObservationReader) *ObservationsHandler {
	return &ObservationsHandler{reader: r}
}

// ListObservationsInput filters the observation listing.
type ListObservationsInput struct {
	CustomerID string `query:"customer_id" doc:"Filter by customer ID"`
	ItemID     string `query:"item_id"     doc:"Filter by item ID"`
	Since      string `query:"since"       doc:"Earliest invoice date, YYYY-MM-DD or RFC 3339" example:"2024-07-01"`
	Limit      int    `query:"limit"       doc:"Number of results (default 100)"                                 minimum:"0" maximum:"1000"`
	Offset     int    `query:"offset"      doc:"Pagination offset"                                               minimum:"0"`
}

// ListObservationsOutput is one page of settled transaction lines.
type ListObservationsOutput struct {
	Body struct {
		Lines  []domain.TransactionLine `json:"lines"`
		Total  int                      `json:"total"`
		Limit  int                      `json:"limit"`
		Offset int                      `json:"offset"`
	}
}

// ListObservations returns settled transaction lines newest first. Cancelled
// and void invoices are never included.
func (h *ObservationsHandler) ListObservations(
	ctx context.Context,
	input *ListObservationsInput,
) (*ListObservationsOutput, error) {
	q := &store.LineQuery{
		ExcludeStatuses: domain.ExcludedStatuses,
		Limit:           defaultObservationLimit,
		Offset:          input.Offset,
	}
	if input.CustomerID != "" {
		q.CustomerID = &input.CustomerID
	}
	if input.ItemID != "" {
		q.ItemID = &input.ItemID
	}
	if input.Limit != 0 {
		q.Limit = input.Limit
	}
	if input.Since != "" {
		since, err := parseDate(input.Since)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid since: expected YYYY-MM-DD or RFC 3339")
		}
		q.Since = &since
	}

	lines, err := h.reader.ListTransactionLines(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing observations: " + err.Error())
	}
	total, err := h.reader.CountTransactionLines(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("counting observations: " + err.Error())
	}

	if lines == nil {
		lines = []domain.TransactionLine{}
	}

	resp := &ListObservationsOutput{}
	resp.Body.Lines = lines
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset
	return resp, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// RegisterObservationRoutes registers the observation endpoint with the Huma API.
func RegisterObservationRoutes(api huma.API, h *ObservationsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-observations",
		Method:      http.MethodGet,
		Path:        "/api/v1/observations",
		Summary:     "List pricing observations",
		Description: "Returns settled transaction lines, newest first, optionally " +
			"filtered by customer, item and earliest invoice date.",
		Tags:   []string{"observations"},
		Errors: []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.ListObservations)
}
