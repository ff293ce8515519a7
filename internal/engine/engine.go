// Package engine orchestrates price recommendations: it validates requests,
// resolves master data through narrow read-only lookups, reads the
// observation stream once per call and hands everything to the pure mwb core.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/mwb-pricing/internal/metrics"
	"github.com/donaldgifford/mwb-pricing/internal/store"
	"github.com/donaldgifford/mwb-pricing/pkg/mwb"
	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

const (
	defaultMaxObservations = 50000
	tracerName             = "github.com/donaldgifford/mwb-pricing/internal/engine"
)

// ItemLookup resolves item master data.
type ItemLookup interface {
	GetItem(ctx context.Context, id string) (*domain.Item, error)
}

// TierLookup resolves the raw tier string of a customer.
type TierLookup interface {
	CustomerTier(ctx context.Context, customerID string) (string, error)
}

// CostLookup resolves the supplier cost link of an item. A nil result means
// the item has no known cost.
type CostLookup interface {
	SupplierCost(ctx context.Context, itemID string) (*domain.SupplierCost, error)
}

// ObservationReader reads transaction history.
type ObservationReader interface {
	ListTransactionLines(ctx context.Context, q *store.LineQuery) ([]domain.TransactionLine, error)
	LatestItemPrice(ctx context.Context, itemID string, asOf time.Time) (*decimal.Decimal, error)
}

// Pricer computes price recommendations.
type Pricer interface {
	ComputePrice(ctx context.Context, req PriceRequest) (*mwb.Result, error)
}

// PriceRequest asks for one recommendation.
type PriceRequest struct {
	CustomerID string
	ItemID     string
	Quantity   decimal.Decimal
	// AsOf defaults to the engine clock when zero.
	AsOf time.Time
	// CurrentQuote is an optional externally quoted price added as a candidate.
	CurrentQuote *decimal.Decimal
}

// Engine computes price recommendations from read-only collaborators.
type Engine struct {
	items        ItemLookup
	observations ObservationReader
	tiers        TierLookup
	costs        CostLookup

	params          mwb.Params
	maxObservations int
	now             func() time.Time
	log             *slog.Logger
	tracer          trace.Tracer
}

var _ Pricer = (*Engine)(nil)

// NewEngine creates a new Engine. The store serves every lookup unless an
// option replaces one.
func NewEngine(s store.Store, opts ...EngineOption) *Engine {
	eng := &Engine{
		items:           s,
		observations:    s,
		tiers:           s,
		costs:           s,
		params:          mwb.DefaultParams(),
		maxObservations: defaultMaxObservations,
		now:             time.Now,
		log:             slog.Default(),
		tracer:          otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithParams replaces the pricing parameters.
func WithParams(p mwb.Params) EngineOption {
	return func(e *Engine) {
		e.params = p
	}
}

// WithNowFunc sets the clock used when a request has no as-of date.
func WithNowFunc(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithMaxObservations bounds the transaction lines read per call.
// Non-positive values are ignored.
func WithMaxObservations(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxObservations = n
		}
	}
}

// WithTierLookup replaces the tier lookup.
func WithTierLookup(t TierLookup) EngineOption {
	return func(e *Engine) {
		e.tiers = t
	}
}

// WithCostLookup replaces the cost lookup. A nil lookup disables the cost
// floor.
func WithCostLookup(c CostLookup) EngineOption {
	return func(e *Engine) {
		e.costs = c
	}
}

// Params returns the pricing parameters in use.
func (eng *Engine) Params() mwb.Params {
	return eng.params
}

// ComputePrice validates the request, gathers its inputs with a single
// observation read and returns the recommendation. Errors wrap
// domain.ErrInvalidInput or domain.ErrNotFound where they apply; read
// failures are returned as-is with context.
func (eng *Engine) ComputePrice(ctx context.Context, req PriceRequest) (_ *mwb.Result, err error) {
	start := time.Now()
	ctx, span := eng.tracer.Start(ctx, "engine.ComputePrice", trace.WithAttributes(
		attribute.String("mwb.customer_id", req.CustomerID),
		attribute.String("mwb.item_id", req.ItemID),
		attribute.String("mwb.quantity", req.Quantity.String()),
	))
	defer func() {
		metrics.PriceComputationDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.PriceComputationErrorsTotal.WithLabelValues(errorReason(err)).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if err := validate(req); err != nil {
		return nil, err
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = eng.now()
	}
	asOf = asOf.UTC()

	item, err := eng.items.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("looking up item: %w", err)
	}

	tier, err := eng.tiers.CustomerTier(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("looking up customer tier: %w", err)
	}

	landed, err := eng.landedCost(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	since := asOf.AddDate(0, -eng.params.LookbackMonths, 0)
	lines, err := eng.observations.ListTransactionLines(ctx, &store.LineQuery{
		Since:            &since,
		Until:            &asOf,
		ExcludeStatuses:  domain.ExcludedStatuses,
		PreferCustomerID: req.CustomerID,
		PreferItemID:     req.ItemID,
		Limit:            eng.maxObservations,
	})
	if err != nil {
		return nil, fmt.Errorf("reading observations: %w", err)
	}
	metrics.ObservationsFetched.Observe(float64(len(lines)))
	var readNotes []string
	if len(lines) >= eng.maxObservations {
		readNotes = append(readNotes, fmt.Sprintf(
			"observation read truncated at %d lines, wider fallback levels may be incomplete",
			eng.maxObservations,
		))
		eng.log.Warn("observation read hit its bound, oldest unrelated lines dropped",
			"customer_id", req.CustomerID,
			"item_id", req.ItemID,
			"max_observations", eng.maxObservations,
		)
	}

	obs := toObservations(lines)

	var lastKnown *decimal.Decimal
	if len(obs) == 0 && !item.ListPrice.IsPositive() {
		if lastKnown, err = eng.observations.LatestItemPrice(ctx, item.ID, asOf); err != nil {
			return nil, fmt.Errorf("reading latest item price: %w", err)
		}
	}

	res := mwb.Compute(mwb.Input{
		CustomerID:     req.CustomerID,
		ItemID:         req.ItemID,
		Quantity:       req.Quantity,
		AsOf:           asOf,
		Observations:   obs,
		Tier:           tier,
		ListPrice:      item.ListPrice,
		Item:           mwb.ItemText{Name: item.Name, Description: item.Description, SKU: item.SKU},
		LandedCost:     landed,
		CurrentQuote:   req.CurrentQuote,
		LastKnownPrice: lastKnown,
		Warnings:       readNotes,
	}, eng.params)

	eng.record(&res)
	span.SetAttributes(
		attribute.String("mwb.source_level", string(res.SourceLevel)),
		attribute.String("mwb.confidence", string(res.Confidence)),
		attribute.String("mwb.unit_price", res.UnitPrice.StringFixed(2)),
		attribute.Int("mwb.observations", len(obs)),
	)

	eng.log.Debug("price computed",
		"customer_id", req.CustomerID,
		"item_id", req.ItemID,
		"unit_price", res.UnitPrice.StringFixed(2),
		"source_level", res.SourceLevel,
		"confidence", res.Confidence,
		"warnings", len(res.Explanation.Warnings),
	)

	return &res, nil
}

func (eng *Engine) landedCost(ctx context.Context, itemID string) (*decimal.Decimal, error) {
	if eng.costs == nil {
		return nil, nil
	}
	c, err := eng.costs.SupplierCost(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("looking up supplier cost: %w", err)
	}
	if c == nil {
		return nil, nil
	}
	landed := c.Landed()
	return &landed, nil
}

func (*Engine) record(res *mwb.Result) {
	metrics.PriceComputationsTotal.WithLabelValues(string(res.SourceLevel)).Inc()
	metrics.ConfidenceScore.Observe(res.ConfidenceScore)
	for _, g := range res.Explanation.Guardrails {
		if g.Fired {
			metrics.GuardrailFiresTotal.WithLabelValues(g.Name).Inc()
		}
	}
}

func validate(req PriceRequest) error {
	var problems []string
	if strings.TrimSpace(req.CustomerID) == "" {
		problems = append(problems, "customer_id is required")
	}
	if strings.TrimSpace(req.ItemID) == "" {
		problems = append(problems, "item_id is required")
	}
	if !req.Quantity.IsPositive() {
		problems = append(problems, "quantity must be positive")
	}
	if req.CurrentQuote != nil && req.CurrentQuote.IsNegative() {
		problems = append(problems, "current_quote must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// toObservations converts settled lines with a positive price and quantity.
func toObservations(lines []domain.TransactionLine) []mwb.Observation {
	obs := make([]mwb.Observation, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		if !l.Status.IsSettled() || !l.UnitPrice.IsPositive() || !l.Quantity.IsPositive() {
			continue
		}
		obs = append(obs, mwb.Observation{
			UnitPrice:       l.UnitPrice,
			Quantity:        l.Quantity,
			TransactionDate: l.TransactionDate,
			ItemID:          l.ItemID,
			CustomerID:      l.CustomerID,
			Source:          mwb.SourceHistory,
		})
	}
	return obs
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "read"
	}
}
