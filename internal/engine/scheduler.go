package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/donaldgifford/mwb-pricing/internal/metrics"
)

const defaultBatchTimeout = 5 * time.Minute

// Watch is a customer/item pair priced on every batch run.
type Watch struct {
	Name       string
	CustomerID string
	ItemID     string
	Quantity   decimal.Decimal
}

// Scheduler periodically prices the configured watches and exports the
// results as gauges. It never writes anywhere else.
type Scheduler struct {
	cron    *cron.Cron
	pricer  Pricer
	watches []Watch
	timeout time.Duration
	log     *slog.Logger
}

// NewScheduler creates a Scheduler that prices watches every interval.
// Overlapping runs are skipped.
func NewScheduler(
	p Pricer,
	interval time.Duration,
	watches []Watch,
	log *slog.Logger,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("batch interval must be positive, got %s", interval)
	}

	cl := cronLogger{log: log}
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	s := &Scheduler{
		cron:    c,
		pricer:  p,
		watches: watches,
		timeout: defaultBatchTimeout,
		log:     log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runBatch); err != nil {
		return nil, fmt.Errorf("registering batch job: %w", err)
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "watches", len(s.watches))
	s.cron.Start()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RunBatch prices every watch once. A failing watch does not stop the
// others; all failures are joined into the returned error.
func (s *Scheduler) RunBatch(ctx context.Context) (int, error) {
	start := time.Now()
	metrics.BatchRunsTotal.Inc()
	defer func() {
		metrics.BatchDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		priced int
		errs   []error
	)
	for i := range s.watches {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		w := &s.watches[i]
		res, err := s.pricer.ComputePrice(ctx, PriceRequest{
			CustomerID: w.CustomerID,
			ItemID:     w.ItemID,
			Quantity:   w.Quantity,
		})
		if err != nil {
			metrics.BatchErrorsTotal.Inc()
			s.log.Error("batch pricing failed", "watch", w.Name, "error", err)
			errs = append(errs, fmt.Errorf("watch %s: %w", w.Name, err))
			continue
		}

		price, _ := res.UnitPrice.Float64()
		metrics.RecommendedPrice.WithLabelValues(w.Name, w.CustomerID, w.ItemID).Set(price)
		metrics.RecommendedConfidence.WithLabelValues(w.Name, w.CustomerID, w.ItemID).Set(res.ConfidenceScore)
		priced++

		s.log.Info("watch priced",
			"watch", w.Name,
			"unit_price", res.UnitPrice.StringFixed(2),
			"source_level", res.SourceLevel,
			"confidence", res.Confidence,
		)
	}

	return priced, errors.Join(errs...)
}

func (s *Scheduler) runBatch() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.log.Info("scheduled batch pricing starting")
	priced, err := s.RunBatch(ctx)
	if err != nil {
		s.log.Error("scheduled batch pricing finished with errors", "priced", priced, "error", err)
		return
	}
	s.log.Info("scheduled batch pricing finished", "priced", priced)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
