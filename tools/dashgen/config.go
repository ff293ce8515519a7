package main

import "errors"

// KnownMetrics is the set of metric names exported by mwb-server plus the
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"mwb_http_request_duration_seconds": true,
	"mwb_http_requests_total":           true,
	"mwb_http_rate_limited_total":       true,

	// Health metrics.
	"mwb_healthz_up": true,
	"mwb_readyz_up":  true,

	// Pricing metrics.
	"mwb_price_computations_total":           true,
	"mwb_price_computation_errors_total":     true,
	"mwb_price_computation_duration_seconds": true,
	"mwb_confidence_score":                   true,
	"mwb_observations_fetched":               true,
	"mwb_guardrail_fires_total":              true,

	// Batch metrics.
	"mwb_batch_runs_total":             true,
	"mwb_batch_errors_total":           true,
	"mwb_batch_duration_seconds":       true,
	"mwb_recommended_unit_price":       true,
	"mwb_recommended_confidence_score": true,

	// Recording rules.
	"mwb:http_requests:rate5m":      true,
	"mwb:http_errors:rate5m":        true,
	"mwb:price_computations:rate5m": true,
	"mwb:price_errors:rate5m":       true,
	"mwb:batch_errors:rate5m":       true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
