// Package config handles loading and validating the server configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/mwb-pricing/pkg/mwb"
)

// Config is the top-level server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Pricing   PricingConfig   `yaml:"pricing"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Batch     BatchConfig     `yaml:"batch"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig defines the echo HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// PricingConfig exposes every pricing knob. Zero values take the built-in
// default.
type PricingConfig struct {
	LookbackMonths        int                  `yaml:"lookback_months"`
	MinObservations       int                  `yaml:"min_observations"`
	BlendThreshold        int                  `yaml:"blend_threshold"`
	MarketWeightRatio     float64              `yaml:"market_weight_ratio"`
	HalfLifeDays          float64              `yaml:"half_life_days"`
	TrendHorizonDays      float64              `yaml:"trend_horizon_days"`
	TrendCap              float64              `yaml:"trend_cap"`
	QuantityDiscountFloor float64              `yaml:"quantity_discount_floor"`
	MinMarkup             float64              `yaml:"min_markup"`
	StatCeilingMultiplier float64              `yaml:"stat_ceiling_multiplier"`
	ListCeilingMultiplier float64              `yaml:"list_ceiling_multiplier"`
	FreshnessWindowDays   int                  `yaml:"freshness_window_days"`
	ConfidenceSaturation  int                  `yaml:"confidence_saturation"`
	CandidateQuantiles    []float64            `yaml:"candidate_quantiles"`
	RoundingRules         []RoundingRuleConfig `yaml:"rounding_rules"`
	MaxObservations       int                  `yaml:"max_observations"`
	// DisableCostFloor skips the supplier cost lookup entirely.
	DisableCostFloor bool `yaml:"disable_cost_floor"`
}

// RoundingRuleConfig maps item keywords to a price increment.
type RoundingRuleConfig struct {
	Name      string   `yaml:"name"`
	Keywords  []string `yaml:"keywords"`
	Increment string   `yaml:"increment"`
}

// Params converts the section into pricing parameters. Call it only on a
// validated config.
func (p *PricingConfig) Params() mwb.Params {
	params := mwb.Params{
		LookbackMonths:        p.LookbackMonths,
		MinObservations:       p.MinObservations,
		BlendThreshold:        p.BlendThreshold,
		MarketWeightRatio:     p.MarketWeightRatio,
		HalfLifeDays:          p.HalfLifeDays,
		TrendHorizonDays:      p.TrendHorizonDays,
		TrendCapFraction:      p.TrendCap,
		QuantityDiscountFloor: p.QuantityDiscountFloor,
		MinMarkup:             p.MinMarkup,
		StatCeilingMultiplier: p.StatCeilingMultiplier,
		ListCeilingMultiplier: p.ListCeilingMultiplier,
		FreshnessWindowDays:   p.FreshnessWindowDays,
		ConfidenceSaturation:  p.ConfidenceSaturation,
		CandidateQuantiles:    append([]float64(nil), p.CandidateQuantiles...),
	}
	for _, r := range p.RoundingRules {
		inc, _ := decimal.NewFromString(r.Increment)
		params.RoundingRules = append(params.RoundingRules, mwb.RoundingRule{
			Name:      r.Name,
			Keywords:  r.Keywords,
			Increment: inc,
		})
	}
	return params
}

// RateLimitConfig defines the API token bucket.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// BatchConfig defines the periodic pricing of watched pairs.
type BatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Watches  []WatchConfig `yaml:"watches"`
}

// WatchConfig is one customer/item pair priced on every batch run.
type WatchConfig struct {
	Name       string `yaml:"name"`
	CustomerID string `yaml:"customer_id"`
	ItemID     string `yaml:"item_id"`
	Quantity   string `yaml:"quantity"`
}

// QuantityDecimal returns the parsed quantity of a validated watch.
func (w *WatchConfig) QuantityDecimal() decimal.Decimal {
	q, _ := decimal.NewFromString(w.Quantity)
	return q
}

// TracingConfig defines OTLP trace export.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
	ServiceName string  `yaml:"service_name"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyPricingDefaults(&cfg.Pricing)
	applyRateLimitDefaults(&cfg.RateLimit)
	applyBatchDefaults(&cfg.Batch)
	applyTracingDefaults(&cfg.Tracing)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyPricingDefaults(p *PricingConfig) {
	def := mwb.DefaultParams()
	orInt := func(v *int, d int) {
		if *v == 0 {
			*v = d
		}
	}
	orFloat := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}

	orInt(&p.LookbackMonths, def.LookbackMonths)
	orInt(&p.MinObservations, def.MinObservations)
	orInt(&p.BlendThreshold, def.BlendThreshold)
	orFloat(&p.MarketWeightRatio, def.MarketWeightRatio)
	orFloat(&p.HalfLifeDays, def.HalfLifeDays)
	orFloat(&p.TrendHorizonDays, def.TrendHorizonDays)
	orFloat(&p.TrendCap, def.TrendCapFraction)
	orFloat(&p.QuantityDiscountFloor, def.QuantityDiscountFloor)
	orFloat(&p.MinMarkup, def.MinMarkup)
	orFloat(&p.StatCeilingMultiplier, def.StatCeilingMultiplier)
	orFloat(&p.ListCeilingMultiplier, def.ListCeilingMultiplier)
	orInt(&p.FreshnessWindowDays, def.FreshnessWindowDays)
	orInt(&p.ConfidenceSaturation, def.ConfidenceSaturation)
	orInt(&p.MaxObservations, 50000)

	if len(p.CandidateQuantiles) == 0 {
		p.CandidateQuantiles = def.CandidateQuantiles
	}
	if len(p.RoundingRules) == 0 {
		for _, r := range def.RoundingRules {
			p.RoundingRules = append(p.RoundingRules, RoundingRuleConfig{
				Name:      r.Name,
				Keywords:  r.Keywords,
				Increment: r.Increment.String(),
			})
		}
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.RequestsPerSecond == 0 {
		r.RequestsPerSecond = 20
	}
	if r.Burst == 0 {
		r.Burst = 40
	}
}

func applyBatchDefaults(b *BatchConfig) {
	if b.Interval == 0 {
		b.Interval = time.Hour
	}
	for i := range b.Watches {
		w := &b.Watches[i]
		if w.Quantity == "" {
			w.Quantity = "1"
		}
		if w.Name == "" {
			w.Name = w.CustomerID + "/" + w.ItemID
		}
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
	}
	if t.ServiceName == "" {
		t.ServiceName = "mwb-server"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, errors.New("database.user is required"))
	}

	errs = append(errs, validatePricing(&cfg.Pricing)...)
	errs = append(errs, validateBatch(&cfg.Batch)...)

	if cfg.RateLimit.Enabled && (cfg.RateLimit.RequestsPerSecond < 0 || cfg.RateLimit.Burst < 0) {
		errs = append(errs, errors.New("rate_limit.requests_per_second and rate_limit.burst must not be negative"))
	}

	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be within [0, 1] (got %v)", cfg.Tracing.SampleRatio))
	}

	switch strings.ToLower(cfg.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level,
		))
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}

func validatePricing(p *PricingConfig) []error {
	var errs []error

	for _, f := range []struct {
		name  string
		value float64
	}{
		{"pricing.lookback_months", float64(p.LookbackMonths)},
		{"pricing.min_observations", float64(p.MinObservations)},
		{"pricing.half_life_days", p.HalfLifeDays},
		{"pricing.max_observations", float64(p.MaxObservations)},
	} {
		if f.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive (got %v)", f.name, f.value))
		}
	}

	if p.MarketWeightRatio < 0 || p.MarketWeightRatio > 1 {
		errs = append(errs, fmt.Errorf("pricing.market_weight_ratio must be within [0, 1] (got %v)", p.MarketWeightRatio))
	}
	if p.TrendCap < 0 || p.TrendCap >= 1 {
		errs = append(errs, fmt.Errorf("pricing.trend_cap must be within [0, 1) (got %v)", p.TrendCap))
	}
	if p.QuantityDiscountFloor <= 0 || p.QuantityDiscountFloor > 1 {
		errs = append(errs, fmt.Errorf(
			"pricing.quantity_discount_floor must be within (0, 1] (got %v)", p.QuantityDiscountFloor,
		))
	}
	if p.MinMarkup < 1 {
		errs = append(errs, fmt.Errorf("pricing.min_markup must be at least 1 (got %v)", p.MinMarkup))
	}
	if p.StatCeilingMultiplier < 1 || p.ListCeilingMultiplier < 1 {
		errs = append(errs, errors.New("pricing ceiling multipliers must be at least 1"))
	}
	for _, q := range p.CandidateQuantiles {
		if q <= 0 || q > 1 {
			errs = append(errs, fmt.Errorf("pricing.candidate_quantiles must be within (0, 1] (got %v)", q))
		}
	}
	for i, r := range p.RoundingRules {
		inc, err := decimal.NewFromString(r.Increment)
		if err != nil || !inc.IsPositive() {
			errs = append(errs, fmt.Errorf(
				"pricing.rounding_rules[%d].increment must be a positive decimal (got %q)", i, r.Increment,
			))
		}
		if len(r.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("pricing.rounding_rules[%d].keywords must not be empty", i))
		}
	}

	return errs
}

func validateBatch(b *BatchConfig) []error {
	if !b.Enabled {
		return nil
	}

	var errs []error
	if b.Interval < time.Minute {
		errs = append(errs, fmt.Errorf("batch.interval must be at least 1m (got %s)", b.Interval))
	}

	seen := make(map[string]struct{}, len(b.Watches))
	for i, w := range b.Watches {
		if w.CustomerID == "" || w.ItemID == "" {
			errs = append(errs, fmt.Errorf("batch.watches[%d] needs customer_id and item_id", i))
		}
		if q, err := decimal.NewFromString(w.Quantity); err != nil || !q.IsPositive() {
			errs = append(errs, fmt.Errorf("batch.watches[%d].quantity must be a positive decimal (got %q)", i, w.Quantity))
		}
		if _, dup := seen[w.Name]; dup {
			errs = append(errs, fmt.Errorf("batch.watches[%d].name %q is not unique", i, w.Name))
		}
		seen[w.Name] = struct{}{}
	}
	return errs
}
