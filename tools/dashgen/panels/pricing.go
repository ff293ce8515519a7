package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// PricesByLevel returns a timeseries panel showing the recommendation rate
// split by the fallback level that produced it. A rising share of
// global_global means customers are being priced without their own history.
func PricesByLevel() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Recommendations by Level").
		Description("Price recommendations per second by fallback level").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum by (source_level) (rate(`+Sel("mwb_price_computations_total")+`[5m]))`,
			"{{source_level}}", "A",
		)).
		Unit("ops").
		FillOpacity(30).
		LineWidth(1).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// PriceErrors returns a timeseries panel showing failed recommendations
// by reason.
func PriceErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Recommendation Errors").
		Description("Failed price recommendations per second by reason").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum by (reason) (rate(`+Sel("mwb_price_computation_errors_total")+`[5m]))`,
			"{{reason}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// PriceLatency returns a timeseries panel showing recommendation latency,
// including the history read.
func PriceLatency() *timeseries.PanelBuilder {
	const metric = "mwb_price_computation_duration_seconds"
	return timeseries.NewPanelBuilder().
		Title("Recommendation Latency").
		Description("Price recommendation duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(HistogramQuantile(0.50, metric, "5m"), "p50", "A")).
		WithTarget(PromQuery(HistogramQuantile(0.95, metric, "5m"), "p95", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// GuardrailFires returns a timeseries panel showing how often each guardrail
// changed a recommended price.
func GuardrailFires() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Guardrail Fires").
		Description("Guardrails that moved a price, per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum by (guardrail) (rate(`+Sel("mwb_guardrail_fires_total")+`[5m]))`,
			"{{guardrail}}", "A",
		)).
		Unit("ops").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ObservationsFetched returns a timeseries panel showing how many
// transaction lines each recommendation read.
func ObservationsFetched() *timeseries.PanelBuilder {
	const metric = "mwb_observations_fetched"
	return timeseries.NewPanelBuilder().
		Title("Observations per Recommendation").
		Description("Transaction lines read per price recommendation").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(HistogramQuantile(0.50, metric, "15m"), "p50", "A")).
		WithTarget(PromQuery(HistogramQuantile(0.95, metric, "15m"), "p95", "B")).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ConfidenceDistribution returns a bar gauge panel showing the distribution
// of confidence scores across histogram buckets.
func ConfidenceDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Confidence Distribution").
		Description("Recommendation confidence scores (0-1) over the last hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(increase(`+Sel("mwb_confidence_score_bucket")+`[1h])) by (le)`,
			"{{le}}", "A",
		)).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}
