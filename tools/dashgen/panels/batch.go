package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// BatchRuns returns a stat panel showing scheduled batch runs in the last day.
func BatchRuns() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Batch Runs (24h)").
		Description("Scheduled watch pricing runs in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(`+Sel("mwb_batch_runs_total")+`[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}

// BatchErrors returns a stat panel showing watches that failed to price in
// the last day.
func BatchErrors() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Batch Errors (24h)").
		Description("Watch pairs that failed to price in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`sum(increase(`+Sel("mwb_batch_errors_total")+`[24h]))`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// BatchDuration returns a timeseries panel showing batch run duration.
func BatchDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Batch Duration").
		Description("p95 duration of scheduled batch runs").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(HistogramQuantile(0.95, "mwb_batch_duration_seconds", "1h"), "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// WatchPrices returns a timeseries panel tracking the latest recommended unit
// price of every watched customer/item pair.
func WatchPrices() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Watched Prices").
		Description("Latest recommended unit price per watch").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(Sel("mwb_recommended_unit_price"), "{{watch}}", "A")).
		Unit("currencyUSD").
		LineWidth(2).
		Legend(TableLegend("last", "min", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// WatchConfidence returns a timeseries panel tracking the confidence score of
// every watched customer/item pair.
func WatchConfidence() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Watched Confidence").
		Description("Latest confidence score per watch").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(Sel("mwb_recommended_confidence_score"), "{{watch}}", "A")).
		Min(0).
		Max(1).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsRedGreen(0.4)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
