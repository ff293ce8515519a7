// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/mwb-pricing/tools/dashgen/panels"
)

// BuildOverview constructs the MWB Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("MWB Overview").
		Uid("mwb-overview").
		Tags([]string{"mwb", "pricing"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.RateLimitedStat()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Pricing.
	b.WithRow(dashboard.NewRowBuilder("Pricing").
		WithPanel(panels.PricesByLevel()).
		WithPanel(panels.PriceErrors()).
		WithPanel(panels.PriceLatency()).
		WithPanel(panels.GuardrailFires()).
		WithPanel(panels.ObservationsFetched()).
		WithPanel(panels.ConfidenceDistribution()))

	// Row 4: Batch.
	b.WithRow(dashboard.NewRowBuilder("Batch").
		WithPanel(panels.BatchRuns()).
		WithPanel(panels.BatchErrors()).
		WithPanel(panels.BatchDuration()).
		WithPanel(panels.WatchPrices()).
		WithPanel(panels.WatchConfidence()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
