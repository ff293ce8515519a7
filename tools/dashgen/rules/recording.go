package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "mwb-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "mwb-recording",
					Rules: []Rule{
						{
							Record: "mwb:http_requests:rate5m",
							Expr:   `sum(rate(mwb_http_requests_total[5m]))`,
						},
						{
							Record: "mwb:http_errors:rate5m",
							Expr:   `sum(rate(mwb_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "mwb:price_computations:rate5m",
							Expr:   `sum(rate(mwb_price_computations_total[5m]))`,
						},
						{
							Record: "mwb:price_errors:rate5m",
							Expr:   `sum(rate(mwb_price_computation_errors_total{reason!~"invalid_input|not_found"}[5m]))`,
						},
						{
							Record: "mwb:batch_errors:rate5m",
							Expr:   `rate(mwb_batch_errors_total[5m])`,
						},
					},
				},
			},
		},
	}
}
