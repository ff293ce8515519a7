package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// mwb-server operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "mwb-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "mwb-alerts",
					Rules: []Rule{
						{
							Alert: "MwbDown",
							Expr:  `absent(up{job="mwb-server"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "MWB pricing server is down",
								"description": "The mwb-server job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "MwbReadinessDown",
							Expr:  `mwb_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "MWB pricing server cannot reach its database",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes.",
							},
						},
						{
							Alert: "MwbHighErrorRate",
							Expr:  `mwb:http_errors:rate5m / mwb:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on the MWB pricing server",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "MwbPriceReadErrors",
							Expr:  `mwb:price_errors:rate5m / mwb:price_computations:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Price recommendations are failing",
								"description": "More than 10% of recommendations failed on history reads or timeouts over the last 5 minutes.",
							},
						},
						{
							Alert: "MwbBatchErrors",
							Expr:  `mwb:batch_errors:rate5m > 0`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Scheduled watch pricing is failing",
								"description": "At least one configured watch has failed to price for more than 15 minutes.",
							},
						},
						{
							Alert: "MwbLowConfidence",
							Expr:  `histogram_quantile(0.5, sum(rate(mwb_confidence_score_bucket[1h])) by (le)) < 0.4`,
							For:   "1h",
							Labels: map[string]string{
								"severity": "info",
							},
							Annotations: map[string]string{
								"summary":     "Median recommendation confidence is low",
								"description": "Half of the recommendations in the last hour scored below 0.4 confidence. History may be sparse or stale.",
							},
						},
						{
							Alert: "MwbRateLimiting",
							Expr:  `rate(mwb_http_rate_limited_total[5m]) > 1`,
							For:   "10m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "API clients are being rate limited",
								"description": "More than one request per second has been rejected with 429 for 10 minutes.",
							},
						},
					},
				},
			},
		},
	}
}
