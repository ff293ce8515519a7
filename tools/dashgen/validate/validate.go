// Package validate checks generated dashboards and rules against the
// metrics the server actually exports.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/mwb-pricing/tools/dashgen/rules"
)

// histogramSuffixes are the series suffixes Prometheus derives from a
// histogram metric name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors make the artifact unusable;
// warnings flag queries that work but are likely wrong.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Dashboard parses every PromQL expression in the dashboard and checks that
// each referenced metric is known. Raw metrics without a job matcher produce
// a warning, since the dashboard datasource may scrape other jobs.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.errorf("marshaling dashboard: %v", err)
		return res
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		res.errorf("decoding dashboard: %v", err)
		return res
	}

	exprs := collectExprs(tree, nil)
	if len(exprs) == 0 {
		res.errorf("dashboard has no queries")
	}
	for _, expr := range exprs {
		checkExpr(&res, expr, known, true)
	}
	return res
}

// Rules parses every rule expression in a PrometheusRule and checks that each
// referenced metric is known.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			if name == "" {
				res.errorf("group %s: rule has neither record nor alert", g.Name)
			}
			if r.Record != "" && !known[r.Record] {
				res.errorf("recording rule %s is not in the known metric set", r.Record)
			}
			checkExpr(&res, r.Expr, known, false)
		}
	}
	return res
}

// Expr validates a single PromQL expression.
func Expr(expr string, known map[string]bool) Result {
	var res Result
	checkExpr(&res, expr, known, false)
	return res
}

func checkExpr(res *Result, expr string, known map[string]bool, requireJob bool) {
	if strings.TrimSpace(expr) == "" {
		res.errorf("empty expression")
		return
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("parsing %q: %v", expr, err)
		return
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		if !isKnown(vs.Name, known) {
			res.errorf("unknown metric %q in %q", vs.Name, expr)
		}
		if requireJob && !strings.Contains(vs.Name, ":") && !hasJobMatcher(vs) {
			res.warnf("metric %q has no job matcher in %q", vs.Name, expr)
		}
		return nil
	})
}

func isKnown(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

func hasJobMatcher(vs *parser.VectorSelector) bool {
	for _, m := range vs.LabelMatchers {
		if m.Name == "job" {
			return true
		}
	}
	return false
}

// collectExprs walks decoded dashboard JSON and returns every "expr" string.
func collectExprs(node any, out []string) []string {
	switch v := node.(type) {
	case map[string]any:
		if expr, ok := v["expr"].(string); ok {
			out = append(out, expr)
		}
		for key, child := range v {
			if key == "expr" {
				continue
			}
			out = collectExprs(child, out)
		}
	case []any:
		for _, child := range v {
			out = collectExprs(child, out)
		}
	}
	return out
}
