package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/donaldgifford/mwb-pricing/pkg/mwb"
	domain "github.com/donaldgifford/mwb-pricing/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printPriceResult(w io.Writer, res *mwb.Result, explain bool) error {
	tw := newTabWriter(w)
	tw.writef("Unit Price:\t$%s\n", res.UnitPrice.StringFixed(2))
	tw.writef("Source Level:\t%s\n", res.SourceLevel)
	tw.writef("Confidence:\t%s (%.2f)\n", res.Confidence, res.ConfidenceScore)
	tw.writef("Observations:\t%d raw, %d blended\n",
		res.Explanation.RawObservationCount, res.Explanation.BlendedObservationCount)
	if r := res.Explanation.Rounding; r != nil {
		tw.writef("Rounding:\t%s -> %s (%s, step %s)\n",
			r.Before.StringFixed(2), r.After.StringFixed(2), r.Rule, r.Increment.String())
	}
	if !explain {
		return tw.finish()
	}

	tw.writef("\nCANDIDATE\tSOURCE\tACCEPT\tEXPECTED\n")
	for i := range res.Explanation.Candidates {
		c := &res.Explanation.Candidates[i]
		marker := ""
		if s := res.Explanation.Selected; s != nil && s.Price.Equal(c.Price) {
			marker = " *"
		}
		tw.writef("$%s%s\t%s\t%.3f\t$%s\n",
			c.Price.StringFixed(2), marker, c.Source, c.AcceptanceProbability, c.ExpectedRevenue.StringFixed(2))
	}

	if len(res.Explanation.Guardrails) > 0 {
		tw.writef("\nGUARDRAIL\tTHRESHOLD\tRESULT\n")
		for _, g := range res.Explanation.Guardrails {
			tw.writef("%s\t$%s\t%s\n", g.Name, g.Threshold.StringFixed(2), guardrailOutcome(g))
		}
	}

	if len(res.Explanation.Warnings) > 0 {
		tw.writef("\nWARNINGS\n")
		for _, msg := range res.Explanation.Warnings {
			tw.writef("- %s\n", msg)
		}
	}

	return tw.finish()
}

func guardrailOutcome(g mwb.GuardrailCheck) string {
	switch {
	case g.Skipped:
		return "skipped: " + g.Reason
	case g.Fired:
		return fmt.Sprintf("$%s -> $%s", g.Before.StringFixed(2), g.After.StringFixed(2))
	default:
		return "ok"
	}
}

func printObservationsTable(w io.Writer, lines []domain.TransactionLine) error {
	tw := newTabWriter(w)
	tw.writef("DATE\tCUSTOMER\tITEM\tQTY\tUNIT PRICE\tSTATUS\tINVOICE\n")
	for i := range lines {
		l := &lines[i]
		tw.writef("%s\t%s\t%s\t%s\t$%s\t%s\t%s\n",
			l.TransactionDate.Format("2006-01-02"),
			l.CustomerID,
			l.ItemID,
			l.Quantity.String(),
			l.UnitPrice.StringFixed(2),
			l.Status,
			l.InvoiceID,
		)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
