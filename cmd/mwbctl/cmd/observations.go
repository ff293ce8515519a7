package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/mwb-pricing/internal/api/client"
)

func observationsCmd() *cobra.Command {
	var (
		customerID string
		itemID     string
		since      string
		limit      int
		offset     int
	)

	cmd := &cobra.Command{
		Use:     "observations",
		Aliases: []string{"obs"},
		Short:   "List the transaction lines used for pricing",
		Long: "List settled invoice lines, newest first. Cancelled and void invoices\n" +
			"are never shown because they are never used for pricing.",
		Example: `  # Everything a customer bought in the last year
  mwbctl observations --customer cust-001 --since 2024-07-01

  # One item across all customers, second page
  mwbctl observations --item item-042 --limit 50 --offset 50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := &apiclient.ObservationsParams{
				CustomerID: customerID,
				ItemID:     itemID,
				Limit:      limit,
				Offset:     offset,
			}
			if since != "" {
				t, err := time.Parse(time.DateOnly, since)
				if err != nil {
					return fmt.Errorf("invalid --since %q: expected YYYY-MM-DD", since)
				}
				params.Since = t
			}

			resp, err := newClient().Observations(cmd.Context(), params)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), resp)
			}

			out := cmd.OutOrStdout()
			if len(resp.Lines) == 0 {
				fmt.Fprintln(out, "No observations found.")
				return nil
			}

			fmt.Fprintf(out, "Showing %d of %d observations\n\n", len(resp.Lines), resp.Total)
			return printObservationsTable(out, resp.Lines)
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "filter by customer ID")
	cmd.Flags().StringVar(&itemID, "item", "", "filter by item ID")
	cmd.Flags().StringVar(&since, "since", "", "earliest invoice date, YYYY-MM-DD")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of results (server default 100)")
	cmd.Flags().IntVar(&offset, "offset", 0, "pagination offset")

	return cmd
}
