package cmd

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	apiclient "github.com/donaldgifford/mwb-pricing/internal/api/client"
)

func priceCmd() *cobra.Command {
	var (
		customerID string
		itemID     string
		quantity   string
		asOf       string
		quote      string
		explain    bool
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Get a price recommendation",
		Long: "Ask the server for the market-weighted bid of an item for a customer\n" +
			"and quantity. Use --explain to print the candidates, guardrails and\n" +
			"warnings behind the price.",
		Example: `  # Recommend a unit price for five units
  mwbctl price --customer cust-001 --item item-042 --quantity 5

  # Price as of a past date and compare with an existing quote
  mwbctl price --customer cust-001 --item item-042 --as-of 2025-06-30 --quote 120 --explain

  # Full explanation as JSON
  mwbctl price --customer cust-001 --item item-042 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := buildPriceRequest(customerID, itemID, quantity, asOf, quote)
			if err != nil {
				return err
			}

			res, err := newClient().Price(cmd.Context(), req)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printPriceResult(cmd.OutOrStdout(), res, explain)
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "customer ID (required)")
	cmd.Flags().StringVar(&itemID, "item", "", "item ID (required)")
	cmd.Flags().StringVar(&quantity, "quantity", "1", "requested quantity")
	cmd.Flags().StringVar(&asOf, "as-of", "", "reference date, YYYY-MM-DD (default now)")
	cmd.Flags().StringVar(&quote, "quote", "", "price already quoted to the customer")
	cmd.Flags().BoolVar(&explain, "explain", false, "print candidates, guardrails and warnings")
	cobra.CheckErr(cmd.MarkFlagRequired("customer"))
	cobra.CheckErr(cmd.MarkFlagRequired("item"))

	return cmd
}

func buildPriceRequest(customerID, itemID, quantity, asOf, quote string) (*apiclient.PriceRequest, error) {
	qty, err := decimal.NewFromString(quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid --quantity %q: %w", quantity, err)
	}

	req := &apiclient.PriceRequest{CustomerID: customerID, ItemID: itemID, Quantity: qty}

	if asOf != "" {
		t, err := time.Parse(time.DateOnly, asOf)
		if err != nil {
			return nil, fmt.Errorf("invalid --as-of %q: expected YYYY-MM-DD", asOf)
		}
		req.AsOf = &t
	}

	if quote != "" {
		q, err := decimal.NewFromString(quote)
		if err != nil {
			return nil, fmt.Errorf("invalid --quote %q: %w", quote, err)
		}
		req.CurrentQuote = &q
	}

	return req, nil
}
