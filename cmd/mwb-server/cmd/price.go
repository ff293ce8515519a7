package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/mwb-pricing/internal/engine"
)

type priceFlags struct {
	customerID string
	itemID     string
	quantity   string
	asOf       string
	quote      string
}

func priceCmd() *cobra.Command {
	var f priceFlags

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Compute one recommendation directly against the database",
		Long: "Compute a recommendation without going through the HTTP API and print\n" +
			"the result with its full explanation as JSON.",
		Example: `  mwb-server price --customer cust-001 --item item-042 --quantity 5
  mwb-server price --customer cust-001 --item item-042 --as-of 2025-06-30 --quote 120`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}

			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			s, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := newEngine(cfg, s, log).ComputePrice(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&f.customerID, "customer", "", "customer ID (required)")
	cmd.Flags().StringVar(&f.itemID, "item", "", "item ID (required)")
	cmd.Flags().StringVar(&f.quantity, "quantity", "1", "requested quantity")
	cmd.Flags().StringVar(&f.asOf, "as-of", "", "reference date, YYYY-MM-DD (default now)")
	cmd.Flags().StringVar(&f.quote, "quote", "", "price already quoted to the customer")
	cobra.CheckErr(cmd.MarkFlagRequired("customer"))
	cobra.CheckErr(cmd.MarkFlagRequired("item"))

	return cmd
}

func (f *priceFlags) request() (engine.PriceRequest, error) {
	qty, err := decimal.NewFromString(f.quantity)
	if err != nil {
		return engine.PriceRequest{}, fmt.Errorf("invalid --quantity %q: %w", f.quantity, err)
	}

	req := engine.PriceRequest{CustomerID: f.customerID, ItemID: f.itemID, Quantity: qty}

	if f.asOf != "" {
		asOf, err := time.Parse(time.DateOnly, f.asOf)
		if err != nil {
			return engine.PriceRequest{}, fmt.Errorf("invalid --as-of %q: expected YYYY-MM-DD", f.asOf)
		}
		req.AsOf = asOf
	}

	if f.quote != "" {
		quote, err := decimal.NewFromString(f.quote)
		if err != nil {
			return engine.PriceRequest{}, fmt.Errorf("invalid --quote %q: %w", f.quote, err)
		}
		req.CurrentQuote = &quote
	}

	return req, nil
}
