package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server liveness and readiness",
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := newClient().Health(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				if err := outputJSON(cmd.OutOrStdout(), h); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "live:  %v\nready: %v\n", h.Live, h.Ready)
			}

			if !h.Ready {
				return errors.New("server is not ready")
			}
			return nil
		},
	}
}
