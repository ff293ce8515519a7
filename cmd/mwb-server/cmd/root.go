// Package cmd implements the mwb-server commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mwb-server",
	Short: "Market-weighted bid price recommendations",
	Long: "mwb-server recommends unit prices for a customer, item and quantity from\n" +
		"historical invoice lines, serving them over HTTP and pricing configured\n" +
		"watch pairs on a schedule.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(serveCmd(), migrateCmd(), priceCmd(), versionCommand())
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
