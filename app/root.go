// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "riskwatch",
	Short: "RiskWatch is a web-based monitoring and risk management dashboard",
	Long: `RiskWatch is a web-based monitoring and risk management dashboard
that authenticates against a directory service and serves transaction,
device and service level statistics to its SPA frontend.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
