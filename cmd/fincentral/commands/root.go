package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fincentral",
	Short: "FinCentral - daily US stock screening pipeline",
	Long: `FinCentral Unified CLI

Daily screening pipeline over the S&P 500: fundamental scores,
preset screens, trade plans and a morning brief API.

Usage:
  go run ./cmd/fincentral [command]

Examples:
  go run ./cmd/fincentral api
  go run ./cmd/fincentral analyze --force
  go run ./cmd/fincentral scheduler start
  go run ./cmd/fincentral status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
