package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the company directory",
	Long: `Syncs the company directory from the S&P 500 membership.

Sources, in order: FMP constituents API, Wikipedia table scrape,
built-in seed list.

Example:
  go run ./cmd/fincentral seed`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	fmt.Println("=== FinCentral Universe Seed ===")

	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	count, source, err := p.universe.Sync(context.Background())
	if err != nil {
		return fmt.Errorf("sync universe: %w", err)
	}

	fmt.Printf("\nSynced %d companies (source: %s)\n", count, source)
	return nil
}
