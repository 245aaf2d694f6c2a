package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fincentral/backend/internal/contracts"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest analysis run",
	Long: `Prints the latest completed analysis run with its picks grouped
by screen and the current market risk snapshot.

Example:
  go run ./cmd/fincentral status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== FinCentral Status ===")

	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	ctx := context.Background()

	run, err := p.runs.GetLatestCompleted(ctx)
	if errors.Is(err, contracts.ErrRunNotFound) {
		fmt.Println("\nNo completed analysis run yet. Try: fincentral analyze")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load latest run: %w", err)
	}

	fmt.Printf("\nRun #%d  %s\n", run.ID, run.RunDate.Format("2006-01-02"))
	fmt.Printf("  Analyzed: %d  Passed: %d  Took: %.1fs\n",
		run.StocksAnalyzed, run.StocksPassed, run.ExecutionTimeSeconds)

	picks, err := p.picks.GetByRun(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("load picks: %w", err)
	}

	if len(picks) > 0 {
		fmt.Println("\nPicks:")
		current := ""
		for _, pick := range picks {
			if pick.ScreenName != current {
				current = pick.ScreenName
				fmt.Printf("  [%s]\n", current)
			}
			line := fmt.Sprintf("    #%d %-6s", pick.Rank, pick.Ticker)
			if pick.EarningsProximity != "" {
				line += "  (" + pick.EarningsProximity + ")"
			}
			fmt.Println(line)
		}
	}

	snapshot, err := p.risk.GetLatest(ctx)
	if err == nil {
		fmt.Printf("\nMarket risk: %d/10 (%s)\n", snapshot.RiskScore, snapshot.RiskLabel)
		if snapshot.Summary != "" {
			fmt.Printf("  %s\n", snapshot.Summary)
		}
	}

	return nil
}
