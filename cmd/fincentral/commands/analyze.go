package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fincentral/backend/internal/contracts"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the daily analysis once",
	Long: `Runs the full pipeline for one date: market risk, universe sync,
fundamental scoring, screens, trade plans, news and earnings.

A date that already has a completed run is skipped unless --force is
given, in which case the prior run and its picks are replaced.

Example:
  go run ./cmd/fincentral analyze
  go run ./cmd/fincentral analyze --date 2026-08-28 --force`,
	RunE: runAnalyze,
}

var (
	analyzeDate  string
	analyzeForce bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "analysis date YYYY-MM-DD (default today)")
	analyzeCmd.Flags().BoolVar(&analyzeForce, "force", false, "replace an existing run for the date")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	fmt.Println("=== FinCentral Daily Analysis ===")

	date := time.Now().UTC()
	if analyzeDate != "" {
		parsed, err := time.Parse("2006-01-02", analyzeDate)
		if err != nil {
			return fmt.Errorf("invalid --date (expected YYYY-MM-DD): %w", err)
		}
		date = parsed
	}

	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run, report, err := p.engine.Run(ctx, date, analyzeForce)
	if errors.Is(err, contracts.ErrRunInProgress) {
		return fmt.Errorf("a run for %s is already in progress", date.Format("2006-01-02"))
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Printf("\nRun #%d (%s) %s\n", run.ID, run.RunDate.Format("2006-01-02"), run.Status)
	fmt.Printf("  Analyzed: %d  Passed: %d  Took: %.1fs\n",
		run.StocksAnalyzed, run.StocksPassed, run.ExecutionTimeSeconds)

	if len(report.Results) > 0 {
		fmt.Println("\nStages:")
		for _, res := range report.Results {
			status := "ok"
			switch {
			case res.Skipped:
				status = "skipped"
			case !res.Success:
				status = "FAILED: " + res.Error
			}
			fmt.Printf("  %-17s %5dms  in=%-4d out=%-4d %s\n",
				res.Stage, res.DurationMS, res.InputCount, res.OutputCount, status)
		}
	} else {
		fmt.Println("\nA completed run already existed for this date (use --force to re-run)")
	}

	return nil
}
