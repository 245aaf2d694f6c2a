package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fincentral/backend/internal/api"
	"github.com/fincentral/backend/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server for the daily brief.

Endpoints:
  GET  /health                    - Health check
  GET  /api/daily-brief           - Latest run with picks, plans, risk, news
  GET  /api/daily-brief/history   - Completed run history
  GET  /api/daily-brief/picks     - Picks, optionally filtered by screen
  POST /api/daily-brief/trigger   - Start an analysis run
  GET  /api/screens               - Preset screen definitions

Example:
  go run ./cmd/fincentral api
  go run ./cmd/fincentral api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides config)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== FinCentral API Server ===")

	p, err := initPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	// Override port if flag is set
	if apiPort != "" {
		p.cfg.Port = apiPort
	}

	p.log.WithFields(map[string]interface{}{
		"port": p.cfg.Port,
		"env":  p.cfg.Env,
	}).Info("Initializing API server")

	brief := handlers.NewBriefHandler(
		p.runs, p.picks, p.strategies, p.risk, p.newsRepo, p.engine, p.log,
	)
	router := api.NewRouter(brief, p.log)
	server := api.New(p.cfg, p.log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			p.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	p.log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", p.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	p.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	p.log.Info("Server stopped")
	return nil
}
