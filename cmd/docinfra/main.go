package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "docinfra",
	Short: "Document processing infrastructure - Azure hosting for the document accelerator",
	Long: `docinfra is a standalone CLI tool that provisions the Azure hosting
infrastructure for the document-processing accelerator: the Functions hosting
plan (Flex Consumption or classic), the Function Apps, and their collaborator
resources (storage, Event Grid, Application Insights, managed identity).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Setup structured logging
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)
	},
}

func init() {
	// Load .env file if it exists (silently ignore if not found)
	// This allows users to optionally use .env for local development
	_ = godotenv.Load()

	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx := context.Background()

	// Setup OpenTelemetry
	_, shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		slog.Error("Failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Error("Failed to shutdown telemetry", "error", err)
		}
	}()

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
