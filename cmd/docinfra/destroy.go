package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/config"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/deploy"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/status"
)

var (
	destroyConfigFile  string
	destroyAutoApprove bool
	destroyTimeout     string
	destroyDryRun      bool
	destroyTemplates   templateFlags

	destroyCmd = &cobra.Command{
		Use:   "destroy",
		Short: "Destroy the deployed infrastructure",
		Long: `Destroys all resources managed for this deployment: Function Apps,
the hosting plan, Event Grid wiring, storage account, managed identity, and
Application Insights.

WARNING: This operation is destructive and cannot be undone. All data in the
storage account will be lost.

By default, you will be prompted to confirm before destruction begins.
Use --auto-approve to skip the confirmation prompt.`,
		RunE: runDestroy,
	}
)

func init() {
	destroyCmd.Flags().StringVarP(&destroyConfigFile, "file", "f", "", "Path to deployment configuration file (required)")
	destroyCmd.Flags().BoolVar(&destroyAutoApprove, "auto-approve", false, "Skip confirmation prompt and destroy immediately")
	destroyCmd.Flags().StringVar(&destroyTimeout, "timeout", "", "Override default timeout (e.g., '45m', '1h')")
	destroyCmd.Flags().BoolVar(&destroyDryRun, "dry-run", false, "Show what would be destroyed without actually deleting")
	destroyCmd.Flags().StringVar(&destroyTemplates.repo, "templates-repo", "", "Git repository with engine template overrides")
	destroyCmd.Flags().StringVar(&destroyTemplates.ref, "templates-ref", "", "Branch or tag of the template repository (default: main)")
	destroyCmd.Flags().StringVar(&destroyTemplates.path, "templates-path", "", "Subdirectory of the template repository holding the templates")

	// Panic is appropriate in init() since we cannot return errors and this indicates a programming error
	if err := destroyCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}

func runDestroy(cmd *cobra.Command, args []string) error {
	// Get cancellable context from cobra (for signal handling)
	ctx := cmd.Context()
	tracer := otel.Tracer("docinfra")
	ctx, span := tracer.Start(ctx, "cmd.destroy")
	defer span.End()

	span.SetAttributes(
		attribute.String("config.file", destroyConfigFile),
		attribute.Bool("auto_approve", destroyAutoApprove),
		attribute.Bool("dry_run", destroyDryRun),
	)

	slog.Info("Starting infrastructure destruction", "config_file", destroyConfigFile)

	// Parse configuration first to show user what will be destroyed
	cfg, err := config.ParseConfig(ctx, destroyConfigFile)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to parse configuration", "error", err, "file", destroyConfigFile)
		return err
	}

	slog.Info("Configuration parsed successfully",
		"project_name", cfg.ProjectName,
		"resource_group", cfg.ResourceGroup,
	)

	// Set runtime options from CLI flags
	cfg.DryRun = destroyDryRun

	// Apply custom timeout if specified
	if destroyTimeout != "" {
		duration, err := time.ParseDuration(destroyTimeout)
		if err != nil {
			span.RecordError(err)
			slog.Error("Invalid timeout duration", "error", err, "timeout", destroyTimeout)
			return fmt.Errorf("invalid timeout duration %q: %w", destroyTimeout, err)
		}
		cfg.Timeout = duration
		span.SetAttributes(attribute.String("timeout", destroyTimeout))
		slog.Info("Using custom timeout", "timeout", duration)
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	// Show what will be destroyed and get confirmation (skip for dry-run)
	if !destroyAutoApprove && !destroyDryRun {
		if err := confirmDestruction(cfg); err != nil {
			span.RecordError(err)
			slog.Info("Destruction cancelled by user")
			return err
		}
	}

	// Setup status handler for progress updates
	ctx, cleanupStatus := status.StartHandler(ctx, statusLogHandler())
	defer cleanupStatus()

	// Handle context cancellation (from signal interrupt)
	defer func() {
		if ctx.Err() == context.Canceled {
			slog.Warn("Destruction interrupted by user")
		}
	}()

	opts, cleanupTemplates, err := resolveTemplates(ctx, destroyTemplates)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to fetch template overrides", "error", err)
		return err
	}
	defer cleanupTemplates()

	// Destroy infrastructure
	if err := deploy.New().Destroy(ctx, cfg, opts); err != nil {
		span.RecordError(err)
		slog.Error("Destruction failed", "error", err, "project_name", cfg.ProjectName)
		return err
	}

	slog.Info("Destruction completed successfully", "project_name", cfg.ProjectName)

	return nil
}

// confirmDestruction prompts the user to confirm before destroying infrastructure
func confirmDestruction(cfg *config.DeployConfig) error {
	tracer := otel.Tracer("docinfra")
	_, span := tracer.Start(context.Background(), "cmd.confirmDestruction")
	defer span.End()

	// Show warning message
	fmt.Println("\n⚠️  WARNING: You are about to destroy the following infrastructure:")
	fmt.Printf("   Project Name:   %s\n", cfg.ProjectName)
	fmt.Printf("   Resource Group: %s\n", cfg.ResourceGroup)
	fmt.Printf("   Location:       %s\n", cfg.Location)
	fmt.Printf("   Hosting Tier:   %s\n", cfg.HostingPlan.SkuTier)
	fmt.Printf("   Function Apps:  %d\n", len(cfg.Apps))

	fmt.Println("\n❌ This will permanently delete all resources and data.")
	fmt.Println("   This action cannot be undone.")
	fmt.Print("\nDo you want to continue? Type 'yes' to confirm: ")

	// Read user input
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to read user input: %w", err)
	}

	// Trim whitespace and newlines
	response = strings.TrimSpace(response)

	// Check if user confirmed
	if response != "yes" {
		span.SetAttributes(attribute.String("user_response", response))
		return fmt.Errorf("destruction cancelled (user did not type 'yes')")
	}

	span.SetAttributes(attribute.Bool("confirmed", true))
	fmt.Println()
	return nil
}
