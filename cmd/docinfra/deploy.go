package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/config"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/deploy"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/status"
)

var (
	deployConfigFile string
	deployDryRun     bool
	deployTimeout    string
	deployTemplates  templateFlags

	deployCmd = &cobra.Command{
		Use:   "deploy",
		Short: "Deploy infrastructure based on configuration file",
		Long: `Deploy the document-processing hosting infrastructure based on the
provided configuration file. Foundation resources (storage account, managed
identity, Application Insights) are created first; the hosting plan, Function
Apps, and Event Grid wiring follow once the foundation outputs are known.

Use --dry-run to preview changes without applying them.`,
		RunE: runDeploy,
	}
)

func init() {
	deployCmd.Flags().StringVarP(&deployConfigFile, "file", "f", "", "Path to deployment configuration file (required)")
	deployCmd.Flags().BoolVar(&deployDryRun, "dry-run", false, "Show what would be deployed without making changes")
	deployCmd.Flags().StringVar(&deployTimeout, "timeout", "", "Override default timeout (e.g., '45m', '1h')")
	deployCmd.Flags().StringVar(&deployTemplates.repo, "templates-repo", "", "Git repository with engine template overrides")
	deployCmd.Flags().StringVar(&deployTemplates.ref, "templates-ref", "", "Branch or tag of the template repository (default: main)")
	deployCmd.Flags().StringVar(&deployTemplates.path, "templates-path", "", "Subdirectory of the template repository holding the templates")
	// Panic is appropriate in init() since we cannot return errors and this indicates a programming error
	if err := deployCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}

func runDeploy(cmd *cobra.Command, args []string) error {
	// Get cancellable context from cobra (for signal handling)
	ctx := cmd.Context()
	tracer := otel.Tracer("docinfra")
	ctx, span := tracer.Start(ctx, "cmd.deploy")
	defer span.End()

	span.SetAttributes(
		attribute.String("config.file", deployConfigFile),
		attribute.Bool("dry_run", deployDryRun),
	)

	if deployDryRun {
		slog.Info("Starting deployment (dry-run)", "config_file", deployConfigFile)
	} else {
		slog.Info("Starting deployment", "config_file", deployConfigFile)
	}

	// Setup status handler for progress updates
	ctx, cleanupStatus := status.StartHandler(ctx, statusLogHandler())
	defer cleanupStatus()

	// Handle context cancellation (from signal interrupt)
	defer func() {
		if ctx.Err() == context.Canceled {
			slog.Warn("Deployment interrupted by user")
		}
	}()

	// Parse configuration
	cfg, err := config.ParseConfig(ctx, deployConfigFile)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to parse configuration", "error", err, "file", deployConfigFile)
		return err
	}

	slog.Info("Configuration parsed successfully",
		"project_name", cfg.ProjectName,
		"sku_tier", cfg.HostingPlan.SkuTier,
		"apps", len(cfg.Apps),
	)

	// Set runtime options from CLI flags
	cfg.DryRun = deployDryRun

	// Apply custom timeout if specified
	if deployTimeout != "" {
		duration, err := time.ParseDuration(deployTimeout)
		if err != nil {
			span.RecordError(err)
			slog.Error("Invalid timeout duration", "error", err, "timeout", deployTimeout)
			return fmt.Errorf("invalid timeout duration %q: %w", deployTimeout, err)
		}
		cfg.Timeout = duration
		span.SetAttributes(attribute.String("timeout", deployTimeout))
		slog.Info("Using custom timeout", "timeout", duration)
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	opts, cleanupTemplates, err := resolveTemplates(ctx, deployTemplates)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to fetch template overrides", "error", err)
		return err
	}
	defer cleanupTemplates()

	// Deploy infrastructure
	outputs, err := deploy.New().Deploy(ctx, cfg, opts)
	if err != nil {
		span.RecordError(err)
		slog.Error("Deployment failed", "error", err, "project_name", cfg.ProjectName)
		return err
	}

	if outputs == nil {
		// Dry run: nothing applied, nothing to report.
		slog.Info("Dry run completed", "project_name", cfg.ProjectName)
		return nil
	}

	slog.Info("Deployment completed successfully",
		"project_name", cfg.ProjectName,
		"hosting_plan", outputs.HostingPlanName,
	)

	fmt.Printf("✓ Deployment complete\n")
	fmt.Printf("  Hosting plan: %s (%s)\n", outputs.HostingPlanName, outputs.HostingPlanSkuName)
	fmt.Printf("  Location:     %s\n", outputs.Location)
	for _, app := range outputs.Apps {
		fmt.Printf("  App:          %s (%s) %s\n", app.Name, app.Runtime, app.Endpoint)
	}

	return nil
}
