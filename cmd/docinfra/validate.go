package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/config"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/deploy"
)

var (
	validateConfigFile string

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validate the deployment configuration file without deploying any
infrastructure. This checks that the file is properly formatted, that the SKU
matches the hosting tier, and that every Function App resolves to a complete
resource document.`,
		RunE: runValidate,
	}
)

func init() {
	validateCmd.Flags().StringVarP(&validateConfigFile, "file", "f", "", "Path to deployment configuration file (required)")
	// Panic is appropriate in init() since we cannot return errors and this indicates a programming error
	if err := validateCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	// Get cancellable context from cobra (for signal handling)
	ctx := cmd.Context()
	tracer := otel.Tracer("docinfra")
	ctx, span := tracer.Start(ctx, "cmd.validate")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", validateConfigFile))

	slog.Info("Validating configuration", "config_file", validateConfigFile)

	// Parse configuration
	cfg, err := config.ParseConfig(ctx, validateConfigFile)
	if err != nil {
		span.RecordError(err)
		slog.Error("Configuration validation failed", "error", err, "file", validateConfigFile)
		return err
	}

	// Resolve the full document set to surface tier/SKU mismatches and
	// incomplete app definitions before any deployment.
	if err := deploy.New().Validate(ctx, cfg); err != nil {
		span.RecordError(err)
		slog.Error("Configuration resolution failed", "error", err, "file", validateConfigFile)
		return err
	}

	slog.Info("Configuration is valid",
		"project_name", cfg.ProjectName,
		"sku_tier", cfg.HostingPlan.SkuTier,
	)

	fmt.Printf("✓ Configuration file is valid\n")
	fmt.Printf("  Project:      %s\n", cfg.ProjectName)
	fmt.Printf("  Hosting tier: %s (%s)\n", cfg.HostingPlan.SkuTier, cfg.HostingPlan.SkuName)
	fmt.Printf("  Apps:         %d\n", len(cfg.Apps))

	return nil
}
