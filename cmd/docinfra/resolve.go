package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/config"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/deploy"
)

var (
	resolveConfigFile string
	resolveOutputFile string

	resolveCmd = &cobra.Command{
		Use:   "resolve",
		Short: "Resolve and print the resource documents",
		Long: `Resolve the configuration into the full set of resource documents
(hosting plan, Function Apps, storage, identity, Application Insights, Event
Grid) and print them as JSON without deploying anything.

The output is deterministic: the same configuration always produces
byte-identical documents. Values that only exist after deployment (identity
client ID, telemetry keys) are omitted.`,
		RunE: runResolve,
	}
)

func init() {
	resolveCmd.Flags().StringVarP(&resolveConfigFile, "file", "f", "", "Path to deployment configuration file (required)")
	resolveCmd.Flags().StringVarP(&resolveOutputFile, "output", "o", "", "Write the documents to a file instead of stdout")
	// Panic is appropriate in init() since we cannot return errors and this indicates a programming error
	if err := resolveCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	// Get cancellable context from cobra (for signal handling)
	ctx := cmd.Context()
	tracer := otel.Tracer("docinfra")
	ctx, span := tracer.Start(ctx, "cmd.resolve")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", resolveConfigFile))

	cfg, err := config.ParseConfig(ctx, resolveConfigFile)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to parse configuration", "error", err, "file", resolveConfigFile)
		return err
	}

	plan, err := deploy.Resolve(ctx, cfg, deploy.CollaboratorOutputs{})
	if err != nil {
		span.RecordError(err)
		slog.Error("Resolution failed", "error", err, "file", resolveConfigFile)
		return err
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal resolved documents: %w", err)
	}
	data = append(data, '\n')

	if resolveOutputFile != "" {
		if err := os.WriteFile(resolveOutputFile, data, 0644); err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to write output file: %w", err)
		}
		slog.Info("Resolved documents written", "file", resolveOutputFile)
		return nil
	}

	_, err = os.Stdout.Write(data)
	return err
}
