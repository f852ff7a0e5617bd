package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	goccyyaml "github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/hosting"
)

// ParseConfig parses a deployment config file and returns the configuration.
// The file is first validated against the embedded JSON Schema, then
// unmarshaled leniently so unknown fields survive round-trips.
func ParseConfig(ctx context.Context, filePath string) (*DeployConfig, error) {
	tracer := otel.Tracer("docinfra")
	_, span := tracer.Start(ctx, "config.ParseConfig")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	if err := validateSchema(data); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("config file %s failed schema validation: %w", filePath, err)
	}

	var cfg DeployConfig
	if err := goccyyaml.Unmarshal(data, &cfg); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
	}

	if err := validateSemantics(&cfg); err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("config.project_name", cfg.ProjectName),
		attribute.String("config.sku_tier", string(cfg.HostingPlan.SkuTier)),
		attribute.Int("config.apps", len(cfg.Apps)),
	)

	return &cfg, nil
}

// validateSemantics applies the checks the schema cannot express.
func validateSemantics(cfg *DeployConfig) error {
	if cfg.ProjectName == "" {
		return fmt.Errorf("project_name is required in config")
	}
	if cfg.Location == "" {
		return fmt.Errorf("location is required in config")
	}
	if cfg.SubscriptionID == "" {
		return fmt.Errorf("subscription_id is required in config")
	}
	if cfg.ResourceGroup == "" {
		return fmt.Errorf("resource_group is required in config")
	}
	if !hosting.IsValidTier(cfg.HostingPlan.SkuTier) {
		return fmt.Errorf("invalid sku_tier %q, must be one of: %v", cfg.HostingPlan.SkuTier, hosting.ValidTiers)
	}
	if len(cfg.Apps) == 0 {
		return fmt.Errorf("at least one app is required in config")
	}
	seen := make(map[string]bool, len(cfg.Apps))
	for _, app := range cfg.Apps {
		if app.Name == "" {
			return fmt.Errorf("every app requires a name")
		}
		if seen[app.Name] {
			return fmt.Errorf("duplicate app name %q", app.Name)
		}
		seen[app.Name] = true
	}
	if cfg.NetworkIsolation && cfg.SubnetID == "" {
		return fmt.Errorf("subnet_id is required when network_isolation is enabled")
	}
	return nil
}

// validateSchema checks the raw YAML document against the embedded schema.
func validateSchema(data []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}

	jsonData, err := sigsyaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return fmt.Errorf("unmarshal json: %w", err)
	}

	return sch.Validate(document)
}

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaName, bytes.NewReader(configSchema)); err != nil {
			schemaErr = fmt.Errorf("load config schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaName)
	})
	return compiledSchema, schemaErr
}
