package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/terraform-exec/tfexec"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/config"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/hosting"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/status"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/tofu"
)

// Options tune a single deployment run.
type Options struct {
	// TemplateDir overrides the embedded engine templates, e.g. with a
	// directory fetched from a Git repository.
	TemplateDir string
}

// Deployer drives the provisioning engine over resolved desired state.
type Deployer struct{}

// New creates a Deployer.
func New() *Deployer {
	return &Deployer{}
}

// Validate resolves the full document set without touching the engine. A
// configuration that resolves cleanly here will produce the same documents
// at deploy time.
func (d *Deployer) Validate(ctx context.Context, cfg *config.DeployConfig) error {
	tracer := otel.Tracer("docinfra")
	ctx, span := tracer.Start(ctx, "deploy.Validate")
	defer span.End()

	span.SetAttributes(attribute.String("project_name", cfg.ProjectName))

	status.Send(ctx, status.NewUpdate(status.LevelInfo, "Resolving deployment configuration").
		WithResource("deployment").
		WithAction("validate").
		WithMetadata("project_name", cfg.ProjectName))

	if _, err := Resolve(ctx, cfg, CollaboratorOutputs{}); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Deploy reconciles the infrastructure in two phases: foundation resources
// first (storage, identity, Application Insights), then the core documents
// resolved against the foundation outputs. With DryRun set, only the
// foundation phase is planned and nothing is applied.
func (d *Deployer) Deploy(ctx context.Context, cfg *config.DeployConfig, opts Options) (*Outputs, error) {
	tracer := otel.Tracer("docinfra")
	ctx, span := tracer.Start(ctx, "deploy.Deploy")
	defer span.End()

	span.SetAttributes(
		attribute.String("project_name", cfg.ProjectName),
		attribute.Bool("dry_run", cfg.DryRun),
	)

	plan, err := Resolve(ctx, cfg, CollaboratorOutputs{})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	status.Send(ctx, status.NewUpdate(status.LevelProgress, "Deploying foundation resources").
		WithResource("foundation").
		WithAction("apply").
		WithMetadata("storage_account", plan.Names.StorageAccount).
		WithMetadata("identity", plan.Names.Identity))

	tf, err := d.setup(ctx, opts, toTFVars(cfg, plan, false))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := tofu.Init(ctx, tf); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if cfg.DryRun {
		changes, err := tofu.Plan(ctx, tf)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		status.Send(ctx, status.NewUpdate(status.LevelInfo, "Dry run complete").
			WithResource("deployment").
			WithAction("plan").
			WithMetadata("changes_pending", changes))
		return nil, nil
	}

	if err := tofu.Apply(ctx, tf); err != nil {
		span.RecordError(err)
		return nil, err
	}

	rawOutputs, err := tofu.Output(ctx, tf)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	foundation, err := parseFoundationOutputs(rawOutputs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// Second resolution, now with the collaborator outputs that only exist
	// post-provisioning (identity client ID, telemetry keys).
	plan, err = Resolve(ctx, cfg, CollaboratorOutputs{
		IdentityClientID:              foundation.IdentityClientID,
		AppInsightsInstrumentationKey: foundation.AppInsightsInstrumentationKey,
		AppInsightsConnectionString:   foundation.AppInsightsConnectionString,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	status.Send(ctx, status.NewUpdate(status.LevelProgress, "Deploying hosting plan and function apps").
		WithResource("core").
		WithAction("apply").
		WithMetadata("hosting_plan", plan.Names.HostingPlan).
		WithMetadata("sku_tier", string(cfg.HostingPlan.SkuTier)))

	if err := d.rewriteTFVars(tf, toTFVars(cfg, plan, true)); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := tofu.Apply(ctx, tf); err != nil {
		span.RecordError(err)
		return nil, err
	}

	rawOutputs, err = tofu.Output(ctx, tf)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	outputs, err := parseDeploymentOutputs(rawOutputs)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	enrichAppOutputs(outputs, plan)

	status.Send(ctx, status.NewUpdate(status.LevelSuccess, "Deployment complete").
		WithResource("deployment").
		WithAction("apply").
		WithMetadata("hosting_plan", outputs.HostingPlanName).
		WithMetadata("apps", len(outputs.Apps)))

	return outputs, nil
}

// Destroy tears down everything the engine manages for this configuration.
func (d *Deployer) Destroy(ctx context.Context, cfg *config.DeployConfig, opts Options) error {
	tracer := otel.Tracer("docinfra")
	ctx, span := tracer.Start(ctx, "deploy.Destroy")
	defer span.End()

	span.SetAttributes(attribute.String("project_name", cfg.ProjectName))

	plan, err := Resolve(ctx, cfg, CollaboratorOutputs{})
	if err != nil {
		span.RecordError(err)
		return err
	}

	status.Send(ctx, status.NewUpdate(status.LevelWarning, "Destroying deployment").
		WithResource("deployment").
		WithAction("destroy").
		WithMetadata("project_name", cfg.ProjectName))

	tf, err := d.setup(ctx, opts, toTFVars(cfg, plan, true))
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := tofu.Init(ctx, tf); err != nil {
		span.RecordError(err)
		return err
	}
	if cfg.DryRun {
		status.Send(ctx, status.NewUpdate(status.LevelInfo, "Dry run: skipping destroy").
			WithResource("deployment").
			WithAction("destroy"))
		return nil
	}
	if err := tofu.Destroy(ctx, tf); err != nil {
		span.RecordError(err)
		return err
	}

	status.Send(ctx, status.NewUpdate(status.LevelSuccess, "Destroy complete").
		WithResource("deployment").
		WithAction("destroy"))
	return nil
}

func (d *Deployer) setup(ctx context.Context, opts Options, vars TFVars) (*tfexec.Terraform, error) {
	if opts.TemplateDir != "" {
		return tofu.SetupInDir(ctx, opts.TemplateDir, vars)
	}
	return tofu.Setup(ctx, engineTemplates, vars)
}

// rewriteTFVars replaces the tfvars file in the existing working directory
// for the second apply phase.
func (d *Deployer) rewriteTFVars(tf *tfexec.Terraform, vars TFVars) error {
	data, err := json.Marshal(vars)
	if err != nil {
		return fmt.Errorf("failed to marshal tfvars: %w", err)
	}
	path := filepath.Join(tf.WorkingDir(), "terraform.tfvars.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write tfvars: %w", err)
	}
	return nil
}

// enrichAppOutputs fills the fields the engine does not report, from the
// resolved plan.
func enrichAppOutputs(outputs *Outputs, plan *Plan) {
	runtimes := make(map[string]string, len(plan.FunctionApps))
	for _, app := range plan.FunctionApps {
		runtimes[app.Name] = appRuntime(app)
	}
	for i := range outputs.Apps {
		outputs.Apps[i].Runtime = runtimes[outputs.Apps[i].Name]
	}
}

// appRuntime recovers the worker runtime from a resolved document, whichever
// branch emitted it.
func appRuntime(app *hosting.FunctionAppConfig) string {
	if app.Properties.FunctionAppConfig != nil {
		return app.Properties.FunctionAppConfig.Runtime.Name
	}
	for _, s := range app.Properties.SiteConfig.AppSettings {
		if s.Name == "FUNCTIONS_WORKER_RUNTIME" {
			return s.Value
		}
	}
	return ""
}
