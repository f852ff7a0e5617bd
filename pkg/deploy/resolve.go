// Package deploy assembles the resolved resource documents for the
// accelerator and drives the OpenTofu engine over them. Resolution is pure;
// all provisioning side effects live behind the engine.
package deploy

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/config"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/hosting"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/resources"
)

// CollaboratorOutputs are the values only known after the foundation
// resources exist. Zero values are fine for a pure resolve preview; the
// corresponding app settings are simply skipped.
type CollaboratorOutputs struct {
	IdentityClientID              string
	AppInsightsInstrumentationKey string
	AppInsightsConnectionString   string
}

// Plan is the complete resolved desired state of one deployment.
type Plan struct {
	Names Names `json:"-"`

	StorageAccount *resources.StorageAccountConfig `json:"storageAccount"`
	Identity       *resources.IdentityConfig       `json:"identity"`
	AppInsights    *resources.AppInsightsConfig    `json:"appInsights"`

	HostingPlan        *hosting.HostingPlanConfig           `json:"hostingPlan"`
	FunctionApps       []*hosting.FunctionAppConfig         `json:"functionApps"`
	SystemTopic        *resources.SystemTopicConfig         `json:"systemTopic"`
	EventSubscriptions []*resources.EventSubscriptionConfig `json:"eventSubscriptions"`
}

// Resolve produces the full document set for the configuration. It is a
// pure function of its inputs: identical inputs yield byte-identical
// documents, and it is safe to call concurrently.
func Resolve(ctx context.Context, cfg *config.DeployConfig, refs CollaboratorOutputs) (*Plan, error) {
	tracer := otel.Tracer("docinfra")
	ctx, span := tracer.Start(ctx, "deploy.Resolve")
	defer span.End()

	span.SetAttributes(
		attribute.String("project_name", cfg.ProjectName),
		attribute.String("sku_tier", string(cfg.HostingPlan.SkuTier)),
		attribute.Int("apps", len(cfg.Apps)),
	)

	var storageOverride, storageSuffix string
	var containers []string
	if cfg.Storage != nil {
		storageOverride = cfg.Storage.AccountName
		storageSuffix = cfg.Storage.EndpointSuffix
		containers = cfg.Storage.Containers
	}
	names := resolveNames(cfg.ProjectName, storageOverride)

	storage, err := resources.BuildStorageAccount(resources.StorageSpec{
		Name:             names.StorageAccount,
		Location:         cfg.Location,
		NetworkIsolation: cfg.NetworkIsolation,
		Containers:       containers,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	identity, err := resources.BuildIdentity(names.Identity, cfg.Location)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	appInsights, err := resources.BuildAppInsights(names.AppInsights, cfg.Location, cfg.LogAnalyticsWorkspaceID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	hostingPlan, err := hosting.ResolveHostingPlan(hosting.HostingPlanSpec{
		Name:          names.HostingPlan,
		Location:      cfg.Location,
		SkuTier:       cfg.HostingPlan.SkuTier,
		SkuName:       cfg.HostingPlan.SkuName,
		ZoneRedundant: cfg.HostingPlan.ZoneRedundant,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	planRef := hosting.PlanReference{
		ID:      hostingPlanID(cfg.SubscriptionID, cfg.ResourceGroup, names.HostingPlan),
		SkuTier: cfg.HostingPlan.SkuTier,
	}
	identityRef := identityID(cfg.SubscriptionID, cfg.ResourceGroup, names.Identity)

	// Apps are independent of each other; resolve them in parallel but keep
	// the configured order in the result.
	apps := make([]*hosting.FunctionAppConfig, len(cfg.Apps))
	g, _ := errgroup.WithContext(ctx)
	for i, appCfg := range cfg.Apps {
		g.Go(func() error {
			app, err := hosting.ResolveFunctionApp(hosting.AppRuntimeSpec{
				Name:                          functionAppName(cfg.ProjectName, appCfg.Name),
				Location:                      cfg.Location,
				Purpose:                       appCfg.Purpose,
				Runtime:                       appCfg.Runtime,
				MaximumInstanceCount:          appCfg.MaximumInstanceCount,
				InstanceMemoryMB:              appCfg.InstanceMemoryMB,
				NetworkIsolation:              cfg.NetworkIsolation,
				SubnetID:                      cfg.SubnetID,
				IdentityID:                    identityRef,
				IdentityClientID:              refs.IdentityClientID,
				StorageAccountName:            names.StorageAccount,
				StorageSuffix:                 storageSuffix,
				AppInsightsInstrumentationKey: refs.AppInsightsInstrumentationKey,
				AppInsightsConnectionString:   refs.AppInsightsConnectionString,
				AppSettingsBase:               baseSettings(appCfg.AppSettings),
			}, planRef)
			if err != nil {
				return err
			}
			apps[i] = app
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	systemTopic, err := resources.BuildSystemTopic(names.SystemTopic, cfg.Location,
		storageAccountID(cfg.SubscriptionID, cfg.ResourceGroup, names.StorageAccount))
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	// Blob events feed only the processing apps; other purposes (e.g. an
	// HTTP front end) are invoked directly.
	var subscriptions []*resources.EventSubscriptionConfig
	for _, appCfg := range cfg.Apps {
		if appCfg.Purpose != hosting.PurposeProcessing {
			continue
		}
		sub, err := resources.BuildEventSubscription(
			eventSubscriptionName(cfg.ProjectName, appCfg.Name),
			functionAppID(cfg.SubscriptionID, cfg.ResourceGroup, functionAppName(cfg.ProjectName, appCfg.Name)),
		)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}

	return &Plan{
		Names:              names,
		StorageAccount:     storage,
		Identity:           identity,
		AppInsights:        appInsights,
		HostingPlan:        hostingPlan,
		FunctionApps:       apps,
		SystemTopic:        systemTopic,
		EventSubscriptions: subscriptions,
	}, nil
}

func baseSettings(in []config.AppSetting) []hosting.AppSetting {
	if len(in) == 0 {
		return nil
	}
	out := make([]hosting.AppSetting, len(in))
	for i, s := range in {
		out[i] = hosting.AppSetting{Name: s.Name, Value: s.Value}
	}
	return out
}
