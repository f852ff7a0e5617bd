package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/config"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/hosting"
)

const testSubscriptionID = "00000000-0000-0000-0000-000000000000"

func flexConfig() *config.DeployConfig {
	return &config.DeployConfig{
		ProjectName:    "doc-proc",
		Location:       "eastus",
		SubscriptionID: testSubscriptionID,
		ResourceGroup:  "doc-rg",
		HostingPlan: config.HostingPlanConfig{
			SkuTier: hosting.TierFlexConsumption,
			SkuName: "FC1",
		},
		Apps: []config.AppConfig{
			{Name: "process", Purpose: "processing", Runtime: hosting.RuntimePython},
		},
	}
}

func isolatedClassicConfig() *config.DeployConfig {
	return &config.DeployConfig{
		ProjectName:      "doc-proc",
		Location:         "eastus",
		SubscriptionID:   testSubscriptionID,
		ResourceGroup:    "doc-rg",
		NetworkIsolation: true,
		SubnetID:         "/subscriptions/" + testSubscriptionID + "/resourceGroups/doc-rg/providers/Microsoft.Network/virtualNetworks/doc-vnet/subnets/doc-snet",
		HostingPlan: config.HostingPlanConfig{
			SkuTier: hosting.TierDynamic,
			SkuName: "Y1",
		},
		Apps: []config.AppConfig{
			{Name: "process", Purpose: "processing", Runtime: hosting.RuntimeNode},
			{Name: "api", Runtime: hosting.RuntimeNode},
		},
	}
}

func TestResolveFlexScenario(t *testing.T) {
	plan, err := Resolve(context.Background(), flexConfig(), CollaboratorOutputs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.HostingPlan.Sku.Name != "FC1" {
		t.Errorf("plan SKU = %q, want FC1", plan.HostingPlan.Sku.Name)
	}
	if plan.HostingPlan.Properties.ZoneRedundant == nil {
		t.Error("zoneRedundant should be present under Flex Consumption")
	}

	if len(plan.FunctionApps) != 1 {
		t.Fatalf("got %d apps, want 1", len(plan.FunctionApps))
	}
	app := plan.FunctionApps[0]
	if app.Name != "doc-proc-process" {
		t.Errorf("app name = %q, want doc-proc-process", app.Name)
	}
	fc := app.Properties.FunctionAppConfig
	if fc == nil {
		t.Fatal("functionAppConfig should be present")
	}
	if fc.Runtime.Name != "python" || fc.Runtime.Version != "3.11" {
		t.Errorf("runtime = %s|%s, want python|3.11", fc.Runtime.Name, fc.Runtime.Version)
	}
	if fc.ScaleAndConcurrency.MaximumInstanceCount != 100 || fc.ScaleAndConcurrency.InstanceMemoryMB != 2048 {
		t.Errorf("scale defaults = %+v, want 100/2048", fc.ScaleAndConcurrency)
	}
	wantPlanID := "/subscriptions/" + testSubscriptionID + "/resourceGroups/doc-rg/providers/Microsoft.Web/serverfarms/doc-proc-plan"
	if app.Properties.ServerFarmID != wantPlanID {
		t.Errorf("ServerFarmID = %q, want %q", app.Properties.ServerFarmID, wantPlanID)
	}

	if plan.SystemTopic == nil {
		t.Fatal("system topic should be built")
	}
	if len(plan.EventSubscriptions) != 1 {
		t.Fatalf("got %d event subscriptions, want 1", len(plan.EventSubscriptions))
	}
	if plan.EventSubscriptions[0].Name != "doc-proc-process-blob-events" {
		t.Errorf("subscription name = %q, want doc-proc-process-blob-events", plan.EventSubscriptions[0].Name)
	}
}

func TestResolveIsolatedClassicScenario(t *testing.T) {
	plan, err := Resolve(context.Background(), isolatedClassicConfig(), CollaboratorOutputs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.HostingPlan.Properties.ZoneRedundant != nil {
		t.Error("zoneRedundant must be absent for the Dynamic tier")
	}
	if plan.StorageAccount.Properties.PublicNetworkAccess != "Disabled" {
		t.Error("storage public access should be disabled under isolation")
	}

	if len(plan.FunctionApps) != 2 {
		t.Fatalf("got %d apps, want 2", len(plan.FunctionApps))
	}
	// Order matches configuration order despite parallel resolution.
	if plan.FunctionApps[0].Name != "doc-proc-process" || plan.FunctionApps[1].Name != "doc-proc-api" {
		t.Errorf("apps out of order: %q, %q", plan.FunctionApps[0].Name, plan.FunctionApps[1].Name)
	}

	for _, app := range plan.FunctionApps {
		if app.Properties.FunctionAppConfig != nil {
			t.Errorf("%s: functionAppConfig must be absent for classic tiers", app.Name)
		}
		if app.Properties.SiteConfig.LinuxFxVersion == nil || *app.Properties.SiteConfig.LinuxFxVersion != "NODE|20" {
			t.Errorf("%s: LinuxFxVersion should be NODE|20", app.Name)
		}
		if app.Properties.PublicNetworkAccess == nil || *app.Properties.PublicNetworkAccess != "Disabled" {
			t.Errorf("%s: public access should be disabled", app.Name)
		}
		if got := app.Properties.SiteConfig.IPSecurityRestrictionsDefaultAction; got != "Deny" {
			t.Errorf("%s: default action = %q, want Deny", app.Name, got)
		}
	}

	// Only the processing app receives blob events.
	if len(plan.EventSubscriptions) != 1 {
		t.Fatalf("got %d event subscriptions, want 1", len(plan.EventSubscriptions))
	}
	if plan.EventSubscriptions[0].Name != "doc-proc-process-blob-events" {
		t.Errorf("subscription name = %q, want doc-proc-process-blob-events", plan.EventSubscriptions[0].Name)
	}
}

func TestResolveCollaboratorOutputsFlowIntoSettings(t *testing.T) {
	refs := CollaboratorOutputs{
		IdentityClientID:              "11111111-1111-1111-1111-111111111111",
		AppInsightsInstrumentationKey: "ikey",
		AppInsightsConnectionString:   "InstrumentationKey=ikey",
	}
	plan, err := Resolve(context.Background(), flexConfig(), refs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	settings := map[string]string{}
	for _, s := range plan.FunctionApps[0].Properties.SiteConfig.AppSettings {
		settings[s.Name] = s.Value
	}
	if settings["AzureWebJobsStorage__clientId"] != refs.IdentityClientID {
		t.Errorf("AzureWebJobsStorage__clientId = %q, want %q", settings["AzureWebJobsStorage__clientId"], refs.IdentityClientID)
	}
	if settings["AZURE_CLIENT_ID"] != refs.IdentityClientID {
		t.Errorf("AZURE_CLIENT_ID = %q, want %q", settings["AZURE_CLIENT_ID"], refs.IdentityClientID)
	}
	if settings["APPINSIGHTS_INSTRUMENTATIONKEY"] != refs.AppInsightsInstrumentationKey {
		t.Errorf("APPINSIGHTS_INSTRUMENTATIONKEY = %q, want %q", settings["APPINSIGHTS_INSTRUMENTATIONKEY"], refs.AppInsightsInstrumentationKey)
	}
	if settings["APPLICATIONINSIGHTS_CONNECTION_STRING"] != refs.AppInsightsConnectionString {
		t.Errorf("APPLICATIONINSIGHTS_CONNECTION_STRING = %q, want %q", settings["APPLICATIONINSIGHTS_CONNECTION_STRING"], refs.AppInsightsConnectionString)
	}
}

func TestResolveDeterministic(t *testing.T) {
	ctx := context.Background()
	first, err := Resolve(ctx, isolatedClassicConfig(), CollaboratorOutputs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Resolve(ctx, isolatedClassicConfig(), CollaboratorOutputs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("resolution is not deterministic across identical inputs")
	}
}

func TestResolvePropagatesAppErrors(t *testing.T) {
	cfg := flexConfig()
	cfg.Apps[0].InstanceMemoryMB = 1024

	_, err := Resolve(context.Background(), cfg, CollaboratorOutputs{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var cfgErr *hosting.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
	if cfgErr.Reason != hosting.InvalidParameterValue {
		t.Errorf("Reason = %q, want %q", cfgErr.Reason, hosting.InvalidParameterValue)
	}
}

func TestResolveStorageOverrides(t *testing.T) {
	cfg := flexConfig()
	cfg.Storage = &config.StorageConfig{
		AccountName:    "customaccount",
		EndpointSuffix: "core.usgovcloudapi.net",
		Containers:     []string{"deployment", "inbox"},
	}

	plan, err := Resolve(context.Background(), cfg, CollaboratorOutputs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if plan.StorageAccount.Name != "customaccount" {
		t.Errorf("storage name = %q, want customaccount", plan.StorageAccount.Name)
	}
	if len(plan.StorageAccount.Containers) != 2 {
		t.Errorf("containers = %v, want the configured pair", plan.StorageAccount.Containers)
	}

	fc := plan.FunctionApps[0].Properties.FunctionAppConfig
	want := "https://customaccount.blob.core.usgovcloudapi.net/deployment"
	if fc.Deployment.Storage.Value != want {
		t.Errorf("deployment endpoint = %q, want %q", fc.Deployment.Storage.Value, want)
	}
}
