package hosting

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
)

// PurposeProcessing marks the document-processing worker app. It enables the
// worker-indexing feature flag required by the durable orchestration model.
const PurposeProcessing = "processing"

// DefaultStorageSuffix is the public-cloud blob endpoint suffix.
const DefaultStorageSuffix = "core.windows.net"

const (
	defaultMaximumInstanceCount = 100
	defaultInstanceMemoryMB     = 2048
)

// AppRuntimeSpec describes a Function App sited atop a hosting plan.
type AppRuntimeSpec struct {
	Name     string
	Location string

	// Purpose selects purpose-conditional app settings ("processing" enables
	// worker indexing). Other values append nothing.
	Purpose string

	Runtime Runtime

	// MaximumInstanceCount and InstanceMemoryMB are Flex Consumption scaling
	// parameters. They must not be supplied for classic tiers.
	MaximumInstanceCount int
	InstanceMemoryMB     int

	// NetworkIsolation toggles the private-networking cluster of settings:
	// public access, VNet routing, DNS override and IP restrictions.
	NetworkIsolation bool
	SubnetID         string

	// IdentityID is the user-assigned identity resource ID; IdentityClientID
	// its client ID. Both flow into app settings and, under Flex Consumption,
	// into the deployment storage authentication descriptor.
	IdentityID       string
	IdentityClientID string

	// StorageAccountName backs AzureWebJobsStorage and, under Flex
	// Consumption, the deployment container endpoint. StorageSuffix defaults
	// to the public cloud suffix when empty.
	StorageAccountName string
	StorageSuffix      string

	AppInsightsInstrumentationKey string
	AppInsightsConnectionString   string

	// AppSettingsBase is the caller-supplied base list, preserved first in
	// the emitted app settings.
	AppSettingsBase []AppSetting
}

// FunctionAppConfig is the provider-ready Function App document.
type FunctionAppConfig struct {
	Name       string                `json:"name"`
	Location   string                `json:"location"`
	Kind       string                `json:"kind"`
	Identity   *ManagedIdentity      `json:"identity,omitempty"`
	Properties FunctionAppProperties `json:"properties"`
}

// ManagedIdentity attaches a user-assigned identity to the app. The provider
// expects identity resource IDs as keys mapping to empty objects.
type ManagedIdentity struct {
	Type                   string              `json:"type"`
	UserAssignedIdentities map[string]struct{} `json:"userAssignedIdentities"`
}

// FunctionAppProperties is the tier-dependent property block. The pointer
// fields are conditionally present: the Flex Consumption and classic schemas
// each reject the other's fields, so absence must be structural.
type FunctionAppProperties struct {
	ServerFarmID           string         `json:"serverFarmId"`
	HTTPSOnly              bool           `json:"httpsOnly"`
	PublicNetworkAccess    *string        `json:"publicNetworkAccess,omitempty"`
	VirtualNetworkSubnetID *string        `json:"virtualNetworkSubnetId,omitempty"`
	SiteConfig             SiteConfig     `json:"siteConfig"`
	FunctionAppConfig      *FlexAppConfig `json:"functionAppConfig,omitempty"`
}

// SiteConfig is the site-level configuration sub-document. AlwaysOn and
// LinuxFxVersion are classic-only and omitted entirely under Flex
// Consumption.
type SiteConfig struct {
	AlwaysOn                            *bool                   `json:"alwaysOn,omitempty"`
	LinuxFxVersion                      *string                 `json:"linuxFxVersion,omitempty"`
	AppSettings                         []AppSetting            `json:"appSettings"`
	IPSecurityRestrictionsDefaultAction string                  `json:"ipSecurityRestrictionsDefaultAction"`
	IPSecurityRestrictions              []IPSecurityRestriction `json:"ipSecurityRestrictions,omitempty"`
}

// ResolveFunctionApp produces the Function App document for the given spec
// atop the referenced hosting plan. The site configuration shape is selected
// by the plan tier: Flex Consumption emits a functionAppConfig block and
// omits the classic fields; every other tier does the inverse. Invalid
// combinations are unrepresentable in the output rather than filtered after
// the fact.
func ResolveFunctionApp(spec AppRuntimeSpec, plan PlanReference) (*FunctionAppConfig, error) {
	if spec.Name == "" {
		return nil, newError(MissingRequiredReference, "name", "function app name is required")
	}
	if spec.Location == "" {
		return nil, newError(MissingRequiredReference, "location", "function app location is required")
	}
	if plan.ID == "" {
		return nil, newError(MissingRequiredReference, "hostingPlanRef", "hosting plan resource ID is required")
	}
	if spec.StorageAccountName == "" {
		return nil, newError(MissingRequiredReference, "funcStorageName", "storage account name is required")
	}
	if spec.IdentityID != "" {
		if _, err := arm.ParseResourceID(spec.IdentityID); err != nil {
			return nil, newError(InvalidParameterValue, "identityId", "not a valid resource ID: %v", err)
		}
	}

	version, err := resolveRuntimeVersion(spec.Runtime)
	if err != nil {
		return nil, err
	}

	cfg := &FunctionAppConfig{
		Name:     spec.Name,
		Location: spec.Location,
		Kind:     "functionapp,linux",
		Properties: FunctionAppProperties{
			ServerFarmID: plan.ID,
			HTTPSOnly:    true,
		},
	}

	if spec.IdentityID != "" {
		cfg.Identity = &ManagedIdentity{
			Type: "UserAssigned",
			UserAssignedIdentities: map[string]struct{}{
				spec.IdentityID: {},
			},
		}
	}

	settings := newSettingsBuilder(spec.AppSettingsBase)
	addSharedSettings(settings, spec)

	isFlexConsumption := plan.SkuTier == TierFlexConsumption
	if isFlexConsumption {
		if err := applyFlexConfig(cfg, settings, spec, version); err != nil {
			return nil, err
		}
	} else {
		if err := applyClassicConfig(cfg, settings, spec, version); err != nil {
			return nil, err
		}
	}

	if err := applyNetworkConfig(cfg, settings, spec); err != nil {
		return nil, err
	}

	if spec.Purpose == PurposeProcessing {
		settings.add("AzureWebJobsFeatureFlags", "EnableWorkerIndexing")
	}

	cfg.Properties.SiteConfig.AppSettings = settings.list()
	return cfg, nil
}

// addSharedSettings appends the identity and telemetry group common to both
// tiers. Storage access is credential-less via the managed identity.
func addSharedSettings(b *settingsBuilder, spec AppRuntimeSpec) {
	b.add("AzureWebJobsStorage__accountName", spec.StorageAccountName)
	b.add("AzureWebJobsStorage__credential", "managedidentity")
	if spec.IdentityClientID != "" {
		b.add("AzureWebJobsStorage__clientId", spec.IdentityClientID)
		b.add("AZURE_CLIENT_ID", spec.IdentityClientID)
	}
	if spec.AppInsightsInstrumentationKey != "" {
		b.add("APPINSIGHTS_INSTRUMENTATIONKEY", spec.AppInsightsInstrumentationKey)
	}
	if spec.AppInsightsConnectionString != "" {
		b.add("APPLICATIONINSIGHTS_CONNECTION_STRING", spec.AppInsightsConnectionString)
	}
	b.add("FUNCTIONS_EXTENSION_VERSION", "~4")
}
