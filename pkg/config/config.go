package config

import (
	"time"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/hosting"
)

// DeployConfig represents the parsed deployment configuration for the
// document-processing accelerator.
type DeployConfig struct {
	ProjectName string `yaml:"project_name"`
	Location    string `yaml:"location"`

	// SubscriptionID and ResourceGroup anchor every resource identifier the
	// resolver emits; cross-resource references are computed from them
	// instead of relying on naming conventions at the provider side.
	SubscriptionID string `yaml:"subscription_id"`
	ResourceGroup  string `yaml:"resource_group"`

	// NetworkIsolation toggles the private-networking posture across the
	// storage account and every Function App.
	NetworkIsolation bool   `yaml:"network_isolation,omitempty"`
	SubnetID         string `yaml:"subnet_id,omitempty"`

	HostingPlan HostingPlanConfig `yaml:"hosting_plan"`
	Storage     *StorageConfig    `yaml:"storage,omitempty"`
	Apps        []AppConfig       `yaml:"apps"`

	// LogAnalyticsWorkspaceID optionally binds Application Insights to an
	// existing workspace.
	LogAnalyticsWorkspaceID string `yaml:"log_analytics_workspace_id,omitempty"`

	// Runtime options set from CLI flags, not from the config file
	DryRun  bool          `yaml:"-"`
	Timeout time.Duration `yaml:"-"`

	// Using a map to capture additional fields for lenient parsing
	AdditionalFields map[string]interface{} `yaml:",inline"`
}

// HostingPlanConfig selects the Functions hosting model.
type HostingPlanConfig struct {
	SkuTier       hosting.SkuTier `yaml:"sku_tier"`
	SkuName       string          `yaml:"sku_name"`
	ZoneRedundant bool            `yaml:"zone_redundant,omitempty"`
}

// StorageConfig overrides storage account defaults.
type StorageConfig struct {
	AccountName    string   `yaml:"account_name,omitempty"`
	EndpointSuffix string   `yaml:"endpoint_suffix,omitempty"`
	Containers     []string `yaml:"containers,omitempty"`
}

// AppConfig describes one Function App of the accelerator.
type AppConfig struct {
	Name                 string          `yaml:"name"`
	Purpose              string          `yaml:"purpose,omitempty"`
	Runtime              hosting.Runtime `yaml:"runtime"`
	MaximumInstanceCount int             `yaml:"maximum_instance_count,omitempty"`
	InstanceMemoryMB     int             `yaml:"instance_memory_mb,omitempty"`
	AppSettings          []AppSetting    `yaml:"app_settings,omitempty"`
}

// AppSetting is one caller-supplied base app setting.
type AppSetting struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}
