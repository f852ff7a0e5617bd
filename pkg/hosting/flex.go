package hosting

import "fmt"

// FlexAppConfig is the Flex Consumption functionAppConfig block. It replaces
// the classic siteConfig runtime fields entirely; the platform validates
// their absence when this block is present.
type FlexAppConfig struct {
	Runtime             RuntimeConfig       `json:"runtime"`
	ScaleAndConcurrency ScaleAndConcurrency `json:"scaleAndConcurrency"`
	Deployment          DeploymentConfig    `json:"deployment"`
}

// RuntimeConfig names the worker runtime and its version.
type RuntimeConfig struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ScaleAndConcurrency carries the Flex Consumption scaling limits.
type ScaleAndConcurrency struct {
	MaximumInstanceCount int `json:"maximumInstanceCount"`
	InstanceMemoryMB     int `json:"instanceMemoryMB"`
}

// DeploymentConfig describes where the platform pulls deployment packages
// from and how it authenticates.
type DeploymentConfig struct {
	Storage DeploymentStorage `json:"storage"`
}

// DeploymentStorage points at the deployment blob container and uses the
// app's user-assigned identity instead of a connection string.
type DeploymentStorage struct {
	Type           string                   `json:"type"`
	Value          string                   `json:"value"`
	Authentication DeploymentAuthentication `json:"authentication"`
}

// DeploymentAuthentication is the identity-based access descriptor.
type DeploymentAuthentication struct {
	Type                           string `json:"type"`
	UserAssignedIdentityResourceID string `json:"userAssignedIdentityResourceId"`
}

// DeploymentContainerEndpoint builds the blob endpoint of the deployment
// container, e.g. "https://myaccount.blob.core.windows.net/deployment".
func DeploymentContainerEndpoint(accountName, suffix string) string {
	if suffix == "" {
		suffix = DefaultStorageSuffix
	}
	return fmt.Sprintf("https://%s.blob.%s/deployment", accountName, suffix)
}

// applyFlexConfig fills the Flex Consumption branch: no alwaysOn, no
// linuxFxVersion, no worker-runtime or build app settings; a complete
// functionAppConfig block instead.
func applyFlexConfig(cfg *FunctionAppConfig, _ *settingsBuilder, spec AppRuntimeSpec, version string) error {
	if spec.IdentityID == "" {
		return newError(MissingRequiredReference, "identityId", "Flex Consumption deployment storage requires a user-assigned identity")
	}

	maxInstances := spec.MaximumInstanceCount
	if maxInstances == 0 {
		maxInstances = defaultMaximumInstanceCount
	}
	memoryMB := spec.InstanceMemoryMB
	if memoryMB == 0 {
		memoryMB = defaultInstanceMemoryMB
	}
	if memoryMB != 2048 && memoryMB != 4096 {
		return newError(InvalidParameterValue, "instanceMemoryMB", "must be 2048 or 4096, got %d", memoryMB)
	}

	cfg.Properties.FunctionAppConfig = &FlexAppConfig{
		Runtime: RuntimeConfig{
			Name:    flexRuntimeName(spec.Runtime),
			Version: version,
		},
		ScaleAndConcurrency: ScaleAndConcurrency{
			MaximumInstanceCount: maxInstances,
			InstanceMemoryMB:     memoryMB,
		},
		Deployment: DeploymentConfig{
			Storage: DeploymentStorage{
				Type:  "blobContainer",
				Value: DeploymentContainerEndpoint(spec.StorageAccountName, spec.StorageSuffix),
				Authentication: DeploymentAuthentication{
					Type:                           "UserAssignedIdentity",
					UserAssignedIdentityResourceID: spec.IdentityID,
				},
			},
		},
	}

	return nil
}
