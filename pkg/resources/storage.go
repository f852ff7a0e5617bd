// Package resources builds the provider-ready documents for the
// accelerator's collaborator resources: storage account, managed identity,
// Application Insights and Event Grid wiring. Each builder takes its inputs
// explicitly; no resource derives another's name by convention.
package resources

import "fmt"

// Medallion containers plus the Flex Consumption deployment container. Blob
// events on the bronze container start the processing pipeline.
var DefaultContainers = []string{"deployment", "bronze", "silver", "gold"}

// StorageSpec describes the accelerator's storage account.
type StorageSpec struct {
	Name             string
	Location         string
	NetworkIsolation bool
	Containers       []string
}

// StorageAccountConfig is the provider-ready storage account document.
type StorageAccountConfig struct {
	Name       string                   `json:"name"`
	Location   string                   `json:"location"`
	Kind       string                   `json:"kind"`
	Sku        StorageSku               `json:"sku"`
	Properties StorageAccountProperties `json:"properties"`
	Containers []string                 `json:"containers"`
}

// StorageSku identifies the storage redundancy class.
type StorageSku struct {
	Name string `json:"name"`
}

// StorageAccountProperties carries the account security posture.
type StorageAccountProperties struct {
	AllowBlobPublicAccess    bool   `json:"allowBlobPublicAccess"`
	MinimumTLSVersion        string `json:"minimumTlsVersion"`
	SupportsHTTPSTrafficOnly bool   `json:"supportsHttpsTrafficOnly"`
	PublicNetworkAccess      string `json:"publicNetworkAccess"`
}

// BuildStorageAccount produces the storage account document. Account names
// are provider-constrained to 3-24 lowercase alphanumerics; validation here
// is limited to length since the caller derives names from a sanitized
// project name.
func BuildStorageAccount(spec StorageSpec) (*StorageAccountConfig, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("storage account name is required")
	}
	if len(spec.Name) < 3 || len(spec.Name) > 24 {
		return nil, fmt.Errorf("storage account name %q must be 3-24 characters", spec.Name)
	}

	publicAccess := "Enabled"
	if spec.NetworkIsolation {
		publicAccess = "Disabled"
	}

	containers := spec.Containers
	if len(containers) == 0 {
		containers = DefaultContainers
	}

	return &StorageAccountConfig{
		Name:     spec.Name,
		Location: spec.Location,
		Kind:     "StorageV2",
		Sku:      StorageSku{Name: "Standard_LRS"},
		Properties: StorageAccountProperties{
			AllowBlobPublicAccess:    false,
			MinimumTLSVersion:        "TLS1_2",
			SupportsHTTPSTrafficOnly: true,
			PublicNetworkAccess:      publicAccess,
		},
		Containers: containers,
	}, nil
}
