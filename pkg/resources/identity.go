package resources

import "fmt"

// IdentityConfig is the user-assigned managed identity document. The
// resolved resource ID and client ID feed the Function App's app settings
// and the Flex Consumption deployment storage descriptor.
type IdentityConfig struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// BuildIdentity produces the managed identity document.
func BuildIdentity(name, location string) (*IdentityConfig, error) {
	if name == "" {
		return nil, fmt.Errorf("identity name is required")
	}
	if location == "" {
		return nil, fmt.Errorf("identity location is required")
	}
	return &IdentityConfig{Name: name, Location: location}, nil
}
