package resources

import "fmt"

// AppInsightsConfig is the Application Insights component document. The
// provisioned instrumentation key and connection string are consumed into
// two Function App settings.
type AppInsightsConfig struct {
	Name       string                `json:"name"`
	Location   string                `json:"location"`
	Kind       string                `json:"kind"`
	Properties AppInsightsProperties `json:"properties"`
}

// AppInsightsProperties carries the component type and optional workspace
// binding.
type AppInsightsProperties struct {
	ApplicationType     string  `json:"Application_Type"`
	WorkspaceResourceID *string `json:"WorkspaceResourceId,omitempty"`
}

// BuildAppInsights produces the Application Insights document. A workspace
// resource ID is optional; when empty the component runs classic-mode.
func BuildAppInsights(name, location, workspaceID string) (*AppInsightsConfig, error) {
	if name == "" {
		return nil, fmt.Errorf("application insights name is required")
	}

	cfg := &AppInsightsConfig{
		Name:     name,
		Location: location,
		Kind:     "web",
		Properties: AppInsightsProperties{
			ApplicationType: "web",
		},
	}
	if workspaceID != "" {
		cfg.Properties.WorkspaceResourceID = &workspaceID
	}
	return cfg, nil
}
