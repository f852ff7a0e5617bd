package deploy

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/terraform-exec/tfexec"
)

// Outputs is the deployment result surface consumed by callers: the hosting
// plan identity and the per-app endpoints and principals.
type Outputs struct {
	HostingPlanID      string       `json:"hostingPlanId"`
	HostingPlanName    string       `json:"hostingPlanName"`
	HostingPlanSkuName string       `json:"hostingPlanSkuName"`
	Location           string       `json:"location"`
	Apps               []AppOutputs `json:"apps"`
}

// AppOutputs describes one deployed Function App.
type AppOutputs struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Endpoint    string `json:"endpoint"`
	PrincipalID string `json:"principalId"`
	Runtime     string `json:"runtime"`
}

// foundationOutputs are the phase-one engine outputs the resolver consumes.
type foundationOutputs struct {
	IdentityClientID              string
	AppInsightsInstrumentationKey string
	AppInsightsConnectionString   string
}

func outputString(outputs map[string]tfexec.OutputMeta, key string) (string, error) {
	meta, ok := outputs[key]
	if !ok {
		return "", fmt.Errorf("engine output %q is missing", key)
	}
	var value string
	if err := json.Unmarshal(meta.Value, &value); err != nil {
		return "", fmt.Errorf("engine output %q is not a string: %w", key, err)
	}
	return value, nil
}

func parseFoundationOutputs(outputs map[string]tfexec.OutputMeta) (foundationOutputs, error) {
	var parsed foundationOutputs
	var err error

	if parsed.IdentityClientID, err = outputString(outputs, "identity_client_id"); err != nil {
		return foundationOutputs{}, err
	}
	if parsed.AppInsightsInstrumentationKey, err = outputString(outputs, "app_insights_instrumentation_key"); err != nil {
		return foundationOutputs{}, err
	}
	if parsed.AppInsightsConnectionString, err = outputString(outputs, "app_insights_connection_string"); err != nil {
		return foundationOutputs{}, err
	}

	return parsed, nil
}

func parseDeploymentOutputs(outputs map[string]tfexec.OutputMeta) (*Outputs, error) {
	result := &Outputs{}
	var err error

	if result.HostingPlanID, err = outputString(outputs, "hosting_plan_id"); err != nil {
		return nil, err
	}
	if result.HostingPlanName, err = outputString(outputs, "hosting_plan_name"); err != nil {
		return nil, err
	}
	if result.HostingPlanSkuName, err = outputString(outputs, "hosting_plan_sku_name"); err != nil {
		return nil, err
	}
	if result.Location, err = outputString(outputs, "location"); err != nil {
		return nil, err
	}

	meta, ok := outputs["function_apps"]
	if !ok {
		return nil, fmt.Errorf("engine output %q is missing", "function_apps")
	}
	if err := json.Unmarshal(meta.Value, &result.Apps); err != nil {
		return nil, fmt.Errorf("engine output %q has unexpected shape: %w", "function_apps", err)
	}

	return result, nil
}
