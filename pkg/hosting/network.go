package hosting

import "github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"

// AzureDNSResolver is the platform-internal DNS resolver used when traffic is
// routed through the VNet.
const AzureDNSResolver = "168.63.129.16"

// eventGridServiceTag is the service tag allowed through when the default IP
// action is Deny; Event Grid push delivery must still reach the app.
const eventGridServiceTag = "AzureEventGrid"

// IPSecurityRestriction is a single site-level IP restriction rule.
type IPSecurityRestriction struct {
	Name      string `json:"name"`
	IPAddress string `json:"ipAddress"`
	Tag       string `json:"tag"`
	Action    string `json:"action"`
	Priority  int    `json:"priority"`
}

// applyNetworkConfig applies the network-isolation cluster of settings. The
// cluster is all-or-nothing: isolation disables public access, attaches the
// subnet, denies inbound traffic except Event Grid delivery, and routes all
// outbound traffic through the VNet with the internal DNS resolver. Without
// isolation the inverse defaults apply.
func applyNetworkConfig(cfg *FunctionAppConfig, settings *settingsBuilder, spec AppRuntimeSpec) error {
	if !spec.NetworkIsolation {
		cfg.Properties.SiteConfig.IPSecurityRestrictionsDefaultAction = "Allow"
		settings.add("WEBSITE_VNET_ROUTE_ALL", "0")
		settings.add("WEBSITE_DNS_SERVER", "")
		return nil
	}

	if spec.SubnetID == "" {
		return newError(MissingRequiredReference, "subnetId", "network isolation requires a VNet integration subnet")
	}
	if _, err := arm.ParseResourceID(spec.SubnetID); err != nil {
		return newError(InvalidParameterValue, "subnetId", "not a valid resource ID: %v", err)
	}

	disabled := "Disabled"
	subnetID := spec.SubnetID
	cfg.Properties.PublicNetworkAccess = &disabled
	cfg.Properties.VirtualNetworkSubnetID = &subnetID
	cfg.Properties.SiteConfig.IPSecurityRestrictionsDefaultAction = "Deny"
	cfg.Properties.SiteConfig.IPSecurityRestrictions = []IPSecurityRestriction{
		{
			Name:      "AllowEventGrid",
			IPAddress: eventGridServiceTag,
			Tag:       "ServiceTag",
			Action:    "Allow",
			Priority:  100,
		},
	}

	settings.add("WEBSITE_VNET_ROUTE_ALL", "1")
	settings.add("WEBSITE_DNS_SERVER", AzureDNSResolver)
	return nil
}
