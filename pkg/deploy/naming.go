package deploy

import (
	"fmt"
	"strings"
)

// Names carries every resource name for a deployment. Names are computed
// once from the project name and passed explicitly into each builder, so no
// module derives another's name by string convention.
type Names struct {
	HostingPlan    string
	StorageAccount string
	AppInsights    string
	Identity       string
	SystemTopic    string
}

func resolveNames(projectName, storageOverride string) Names {
	return Names{
		HostingPlan:    projectName + "-plan",
		StorageAccount: storageAccountName(projectName, storageOverride),
		AppInsights:    projectName + "-appi",
		Identity:       projectName + "-id",
		SystemTopic:    projectName + "-evgt",
	}
}

// storageAccountName derives a provider-valid account name (3-24 lowercase
// alphanumerics) from the project name unless an override is supplied.
func storageAccountName(projectName, override string) string {
	if override != "" {
		return override
	}
	sanitized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, strings.ToLower(projectName))
	name := sanitized + "st"
	if len(name) > 24 {
		name = name[:24]
	}
	return name
}

func functionAppName(projectName, appName string) string {
	return projectName + "-" + appName
}

func eventSubscriptionName(projectName, appName string) string {
	return projectName + "-" + appName + "-blob-events"
}

// ARM resource identifiers are deterministic given subscription, resource
// group and name, which lets the resolver reference resources that the
// engine has not created yet.

func hostingPlanID(subscriptionID, resourceGroup, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Web/serverfarms/%s",
		subscriptionID, resourceGroup, name)
}

func identityID(subscriptionID, resourceGroup, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.ManagedIdentity/userAssignedIdentities/%s",
		subscriptionID, resourceGroup, name)
}

func storageAccountID(subscriptionID, resourceGroup, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Storage/storageAccounts/%s",
		subscriptionID, resourceGroup, name)
}

func functionAppID(subscriptionID, resourceGroup, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Web/sites/%s",
		subscriptionID, resourceGroup, name)
}
