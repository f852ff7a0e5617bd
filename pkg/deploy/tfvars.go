package deploy

import (
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/config"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/hosting"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/resources"
)

// TFVars is the variable document handed to the engine. The resource
// documents are submitted as raw bodies, so field presence and absence
// survive exactly as the resolver emitted them.
//
// DeployCore gates the second phase: the foundation resources (storage,
// identity, Application Insights) must exist before the resolver can consume
// their outputs, so a deployment applies twice over the same working
// directory.
type TFVars struct {
	ProjectName    string `json:"project_name"`
	Location       string `json:"location"`
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group"`
	DeployCore     bool   `json:"deploy_core"`

	StorageAccount *resources.StorageAccountConfig `json:"storage_account"`
	Identity       *resources.IdentityConfig       `json:"identity"`
	AppInsights    *resources.AppInsightsConfig    `json:"app_insights"`

	HostingPlan        *hosting.HostingPlanConfig           `json:"hosting_plan,omitempty"`
	FunctionApps       []*hosting.FunctionAppConfig         `json:"function_apps,omitempty"`
	SystemTopic        *resources.SystemTopicConfig         `json:"system_topic,omitempty"`
	EventSubscriptions []*resources.EventSubscriptionConfig `json:"event_subscriptions,omitempty"`
}

// toTFVars converts a resolved plan into engine variables. Core documents
// are included only when deployCore is set; the foundation-only phase leaves
// them out entirely.
func toTFVars(cfg *config.DeployConfig, plan *Plan, deployCore bool) TFVars {
	vars := TFVars{
		ProjectName:    cfg.ProjectName,
		Location:       cfg.Location,
		SubscriptionID: cfg.SubscriptionID,
		ResourceGroup:  cfg.ResourceGroup,
		DeployCore:     deployCore,
		StorageAccount: plan.StorageAccount,
		Identity:       plan.Identity,
		AppInsights:    plan.AppInsights,
	}

	if deployCore {
		vars.HostingPlan = plan.HostingPlan
		vars.FunctionApps = plan.FunctionApps
		vars.SystemTopic = plan.SystemTopic
		vars.EventSubscriptions = plan.EventSubscriptions
	}

	return vars
}
