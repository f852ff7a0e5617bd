package resources

import "fmt"

// OrchestratorFunctionName is the Event Grid-triggered function that starts
// the processing orchestration on blob events. The name is fixed by the
// accelerator's function code.
const OrchestratorFunctionName = "start_orchestrator_on_blob"

// IngestContainer is the container whose blob-created events start the
// pipeline.
const IngestContainer = "bronze"

// SystemTopicConfig is the storage-account system topic document.
type SystemTopicConfig struct {
	Name       string                `json:"name"`
	Location   string                `json:"location"`
	Properties SystemTopicProperties `json:"properties"`
}

// SystemTopicProperties binds the topic to its event source.
type SystemTopicProperties struct {
	Source    string `json:"source"`
	TopicType string `json:"topicType"`
}

// EventSubscriptionConfig is the push-delivery subscription document wiring
// storage blob events to the Function App.
type EventSubscriptionConfig struct {
	Name       string                      `json:"name"`
	Properties EventSubscriptionProperties `json:"properties"`
}

// EventSubscriptionProperties carries destination and filtering.
type EventSubscriptionProperties struct {
	Destination EventDestination `json:"destination"`
	Filter      EventFilter      `json:"filter"`
}

// EventDestination targets a single function on the Function App.
type EventDestination struct {
	EndpointType string                     `json:"endpointType"`
	Properties   EventDestinationProperties `json:"properties"`
}

// EventDestinationProperties identifies the Azure Function endpoint.
type EventDestinationProperties struct {
	ResourceID string `json:"resourceId"`
}

// EventFilter restricts delivery to blob-created events in the ingest
// container.
type EventFilter struct {
	IncludedEventTypes     []string `json:"includedEventTypes"`
	SubjectBeginsWith      string   `json:"subjectBeginsWith"`
	IsSubjectCaseSensitive bool     `json:"isSubjectCaseSensitive"`
}

// BuildSystemTopic produces the system topic document for the storage
// account identified by storageAccountID.
func BuildSystemTopic(name, location, storageAccountID string) (*SystemTopicConfig, error) {
	if name == "" {
		return nil, fmt.Errorf("system topic name is required")
	}
	if storageAccountID == "" {
		return nil, fmt.Errorf("system topic source storage account ID is required")
	}
	return &SystemTopicConfig{
		Name:     name,
		Location: location,
		Properties: SystemTopicProperties{
			Source:    storageAccountID,
			TopicType: "Microsoft.Storage.StorageAccounts",
		},
	}, nil
}

// BuildEventSubscription produces the subscription delivering blob-created
// events from the ingest container to the orchestrator starter function of
// the Function App identified by functionAppID.
func BuildEventSubscription(name, functionAppID string) (*EventSubscriptionConfig, error) {
	if name == "" {
		return nil, fmt.Errorf("event subscription name is required")
	}
	if functionAppID == "" {
		return nil, fmt.Errorf("event subscription function app ID is required")
	}
	return &EventSubscriptionConfig{
		Name: name,
		Properties: EventSubscriptionProperties{
			Destination: EventDestination{
				EndpointType: "AzureFunction",
				Properties: EventDestinationProperties{
					ResourceID: fmt.Sprintf("%s/functions/%s", functionAppID, OrchestratorFunctionName),
				},
			},
			Filter: EventFilter{
				IncludedEventTypes: []string{"Microsoft.Storage.BlobCreated"},
				SubjectBeginsWith:  fmt.Sprintf("/blobServices/default/containers/%s/", IngestContainer),
			},
		},
	}, nil
}
