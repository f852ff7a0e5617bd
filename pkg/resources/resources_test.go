package resources

import (
	"strings"
	"testing"
)

func TestBuildStorageAccount(t *testing.T) {
	tests := []struct {
		name             string
		spec             StorageSpec
		wantErr          bool
		wantPublicAccess string
		wantContainers   []string
	}{
		{
			name:             "defaults",
			spec:             StorageSpec{Name: "docprocst", Location: "eastus"},
			wantPublicAccess: "Enabled",
			wantContainers:   []string{"deployment", "bronze", "silver", "gold"},
		},
		{
			name:             "network isolation disables public access",
			spec:             StorageSpec{Name: "docprocst", Location: "eastus", NetworkIsolation: true},
			wantPublicAccess: "Disabled",
			wantContainers:   []string{"deployment", "bronze", "silver", "gold"},
		},
		{
			name:             "custom containers",
			spec:             StorageSpec{Name: "docprocst", Location: "eastus", Containers: []string{"deployment", "inbox"}},
			wantPublicAccess: "Enabled",
			wantContainers:   []string{"deployment", "inbox"},
		},
		{
			name:    "missing name",
			spec:    StorageSpec{Location: "eastus"},
			wantErr: true,
		},
		{
			name:    "name too short",
			spec:    StorageSpec{Name: "ab", Location: "eastus"},
			wantErr: true,
		},
		{
			name:    "name too long",
			spec:    StorageSpec{Name: strings.Repeat("a", 25), Location: "eastus"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := BuildStorageAccount(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Kind != "StorageV2" {
				t.Errorf("Kind = %q, want StorageV2", cfg.Kind)
			}
			if cfg.Sku.Name != "Standard_LRS" {
				t.Errorf("Sku.Name = %q, want Standard_LRS", cfg.Sku.Name)
			}
			if cfg.Properties.AllowBlobPublicAccess {
				t.Error("AllowBlobPublicAccess should always be false")
			}
			if cfg.Properties.MinimumTLSVersion != "TLS1_2" {
				t.Errorf("MinimumTLSVersion = %q, want TLS1_2", cfg.Properties.MinimumTLSVersion)
			}
			if !cfg.Properties.SupportsHTTPSTrafficOnly {
				t.Error("SupportsHTTPSTrafficOnly should be true")
			}
			if cfg.Properties.PublicNetworkAccess != tt.wantPublicAccess {
				t.Errorf("PublicNetworkAccess = %q, want %q", cfg.Properties.PublicNetworkAccess, tt.wantPublicAccess)
			}
			if len(cfg.Containers) != len(tt.wantContainers) {
				t.Fatalf("Containers = %v, want %v", cfg.Containers, tt.wantContainers)
			}
			for i, c := range tt.wantContainers {
				if cfg.Containers[i] != c {
					t.Errorf("Containers[%d] = %q, want %q", i, cfg.Containers[i], c)
				}
			}
		})
	}
}

func TestBuildIdentity(t *testing.T) {
	identity, err := BuildIdentity("doc-id", "eastus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Name != "doc-id" || identity.Location != "eastus" {
		t.Errorf("unexpected identity document: %+v", identity)
	}

	if _, err := BuildIdentity("", "eastus"); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := BuildIdentity("doc-id", ""); err == nil {
		t.Error("expected error for missing location")
	}
}

func TestBuildAppInsights(t *testing.T) {
	t.Run("classic mode", func(t *testing.T) {
		cfg, err := BuildAppInsights("doc-appi", "eastus", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Kind != "web" || cfg.Properties.ApplicationType != "web" {
			t.Errorf("unexpected component type: %+v", cfg)
		}
		if cfg.Properties.WorkspaceResourceID != nil {
			t.Error("WorkspaceResourceID should be absent when no workspace is configured")
		}
	})

	t.Run("workspace bound", func(t *testing.T) {
		workspaceID := "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/doc-rg/providers/Microsoft.OperationalInsights/workspaces/doc-law"
		cfg, err := BuildAppInsights("doc-appi", "eastus", workspaceID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Properties.WorkspaceResourceID == nil || *cfg.Properties.WorkspaceResourceID != workspaceID {
			t.Error("WorkspaceResourceID should carry the configured workspace")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		if _, err := BuildAppInsights("", "eastus", ""); err == nil {
			t.Error("expected error for missing name")
		}
	})
}

func TestBuildSystemTopic(t *testing.T) {
	storageID := "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/doc-rg/providers/Microsoft.Storage/storageAccounts/docprocst"

	topic, err := BuildSystemTopic("doc-evgt", "eastus", storageID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if topic.Properties.Source != storageID {
		t.Errorf("Source = %q, want %q", topic.Properties.Source, storageID)
	}
	if topic.Properties.TopicType != "Microsoft.Storage.StorageAccounts" {
		t.Errorf("TopicType = %q, want Microsoft.Storage.StorageAccounts", topic.Properties.TopicType)
	}

	if _, err := BuildSystemTopic("", "eastus", storageID); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := BuildSystemTopic("doc-evgt", "eastus", ""); err == nil {
		t.Error("expected error for missing storage account ID")
	}
}

func TestBuildEventSubscription(t *testing.T) {
	appID := "/subscriptions/00000000-0000-0000-0000-000000000000/resourceGroups/doc-rg/providers/Microsoft.Web/sites/doc-process"

	sub, err := BuildEventSubscription("doc-process-blob-events", appID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Properties.Destination.EndpointType != "AzureFunction" {
		t.Errorf("EndpointType = %q, want AzureFunction", sub.Properties.Destination.EndpointType)
	}
	wantResource := appID + "/functions/start_orchestrator_on_blob"
	if sub.Properties.Destination.Properties.ResourceID != wantResource {
		t.Errorf("ResourceID = %q, want %q", sub.Properties.Destination.Properties.ResourceID, wantResource)
	}
	if len(sub.Properties.Filter.IncludedEventTypes) != 1 || sub.Properties.Filter.IncludedEventTypes[0] != "Microsoft.Storage.BlobCreated" {
		t.Errorf("IncludedEventTypes = %v, want [Microsoft.Storage.BlobCreated]", sub.Properties.Filter.IncludedEventTypes)
	}
	if sub.Properties.Filter.SubjectBeginsWith != "/blobServices/default/containers/bronze/" {
		t.Errorf("SubjectBeginsWith = %q, want the bronze container prefix", sub.Properties.Filter.SubjectBeginsWith)
	}

	if _, err := BuildEventSubscription("", appID); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := BuildEventSubscription("doc-process-blob-events", ""); err == nil {
		t.Error("expected error for missing function app ID")
	}
}
