package tofu

import (
	"testing"
	"testing/fstest"

	"github.com/spf13/afero"
)

func TestExtractTemplates(t *testing.T) {
	templates := fstest.MapFS{
		"templates/main.tf":              {Data: []byte(`variable "project_name" {}`)},
		"templates/outputs.tf":           {Data: []byte(`output "location" {}`)},
		"templates/modules/extra/sub.tf": {Data: []byte(`# nested`)},
	}

	appFs := afero.NewMemMapFs()
	dir, err := extractTemplates(appFs, templates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for path, want := range map[string]string{
		"main.tf":              `variable "project_name" {}`,
		"outputs.tf":           `output "location" {}`,
		"modules/extra/sub.tf": `# nested`,
	} {
		data, err := afero.ReadFile(appFs, dir+"/"+path)
		if err != nil {
			t.Fatalf("template %s not extracted: %v", path, err)
		}
		if string(data) != want {
			t.Errorf("%s content = %q, want %q", path, data, want)
		}
	}
}

func TestExtractTemplatesMissingRoot(t *testing.T) {
	appFs := afero.NewMemMapFs()
	if _, err := extractTemplates(appFs, fstest.MapFS{}); err == nil {
		t.Fatal("expected error when templates directory is absent")
	}
}

func TestGetPluginCacheDir(t *testing.T) {
	appFs := afero.NewMemMapFs()
	dir, err := getPluginCacheDir(appFs, "/cache/docinfra/tofu")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != "/cache/docinfra/tofu/plugins" {
		t.Errorf("plugin cache dir = %q", dir)
	}
	exists, err := afero.DirExists(appFs, dir)
	if err != nil || !exists {
		t.Errorf("plugin cache dir should exist, exists=%v err=%v", exists, err)
	}
}
