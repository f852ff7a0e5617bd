// Package tofu bootstraps the OpenTofu provisioning engine: it downloads and
// caches the binary, extracts the embedded deployment templates to a working
// directory, writes the resolved desired-state documents as tfvars, and
// returns a configured executor. Reconciliation, ordering between dependent
// resources and retries on transient provisioning failures all belong to the
// engine, not to this repository.
package tofu

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/terraform-exec/tfexec"
	"github.com/opentofu/tofudl"
	"github.com/spf13/afero"
)

// DefaultVersion is the OpenTofu version the engine downloads when no cached
// binary is present.
const DefaultVersion = "1.8.5"

func getCacheDir(appFs afero.Fs) (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}

	// Create docinfra/tofu cache directory if it doesn't exist
	tofuCacheDir := filepath.Join(userCacheDir, "docinfra", "tofu")
	if err := appFs.MkdirAll(tofuCacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create docinfra/tofu cache directory: %w", err)
	}

	return tofuCacheDir, nil
}

func getPluginCacheDir(appFs afero.Fs, cacheDir string) (string, error) {
	pluginCacheDir := filepath.Join(cacheDir, "plugins")
	if err := appFs.MkdirAll(pluginCacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create plugin cache directory: %w", err)
	}

	return pluginCacheDir, nil
}

func downloadExecutable(ctx context.Context, appFs afero.Fs, cacheDir string) (string, error) {
	dl, err := tofudl.New()
	if err != nil {
		return "", fmt.Errorf("failed to initialize tofu downloader: %w", err)
	}

	// Caching layer for tofu binaries
	storage, err := tofudl.NewFilesystemStorage(cacheDir)
	if err != nil {
		return "", fmt.Errorf("failed to initialize tofu filesystem storage: %w", err)
	}
	mirror, err := tofudl.NewMirror(
		tofudl.MirrorConfig{
			AllowStale:           true, // Use cached binary if download fails
			APICacheTimeout:      -1,   // Cache API responses indefinitely
			ArtifactCacheTimeout: -1,   // Cache binaries indefinitely
		},
		storage,
		dl,
	)
	if err != nil {
		return "", fmt.Errorf("failed to initialize tofu mirror: %w", err)
	}

	ver := tofudl.Version(DefaultVersion)
	opts := tofudl.DownloadOptVersion(ver)
	binary, err := mirror.Download(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("failed to download tofu binary: %w", err)
	}

	execPath := filepath.Join(cacheDir, "tofu")
	if runtime.GOOS == "windows" {
		execPath += ".exe"
	}
	if err := afero.WriteFile(appFs, execPath, binary, 0755); err != nil {
		return "", fmt.Errorf("failed to write tofu binary to cache: %w", err)
	}

	return execPath, nil
}

func extractTemplates(appFs afero.Fs, templates fs.FS) (string, error) {
	dir, err := afero.TempDir(appFs, "", "docinfra-tofu")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}

	const templatesDir = "templates"

	err = fs.WalkDir(templates, templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip the root directory itself
		if path == templatesDir {
			return nil
		}

		relPath, err := filepath.Rel(templatesDir, path)
		if err != nil {
			return err
		}

		targetPath := filepath.Join(dir, relPath)

		if d.IsDir() {
			return appFs.MkdirAll(targetPath, 0755)
		}

		data, err := fs.ReadFile(templates, path)
		if err != nil {
			return err
		}

		return afero.WriteFile(appFs, targetPath, data, 0644)
	})
	if err != nil {
		_ = appFs.RemoveAll(dir)
		return "", fmt.Errorf("failed to extract templates: %w", err)
	}

	return dir, nil
}

// Setup prepares the engine: binary download (cached under
// ~/.cache/docinfra/tofu/), provider plugin cache, template extraction and
// tfvars. The caller is responsible for calling Init() with appropriate
// options.
func Setup(ctx context.Context, templates fs.FS, tfvars any) (*tfexec.Terraform, error) {
	appFs := afero.NewOsFs()

	cacheDir, err := getCacheDir(appFs)
	if err != nil {
		return nil, fmt.Errorf("failed to get cache directory: %w", err)
	}

	pluginCacheDir, err := getPluginCacheDir(appFs, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get plugin cache directory: %w", err)
	}

	execPath, err := downloadExecutable(ctx, appFs, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get executable: %w", err)
	}

	workingDir, err := extractTemplates(appFs, templates)
	if err != nil {
		return nil, err
	}

	if err := os.Setenv("TF_PLUGIN_CACHE_DIR", pluginCacheDir); err != nil {
		return nil, fmt.Errorf("failed to set TF_PLUGIN_CACHE_DIR: %w", err)
	}

	tfvarsJSON, err := json.Marshal(tfvars)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tfvars: %w", err)
	}
	if err := afero.WriteFile(appFs, filepath.Join(workingDir, "terraform.tfvars.json"), tfvarsJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write tfvars: %w", err)
	}

	tf, err := tfexec.NewTerraform(workingDir, execPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create terraform executor: %w", err)
	}

	tf.SetStdout(os.Stdout)
	tf.SetStderr(os.Stderr)

	return tf, nil
}

// SetupInDir is like Setup but uses a caller-provided template directory
// (e.g. overrides fetched from Git) instead of the embedded templates.
func SetupInDir(ctx context.Context, workingDir string, tfvars any) (*tfexec.Terraform, error) {
	appFs := afero.NewOsFs()

	cacheDir, err := getCacheDir(appFs)
	if err != nil {
		return nil, fmt.Errorf("failed to get cache directory: %w", err)
	}

	pluginCacheDir, err := getPluginCacheDir(appFs, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get plugin cache directory: %w", err)
	}

	execPath, err := downloadExecutable(ctx, appFs, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get executable: %w", err)
	}

	if err := os.Setenv("TF_PLUGIN_CACHE_DIR", pluginCacheDir); err != nil {
		return nil, fmt.Errorf("failed to set TF_PLUGIN_CACHE_DIR: %w", err)
	}

	tfvarsJSON, err := json.Marshal(tfvars)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tfvars: %w", err)
	}
	if err := afero.WriteFile(appFs, filepath.Join(workingDir, "terraform.tfvars.json"), tfvarsJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write tfvars: %w", err)
	}

	tf, err := tfexec.NewTerraform(workingDir, execPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create terraform executor: %w", err)
	}

	tf.SetStdout(os.Stdout)
	tf.SetStderr(os.Stderr)

	return tf, nil
}
