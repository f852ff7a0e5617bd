package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const tempDirPrefix = "docinfra-templates-*"

// Fetcher clones a template repository into a temporary directory.
//
// Note: Fetcher is NOT safe for concurrent use. Each goroutine should create
// its own instance.
type Fetcher struct {
	cfg     *Config
	tempDir string
}

// NewFetcher creates a Fetcher from the provided configuration. The fetcher
// must be cleaned up with Cleanup() when done.
func NewFetcher(cfg *Config) (*Fetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Fetcher{cfg: cfg}, nil
}

// Fetch performs a shallow clone of the configured ref and returns the
// directory holding the template files.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	tracer := otel.Tracer("docinfra")
	ctx, span := tracer.Start(ctx, "git.Fetch")
	defer span.End()

	span.SetAttributes(
		attribute.String("git.url", f.cfg.URL),
		attribute.String("git.ref", f.cfg.ref()),
	)

	tempDir, err := os.MkdirTemp("", tempDirPrefix)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	f.tempDir = tempDir

	_, err = gogit.PlainCloneContext(ctx, tempDir, false, &gogit.CloneOptions{
		URL:           f.cfg.URL,
		Auth:          f.auth(),
		ReferenceName: plumbing.NewBranchReferenceName(f.cfg.ref()),
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		span.RecordError(err)
		_ = os.RemoveAll(tempDir)
		f.tempDir = ""
		return "", fmt.Errorf("failed to clone template repository %s: %w", f.cfg.URL, err)
	}

	dir := tempDir
	if f.cfg.Path != "" {
		dir = filepath.Join(tempDir, f.cfg.Path)
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			span.RecordError(err)
			return "", fmt.Errorf("template path %q not found in repository", f.cfg.Path)
		}
	}

	return dir, nil
}

// Cleanup removes the cloned working tree.
func (f *Fetcher) Cleanup() error {
	if f.tempDir == "" {
		return nil
	}
	if err := os.RemoveAll(f.tempDir); err != nil {
		return fmt.Errorf("failed to remove temp directory: %w", err)
	}
	f.tempDir = ""
	return nil
}

func (f *Fetcher) auth() transport.AuthMethod {
	token := f.cfg.token()
	if token == "" {
		return nil
	}
	// GitHub-style token auth: any non-empty username works
	return &http.BasicAuth{Username: "docinfra", Password: token}
}
