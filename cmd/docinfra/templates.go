package main

import (
	"context"
	"log/slog"

	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/deploy"
	"github.com/Th-Pradeep/Honkamp-krueger-AI-Doc/pkg/git"
)

// templateFlags are shared by deploy and destroy: both can run against a
// template set fetched from a Git repository instead of the embedded one.
type templateFlags struct {
	repo string
	ref  string
	path string
}

// resolveTemplates returns the deploy options and a cleanup function. With no
// repository configured the embedded templates are used and cleanup is a
// no-op.
func resolveTemplates(ctx context.Context, f templateFlags) (deploy.Options, func(), error) {
	if f.repo == "" {
		return deploy.Options{}, func() {}, nil
	}

	fetcher, err := git.NewFetcher(&git.Config{
		URL:  f.repo,
		Ref:  f.ref,
		Path: f.path,
	})
	if err != nil {
		return deploy.Options{}, nil, err
	}

	slog.Info("Fetching template overrides", "repo", f.repo, "ref", f.ref)
	dir, err := fetcher.Fetch(ctx)
	if err != nil {
		return deploy.Options{}, nil, err
	}

	cleanup := func() {
		if err := fetcher.Cleanup(); err != nil {
			slog.Warn("Failed to clean up fetched templates", "error", err)
		}
	}
	return deploy.Options{TemplateDir: dir}, cleanup, nil
}
