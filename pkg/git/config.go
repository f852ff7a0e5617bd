// Package git fetches engine template overrides from a Git repository.
// Teams that maintain hardened variants of the deployment templates point
// the CLI at their repository instead of using the embedded set.
package git

import (
	"fmt"
	"os"
)

// DefaultTokenEnv is the environment variable read for HTTPS token auth
// when the config does not name one.
const DefaultTokenEnv = "DOCINFRA_GIT_TOKEN"

// Config identifies the template repository. Secrets are read from
// environment variables, never stored in config.
type Config struct {
	// URL is the repository HTTPS URL, e.g. "https://github.com/org/templates.git"
	URL string

	// Ref is the branch or tag to fetch (default: "main")
	Ref string

	// Path is an optional subdirectory within the repository holding the
	// template files
	Path string

	// TokenEnv is the name of the environment variable containing a personal
	// access token. Empty means DefaultTokenEnv; a missing or empty variable
	// means anonymous access.
	TokenEnv string
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("template repository url is required")
	}
	return nil
}

// ref returns the configured ref or "main" as default.
func (c *Config) ref() string {
	if c.Ref == "" {
		return "main"
	}
	return c.Ref
}

// token reads the access token from the environment, or "" for anonymous
// access.
func (c *Config) token() string {
	env := c.TokenEnv
	if env == "" {
		env = DefaultTokenEnv
	}
	return os.Getenv(env)
}
