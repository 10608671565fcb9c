// Package config provides configuration loading for aio.
//
// Configuration is loaded from an optional YAML file and overridden by
// environment variables. The GitHub token, owner and repository are
// required; everything else has a sensible default.
package config

import (
	"errors"
	"fmt"
)

// Config holds the complete aio configuration.
type Config struct {
	GitHub    GitHubConfig    `koanf:"github"`
	Workspace WorkspaceConfig `koanf:"workspace"`
	Logging   LoggingConfig   `koanf:"logging"`
	Scrub     ScrubConfig     `koanf:"scrub"`
}

// GitHubConfig holds tracker connection settings.
type GitHubConfig struct {
	Token Secret `koanf:"token"`
	Owner string `koanf:"owner"`
	Repo  string `koanf:"repo"`
}

// WorkspaceConfig holds local repository settings.
type WorkspaceConfig struct {
	// Root is the path to the local clone that work packages live in.
	Root string `koanf:"root"`
	// BaseBranch is the pull request target branch.
	BaseBranch string `koanf:"base_branch"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ScrubConfig controls secret scrubbing of outbound tracker comments.
// Scrubbing is on unless explicitly disabled.
type ScrubConfig struct {
	Disabled bool `koanf:"disabled"`
}

// ErrMissingCredentials indicates required GitHub connection settings are absent.
var ErrMissingCredentials = errors.New("missing GitHub credentials")

// applyDefaults fills in defaults for unset optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Workspace.Root == "" {
		cfg.Workspace.Root = "."
	}
	if cfg.Workspace.BaseBranch == "" {
		cfg.Workspace.BaseBranch = "main"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// Validate checks that required settings are present.
//
// A missing token, owner or repo is a startup failure: the engine cannot
// reach the tracker without them and must not touch any ticket state.
func (c *Config) Validate() error {
	var missing []string
	if !c.GitHub.Token.IsSet() {
		missing = append(missing, "github.token")
	}
	if c.GitHub.Owner == "" {
		missing = append(missing, "github.owner")
	}
	if c.GitHub.Repo == "" {
		missing = append(missing, "github.repo")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v (set GITHUB_TOKEN, GITHUB_OWNER, GITHUB_REPO)", ErrMissingCredentials, missing)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	return nil
}
