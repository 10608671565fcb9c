// Package main implements the aio CLI.
//
// aio drives a label-based delivery pipeline for a single ticket: it
// reads the ticket's current labels and work-package files, derives the
// pipeline stage from them, and runs the one handler for that stage.
// Running it again is always safe; there is no stored execution state.
//
// Usage:
//
//	# Process ticket 42 once
//	aio 42
//
//	# Re-run automatically when work package files change
//	aio 42 --watch
//
// Configuration is loaded from ~/.config/aio/config.yaml and overridden
// by environment variables (GITHUB_TOKEN, GITHUB_OWNER, GITHUB_REPO).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/aio/internal/config"
	"github.com/fyrsmithlabs/aio/internal/logging"
	"github.com/fyrsmithlabs/aio/internal/pipeline"
	"github.com/fyrsmithlabs/aio/internal/render"
	"github.com/fyrsmithlabs/aio/internal/secrets"
	"github.com/fyrsmithlabs/aio/internal/tracker"
	"github.com/fyrsmithlabs/aio/internal/vcs"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

var (
	configPath string
	watchMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "aio <ticket-number>",
	Short: "Label-driven delivery pipeline for agent-assisted tickets",
	Long: `aio processes one ticket of a label-driven delivery pipeline.

Each run derives the ticket's stage from its tracker labels and the files
in its work package, performs that stage's actions (branch, files, commit,
push, pull request, labels, comments), and prints the instruction to hand
to your coding agent. Runs are idempotent: re-running after a failure
continues from whatever state survived.

Examples:
  # Process ticket 42 once
  aio 42

  # Keep re-running as the agent writes PLAN.md or qa.md
  aio 42 --watch`,
	Args:          cobra.ExactArgs(1),
	RunE:          runPipeline,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("aio %s\n  commit: %s\n  built:  %s\n", version, gitCommit, buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.config/aio/config.yaml)")
	rootCmd.Flags().BoolVar(&watchMode, "watch", false, "re-run when work package files change")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	number, err := strconv.Atoi(args[0])
	if err != nil || number <= 0 {
		return fmt.Errorf("ticket number must be a positive integer, got %q", args[0])
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logging.WithRunID(ctx, uuid.NewString())

	engine, err := buildEngine(ctx, cfg, log)
	if err != nil {
		return err
	}

	log.Info(ctx, "starting run",
		zap.Int("ticket", number),
		zap.String("repo", cfg.GitHub.Owner+"/"+cfg.GitHub.Repo),
		zap.String("version", version))

	if err := engine.Run(ctx, number); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}
	return watchAndRerun(ctx, engine, cfg, log, number)
}

func newLogger(cfg *config.Config) (*logging.Logger, error) {
	level, err := logging.LevelFromString(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(&logging.Config{
		Level:  level,
		Format: cfg.Logging.Format,
	})
}

// buildEngine wires the tracker, repository, renderer and scrubber into
// a pipeline engine.
func buildEngine(ctx context.Context, cfg *config.Config, log *logging.Logger) (*pipeline.Engine, error) {
	gh, err := tracker.NewGitHub(ctx, cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.Repo)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracker client: %w", err)
	}

	repo, err := vcs.Open(cfg.Workspace.Root, cfg.GitHub.Token, log.Named("vcs"))
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", cfg.Workspace.Root, err)
	}

	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	var scrubber *secrets.Scrubber
	if !cfg.Scrub.Disabled {
		scrubber, err = secrets.New(secrets.DefaultRules()...)
		if err != nil {
			return nil, err
		}
	}

	return pipeline.New(pipeline.Options{
		Tracker:    gh,
		VCS:        repo,
		Renderer:   renderer,
		Scrubber:   scrubber,
		Logger:     log,
		Root:       cfg.Workspace.Root,
		BaseBranch: cfg.Workspace.BaseBranch,
		Out:        os.Stdout,
	})
}
