package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/aio/internal/logging"
	"github.com/fyrsmithlabs/aio/internal/render"
	"github.com/fyrsmithlabs/aio/internal/secrets"
	"github.com/fyrsmithlabs/aio/internal/tracker"
	"github.com/fyrsmithlabs/aio/internal/vcs"
)

// ErrNoPullRequest indicates a stage that requires a linked pull request
// found none. Fatal: proceeding would merge nothing.
var ErrNoPullRequest = errors.New("no pull request linked to work package")

// Renderer produces stage documents. Satisfied by *render.Renderer.
type Renderer interface {
	Render(name render.Template, data *render.Data) (string, error)
}

// Options configures an Engine.
type Options struct {
	Tracker  tracker.Gateway
	VCS      vcs.Gateway
	Renderer Renderer
	// Scrubber redacts secrets from outbound comments. Optional.
	Scrubber *secrets.Scrubber
	// Logger defaults to a nop logger.
	Logger *logging.Logger
	// Root is the repository root work packages live under.
	Root string
	// BaseBranch is the pull request target branch.
	BaseBranch string
	// Out receives operator guidance and rendered prompts. Defaults to stdout.
	Out io.Writer
}

// Engine is the single entry point of the pipeline:
// build context, classify, dispatch to one handler.
type Engine struct {
	tracker  tracker.Gateway
	vcs      vcs.Gateway
	renderer Renderer
	scrubber *secrets.Scrubber
	log      *logging.Logger
	root     string
	base     string
	out      io.Writer
}

// New creates an Engine from options.
func New(opts Options) (*Engine, error) {
	if opts.Tracker == nil {
		return nil, errors.New("pipeline: tracker gateway is required")
	}
	if opts.VCS == nil {
		return nil, errors.New("pipeline: vcs gateway is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("pipeline: renderer is required")
	}
	if opts.BaseBranch == "" {
		return nil, errors.New("pipeline: base branch is required")
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Engine{
		tracker:  opts.Tracker,
		vcs:      opts.VCS,
		renderer: opts.Renderer,
		scrubber: opts.Scrubber,
		log:      log,
		root:     opts.Root,
		base:     opts.BaseBranch,
		out:      out,
	}, nil
}

// Run processes one ticket: build context, classify, dispatch.
// No retries happen at this layer; a handler failure aborts the run and
// the next invocation recovers from observable state.
func (e *Engine) Run(ctx context.Context, number int) error {
	ctx = logging.WithTicket(ctx, number)

	pc, err := e.buildContext(ctx, number)
	if err != nil {
		return fmt.Errorf("failed to build context for ticket #%d: %w", number, err)
	}

	stage := Classify(Input{
		Labels:            pc.Ticket.Labels,
		HasReviewArtifact: pc.WorkPackage.HasReviewArtifact(),
		CommentCount:      len(pc.Comments),
	})

	e.log.Info(ctx, "classified ticket",
		zap.String("stage", string(stage)),
		zap.Strings("labels", pc.Ticket.Labels))

	switch stage {
	case StageBootstrap:
		err = e.handleBootstrap(ctx, pc)
	case StagePlanFeedback:
		err = e.handlePlanFeedback(ctx, pc)
	case StagePlanApproved:
		err = e.handlePlanApproved(ctx, pc)
	case StageReviewFeedback:
		err = e.handleReviewFeedback(ctx, pc)
	case StageReadyToMerge:
		err = e.handleReadyToMerge(ctx, pc)
	default:
		err = e.handleUndetermined(ctx, pc)
	}
	if err != nil {
		return fmt.Errorf("%s failed for ticket #%d: %w", stage, number, err)
	}
	return nil
}
