package pipeline

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/aio/internal/tracker"
	"github.com/fyrsmithlabs/aio/internal/workpackage"
)

// Context is the full picture needed to classify and act on one ticket.
// Built once per run; read-only afterwards.
type Context struct {
	Ticket      *tracker.Ticket
	PullRequest *tracker.PullRequest
	Comments    []tracker.Comment
	Checks      []tracker.Check
	WorkPackage workpackage.WorkPackage
	Slug        string
}

// buildContext assembles the context bundle for a ticket and puts the
// local repository on the work-package branch.
//
// Every step tolerates re-invocation: the branch is created only when
// absent, and a missing PR link simply means no pull request exists yet.
// Any fetch failure is fatal for the run; handlers never see a partial
// bundle.
func (e *Engine) buildContext(ctx context.Context, number int) (*Context, error) {
	ticket, err := e.tracker.GetTicket(ctx, number)
	if err != nil {
		return nil, err
	}

	wp := workpackage.New(e.root, ticket.Number, ticket.Title)

	exists, err := e.vcs.BranchExists(wp.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		if err := e.vcs.SwitchBranch(wp.Name); err != nil {
			return nil, err
		}
	} else {
		if err := e.vcs.CreateBranch(wp.Name); err != nil {
			return nil, err
		}
	}

	pc := &Context{
		Ticket:      ticket,
		WorkPackage: wp,
		Slug:        workpackage.Slug(ticket.Title),
	}

	link, err := wp.ReadLink()
	switch {
	case err == nil:
		pr, err := e.tracker.GetPullRequest(ctx, link.ID)
		if err != nil {
			return nil, err
		}
		pc.PullRequest = pr

		ticketComments, err := e.tracker.GetTicketComments(ctx, ticket.Number)
		if err != nil {
			return nil, err
		}
		prComments, err := e.tracker.GetPullRequestComments(ctx, pr.Number)
		if err != nil {
			return nil, err
		}
		pc.Comments = dropSelfAuthored(append(ticketComments, prComments...))

		checks, err := e.tracker.GetChecks(ctx, pr.HeadBranch)
		if err != nil {
			return nil, err
		}
		pc.Checks = checks

	case errors.Is(err, workpackage.ErrNoLink):
		comments, err := e.tracker.GetTicketComments(ctx, ticket.Number)
		if err != nil {
			return nil, err
		}
		pc.Comments = comments

	default:
		return nil, err
	}

	e.log.Debug(ctx, "built context",
		zap.String("work_package", wp.Name),
		zap.Strings("labels", ticket.Labels),
		zap.Int("comments", len(pc.Comments)),
		zap.Bool("has_pull_request", pc.PullRequest != nil))

	return pc, nil
}

// dropSelfAuthored filters out comments this system wrote, recognized by
// the marker embedded in their body.
func dropSelfAuthored(comments []tracker.Comment) []tracker.Comment {
	kept := make([]tracker.Comment, 0, len(comments))
	for _, c := range comments {
		if strings.Contains(c.Body, Marker) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
