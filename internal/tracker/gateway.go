// Package tracker provides the issue-tracker gateway for aio.
//
// The Gateway interface is the contract the pipeline core consumes; the
// GitHub implementation backs it with the REST API. All operations are
// remote calls that may fail with a transport error. The core does not
// retry them: recovery is re-running the whole engine.
package tracker

import "context"

// Gateway is the issue-tracker contract consumed by the pipeline.
type Gateway interface {
	GetTicket(ctx context.Context, number int) (*Ticket, error)
	GetPullRequest(ctx context.Context, number int) (*PullRequest, error)
	GetTicketComments(ctx context.Context, number int) ([]Comment, error)
	GetPullRequestComments(ctx context.Context, number int) ([]Comment, error)
	GetChecks(ctx context.Context, ref string) ([]Check, error)

	AddLabel(ctx context.Context, number int, label string) error
	RemoveLabel(ctx context.Context, number int, label string) error
	RemoveAllLabels(ctx context.Context, number int) error
	RemoveAllPullRequestLabels(ctx context.Context, number int) error

	CreatePullRequest(ctx context.Context, opts PRCreateOptions) (*PullRequest, error)
	AddComment(ctx context.Context, number int, body string) error
	MergePullRequest(ctx context.Context, number int) error
}
