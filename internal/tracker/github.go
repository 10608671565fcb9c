package tracker

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/fyrsmithlabs/aio/internal/config"
)

// GitHub implements Gateway against the GitHub REST API.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
}

// listPageSize is the page size for paginated list calls.
const listPageSize = 100

// NewGitHub creates a GitHub gateway with token authentication.
func NewGitHub(ctx context.Context, token config.Secret, owner, repo string) (*GitHub, error) {
	if !token.IsSet() {
		return nil, fmt.Errorf("GitHub token not set")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.Value()})
	tc := oauth2.NewClient(ctx, ts)

	return &GitHub{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// GetTicket fetches an issue snapshot.
func (g *GitHub) GetTicket(ctx context.Context, number int) (*Ticket, error) {
	issue, _, err := g.client.Issues.Get(ctx, g.owner, g.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticket #%d: %w", number, err)
	}
	return ticketFromIssue(issue), nil
}

// GetPullRequest fetches a pull request snapshot.
func (g *GitHub) GetPullRequest(ctx context.Context, number int) (*PullRequest, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, g.owner, g.repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request #%d: %w", number, err)
	}
	return pullRequestFromGitHub(pr), nil
}

// GetTicketComments fetches all issue comments, oldest first.
func (g *GitHub) GetTicketComments(ctx context.Context, number int) ([]Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}
	var comments []Comment
	for {
		page, resp, err := g.client.Issues.ListComments(ctx, g.owner, g.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments for ticket #%d: %w", number, err)
		}
		for _, c := range page {
			comments = append(comments, Comment{
				ID:        c.GetID(),
				Body:      c.GetBody(),
				Author:    c.GetUser().GetLogin(),
				CreatedAt: c.GetCreatedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return comments, nil
}

// GetPullRequestComments fetches all review comments on a pull request.
func (g *GitHub) GetPullRequestComments(ctx context.Context, number int) ([]Comment, error) {
	opts := &github.PullRequestListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}
	var comments []Comment
	for {
		page, resp, err := g.client.PullRequests.ListComments(ctx, g.owner, g.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments for pull request #%d: %w", number, err)
		}
		for _, c := range page {
			comments = append(comments, Comment{
				ID:        c.GetID(),
				Body:      c.GetBody(),
				Author:    c.GetUser().GetLogin(),
				CreatedAt: c.GetCreatedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return comments, nil
}

// GetChecks fetches CI check runs for a ref.
func (g *GitHub) GetChecks(ctx context.Context, ref string) ([]Check, error) {
	opts := &github.ListCheckRunsOptions{
		ListOptions: github.ListOptions{PerPage: listPageSize},
	}
	var checks []Check
	for {
		results, resp, err := g.client.Checks.ListCheckRunsForRef(ctx, g.owner, g.repo, ref, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list checks for ref %s: %w", ref, err)
		}
		for _, run := range results.CheckRuns {
			checks = append(checks, Check{
				ID:         run.GetID(),
				Name:       run.GetName(),
				Status:     run.GetStatus(),
				Conclusion: run.GetConclusion(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return checks, nil
}

// AddLabel adds a label to an issue.
func (g *GitHub) AddLabel(ctx context.Context, number int, label string) error {
	_, _, err := g.client.Issues.AddLabelsToIssue(ctx, g.owner, g.repo, number, []string{label})
	if err != nil {
		return fmt.Errorf("failed to add label %q to #%d: %w", label, number, err)
	}
	return nil
}

// RemoveLabel removes a label from an issue.
func (g *GitHub) RemoveLabel(ctx context.Context, number int, label string) error {
	_, err := g.client.Issues.RemoveLabelForIssue(ctx, g.owner, g.repo, number, label)
	if err != nil {
		return fmt.Errorf("failed to remove label %q from #%d: %w", label, number, err)
	}
	return nil
}

// RemoveAllLabels strips every label from an issue.
func (g *GitHub) RemoveAllLabels(ctx context.Context, number int) error {
	_, err := g.client.Issues.RemoveLabelsForIssue(ctx, g.owner, g.repo, number)
	if err != nil {
		return fmt.Errorf("failed to remove labels from #%d: %w", number, err)
	}
	return nil
}

// RemoveAllPullRequestLabels strips every label from a pull request.
// Pull requests are issues in the GitHub API, so this shares the issue endpoint.
func (g *GitHub) RemoveAllPullRequestLabels(ctx context.Context, number int) error {
	_, err := g.client.Issues.RemoveLabelsForIssue(ctx, g.owner, g.repo, number)
	if err != nil {
		return fmt.Errorf("failed to remove labels from pull request #%d: %w", number, err)
	}
	return nil
}

// CreatePullRequest opens a pull request.
func (g *GitHub) CreatePullRequest(ctx context.Context, opts PRCreateOptions) (*PullRequest, error) {
	pr, _, err := g.client.PullRequests.Create(ctx, g.owner, g.repo, &github.NewPullRequest{
		Title: github.String(opts.Title),
		Body:  github.String(opts.Body),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Draft: github.Bool(opts.Draft),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request for %s: %w", opts.Head, err)
	}
	return pullRequestFromGitHub(pr), nil
}

// AddComment posts a comment on an issue.
func (g *GitHub) AddComment(ctx context.Context, number int, body string) error {
	_, _, err := g.client.Issues.CreateComment(ctx, g.owner, g.repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to comment on #%d: %w", number, err)
	}
	return nil
}

// MergePullRequest merges a pull request with squash semantics.
func (g *GitHub) MergePullRequest(ctx context.Context, number int) error {
	_, _, err := g.client.PullRequests.Merge(ctx, g.owner, g.repo, number, "", &github.PullRequestOptions{
		MergeMethod: "squash",
	})
	if err != nil {
		return fmt.Errorf("failed to merge pull request #%d: %w", number, err)
	}
	return nil
}

// ticketFromIssue maps a GitHub issue to the domain snapshot.
func ticketFromIssue(issue *github.Issue) *Ticket {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}
	return &Ticket{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		State:  issue.GetState(),
		Labels: labels,
		Author: issue.GetUser().GetLogin(),
	}
}

// pullRequestFromGitHub maps a GitHub pull request to the domain snapshot.
// GitHub reports merged pull requests as closed; Merged folds into the state.
func pullRequestFromGitHub(pr *github.PullRequest) *PullRequest {
	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}
	state := pr.GetState()
	if pr.GetMerged() {
		state = PRStateMerged
	}
	return &PullRequest{
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		Body:       pr.GetBody(),
		State:      state,
		Labels:     labels,
		HeadBranch: pr.GetHead().GetRef(),
		BaseBranch: pr.GetBase().GetRef(),
	}
}
