package tracker

import "time"

// Ticket is an immutable snapshot of an issue-tracker item.
// Fetched fresh on every run; never cached across runs.
type Ticket struct {
	Number int
	Title  string
	Body   string
	State  string
	Labels []string
	Author string
}

// HasLabel reports whether the ticket carries the given label.
// Label logic is set-membership only; order carries no meaning.
func (t *Ticket) HasLabel(name string) bool {
	for _, l := range t.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// Pull request states.
const (
	PRStateOpen   = "open"
	PRStateClosed = "closed"
	PRStateMerged = "merged"
)

// PullRequest is a snapshot of the pull request linked to a work package.
type PullRequest struct {
	Number     int
	Title      string
	Body       string
	State      string
	Labels     []string
	HeadBranch string
	BaseBranch string
}

// Comment is a single ticket or pull request comment.
type Comment struct {
	ID        int64
	Body      string
	Author    string
	CreatedAt time.Time
}

// Check statuses.
const (
	CheckStatusQueued     = "queued"
	CheckStatusInProgress = "in_progress"
	CheckStatusCompleted  = "completed"
)

// Check is a CI check run for a ref.
type Check struct {
	ID         int64
	Name       string
	Status     string
	Conclusion string
}

// PRCreateOptions describes a pull request to open.
type PRCreateOptions struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}
