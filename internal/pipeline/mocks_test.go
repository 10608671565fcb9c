package pipeline

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fyrsmithlabs/aio/internal/tracker"
)

// MockTracker is a mock implementation of tracker.Gateway
type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) GetTicket(ctx context.Context, number int) (*tracker.Ticket, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.Ticket), args.Error(1)
}

func (m *MockTracker) GetPullRequest(ctx context.Context, number int) (*tracker.PullRequest, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.PullRequest), args.Error(1)
}

func (m *MockTracker) GetTicketComments(ctx context.Context, number int) ([]tracker.Comment, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracker.Comment), args.Error(1)
}

func (m *MockTracker) GetPullRequestComments(ctx context.Context, number int) ([]tracker.Comment, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracker.Comment), args.Error(1)
}

func (m *MockTracker) GetChecks(ctx context.Context, ref string) ([]tracker.Check, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tracker.Check), args.Error(1)
}

func (m *MockTracker) AddLabel(ctx context.Context, number int, label string) error {
	args := m.Called(ctx, number, label)
	return args.Error(0)
}

func (m *MockTracker) RemoveLabel(ctx context.Context, number int, label string) error {
	args := m.Called(ctx, number, label)
	return args.Error(0)
}

func (m *MockTracker) RemoveAllLabels(ctx context.Context, number int) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockTracker) RemoveAllPullRequestLabels(ctx context.Context, number int) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockTracker) CreatePullRequest(ctx context.Context, opts tracker.PRCreateOptions) (*tracker.PullRequest, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracker.PullRequest), args.Error(1)
}

func (m *MockTracker) AddComment(ctx context.Context, number int, body string) error {
	args := m.Called(ctx, number, body)
	return args.Error(0)
}

func (m *MockTracker) MergePullRequest(ctx context.Context, number int) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

// MockVCS is a mock implementation of vcs.Gateway
type MockVCS struct {
	mock.Mock
}

func (m *MockVCS) BranchExists(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockVCS) CreateBranch(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockVCS) SwitchBranch(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

func (m *MockVCS) StageAll() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockVCS) HasUncommittedChanges() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *MockVCS) Commit(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockVCS) CommitAllowEmpty(message string) error {
	args := m.Called(message)
	return args.Error(0)
}

func (m *MockVCS) Pull(ctx context.Context, branch string) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockVCS) Push(ctx context.Context, branch string) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockVCS) Head() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
