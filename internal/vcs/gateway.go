// Package vcs provides the version-control gateway for aio.
//
// The Gateway interface is the contract the pipeline core consumes; the
// go-git implementation backs it with a local clone plus its origin
// remote. Branch creation and switching are idempotent so a re-run after
// a crash never fails on already-existing state.
package vcs

import "context"

// Gateway is the version-control contract consumed by the pipeline.
type Gateway interface {
	// BranchExists reports whether a local branch exists.
	BranchExists(name string) (bool, error)
	// CreateBranch creates a branch at HEAD and switches to it.
	CreateBranch(name string) error
	// SwitchBranch checks out an existing branch, keeping worktree changes.
	SwitchBranch(name string) error

	// StageAll stages every change in the worktree.
	StageAll() error
	// HasUncommittedChanges reports whether the worktree differs from HEAD.
	HasUncommittedChanges() (bool, error)
	// Commit records staged changes; no-op when the tree is clean.
	Commit(message string) error
	// CommitAllowEmpty records a commit even with a clean tree.
	CommitAllowEmpty(message string) error

	// Pull fetches and integrates the remote branch.
	Pull(ctx context.Context, branch string) error
	// Push uploads the branch to origin. A pull is attempted first; its
	// failure is logged and tolerated since it usually means the remote
	// branch does not exist yet.
	Push(ctx context.Context, branch string) error

	// Head returns the current commit hash.
	Head() (string, error)
}
