package vcs

import (
	"context"
	"errors"
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/aio/internal/config"
	"github.com/fyrsmithlabs/aio/internal/logging"
)

// remoteName is the remote all pull/push operations target.
const remoteName = "origin"

// Repository implements Gateway on a local clone via go-git.
type Repository struct {
	repo *git.Repository
	auth transport.AuthMethod
	log  *logging.Logger
}

// Open opens the repository at path.
//
// The token authenticates pushes and pulls over HTTPS. An unset token
// leaves transport auth empty, which works for local and public remotes.
func Open(path string, token config.Secret, log *logging.Logger) (*Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}

	var auth transport.AuthMethod
	if token.IsSet() {
		auth = &githttp.BasicAuth{
			Username: "x-access-token",
			Password: token.Value(),
		}
	}

	if log == nil {
		log = logging.Nop()
	}

	return &Repository{repo: repo, auth: auth, log: log}, nil
}

// BranchExists reports whether a local branch exists.
func (r *Repository) BranchExists(name string) (bool, error) {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to resolve branch %s: %w", name, err)
	}
	return true, nil
}

// CreateBranch creates a branch at HEAD and switches to it.
func (r *Repository) CreateBranch(name string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	err = w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
		Keep:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// SwitchBranch checks out an existing branch, keeping worktree changes.
func (r *Repository) SwitchBranch(name string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	err = w.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Keep:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to switch to branch %s: %w", name, err)
	}
	return nil
}

// StageAll stages every change in the worktree, including deletions and
// untracked files.
func (r *Repository) StageAll() error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	if err := w.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	return nil
}

// HasUncommittedChanges reports whether the worktree differs from HEAD.
func (r *Repository) HasUncommittedChanges() (bool, error) {
	w, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := w.Status()
	if err != nil {
		return false, fmt.Errorf("failed to read worktree status: %w", err)
	}
	return !status.IsClean(), nil
}

// Commit records staged changes. A clean tree is a no-op, never an error.
func (r *Repository) Commit(message string) error {
	dirty, err := r.HasUncommittedChanges()
	if err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	return r.commit(message, false)
}

// CommitAllowEmpty records a commit even with a clean tree. Work-package
// branches need at least one commit distinct from base for a pull request
// to be openable, so a byte-identical render still produces a commit.
func (r *Repository) CommitAllowEmpty(message string) error {
	return r.commit(message, true)
}

func (r *Repository) commit(message string, allowEmpty bool) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	_, err = w.Commit(message, &git.CommitOptions{
		Author:            r.author(),
		AllowEmptyCommits: allowEmpty,
	})
	if err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// author resolves the commit signature from git config, falling back to
// a fixed identity when none is configured.
func (r *Repository) author() *object.Signature {
	name, email := "aio", "aio@localhost"
	if cfg, err := r.repo.ConfigScoped(gitconfig.GlobalScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}
	return &object.Signature{Name: name, Email: email, When: time.Now()}
}

// Pull fetches and integrates the remote branch. Already-up-to-date is
// success.
func (r *Repository) Pull(ctx context.Context, branch string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}
	opts := &git.PullOptions{
		RemoteName: remoteName,
		Auth:       r.auth,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
		opts.SingleBranch = true
	}
	err = w.PullContext(ctx, opts)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to pull %s: %w", branch, err)
	}
	return nil
}

// Push uploads the branch to origin with upstream tracking semantics.
//
// A pull runs first to avoid non-fast-forward rejections. Its failure is
// logged and tolerated: the usual cause is a brand-new branch with no
// upstream yet, and the push itself will surface real transport errors.
func (r *Repository) Push(ctx context.Context, branch string) error {
	if err := r.Pull(ctx, branch); err != nil {
		r.log.Warn(ctx, "pull before push failed, continuing with push",
			zap.String("branch", branch), zap.Error(err))
	}

	refSpec := gitconfig.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []gitconfig.RefSpec{refSpec},
		Auth:       r.auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", branch, err)
	}
	return nil
}

// Head returns the current commit hash.
func (r *Repository) Head() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}
