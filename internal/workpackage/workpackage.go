// Package workpackage manages the per-ticket working directory.
//
// A work package is the unit of work for one ticket. Its name,
// issues/<number>-<slug>, is simultaneously a directory under the
// repository root, a branch name, and a commit-message scope token.
// The directory holds the stage artifacts the pipeline reads and
// writes; their presence is observable state the classifier derives
// the current stage from.
package workpackage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Well-known artifact file names.
const (
	// TaskFile is the task document, rendered anew by every mutating stage.
	TaskFile = "TASK.md"
	// PlanFile is the plan document, authored outside the pipeline and
	// read-only to it.
	PlanFile = "PLAN.md"
	// CostFile is the cost-estimate document rendered at bootstrap.
	CostFile = "cost.md"
	// ReviewFile is the review artifact whose presence gates the
	// review-feedback stage.
	ReviewFile = "qa.md"
	// LinkFile persists the pull request number, the only durable
	// cross-run pointer the pipeline keeps.
	LinkFile = "pr.json"
)

// ErrNoLink indicates no pull request has ever been opened for the ticket.
var ErrNoLink = errors.New("no pull request link")

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Slug derives the work-package slug from a ticket title: lower-cased,
// stripped of anything outside [a-z0-9 -], whitespace collapsed to single
// hyphens, hyphen runs collapsed, leading/trailing hyphens trimmed.
// Total and idempotent; an all-punctuation title yields "".
func Slug(title string) string {
	s := strings.ToLower(title)
	s = invalidChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// BaseDir is the directory all work packages live under, relative to the
// repository root.
const BaseDir = "issues"

// Name composes the work-package identifier for a ticket. It doubles as
// branch name and as directory path relative to the repository root.
func Name(number int, title string) string {
	return fmt.Sprintf("%s/%d-%s", BaseDir, number, Slug(title))
}

// Link is the persisted pointer from a work package to its pull request.
type Link struct {
	ID int `json:"id"`
}

// WorkPackage locates one ticket's working directory inside a repository.
type WorkPackage struct {
	// Root is the repository root the work package lives under.
	Root string
	// Name is the issues/<number>-<slug> identifier.
	Name string
}

// New returns the work package for a ticket under the given root.
func New(root string, number int, title string) WorkPackage {
	return WorkPackage{Root: root, Name: Name(number, title)}
}

// Dir returns the absolute-or-relative directory path.
func (wp WorkPackage) Dir() string {
	return filepath.Join(wp.Root, filepath.FromSlash(wp.Name))
}

// Path returns the path of a file inside the work package.
func (wp WorkPackage) Path(file string) string {
	return filepath.Join(wp.Dir(), file)
}

// Create makes the work-package directory; existing directories are fine.
func (wp WorkPackage) Create() error {
	if err := os.MkdirAll(wp.Dir(), 0o755); err != nil {
		return fmt.Errorf("failed to create work package %s: %w", wp.Name, err)
	}
	return nil
}

// Remove deletes the work-package directory and everything in it.
func (wp WorkPackage) Remove() error {
	if err := os.RemoveAll(wp.Dir()); err != nil {
		return fmt.Errorf("failed to remove work package %s: %w", wp.Name, err)
	}
	return nil
}

// Exists reports whether the work-package directory exists.
func (wp WorkPackage) Exists() bool {
	info, err := os.Stat(wp.Dir())
	return err == nil && info.IsDir()
}

// HasPlan reports whether the plan document exists.
func (wp WorkPackage) HasPlan() bool { return wp.hasFile(PlanFile) }

// HasCost reports whether the cost document exists.
func (wp WorkPackage) HasCost() bool { return wp.hasFile(CostFile) }

// HasReviewArtifact reports whether the review artifact exists.
func (wp WorkPackage) HasReviewArtifact() bool { return wp.hasFile(ReviewFile) }

func (wp WorkPackage) hasFile(name string) bool {
	info, err := os.Stat(wp.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// ReadFile returns the content of an artifact file.
func (wp WorkPackage) ReadFile(name string) (string, error) {
	content, err := os.ReadFile(wp.Path(name))
	if err != nil {
		return "", fmt.Errorf("failed to read %s in %s: %w", name, wp.Name, err)
	}
	return string(content), nil
}

// WriteFile writes an artifact file, replacing any previous content.
func (wp WorkPackage) WriteFile(name, content string) error {
	if err := os.WriteFile(wp.Path(name), []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s in %s: %w", name, wp.Name, err)
	}
	return nil
}

// ReadLink loads the persisted pull request link.
// Returns ErrNoLink when no pull request has been opened yet.
func (wp WorkPackage) ReadLink() (*Link, error) {
	content, err := os.ReadFile(wp.Path(LinkFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w for %s", ErrNoLink, wp.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pull request link for %s: %w", wp.Name, err)
	}
	var link Link
	if err := json.Unmarshal(content, &link); err != nil {
		return nil, fmt.Errorf("failed to parse pull request link for %s: %w", wp.Name, err)
	}
	return &link, nil
}

// WriteLink persists the pull request link.
func (wp WorkPackage) WriteLink(link Link) error {
	content, err := json.MarshalIndent(link, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode pull request link: %w", err)
	}
	if err := os.WriteFile(wp.Path(LinkFile), content, 0o644); err != nil {
		return fmt.Errorf("failed to write pull request link for %s: %w", wp.Name, err)
	}
	return nil
}
