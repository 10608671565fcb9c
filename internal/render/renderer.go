// Package render produces stage documents from embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/fyrsmithlabs/aio/internal/tracker"
)

//go:embed templates/*.tpl.md
var templateFS embed.FS

// Template identifies a stage document template.
type Template string

const (
	// BootstrapTemplate is the initial task document asking for a plan.
	BootstrapTemplate Template = "bootstrap.tpl.md"
	// CostTemplate is the cost-estimate document skeleton.
	CostTemplate Template = "cost.tpl.md"
	// PlanFeedbackTemplate is the task document for plan revision rounds.
	PlanFeedbackTemplate Template = "plan-feedback.tpl.md"
	// PlanApprovedTemplate is the task document for implementation.
	PlanApprovedTemplate Template = "plan-approved.tpl.md"
	// ReviewFeedbackTemplate is the task document for addressing review findings.
	ReviewFeedbackTemplate Template = "review-feedback.tpl.md"
	// PromptTemplate is the operator prompt printed after each stage.
	PromptTemplate Template = "prompt.tpl.md"
)

// Data is the context bundle available to every template.
type Data struct {
	Ticket        *tracker.Ticket
	PullRequest   *tracker.PullRequest
	Comments      []tracker.Comment
	Checks        []tracker.Check
	WorkPackage   string
	Slug          string
	ReviewContent string
}

// Renderer renders stage documents. Deterministic: identical data and
// template content always produce identical output.
type Renderer struct {
	templates *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tpl.md")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// MustNew parses the embedded templates, panicking on error.
// Template parse failures are build defects, not runtime conditions.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes the named template with the given data.
func (r *Renderer) Render(name Template, data *Data) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, string(name), data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
