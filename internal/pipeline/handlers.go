package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/aio/internal/render"
	"github.com/fyrsmithlabs/aio/internal/tracker"
	"github.com/fyrsmithlabs/aio/internal/workpackage"
)

// Commit messages per stage. The aio scope marks commits this pipeline
// authored.
const (
	msgBootstrap      = "chore(aio): bootstrapping ai work package"
	msgPlanFeedback   = "chore(aio): update task with plan feedback"
	msgPlanApproved   = "chore(aio): update task for implementation"
	msgReviewFeedback = "chore(aio): report fixes required"
)

// handleBootstrap creates the work package, opens the draft pull request
// and flips the ticket into plan review.
//
// Side-effect order puts the recoverable mutations first: files and
// commits can be re-done by a re-run, while the pull request and label
// flips come last so an interrupted run leaves a state the classifier
// still recognizes as BOOTSTRAP.
func (e *Engine) handleBootstrap(ctx context.Context, pc *Context) error {
	if err := pc.WorkPackage.Create(); err != nil {
		return err
	}

	data := e.renderData(pc, "")
	if err := e.renderTo(pc, render.BootstrapTemplate, workpackage.TaskFile, data); err != nil {
		return err
	}
	if err := e.renderTo(pc, render.CostTemplate, workpackage.CostFile, data); err != nil {
		return err
	}

	// Commit even when nothing changed: the branch needs a commit distinct
	// from base before a pull request can be opened on it.
	if err := e.commitAndPush(ctx, pc, msgBootstrap); err != nil {
		return err
	}

	pr, err := e.tracker.CreatePullRequest(ctx, tracker.PRCreateOptions{
		Title: fmt.Sprintf("agent(#%d): %s", pc.Ticket.Number, pc.Ticket.Title),
		Body:  fmt.Sprintf("Closes #%d", pc.Ticket.Number),
		Head:  pc.WorkPackage.Name,
		Base:  e.base,
		Draft: true,
	})
	if err != nil {
		return err
	}
	if err := pc.WorkPackage.WriteLink(workpackage.Link{ID: pr.Number}); err != nil {
		return err
	}
	e.log.Info(ctx, "opened pull request", zap.Int("pull_request", pr.Number))

	if err := e.tracker.RemoveLabel(ctx, pc.Ticket.Number, LabelReadyForAgent); err != nil {
		return err
	}
	if err := e.tracker.AddLabel(ctx, pc.Ticket.Number, LabelPlanProposed); err != nil {
		return err
	}
	if err := e.tracker.AddLabel(ctx, pc.Ticket.Number, LabelLocked); err != nil {
		return err
	}

	return e.printPrompt(pc, data)
}

// handlePlanFeedback folds reviewer feedback into a fresh task document.
// Without a plan document there is nothing to revise: the run ends
// cleanly with guidance and no mutation.
func (e *Engine) handlePlanFeedback(ctx context.Context, pc *Context) error {
	if !pc.WorkPackage.HasPlan() {
		e.log.Warn(ctx, "plan document missing, skipping plan feedback",
			zap.String("work_package", pc.WorkPackage.Name))
		fmt.Fprintf(e.out, "%s/%s does not exist. Review the ticket again and re-apply the %q label if the work package should be bootstrapped.\n",
			pc.WorkPackage.Name, workpackage.PlanFile, LabelReadyForAgent)
		return nil
	}

	data := e.renderData(pc, "")
	if err := e.renderTo(pc, render.PlanFeedbackTemplate, workpackage.TaskFile, data); err != nil {
		return err
	}
	if err := e.commitAndPush(ctx, pc, msgPlanFeedback); err != nil {
		return err
	}

	return e.printPrompt(pc, data)
}

// handlePlanApproved flips the ticket into implementation review and
// rewrites the task document with implementation instructions.
func (e *Engine) handlePlanApproved(ctx context.Context, pc *Context) error {
	if err := e.tracker.RemoveLabel(ctx, pc.Ticket.Number, LabelPlanApproved); err != nil {
		return err
	}
	if err := e.tracker.AddLabel(ctx, pc.Ticket.Number, LabelInReview); err != nil {
		return err
	}
	if err := e.tracker.AddLabel(ctx, pc.Ticket.Number, LabelLocked); err != nil {
		return err
	}

	data := e.renderData(pc, "")
	if err := e.renderTo(pc, render.PlanApprovedTemplate, workpackage.TaskFile, data); err != nil {
		return err
	}
	if err := e.commitAndPush(ctx, pc, msgPlanApproved); err != nil {
		return err
	}

	return e.printPrompt(pc, data)
}

// handleReviewFeedback posts the review artifact to the ticket and
// rewrites the task document with the findings.
//
// The final label removal is best-effort: the comment and commit it
// follows are the real work and must not be aborted for a cosmetic
// label failure.
func (e *Engine) handleReviewFeedback(ctx context.Context, pc *Context) error {
	findings, err := pc.WorkPackage.ReadFile(workpackage.ReviewFile)
	if err != nil {
		return err
	}
	if err := e.postDocumentComment(ctx, pc.Ticket.Number, findings); err != nil {
		return err
	}

	data := e.renderData(pc, findings)
	if err := e.renderTo(pc, render.ReviewFeedbackTemplate, workpackage.TaskFile, data); err != nil {
		return err
	}
	if err := e.commitAndPush(ctx, pc, msgReviewFeedback); err != nil {
		return err
	}

	if err := e.printPrompt(pc, data); err != nil {
		return err
	}

	if err := e.tracker.RemoveLabel(ctx, pc.Ticket.Number, LabelLocked); err != nil {
		e.log.Warn(ctx, "failed to remove locked label, continuing", zap.Error(err))
	}
	return nil
}

// handleReadyToMerge retires the work package and merges the pull request.
//
// The merge is the least recoverable side effect and therefore happens
// last; everything before it can be repeated by a re-run.
func (e *Engine) handleReadyToMerge(ctx context.Context, pc *Context) error {
	if pc.PullRequest == nil {
		return ErrNoPullRequest
	}

	if err := e.tracker.RemoveAllLabels(ctx, pc.Ticket.Number); err != nil {
		return err
	}
	if err := e.tracker.RemoveAllPullRequestLabels(ctx, pc.PullRequest.Number); err != nil {
		return err
	}

	if pc.WorkPackage.HasCost() {
		cost, err := pc.WorkPackage.ReadFile(workpackage.CostFile)
		if err != nil {
			return err
		}
		if err := e.postDocumentComment(ctx, pc.Ticket.Number, cost); err != nil {
			return err
		}
	}

	if err := pc.WorkPackage.Remove(); err != nil {
		return err
	}
	e.log.Info(ctx, "removed work package", zap.String("work_package", pc.WorkPackage.Name))

	if err := e.vcs.StageAll(); err != nil {
		return err
	}
	dirty, err := e.vcs.HasUncommittedChanges()
	if err != nil {
		return err
	}
	if dirty {
		msg := fmt.Sprintf("chore: cleanup issue flow files for #%d", pc.Ticket.Number)
		if err := e.vcs.Commit(msg); err != nil {
			return err
		}
		if err := e.vcs.Push(ctx, pc.WorkPackage.Name); err != nil {
			return err
		}
	}

	if err := e.tracker.MergePullRequest(ctx, pc.PullRequest.Number); err != nil {
		return err
	}
	e.log.Info(ctx, "merged pull request", zap.Int("pull_request", pc.PullRequest.Number))

	fmt.Fprintln(e.out, "Work package complete: pull request merged and issue flow files removed.")
	return nil
}

// handleUndetermined performs no mutation and only tells the operator
// how to enter the pipeline.
func (e *Engine) handleUndetermined(ctx context.Context, pc *Context) error {
	e.log.Info(ctx, "ticket matches no pipeline stage")
	fmt.Fprintf(e.out, "Ticket #%d is in an undetermined state.\nAdd the %q label to the ticket and re-run if an agent should pick it up.\n",
		pc.Ticket.Number, LabelReadyForAgent)
	return nil
}

// commitAndPush stages everything and guarantees a pushed commit: a
// clean tree produces an empty commit so the branch always advances.
// Invoking it twice with no file changes succeeds both times.
func (e *Engine) commitAndPush(ctx context.Context, pc *Context, message string) error {
	if err := e.vcs.StageAll(); err != nil {
		return err
	}
	dirty, err := e.vcs.HasUncommittedChanges()
	if err != nil {
		return err
	}
	if dirty {
		err = e.vcs.Commit(message)
	} else {
		err = e.vcs.CommitAllowEmpty(message)
	}
	if err != nil {
		return err
	}
	if err := e.vcs.Push(ctx, pc.WorkPackage.Name); err != nil {
		return err
	}

	if head, err := e.vcs.Head(); err == nil {
		e.log.Info(ctx, "pushed work package",
			zap.String("branch", pc.WorkPackage.Name),
			zap.String("commit", head))
	}
	return nil
}

// postDocumentComment posts a work-package document as a ticket comment,
// marker-prefixed and scrubbed of secrets.
func (e *Engine) postDocumentComment(ctx context.Context, number int, content string) error {
	body := Marker + "\n\n" + content
	if e.scrubber != nil {
		result := e.scrubber.Scrub(body)
		if len(result.Findings) > 0 {
			e.log.Warn(ctx, "scrubbed outbound comment", zap.String("summary", result.Summary()))
		}
		body = result.Scrubbed
	}
	return e.tracker.AddComment(ctx, number, body)
}

// renderData builds the template context from the run context.
func (e *Engine) renderData(pc *Context, reviewContent string) *render.Data {
	return &render.Data{
		Ticket:        pc.Ticket,
		PullRequest:   pc.PullRequest,
		Comments:      pc.Comments,
		Checks:        pc.Checks,
		WorkPackage:   pc.WorkPackage.Name,
		Slug:          pc.Slug,
		ReviewContent: reviewContent,
	}
}

// renderTo renders a template and writes it into the work package.
func (e *Engine) renderTo(pc *Context, tmpl render.Template, file string, data *render.Data) error {
	content, err := e.renderer.Render(tmpl, data)
	if err != nil {
		return err
	}
	return pc.WorkPackage.WriteFile(file, content)
}

// printPrompt renders the operator prompt to the output stream.
func (e *Engine) printPrompt(pc *Context, data *render.Data) error {
	prompt, err := e.renderer.Render(render.PromptTemplate, data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, prompt)
	return err
}
