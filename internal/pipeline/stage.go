// Package pipeline implements the aio workflow engine.
//
// The engine derives a ticket's pipeline stage from its current label
// set and the artifacts present in its work package, then runs the one
// handler for that stage. No execution state is ever persisted: a crash
// between two side effects is recovered by the next run re-deriving the
// stage from whatever labels, files and commits survived.
package pipeline

// Stage is the derived pipeline position of a ticket.
// Recomputed on every run, never stored.
type Stage string

const (
	// StageBootstrap creates the work package and opens the pull request.
	StageBootstrap Stage = "BOOTSTRAP"
	// StagePlanFeedback reworks the task document from reviewer feedback.
	StagePlanFeedback Stage = "PLAN-FEEDBACK"
	// StagePlanApproved hands the approved plan over for implementation.
	StagePlanApproved Stage = "PLAN-APPROVED"
	// StageReviewFeedback reports review findings back to the ticket.
	StageReviewFeedback Stage = "REVIEW-FEEDBACK"
	// StageReadyToMerge retires the work package and merges the pull request.
	StageReadyToMerge Stage = "READY-TO-MERGE"
	// StageUndetermined matches no stage; the run emits guidance only.
	StageUndetermined Stage = "UNDETERMINED"
)

// Labels the classifier reads. Humans set these while reviewing agent
// output, so they can arrive out of order or linger from earlier stages;
// classification precedence resolves the ambiguity.
const (
	LabelMergeable  = "mergeable"
	LabelReviewable = "reviewable"
	LabelApproved   = "approved"
	LabelProposed   = "proposed"
	LabelReady      = "ready"
)

// Labels the handlers write.
const (
	LabelReadyForAgent = "ready-for-agent"
	LabelPlanProposed  = "plan-proposed"
	LabelPlanApproved  = "plan-approved"
	LabelInReview      = "in-review"
	LabelLocked        = "locked"
)

// Marker tags every comment this system authors. Comments containing it
// are excluded when feedback is aggregated, so the pipeline never treats
// its own prior reports as new human input. Content-based on purpose:
// it needs no tracker metadata support and survives copy-paste.
const Marker = "[AI Generated Content]"
