package pipeline

// Input is the observable state Classify derives a stage from.
type Input struct {
	// Labels is the ticket's current label set.
	Labels []string
	// HasReviewArtifact reports whether qa.md exists in the work package.
	HasReviewArtifact bool
	// CommentCount is the number of human comments after marker filtering.
	CommentCount int
}

// Classify maps observable ticket state to exactly one stage.
//
// Pure and total. Evaluated as an ordered priority chain, first match
// wins: labels are not mutually exclusive by construction, so precedence
// encodes "most advanced stage wins". A reviewable label without the
// review artifact falls through rather than matching; so does a proposed
// label without any comments to react to.
func Classify(in Input) Stage {
	has := make(map[string]bool, len(in.Labels))
	for _, l := range in.Labels {
		has[l] = true
	}

	switch {
	case has[LabelMergeable]:
		return StageReadyToMerge
	case has[LabelReviewable] && in.HasReviewArtifact:
		return StageReviewFeedback
	case has[LabelApproved]:
		return StagePlanApproved
	case has[LabelProposed] && in.CommentCount > 0:
		return StagePlanFeedback
	case has[LabelReady]:
		return StageBootstrap
	default:
		return StageUndetermined
	}
}
