package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Stage
	}{
		{
			name: "ready label alone bootstraps",
			in:   Input{Labels: []string{"ready"}},
			want: StageBootstrap,
		},
		{
			name: "no labels is undetermined",
			in:   Input{},
			want: StageUndetermined,
		},
		{
			name: "unrelated labels are undetermined",
			in:   Input{Labels: []string{"bug", "help wanted"}},
			want: StageUndetermined,
		},
		{
			name: "proposed with comments is plan feedback",
			in:   Input{Labels: []string{"proposed"}, CommentCount: 2},
			want: StagePlanFeedback,
		},
		{
			name: "proposed without comments falls through",
			in:   Input{Labels: []string{"proposed"}},
			want: StageUndetermined,
		},
		{
			name: "ready and proposed without comments bootstraps",
			in:   Input{Labels: []string{"ready", "proposed"}},
			want: StageBootstrap,
		},
		{
			name: "approved wins over proposed with comments",
			in:   Input{Labels: []string{"approved", "proposed"}, CommentCount: 3},
			want: StagePlanApproved,
		},
		{
			name: "reviewable with artifact is review feedback",
			in:   Input{Labels: []string{"reviewable"}, HasReviewArtifact: true},
			want: StageReviewFeedback,
		},
		{
			name: "reviewable without artifact falls through",
			in:   Input{Labels: []string{"reviewable"}},
			want: StageUndetermined,
		},
		{
			name: "reviewable without artifact falls to approved",
			in:   Input{Labels: []string{"reviewable", "approved"}},
			want: StagePlanApproved,
		},
		{
			name: "mergeable wins over everything",
			in: Input{
				Labels:            []string{"ready", "proposed", "approved", "reviewable", "mergeable"},
				HasReviewArtifact: true,
				CommentCount:      5,
			},
			want: StageReadyToMerge,
		},
		{
			name: "mergeable with leftover lock label still merges",
			in:   Input{Labels: []string{"mergeable", "locked"}},
			want: StageReadyToMerge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	in := Input{Labels: []string{"reviewable", "approved"}, HasReviewArtifact: true}
	first := Classify(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(in))
	}
}
