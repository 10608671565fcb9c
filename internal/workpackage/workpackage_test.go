package workpackage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Fix: Login Bug!!", "fix-login-bug"},
		{"Add OAuth2 support", "add-oauth2-support"},
		{"   ", ""},
		{"", ""},
		{"!!!", ""},
		{"already-a-slug", "already-a-slug"},
		{"Multiple   Spaces   Here", "multiple-spaces-here"},
		{"--leading and trailing--", "leading-and-trailing"},
		{"MiXeD CaSe", "mixed-case"},
		{"emoji 🎉 title", "emoji-title"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slug(tt.title), "Slug(%q)", tt.title)
	}
}

func TestSlug_Idempotent(t *testing.T) {
	titles := []string{"Fix: Login Bug!!", "Add OAuth2 support", "already-a-slug"}
	for _, title := range titles {
		once := Slug(title)
		assert.Equal(t, once, Slug(once), "Slug(%q) must be a fixed point", title)
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "issues/42-fix-login-bug", Name(42, "Fix: Login Bug!!"))
	assert.Equal(t, "issues/7-", Name(7, "!!!"))
}

func TestWorkPackage_Paths(t *testing.T) {
	wp := New("/repo", 42, "Fix: Login Bug!!")

	assert.Equal(t, "issues/42-fix-login-bug", wp.Name)
	assert.Equal(t, filepath.Join("/repo", "issues", "42-fix-login-bug"), wp.Dir())
	assert.Equal(t, filepath.Join(wp.Dir(), "TASK.md"), wp.Path(TaskFile))
}

func TestWorkPackage_CreateRemove(t *testing.T) {
	wp := New(t.TempDir(), 1, "A ticket")

	assert.False(t, wp.Exists())
	require.NoError(t, wp.Create())
	assert.True(t, wp.Exists())

	// Creating again is fine.
	require.NoError(t, wp.Create())

	require.NoError(t, wp.Remove())
	assert.False(t, wp.Exists())

	// Removing a missing directory is fine too.
	require.NoError(t, wp.Remove())
}

func TestWorkPackage_ArtifactProbes(t *testing.T) {
	wp := New(t.TempDir(), 2, "Probe artifacts")
	require.NoError(t, wp.Create())

	assert.False(t, wp.HasPlan())
	assert.False(t, wp.HasCost())
	assert.False(t, wp.HasReviewArtifact())

	require.NoError(t, wp.WriteFile(PlanFile, "the plan"))
	require.NoError(t, wp.WriteFile(ReviewFile, "qa findings"))

	assert.True(t, wp.HasPlan())
	assert.True(t, wp.HasReviewArtifact())
	assert.False(t, wp.HasCost())

	content, err := wp.ReadFile(ReviewFile)
	require.NoError(t, err)
	assert.Equal(t, "qa findings", content)
}

func TestWorkPackage_Link(t *testing.T) {
	wp := New(t.TempDir(), 3, "Link round trip")
	require.NoError(t, wp.Create())

	_, err := wp.ReadLink()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoLink)

	require.NoError(t, wp.WriteLink(Link{ID: 128}))

	link, err := wp.ReadLink()
	require.NoError(t, err)
	assert.Equal(t, 128, link.ID)

	// The on-disk format stays a plain JSON object with an id field.
	raw, err := os.ReadFile(wp.Path(LinkFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 128}`, string(raw))
}

func TestWorkPackage_ReadLink_Corrupt(t *testing.T) {
	wp := New(t.TempDir(), 4, "Corrupt link")
	require.NoError(t, wp.Create())
	require.NoError(t, wp.WriteFile(LinkFile, "not json"))

	_, err := wp.ReadLink()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoLink)
}
