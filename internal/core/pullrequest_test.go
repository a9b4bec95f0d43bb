package core

import (
	"strings"
	"testing"

	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		name       string
		coordinate string
		want       RepoRef
		expectErr  bool
	}{
		{
			name:       "valid coordinate",
			coordinate: "sevigo/issue-warden",
			want:       RepoRef{Owner: "sevigo", Name: "issue-warden"},
		},
		{
			name:       "surrounding whitespace",
			coordinate: "  sevigo/issue-warden\n",
			want:       RepoRef{Owner: "sevigo", Name: "issue-warden"},
		},
		{
			name:       "missing name",
			coordinate: "sevigo/",
			expectErr:  true,
		},
		{
			name:       "missing separator",
			coordinate: "sevigo",
			expectErr:  true,
		},
		{
			name:       "too many segments",
			coordinate: "a/b/c",
			expectErr:  true,
		},
		{
			name:       "empty",
			coordinate: "",
			expectErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRepoRef(tt.coordinate)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Owner+"/"+tt.want.Name, got.String())
		})
	}
}

func TestPullRequestSummaryFrom(t *testing.T) {
	pr := &github.PullRequest{
		Number:       github.Ptr(7),
		Title:        github.Ptr("Fix login redirect"),
		Body:         github.Ptr("Closes #12"),
		User:         &github.User{Login: github.Ptr("octocat")},
		Additions:    github.Ptr(120),
		Deletions:    github.Ptr(30),
		ChangedFiles: github.Ptr(4),
	}

	got := PullRequestSummaryFrom(pr)

	assert.Equal(t, 7, got.Number)
	assert.Equal(t, "Fix login redirect", got.Title)
	assert.Equal(t, "octocat", got.Author)
	assert.Equal(t, 150, got.TotalChanges())
	assert.Equal(t, 4, got.ChangedFiles)
}

func TestLinkedIssueFrom(t *testing.T) {
	issue := &github.Issue{
		Number: github.Ptr(42),
		Title:  github.Ptr("Login loops forever"),
		Body:   github.Ptr("Steps to reproduce ..."),
		State:  github.Ptr("open"),
		Labels: []*github.Label{
			{Name: github.Ptr("bug")},
			{Name: github.Ptr("auth")},
			{}, // unnamed labels are skipped
		},
		Assignee: &github.User{Login: github.Ptr("octocat")},
	}

	got := LinkedIssueFrom(issue)

	assert.Equal(t, 42, got.Number)
	assert.Equal(t, []string{"bug", "auth"}, got.Labels)
	assert.Equal(t, "open", got.State)
	assert.Equal(t, "octocat", got.Assignee)
}

func TestFileChangeFrom(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantKind ChangeKind
	}{
		{name: "added", status: "added", wantKind: ChangeAdded},
		{name: "copied counts as added", status: "copied", wantKind: ChangeAdded},
		{name: "removed", status: "removed", wantKind: ChangeRemoved},
		{name: "renamed", status: "renamed", wantKind: ChangeRenamed},
		{name: "modified", status: "modified", wantKind: ChangeModified},
		{name: "unknown status defaults to modified", status: "changed", wantKind: ChangeModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &github.CommitFile{
				Filename:  github.Ptr("internal/auth/session.go"),
				Status:    github.Ptr(tt.status),
				Additions: github.Ptr(10),
				Deletions: github.Ptr(2),
				Changes:   github.Ptr(12),
			}
			got := FileChangeFrom(f)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, 12, got.Changes)
		})
	}
}

func TestFileChangeFromTruncatesPatch(t *testing.T) {
	long := strings.Repeat("+added line\n", 500)
	f := &github.CommitFile{
		Filename: github.Ptr("big.go"),
		Status:   github.Ptr("modified"),
		Patch:    github.Ptr(long),
	}

	got := FileChangeFrom(f)

	assert.LessOrEqual(t, len(got.Patch), maxPatchBytes+len("\n... (truncated)"))
	assert.True(t, strings.HasSuffix(got.Patch, "... (truncated)"))

	short := &github.CommitFile{
		Filename: github.Ptr("small.go"),
		Status:   github.Ptr("modified"),
		Patch:    github.Ptr("+one line"),
	}
	assert.Equal(t, "+one line", FileChangeFrom(short).Patch)
}
