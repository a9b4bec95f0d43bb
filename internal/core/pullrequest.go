// Package core defines the data structures shared across the analysis
// pipeline. Everything here is a read-only snapshot fetched fresh per run;
// nothing is persisted between invocations.
package core

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v73/github"
)

// maxPatchBytes bounds the per-file patch excerpt so a downstream prompt
// stays small even for sweeping diffs.
const maxPatchBytes = 2000

// RepoRef identifies a repository by its owner/name coordinate.
type RepoRef struct {
	Owner string
	Name  string
}

// ParseRepoRef splits an "owner/repo" coordinate as delivered by the
// GITHUB_REPOSITORY environment variable.
func ParseRepoRef(coordinate string) (RepoRef, error) {
	parts := strings.Split(strings.TrimSpace(coordinate), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, fmt.Errorf("invalid repository coordinate %q, expected owner/repo", coordinate)
	}
	return RepoRef{Owner: parts[0], Name: parts[1]}, nil
}

// String returns the owner/repo form.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// PullRequestSummary is the metadata slice of a pull request the analysis
// cares about.
type PullRequestSummary struct {
	Number       int
	Title        string
	Body         string
	Author       string
	Additions    int
	Deletions    int
	ChangedFiles int
}

// TotalChanges is the aggregate changed-line count.
func (p PullRequestSummary) TotalChanges() int {
	return p.Additions + p.Deletions
}

// PullRequestSummaryFrom maps the raw API object into the internal snapshot.
// It acts as an anti-corruption layer so the rest of the pipeline never
// touches the wire types.
func PullRequestSummaryFrom(pr *github.PullRequest) PullRequestSummary {
	return PullRequestSummary{
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		Body:         pr.GetBody(),
		Author:       pr.GetUser().GetLogin(),
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
		ChangedFiles: pr.GetChangedFiles(),
	}
}

// LinkedIssue is a work item referenced from the PR text. A PR may reference
// zero or more issues; label order is irrelevant.
type LinkedIssue struct {
	Number   int
	Title    string
	Body     string
	Labels   []string
	State    string
	Assignee string
}

// LinkedIssueFrom maps the raw API object into the internal snapshot.
func LinkedIssueFrom(issue *github.Issue) LinkedIssue {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		if name := l.GetName(); name != "" {
			labels = append(labels, name)
		}
	}
	return LinkedIssue{
		Number:   issue.GetNumber(),
		Title:    issue.GetTitle(),
		Body:     issue.GetBody(),
		Labels:   labels,
		State:    issue.GetState(),
		Assignee: issue.GetAssignee().GetLogin(),
	}
}

// ChangeKind classifies how a file changed within the diff.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
	ChangeRenamed  ChangeKind = "renamed"
)

// FileChange is one entry of the PR's file-level diff. Patch holds a
// truncated unified-diff excerpt and may be empty for binary or very large
// files.
type FileChange struct {
	Path      string
	Kind      ChangeKind
	Additions int
	Deletions int
	Changes   int
	Patch     string
}

// FileChangeFrom maps the raw API object into the internal snapshot,
// truncating the patch to its byte budget.
func FileChangeFrom(f *github.CommitFile) FileChange {
	return FileChange{
		Path:      f.GetFilename(),
		Kind:      changeKindFrom(f.GetStatus()),
		Additions: f.GetAdditions(),
		Deletions: f.GetDeletions(),
		Changes:   f.GetChanges(),
		Patch:     truncatePatch(f.GetPatch()),
	}
}

func changeKindFrom(status string) ChangeKind {
	switch status {
	case "added", "copied":
		return ChangeAdded
	case "removed":
		return ChangeRemoved
	case "renamed":
		return ChangeRenamed
	default:
		return ChangeModified
	}
}

func truncatePatch(patch string) string {
	if len(patch) <= maxPatchBytes {
		return patch
	}
	return patch[:maxPatchBytes] + "\n... (truncated)"
}
