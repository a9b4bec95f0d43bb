// Package github provides the bot's focused view of the GitHub API: pull
// request metadata, linked issues, the file-level diff, and issue comments.
package github

import (
	"context"
	"log/slog"

	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/issue-warden/internal/core"
)

// Comment is the slice of an issue comment the publisher needs to locate
// and update the bot's own summary.
type Comment struct {
	ID     int64
	Author string
	IsBot  bool
	Body   string
}

// Client defines the GitHub operations the analysis pipeline depends on.
// Implementations translate wire types into core snapshots at the boundary.
//
//go:generate mockgen -destination=../../mocks/mock_github_client.go -package=mocks . Client
type Client interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (core.PullRequestSummary, error)
	GetIssue(ctx context.Context, owner, repo string, number int) (core.LinkedIssue, error)
	ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]core.FileChange, error)
	ListComments(ctx context.Context, owner, repo string, number int) ([]Comment, error)
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) error
}

type gitHubClient struct {
	client *github.Client
	logger *slog.Logger
}

// NewGitHubClient wraps the official go-github client behind the focused,
// mockable Client interface.
func NewGitHubClient(client *github.Client, logger *slog.Logger) Client {
	return &gitHubClient{client: client, logger: logger}
}

// NewPATClient creates a client authenticated with a personal access token
// or the workflow's GITHUB_TOKEN, the default for Actions runs.
func NewPATClient(ctx context.Context, token string, logger *slog.Logger) Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return &gitHubClient{client: github.NewClient(tc), logger: logger}
}

// GetPullRequest retrieves a pull request's metadata snapshot.
func (g *gitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (core.PullRequestSummary, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Error("failed to get pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
		return core.PullRequestSummary{}, err
	}
	return core.PullRequestSummaryFrom(pr), nil
}

// GetIssue retrieves a single issue referenced from the PR text.
func (g *gitHubClient) GetIssue(ctx context.Context, owner, repo string, number int) (core.LinkedIssue, error) {
	issue, _, err := g.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		g.logger.Warn("failed to get issue", "owner", owner, "repo", repo, "issue", number, "error", err)
		return core.LinkedIssue{}, err
	}
	return core.LinkedIssueFrom(issue), nil
}

// ListChangedFiles retrieves the file-level diff of a pull request. It
// follows pagination so every changed file is returned; the API caps pages
// at 100 entries.
func (g *gitHubClient) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]core.FileChange, error) {
	var allFiles []core.FileChange
	opts := &github.ListOptions{PerPage: 100}

	for {
		files, resp, err := g.client.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list files for pull request", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, err
		}

		for _, file := range files {
			allFiles = append(allFiles, core.FileChangeFrom(file))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allFiles, nil
}

// ListComments retrieves all issue comments on a pull request, following
// pagination.
func (g *gitHubClient) ListComments(ctx context.Context, owner, repo string, number int) ([]Comment, error) {
	var allComments []Comment
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		comments, resp, err := g.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			g.logger.Error("failed to list comments", "owner", owner, "repo", repo, "pr", number, "error", err)
			return nil, err
		}

		for _, c := range comments {
			allComments = append(allComments, Comment{
				ID:     c.GetID(),
				Author: c.GetUser().GetLogin(),
				IsBot:  c.GetUser().GetType() == "Bot",
				Body:   c.GetBody(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// CreateComment creates a new comment on a pull request.
func (g *gitHubClient) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: &body}
	_, _, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		g.logger.Error("failed to create comment", "owner", owner, "repo", repo, "pr", number, "error", err)
	}
	return err
}

// UpdateComment replaces the full body of an existing comment.
func (g *gitHubClient) UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	comment := &github.IssueComment{Body: &body}
	_, _, err := g.client.Issues.EditComment(ctx, owner, repo, commentID, comment)
	if err != nil {
		g.logger.Error("failed to update comment", "owner", owner, "repo", repo, "comment_id", commentID, "error", err)
	}
	return err
}
