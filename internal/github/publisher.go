package github

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/issue-warden/internal/core"
)

// CommentMarker identifies the bot's own summary comment. It must appear in
// every rendered body or the update-in-place lookup stops working.
const CommentMarker = "PR Issue Correctness Analysis"

// Publisher upserts the bot's summary comment on a pull request.
//
//go:generate mockgen -destination=../../mocks/mock_publisher.go -package=mocks . Publisher
type Publisher interface {
	// Publish posts body to the pull request. With updateExisting it first
	// looks for a prior bot comment containing the marker and edits that
	// one in place. Returns whether a comment ended up posted.
	Publish(ctx context.Context, ref core.RepoRef, prNumber int, body string, updateExisting bool) (bool, error)
}

type commentPublisher struct {
	client Client
	logger *slog.Logger
}

// NewPublisher creates a Publisher on top of the API client.
func NewPublisher(client Client, logger *slog.Logger) Publisher {
	if client == nil {
		panic("github: client must not be nil")
	}
	if logger == nil {
		panic("github: logger must not be nil")
	}
	return &commentPublisher{client: client, logger: logger}
}

func (p *commentPublisher) Publish(ctx context.Context, ref core.RepoRef, prNumber int, body string, updateExisting bool) (bool, error) {
	if updateExisting {
		if id, ok := p.findExistingComment(ctx, ref, prNumber); ok {
			if err := p.client.UpdateComment(ctx, ref.Owner, ref.Name, id, body); err != nil {
				return false, fmt.Errorf("failed to update comment %d: %w", id, err)
			}
			p.logger.Info("updated existing analysis comment", "repo", ref.String(), "pr", prNumber, "comment_id", id)
			return true, nil
		}
	}

	if err := p.client.CreateComment(ctx, ref.Owner, ref.Name, prNumber, body); err != nil {
		return false, fmt.Errorf("failed to create comment: %w", err)
	}
	p.logger.Info("created analysis comment", "repo", ref.String(), "pr", prNumber)
	return true, nil
}

// findExistingComment returns the id of the first bot-authored comment
// containing the marker. A listing failure degrades to "not found" so a
// fresh comment still gets created.
func (p *commentPublisher) findExistingComment(ctx context.Context, ref core.RepoRef, prNumber int) (int64, bool) {
	comments, err := p.client.ListComments(ctx, ref.Owner, ref.Name, prNumber)
	if err != nil {
		p.logger.Warn("failed to list comments, will create a new one", "repo", ref.String(), "pr", prNumber, "error", err)
		return 0, false
	}

	for _, c := range comments {
		if c.IsBot && strings.Contains(c.Body, CommentMarker) {
			return c.ID, true
		}
	}
	return 0, false
}
