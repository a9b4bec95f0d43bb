package github_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/issue-warden/internal/core"
	gh "github.com/sevigo/issue-warden/internal/github"
	"github.com/sevigo/issue-warden/mocks"
)

var testRef = core.RepoRef{Owner: "sevigo", Name: "issue-warden"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishUpdatesExistingBotComment(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		ListComments(gomock.Any(), "sevigo", "issue-warden", 5).
		Return([]gh.Comment{
			{ID: 1, Author: "octocat", IsBot: false, Body: "## 🤖 PR Issue Correctness Analysis\nhuman paste"},
			{ID: 2, Author: "github-actions[bot]", IsBot: true, Body: "unrelated bot chatter"},
			{ID: 3, Author: "github-actions[bot]", IsBot: true, Body: "## 🤖 PR Issue Correctness Analysis\nold body"},
		}, nil)
	client.EXPECT().
		UpdateComment(gomock.Any(), "sevigo", "issue-warden", int64(3), "new body").
		Return(nil)

	posted, err := gh.NewPublisher(client, discardLogger()).
		Publish(context.Background(), testRef, 5, "new body", true)

	require.NoError(t, err)
	assert.True(t, posted)
}

func TestPublishCreatesWhenNoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		ListComments(gomock.Any(), "sevigo", "issue-warden", 5).
		Return([]gh.Comment{
			{ID: 9, Author: "octocat", IsBot: false, Body: "lgtm"},
		}, nil)
	client.EXPECT().
		CreateComment(gomock.Any(), "sevigo", "issue-warden", 5, "body").
		Return(nil)

	posted, err := gh.NewPublisher(client, discardLogger()).
		Publish(context.Background(), testRef, 5, "body", true)

	require.NoError(t, err)
	assert.True(t, posted)
}

func TestPublishSkipsLookupWhenUpdateDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	// No ListComments expectation: the lookup must not happen.
	client.EXPECT().
		CreateComment(gomock.Any(), "sevigo", "issue-warden", 5, "body").
		Return(nil)

	posted, err := gh.NewPublisher(client, discardLogger()).
		Publish(context.Background(), testRef, 5, "body", false)

	require.NoError(t, err)
	assert.True(t, posted)
}

func TestPublishCreatesWhenListingFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		ListComments(gomock.Any(), "sevigo", "issue-warden", 5).
		Return(nil, fmt.Errorf("boom"))
	client.EXPECT().
		CreateComment(gomock.Any(), "sevigo", "issue-warden", 5, "body").
		Return(nil)

	posted, err := gh.NewPublisher(client, discardLogger()).
		Publish(context.Background(), testRef, 5, "body", true)

	require.NoError(t, err)
	assert.True(t, posted)
}

func TestPublishReportsTransportFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		ListComments(gomock.Any(), "sevigo", "issue-warden", 5).
		Return([]gh.Comment{
			{ID: 3, IsBot: true, Body: gh.CommentMarker},
		}, nil)
	client.EXPECT().
		UpdateComment(gomock.Any(), "sevigo", "issue-warden", int64(3), "body").
		Return(fmt.Errorf("503 service unavailable"))

	posted, err := gh.NewPublisher(client, discardLogger()).
		Publish(context.Background(), testRef, 5, "body", true)

	require.Error(t, err)
	assert.False(t, posted)
	assert.Contains(t, err.Error(), "503")
}
