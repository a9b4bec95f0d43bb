package analyzer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/llm"
	"github.com/sevigo/issue-warden/mocks"
)

var testRef = core.RepoRef{Owner: "acme", Name: "widgets"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// The canonical no-credential run: one linked issue, a meaningful diff with
// no tests, heuristic scoring end to end.
func TestAnalyzeHeuristicEndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	pr := core.PullRequestSummary{
		Number:       7,
		Title:        "Fixes #42: add retry logic to the API client",
		Body:         "Adds retry with exponential backoff so flaky calls recover.",
		Author:       "octocat",
		Additions:    110,
		Deletions:    12,
		ChangedFiles: 2,
	}
	client.EXPECT().
		GetPullRequest(gomock.Any(), "acme", "widgets", 7).
		Return(pr, nil)
	client.EXPECT().
		GetIssue(gomock.Any(), "acme", "widgets", 42).
		Return(core.LinkedIssue{
			Number: 42,
			Title:  "Add retry logic",
			Body:   "API calls should retry on transient failures.",
			State:  "open",
		}, nil)
	client.EXPECT().
		ListChangedFiles(gomock.Any(), "acme", "widgets", 7).
		Return([]core.FileChange{
			{Path: "docs/changelog.md", Kind: core.ChangeModified, Changes: 2},
			{Path: "src/api/client.ts", Kind: core.ChangeModified, Changes: 120},
		}, nil)

	svc := NewService(client, nil, nil, discardLogger())
	result, err := svc.Analyze(context.Background(), testRef, 7)

	require.NoError(t, err)
	assert.Equal(t, []int{42}, result.LinkedIssues)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, core.MethodHeuristicIssues, result.Method)
	assert.Equal(t, core.RiskMedium, result.Risk)
	assert.True(t, result.Correctness.Known)
	assert.Contains(t, result.Recommendations, "Add tests covering the changed code paths.")
	assert.NotContains(t, result.Recommendations, "Consider splitting this PR into smaller, focused changes.")
	assert.Equal(t, pr, result.PR)
}

func TestAnalyzePRFetchFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		GetPullRequest(gomock.Any(), "acme", "widgets", 7).
		Return(core.PullRequestSummary{}, errors.New("404 Not Found"))

	svc := NewService(client, nil, nil, discardLogger())
	_, err := svc.Analyze(context.Background(), testRef, 7)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestAnalyzeFilesFetchFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		GetPullRequest(gomock.Any(), "acme", "widgets", 7).
		Return(core.PullRequestSummary{Title: "No refs here"}, nil)
	client.EXPECT().
		ListChangedFiles(gomock.Any(), "acme", "widgets", 7).
		Return(nil, errors.New("502 Bad Gateway"))

	svc := NewService(client, nil, nil, discardLogger())
	_, err := svc.Analyze(context.Background(), testRef, 7)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestAnalyzeDroppedIssueStaysInLinkedList(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	client.EXPECT().
		GetPullRequest(gomock.Any(), "acme", "widgets", 3).
		Return(core.PullRequestSummary{Title: "Fixes #1 and closes #2", Body: "fix both"}, nil)
	client.EXPECT().
		GetIssue(gomock.Any(), "acme", "widgets", 1).
		Return(core.LinkedIssue{}, errors.New("410 Gone"))
	client.EXPECT().
		GetIssue(gomock.Any(), "acme", "widgets", 2).
		Return(core.LinkedIssue{Number: 2, Title: "fix the other thing"}, nil)
	client.EXPECT().
		ListChangedFiles(gomock.Any(), "acme", "widgets", 3).
		Return([]core.FileChange{{Path: "main.go", Kind: core.ChangeModified, Changes: 30}}, nil)

	svc := NewService(client, nil, nil, discardLogger())
	result, err := svc.Analyze(context.Background(), testRef, 3)

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, result.LinkedIssues)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, 2, result.Issues[0].Number)
}

func TestAnalyzeShortCircuitsTrivialDiff(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	evaluator := mocks.NewMockEvaluator(ctrl)

	client.EXPECT().
		GetPullRequest(gomock.Any(), "acme", "widgets", 9).
		Return(core.PullRequestSummary{Title: "Fix a typo", Body: "Tiny doc change"}, nil)
	client.EXPECT().
		ListChangedFiles(gomock.Any(), "acme", "widgets", 9).
		Return([]core.FileChange{
			{Path: "README.md", Kind: core.ChangeModified, Changes: 2},
		}, nil)
	// No Evaluate expectation: the model must not be consulted.

	svc := NewService(client, evaluator, nil, discardLogger())
	result, err := svc.Analyze(context.Background(), testRef, 9)

	require.NoError(t, err)
	assert.Equal(t, core.MethodSkipped, result.Method)
	assert.False(t, result.Correctness.Known)
	assert.False(t, result.Completeness.Known)
	assert.Equal(t, core.RiskLow, result.Risk)
	assert.Empty(t, result.LinkedIssues)
}

func TestAnalyzeModelPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	evaluator := mocks.NewMockEvaluator(ctrl)

	client.EXPECT().
		GetPullRequest(gomock.Any(), "acme", "widgets", 11).
		Return(core.PullRequestSummary{Title: "Resolves #5", Body: "implements the thing"}, nil)
	client.EXPECT().
		GetIssue(gomock.Any(), "acme", "widgets", 5).
		Return(core.LinkedIssue{Number: 5, Title: "The thing"}, nil)
	client.EXPECT().
		ListChangedFiles(gomock.Any(), "acme", "widgets", 11).
		Return([]core.FileChange{{Path: "thing.go", Kind: core.ChangeAdded, Changes: 80}}, nil)

	evaluator.EXPECT().
		Evaluate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *llm.EvaluationInput) (*llm.Evaluation, error) {
			assert.Equal(t, "Resolves #5", input.PR.Title)
			require.Len(t, input.Issues, 1)
			require.Len(t, input.Files, 1)
			return &llm.Evaluation{
				Correctness:           core.NewScore(9),
				Completeness:          core.NewScore(8),
				Risk:                  core.RiskLow,
				MissingRequirements:   "None identified",
				ImplementationQuality: "Clean and focused.",
				Recommendations:       []string{"Ship it"},
				Strategy:              llm.StrategyStructured,
			}, nil
		})

	svc := NewService(client, evaluator, nil, discardLogger())
	result, err := svc.Analyze(context.Background(), testRef, 11)

	require.NoError(t, err)
	assert.Equal(t, core.MethodModelIssues, result.Method)
	assert.Equal(t, core.NewScore(9), result.Correctness)
	assert.Equal(t, core.NewScore(8), result.Completeness)
	assert.Equal(t, core.RiskLow, result.Risk)
	assert.Equal(t, "None identified", result.MissingRequirements)
	assert.Equal(t, []string{"Ship it"}, result.Recommendations)
}

func TestAnalyzeModelFailureFallsBackToHeuristics(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	evaluator := mocks.NewMockEvaluator(ctrl)

	client.EXPECT().
		GetPullRequest(gomock.Any(), "acme", "widgets", 13).
		Return(core.PullRequestSummary{
			Title:        "Rework the scheduler",
			Body:         "A long explanation of why the scheduler needed rework.",
			Additions:    200,
			Deletions:    50,
			ChangedFiles: 4,
		}, nil)
	client.EXPECT().
		ListChangedFiles(gomock.Any(), "acme", "widgets", 13).
		Return([]core.FileChange{{Path: "sched/sched.go", Kind: core.ChangeModified, Changes: 250}}, nil)

	evaluator.EXPECT().
		Evaluate(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("model timeout"))

	svc := NewService(client, evaluator, nil, discardLogger())
	result, err := svc.Analyze(context.Background(), testRef, 13)

	require.NoError(t, err)
	assert.Equal(t, core.MethodHeuristicDescription, result.Method)
	assert.True(t, result.Correctness.Known)
	assert.NotEmpty(t, result.Recommendations)
}
