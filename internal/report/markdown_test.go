package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/github"
)

func sampleResult() *core.AnalysisResult {
	return &core.AnalysisResult{
		Correctness:           core.NewScore(7),
		Completeness:          core.NewScore(6),
		Risk:                  core.RiskMedium,
		MissingRequirements:   "Error handling for the retry path is not covered.",
		ImplementationQuality: "Solid structure with clear naming.",
		Recommendations:       []string{"Add tests covering the changed code paths.", "Link the related issue."},
		Method:                core.MethodModelIssues,
		LinkedIssues:          []int{42, 7},
		PR: core.PullRequestSummary{
			Number:       12,
			Title:        "Add retry logic",
			Author:       "octocat",
			Additions:    120,
			Deletions:    14,
			ChangedFiles: 3,
		},
	}
}

func TestRenderFullResult(t *testing.T) {
	body := Render(sampleResult())

	assert.True(t, strings.HasPrefix(body, "## 🤖 PR Issue Correctness Analysis\n"))
	assert.Contains(t, body, "**Add retry logic** by @octocat (3 file(s) changed, +120/-14)")
	assert.Contains(t, body, "**Linked issues:** #42, #7")
	assert.Contains(t, body, "**Method:** AI analysis with linked issues")

	assert.Contains(t, body, "| Metric | Result |")
	assert.Contains(t, body, "| Correctness | 7/10 |")
	assert.Contains(t, body, "| Completeness | 6/10 |")
	assert.Contains(t, body, "| Risk | 🟡 MEDIUM |")

	assert.Contains(t, body, "### 🔍 Missing Requirements\n\nError handling for the retry path is not covered.")
	assert.Contains(t, body, "### 🛠️ Implementation Quality\n\nSolid structure with clear naming.")
	assert.Contains(t, body, "- Add tests covering the changed code paths.\n- Link the related issue.")

	assert.NotContains(t, body, "High-risk change")
	assert.True(t, strings.HasSuffix(body, "---\n_Generated by issue-warden. Scores are advisory; verify independently._\n"))
}

func TestRenderHighRiskWarning(t *testing.T) {
	result := sampleResult()
	result.Risk = core.RiskHigh

	body := Render(result)

	assert.Contains(t, body, "| Risk | 🔴 HIGH |")
	assert.Contains(t, body, "> 🔴 **High-risk change:** review carefully before merging.")
}

func TestRenderNoLinkedIssues(t *testing.T) {
	result := sampleResult()
	result.LinkedIssues = nil

	body := Render(result)

	assert.Contains(t, body, "**Linked issues:** _none detected_")
}

func TestRenderNoRecommendations(t *testing.T) {
	result := sampleResult()
	result.Recommendations = nil

	body := Render(result)

	assert.Contains(t, body, "### 💡 Recommendations\n\n_No specific recommendations._")
}

func TestRenderSkippedResultShowsNAScores(t *testing.T) {
	result := sampleResult()
	result.Correctness = core.ScoreNA()
	result.Completeness = core.ScoreNA()
	result.Risk = core.RiskLow
	result.Method = core.MethodSkipped

	body := Render(result)

	assert.Contains(t, body, "| Correctness | N/A |")
	assert.Contains(t, body, "| Completeness | N/A |")
	assert.Contains(t, body, "| Risk | 🟢 LOW |")
	assert.Contains(t, body, "**Method:** Skipped (no meaningful changes)")
}

func TestRenderFailure(t *testing.T) {
	body := RenderFailure(errors.New("failed to fetch pull request acme/widgets#12: 404"))

	assert.True(t, strings.HasPrefix(body, "## 🤖 PR Issue Correctness Analysis\n"))
	assert.Contains(t, body, "❌ **Analysis failed:** failed to fetch pull request acme/widgets#12: 404")
	assert.Contains(t, body, "_Generated by issue-warden.")
	assert.NotContains(t, body, "### 📊 Scores")
}

// Both render paths must carry the marker the publisher searches for,
// otherwise update-in-place stops finding the bot's comment.
func TestRenderedBodiesCarryCommentMarker(t *testing.T) {
	assert.Contains(t, Render(sampleResult()), github.CommentMarker)
	assert.Contains(t, RenderFailure(errors.New("boom")), github.CommentMarker)
}

func TestRiskEmoji(t *testing.T) {
	tests := []struct {
		risk core.RiskLevel
		want string
	}{
		{core.RiskLow, "🟢"},
		{core.RiskMedium, "🟡"},
		{core.RiskHigh, "🔴"},
		{core.RiskUnknown, "⚪"},
		{core.RiskLevel("weird"), "⚪"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, riskEmoji(tt.risk), "risk %q", tt.risk)
	}
}
