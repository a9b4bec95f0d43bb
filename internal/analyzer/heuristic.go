package analyzer

import (
	"fmt"
	"strings"

	"github.com/sevigo/issue-warden/internal/core"
)

// Fixed recommendation lines, assembled in this order.
const (
	recAddTests    = "Add tests covering the changed code paths."
	recAddDocs     = "Update documentation to reflect these changes."
	recSplitPR     = "Consider splitting this PR into smaller, focused changes."
	recHighRisk    = "High-risk change: request a careful review before merging."
	recLinkIssues  = "Link the related issue(s) so reviewers can verify the requirements."
	recImproveDesc = "Expand the PR description to explain the intent of the change."
)

// Action verbs compared between the issue text and the PR text.
var actionKeywords = []string{"fix", "add", "update", "implement", "create", "remove"}

// Canned narratives for PRs with no stated intent at all.
const (
	noIntentMissing = "Unable to assess: the pull request has no title or description."
	noIntentQuality = "Not assessed (no stated intent to compare against)."
)

// heuristicFields is a model-free scoring of the PR.
type heuristicFields struct {
	correctness  core.Score
	completeness core.Score
	risk         core.RiskLevel
	missing      string
	quality      string
	recs         []string
}

// scoreHeuristically derives all analysis fields from observable diff
// signals. It serves both the no-credential configuration and the fallback
// when the model path fails.
func scoreHeuristically(pr core.PullRequestSummary, linked []int, issues []core.LinkedIssue, files []core.FileChange) heuristicFields {
	tests := testsTouched(files)
	docs := docsTouched(files)

	var fields heuristicFields
	if len(linked) > 0 {
		fields = scoreAgainstIssues(pr, linked, issues, tests, docs)
	} else {
		fields = scoreAgainstDescription(pr, tests, docs)
	}

	fields.risk = assessRisk(pr, files)
	if fields.quality == "" {
		fields.quality = diffSignalQuality(pr, tests)
	}
	fields.recs = recommendations(pr, linked, fields.risk, tests, docs)
	return fields
}

// assessRisk counts coarse risk factors. More than two factors is HIGH, at
// least one is MEDIUM, none is LOW.
func assessRisk(pr core.PullRequestSummary, files []core.FileChange) core.RiskLevel {
	factors := 0
	if pr.TotalChanges() > 500 {
		factors++
	}
	if pr.ChangedFiles > 20 {
		factors++
	}
	if !testsTouched(files) {
		factors++
	}
	if configTouched(files) {
		factors++
	}

	switch {
	case factors > 2:
		return core.RiskHigh
	case factors > 0:
		return core.RiskMedium
	default:
		return core.RiskLow
	}
}

func scoreAgainstIssues(pr core.PullRequestSummary, linked []int, issues []core.LinkedIssue, tests, docs bool) heuristicFields {
	matched := matchedKeywords(pr, issues)

	correctness := 2 * matched
	if tests {
		correctness += 2
	}

	completeness := 8
	if len(linked) > 2 {
		completeness = 6
	}
	if docs {
		completeness++
	}
	if tests {
		completeness++
	}

	missing := "None detected by keyword comparison; verify the linked issues manually."
	if matched == 0 {
		missing = "The PR text shares no action keywords with the linked issues; verify the requirements manually."
	}

	return heuristicFields{
		correctness:  core.NewScore(correctness),
		completeness: core.NewScore(completeness),
		missing:      missing,
	}
}

// matchedKeywords counts the action verbs present in BOTH the concatenated
// issue text and the PR text, case-insensitively.
func matchedKeywords(pr core.PullRequestSummary, issues []core.LinkedIssue) int {
	var sb strings.Builder
	for _, issue := range issues {
		sb.WriteString(issue.Title)
		sb.WriteString(" ")
		sb.WriteString(issue.Body)
		sb.WriteString(" ")
	}
	issueText := strings.ToLower(sb.String())
	prText := strings.ToLower(pr.Title + " " + pr.Body)

	matched := 0
	for _, keyword := range actionKeywords {
		if strings.Contains(issueText, keyword) && strings.Contains(prText, keyword) {
			matched++
		}
	}
	return matched
}

func scoreAgainstDescription(pr core.PullRequestSummary, tests, docs bool) heuristicFields {
	title := strings.TrimSpace(pr.Title)
	desc := strings.TrimSpace(pr.Body)

	if title == "" && desc == "" {
		return heuristicFields{
			correctness:  core.NewScore(3),
			completeness: core.NewScore(3),
			missing:      noIntentMissing,
			quality:      noIntentQuality,
		}
	}

	correctness := 2
	if len(desc) > 50 {
		correctness = 4
	}
	if len(title) > 10 && len(title) < 100 {
		correctness += 2
	}
	sized := pr.TotalChanges() / 10
	if sized > 10 {
		sized = 10
	}
	correctness += sized / 2
	if tests {
		correctness += 2
	}
	if correctness < 2 {
		correctness = 2
	}
	correctnessScore := core.NewScore(correctness)

	completeness := correctnessScore.Value - 1
	if docs {
		completeness++
	}
	if completeness < 2 {
		completeness = 2
	}

	return heuristicFields{
		correctness:  correctnessScore,
		completeness: core.NewScore(completeness),
		missing:      "No linked issues to compare against; assessed from the PR description only.",
	}
}

func diffSignalQuality(pr core.PullRequestSummary, tests bool) string {
	verdict := "no test changes"
	if tests {
		verdict = "includes test changes"
	}
	return fmt.Sprintf("Assessed from diff signals: %d file(s), +%d/-%d lines, %s.",
		pr.ChangedFiles, pr.Additions, pr.Deletions, verdict)
}

func recommendations(pr core.PullRequestSummary, linked []int, risk core.RiskLevel, tests, docs bool) []string {
	total := pr.TotalChanges()

	var recs []string
	if !tests {
		recs = append(recs, recAddTests)
	}
	if !docs && total > 100 {
		recs = append(recs, recAddDocs)
	}
	if total > 500 || pr.ChangedFiles > 20 {
		recs = append(recs, recSplitPR)
	}
	if risk == core.RiskHigh {
		recs = append(recs, recHighRisk)
	}
	if len(linked) == 0 {
		recs = append(recs, recLinkIssues)
	}
	if len(strings.TrimSpace(pr.Body)) <= 50 {
		recs = append(recs, recImproveDesc)
	}
	return recs
}
