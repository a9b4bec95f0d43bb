// Package report renders analysis results to GitHub-flavored markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/github"
)

// Heading opens every comment the bot posts. It contains the publisher's
// marker, so a rewritten heading would orphan previously posted comments.
const Heading = "## 🤖 " + github.CommentMarker

const footer = "_Generated by issue-warden. Scores are advisory; verify independently._"

// Render produces the full summary comment for a finished analysis.
func Render(result *core.AnalysisResult) string {
	var sb strings.Builder

	sb.WriteString(Heading + "\n\n")
	writePRLine(&sb, result.PR)
	writeLinkedIssues(&sb, result.LinkedIssues)
	fmt.Fprintf(&sb, "**Method:** %s\n\n", result.Method.Display())

	writeScoresTable(&sb, result)
	if result.Risk == core.RiskHigh {
		sb.WriteString("> 🔴 **High-risk change:** review carefully before merging.\n\n")
	}

	sb.WriteString("### 🔍 Missing Requirements\n\n")
	sb.WriteString(result.MissingRequirements + "\n\n")

	sb.WriteString("### 🛠️ Implementation Quality\n\n")
	sb.WriteString(result.ImplementationQuality + "\n\n")

	writeRecommendations(&sb, result.Recommendations)

	sb.WriteString("---\n")
	sb.WriteString(footer + "\n")
	return sb.String()
}

// RenderFailure produces the short comment posted when the analysis itself
// errored. It keeps the marker heading so the next successful run replaces it.
func RenderFailure(err error) string {
	var sb strings.Builder

	sb.WriteString(Heading + "\n\n")
	fmt.Fprintf(&sb, "❌ **Analysis failed:** %v\n\n", err)
	sb.WriteString("---\n")
	sb.WriteString(footer + "\n")
	return sb.String()
}

func writePRLine(sb *strings.Builder, pr core.PullRequestSummary) {
	fmt.Fprintf(sb, "**%s** by @%s (%d file(s) changed, +%d/-%d)\n\n",
		pr.Title, pr.Author, pr.ChangedFiles, pr.Additions, pr.Deletions)
}

func writeLinkedIssues(sb *strings.Builder, numbers []int) {
	if len(numbers) == 0 {
		sb.WriteString("**Linked issues:** _none detected_\n\n")
		return
	}
	refs := make([]string, 0, len(numbers))
	for _, n := range numbers {
		refs = append(refs, fmt.Sprintf("#%d", n))
	}
	fmt.Fprintf(sb, "**Linked issues:** %s\n\n", strings.Join(refs, ", "))
}

func writeScoresTable(sb *strings.Builder, result *core.AnalysisResult) {
	sb.WriteString("### 📊 Scores\n\n")
	sb.WriteString("| Metric | Result |\n")
	sb.WriteString("|--------|--------|\n")
	fmt.Fprintf(sb, "| Correctness | %s |\n", result.Correctness)
	fmt.Fprintf(sb, "| Completeness | %s |\n", result.Completeness)
	fmt.Fprintf(sb, "| Risk | %s %s |\n", riskEmoji(result.Risk), result.Risk)
	sb.WriteString("\n")
}

func writeRecommendations(sb *strings.Builder, recs []string) {
	sb.WriteString("### 💡 Recommendations\n\n")
	if len(recs) == 0 {
		sb.WriteString("_No specific recommendations._\n\n")
		return
	}
	for _, rec := range recs {
		fmt.Fprintf(sb, "- %s\n", rec)
	}
	sb.WriteString("\n")
}

// riskEmoji returns the badge for the given risk level.
func riskEmoji(risk core.RiskLevel) string {
	switch risk {
	case core.RiskLow:
		return "🟢"
	case core.RiskMedium:
		return "🟡"
	case core.RiskHigh:
		return "🔴"
	default:
		return "⚪"
	}
}
