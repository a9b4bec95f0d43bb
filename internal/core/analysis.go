package core

import (
	"fmt"
	"strings"
)

// Score is a 0-10 rating. A zero-value Score is "not applicable", which
// happens when the analysis had nothing to grade.
type Score struct {
	Value int
	Known bool
}

// NewScore wraps a known rating, clamping it into the 0-10 range.
func NewScore(v int) Score {
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	return Score{Value: v, Known: true}
}

// ScoreNA is the not-applicable sentinel.
func ScoreNA() Score {
	return Score{}
}

// String renders "7/10", or "N/A" for a not-applicable score.
func (s Score) String() string {
	if !s.Known {
		return "N/A"
	}
	return fmt.Sprintf("%d/10", s.Value)
}

// RiskLevel is a coarse triage signal for how risky a change looks.
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskUnknown RiskLevel = "UNKNOWN"
)

// ParseRiskLevel matches the literal tokens case-insensitively and falls
// back to UNKNOWN for anything else.
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case RiskLow:
		return RiskLow
	case RiskMedium:
		return RiskMedium
	case RiskHigh:
		return RiskHigh
	default:
		return RiskUnknown
	}
}

// Method tags which strategy produced an analysis.
type Method string

const (
	MethodModelIssues          Method = "model_linked_issues"
	MethodModelDescription     Method = "model_description_only"
	MethodHeuristicIssues      Method = "heuristic_linked_issues"
	MethodHeuristicDescription Method = "heuristic_description_only"
	MethodSkipped              Method = "skipped_no_changes"
)

// Display returns the label shown in the rendered comment.
func (m Method) Display() string {
	switch m {
	case MethodModelIssues:
		return "AI analysis with linked issues"
	case MethodModelDescription:
		return "AI analysis of PR description"
	case MethodHeuristicIssues:
		return "Heuristic analysis with linked issues"
	case MethodHeuristicDescription:
		return "Heuristic analysis of PR description"
	case MethodSkipped:
		return "Skipped (no meaningful changes)"
	default:
		return string(m)
	}
}

// AnalysisResult is the outcome of one run. Constructed once, immutable
// thereafter, discarded after the comment is rendered.
type AnalysisResult struct {
	Correctness           Score
	Completeness          Score
	Risk                  RiskLevel
	MissingRequirements   string
	ImplementationQuality string
	Recommendations       []string
	Method                Method

	// LinkedIssues always holds the deduplicated, insertion-ordered issue
	// numbers extracted from the PR text, independent of which were
	// successfully fetched. Issues holds the fetched subset.
	LinkedIssues []int
	Issues       []LinkedIssue

	PR PullRequestSummary
}
