// Package analyzer decides what a pull request claims to do and how well
// the diff delivers on it. One Analyze call performs the full pipeline:
// fetch the PR, extract and fetch linked issues, fetch the diff, then score
// either through the model or through deterministic heuristics.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/github"
	"github.com/sevigo/issue-warden/internal/llm"
)

// Service runs the analysis pipeline against one repository.
type Service struct {
	client    github.Client
	evaluator llm.Evaluator
	repoCfg   *core.RepoConfig
	logger    *slog.Logger
}

// NewService wires the pipeline. evaluator may be nil, which forces the
// heuristic scoring path; repoCfg may be nil for built-in filter behavior.
func NewService(client github.Client, evaluator llm.Evaluator, repoCfg *core.RepoConfig, logger *slog.Logger) *Service {
	if client == nil {
		panic("github client cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Service{client: client, evaluator: evaluator, repoCfg: repoCfg, logger: logger}
}

// Analyze produces the full analysis for one pull request. Only the PR and
// file fetches are fatal; a linked issue that cannot be fetched is dropped
// from the detail list and the run continues.
func (s *Service) Analyze(ctx context.Context, ref core.RepoRef, prNumber int) (*core.AnalysisResult, error) {
	s.logger.Info("Starting PR analysis", "repo", ref.String(), "pr", prNumber)

	pr, err := s.client.GetPullRequest(ctx, ref.Owner, ref.Name, prNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request %s#%d: %w", ref, prNumber, err)
	}

	linked := ExtractIssueNumbers(pr.Title, pr.Body)
	s.logger.Info("Extracted issue references", "count", len(linked), "issues", linked)

	issues := s.fetchLinkedIssues(ctx, ref, linked)

	files, err := s.client.ListChangedFiles(ctx, ref.Owner, ref.Name, prNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch changed files for %s#%d: %w", ref, prNumber, err)
	}

	var result *core.AnalysisResult
	if len(linked) == 0 && !MeaningfulChanges(files, s.repoCfg) {
		s.logger.Info("No meaningful changes and no linked issues, skipping scoring")
		result = skippedResult()
	} else {
		result = s.score(ctx, pr, linked, issues, files)
	}

	result.PR = pr
	result.LinkedIssues = linked
	result.Issues = issues

	s.logger.Info("Analysis complete",
		"method", string(result.Method),
		"correctness", result.Correctness.String(),
		"completeness", result.Completeness.String(),
		"risk", string(result.Risk))
	return result, nil
}

// fetchLinkedIssues fetches the referenced issues one at a time, keeping
// the extraction order. An issue that cannot be fetched is dropped from
// the detail list and the loop continues.
func (s *Service) fetchLinkedIssues(ctx context.Context, ref core.RepoRef, numbers []int) []core.LinkedIssue {
	if len(numbers) == 0 {
		return nil
	}

	issues := make([]core.LinkedIssue, 0, len(numbers))
	for _, number := range numbers {
		issue, err := s.client.GetIssue(ctx, ref.Owner, ref.Name, number)
		if err != nil {
			s.logger.Warn("Skipping linked issue that could not be fetched", "issue", number, "error", err)
			continue
		}
		issues = append(issues, issue)
	}
	if len(issues) == 0 {
		return nil
	}
	return issues
}

// score runs the model path when an evaluator is configured and falls back
// to heuristics on any model failure.
func (s *Service) score(ctx context.Context, pr core.PullRequestSummary, linked []int, issues []core.LinkedIssue, files []core.FileChange) *core.AnalysisResult {
	if s.evaluator != nil {
		eval, err := s.evaluator.Evaluate(ctx, &llm.EvaluationInput{
			PR:     pr,
			Issues: issues,
			Files:  files,
			Repo:   s.repoCfg,
		})
		if err == nil {
			method := core.MethodModelDescription
			if len(linked) > 0 {
				method = core.MethodModelIssues
			}
			return &core.AnalysisResult{
				Correctness:           eval.Correctness,
				Completeness:          eval.Completeness,
				Risk:                  eval.Risk,
				MissingRequirements:   eval.MissingRequirements,
				ImplementationQuality: eval.ImplementationQuality,
				Recommendations:       eval.Recommendations,
				Method:                method,
			}
		}
		s.logger.Warn("Model evaluation failed, falling back to heuristics", "error", err)
	}

	fields := scoreHeuristically(pr, linked, issues, files)
	method := core.MethodHeuristicDescription
	if len(linked) > 0 {
		method = core.MethodHeuristicIssues
	}
	return &core.AnalysisResult{
		Correctness:           fields.correctness,
		Completeness:          fields.completeness,
		Risk:                  fields.risk,
		MissingRequirements:   fields.missing,
		ImplementationQuality: fields.quality,
		Recommendations:       fields.recs,
		Method:                method,
	}
}

// skippedResult is the canned outcome for a diff with nothing worth scoring
// and no linked issues.
func skippedResult() *core.AnalysisResult {
	return &core.AnalysisResult{
		Correctness:           core.ScoreNA(),
		Completeness:          core.ScoreNA(),
		Risk:                  core.RiskLow,
		MissingRequirements:   "Not evaluated (no meaningful code changes).",
		ImplementationQuality: "Only low-signal files changed (documentation, configuration, or metadata).",
		Method:                core.MethodSkipped,
	}
}
