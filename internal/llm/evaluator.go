// Package llm turns a pull request snapshot into a model prompt and the
// model's answer back into review fields. The prompt templates are embedded
// per provider, and parsing tolerates the usual model quirks around JSON.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/issue-warden/internal/core"
)

// maxResponseBytes caps how much model output the parser will look at.
// Anything past this is noise from a model that ignored the length
// instruction in the prompt.
const maxResponseBytes = 16 * 1024

// Prompt assembly budgets. Patches arrive pre-truncated per file.
const (
	maxPromptTitleRunes = 200
	maxPromptBodyRunes  = 2000
	maxIssueBodyRunes   = 1000
	maxPromptFiles      = 10
)

//go:generate mockgen -destination=../../mocks/mock_evaluator.go -package=mocks . Evaluator

// Evaluator produces the review fields for a pull request. A nil Evaluator
// in the pipeline means no model is configured and the heuristic path runs
// instead.
type Evaluator interface {
	Evaluate(ctx context.Context, input *EvaluationInput) (*Evaluation, error)
}

// EvaluationInput is everything the prompt can draw on.
type EvaluationInput struct {
	PR     core.PullRequestSummary
	Issues []core.LinkedIssue
	Files  []core.FileChange
	Repo   *core.RepoConfig
}

// Evaluation is one model verdict with all defaults applied. Callers can
// render it without nil checks.
type Evaluation struct {
	Correctness           core.Score
	Completeness          core.Score
	Risk                  core.RiskLevel
	MissingRequirements   string
	ImplementationQuality string
	Recommendations       []string
	Strategy              Strategy
}

type modelEvaluator struct {
	model    llms.Model
	prompts  *PromptManager
	provider ModelProvider
	logger   *slog.Logger
}

// NewEvaluator wires a model client to the embedded prompt library.
func NewEvaluator(model llms.Model, prompts *PromptManager, provider ModelProvider, logger *slog.Logger) Evaluator {
	if model == nil {
		panic("llm: model is required")
	}
	if prompts == nil {
		panic("llm: prompt manager is required")
	}
	if logger == nil {
		panic("llm: logger is required")
	}
	return &modelEvaluator{
		model:    model,
		prompts:  prompts,
		provider: provider,
		logger:   logger,
	}
}

func (e *modelEvaluator) Evaluate(ctx context.Context, input *EvaluationInput) (*Evaluation, error) {
	key := DescriptionReviewPrompt
	if len(input.Issues) > 0 {
		key = IssueCorrectnessPrompt
	}

	prompt, err := e.prompts.Render(key, e.provider, buildPromptData(input))
	if err != nil {
		return nil, fmt.Errorf("failed to render %s prompt: %w", key, err)
	}

	e.logger.Debug("sending analysis prompt",
		"template", string(key),
		"prompt_bytes", len(prompt),
		"linked_issues", len(input.Issues))

	raw, err := e.model.Call(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	if len(raw) > maxResponseBytes {
		e.logger.Warn("model response exceeds budget, truncating",
			"response_bytes", len(raw), "budget_bytes", maxResponseBytes)
		raw = raw[:maxResponseBytes]
	}

	fields, err := ParseAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("unusable model response: %w", err)
	}
	if fields.Strategy == StrategyText {
		e.logger.Warn("model skipped the JSON contract, scraped fields from text",
			"preview", fields.RawPreview)
	}

	return evaluationFromFields(fields), nil
}

// evaluationFromFields fills the defaults the text path leaves absent and
// normalizes an explicitly empty recommendation list for display.
func evaluationFromFields(fields *AnalysisFields) *Evaluation {
	eval := &Evaluation{
		Correctness:           fields.Correctness,
		Completeness:          fields.Completeness,
		Risk:                  fields.Risk,
		MissingRequirements:   defaultMissingRequirements,
		ImplementationQuality: defaultImplementationQuality,
		Recommendations:       fields.Recommendations,
		Strategy:              fields.Strategy,
	}
	if fields.MissingRequirements != nil {
		eval.MissingRequirements = *fields.MissingRequirements
	}
	if fields.ImplementationQuality != nil {
		eval.ImplementationQuality = *fields.ImplementationQuality
	}
	if len(eval.Recommendations) == 0 {
		eval.Recommendations = []string{defaultRecommendation}
	}
	return eval
}

type promptData struct {
	Title        string
	Description  string
	Author       string
	Additions    int
	Deletions    int
	ChangedFiles int
	Files        []promptFile
	OmittedFiles int
	Issues       []promptIssue
	Instructions []string
}

type promptFile struct {
	Path      string
	Status    string
	Additions int
	Deletions int
	Patch     string
}

type promptIssue struct {
	Number int
	Title  string
	State  string
	Labels string
	Body   string
}

func buildPromptData(input *EvaluationInput) *promptData {
	data := &promptData{
		Title:        truncateRunes(input.PR.Title, maxPromptTitleRunes),
		Description:  truncateRunes(input.PR.Body, maxPromptBodyRunes),
		Author:       input.PR.Author,
		Additions:    input.PR.Additions,
		Deletions:    input.PR.Deletions,
		ChangedFiles: input.PR.ChangedFiles,
	}

	for _, issue := range input.Issues {
		data.Issues = append(data.Issues, promptIssue{
			Number: issue.Number,
			Title:  truncateRunes(issue.Title, maxPromptTitleRunes),
			State:  issue.State,
			Labels: strings.Join(issue.Labels, ", "),
			Body:   truncateRunes(issue.Body, maxIssueBodyRunes),
		})
	}

	files := input.Files
	if len(files) > maxPromptFiles {
		data.OmittedFiles = len(files) - maxPromptFiles
		files = files[:maxPromptFiles]
	}
	for _, f := range files {
		data.Files = append(data.Files, promptFile{
			Path:      f.Path,
			Status:    string(f.Kind),
			Additions: f.Additions,
			Deletions: f.Deletions,
			Patch:     f.Patch,
		})
	}

	if input.Repo != nil {
		data.Instructions = input.Repo.CustomInstructions
	}

	return data
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
