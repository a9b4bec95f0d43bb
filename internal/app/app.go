// Package app assembles the bot's components and drives one analysis run.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sevigo/issue-warden/internal/actions"
	"github.com/sevigo/issue-warden/internal/analyzer"
	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/github"
	"github.com/sevigo/issue-warden/internal/report"
)

// App is the GitHub Actions entrypoint orchestrator. It runs the analysis
// once, emits the run outputs, and posts the summary comment.
type App struct {
	cfg       *config.Config
	analyzer  *analyzer.Service
	publisher github.Publisher
	emitter   *actions.Emitter
	logger    *slog.Logger
}

// New creates the App. All dependencies are required.
func New(cfg *config.Config, svc *analyzer.Service, publisher github.Publisher, emitter *actions.Emitter, logger *slog.Logger) *App {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if svc == nil {
		panic("analyzer service cannot be nil")
	}
	if publisher == nil {
		panic("publisher cannot be nil")
	}
	if emitter == nil {
		panic("emitter cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &App{cfg: cfg, analyzer: svc, publisher: publisher, emitter: emitter, logger: logger}
}

// Run executes one full analyze-render-publish cycle for the configured
// pull request. Analysis failure still produces run outputs and a
// best-effort failure comment before the error is returned.
func (a *App) Run(ctx context.Context) error {
	if err := a.cfg.ValidateForAction(); err != nil {
		a.logger.Error("Configuration validation failed", "error", err)
		return fmt.Errorf("configuration invalid: %w", err)
	}

	ref, err := a.cfg.RepoRef()
	if err != nil {
		return fmt.Errorf("failed to resolve repository: %w", err)
	}

	a.logger.Info("Starting run", "repo", ref.String(), "pr", a.cfg.PRNumber)

	result, err := a.analyzer.Analyze(ctx, ref, a.cfg.PRNumber)
	if err != nil {
		a.reportFailure(ctx, ref, err)
		return fmt.Errorf("analysis failed: %w", err)
	}

	body := report.Render(result)

	a.emitter.SetOutput("success", "true")
	a.emitter.SetOutput("comment", actions.EscapeValue(body))
	a.emitter.SetOutput("risk_level", string(result.Risk))
	a.annotate(result)
	a.emitter.StepSummary(body)

	posted := a.publish(ctx, ref, body)
	a.emitter.SetOutput("comment_posted", strconv.FormatBool(posted))

	a.logger.Info("Run completed", "repo", ref.String(), "pr", a.cfg.PRNumber,
		"risk", result.Risk, "method", result.Method, "posted", posted)
	return nil
}

// reportFailure emits the failure outputs and posts the failure comment
// best-effort. The run outputs stay populated even when posting is off.
func (a *App) reportFailure(ctx context.Context, ref core.RepoRef, runErr error) {
	a.logger.Error("Analysis failed", "repo", ref.String(), "pr", a.cfg.PRNumber, "error", runErr)

	body := report.RenderFailure(runErr)
	a.emitter.SetOutput("success", "false")
	a.emitter.SetOutput("comment", actions.EscapeValue(body))
	a.emitter.SetOutput("risk_level", string(core.RiskUnknown))

	posted := a.publish(ctx, ref, body)
	a.emitter.SetOutput("comment_posted", strconv.FormatBool(posted))
}

// annotate raises the advisory workflow annotations for notable results.
func (a *App) annotate(result *core.AnalysisResult) {
	if result.Risk == core.RiskHigh {
		a.emitter.Warning("High-risk change detected; review carefully before merging.")
	}
	if result.Correctness.Known && result.Correctness.Value < 5 {
		a.emitter.Notice(fmt.Sprintf("Correctness score %d/10: the implementation may not fully satisfy the linked issues.", result.Correctness.Value))
	}
}

// publish posts or updates the summary comment when posting is enabled.
// Failures are logged and reported as not-posted; they never fail the run.
func (a *App) publish(ctx context.Context, ref core.RepoRef, body string) bool {
	if !a.cfg.PostComment {
		a.logger.Info("Comment posting disabled, skipping publish")
		return false
	}

	posted, err := a.publisher.Publish(ctx, ref, a.cfg.PRNumber, body, a.cfg.UpdateExisting)
	if err != nil {
		a.logger.Warn("Failed to publish comment", "repo", ref.String(), "pr", a.cfg.PRNumber, "error", err)
		return false
	}
	return posted
}
