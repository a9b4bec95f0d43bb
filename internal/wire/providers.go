// Package wire constructs the application object graph.
package wire

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/google/wire"

	"github.com/sevigo/issue-warden/internal/actions"
	"github.com/sevigo/issue-warden/internal/analyzer"
	"github.com/sevigo/issue-warden/internal/app"
	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/github"
	"github.com/sevigo/issue-warden/internal/llm"
	"github.com/sevigo/issue-warden/internal/logger"
)

// CheckComponents bundles the pieces the local check command drives
// directly, without the Actions output machinery.
type CheckComponents struct {
	Cfg       *config.Config
	Analyzer  *analyzer.Service
	Publisher github.Publisher
	Logger    *slog.Logger
}

// AppSet lists every provider the Actions entrypoint needs.
var AppSet = wire.NewSet(
	app.New,
	config.LoadConfig,
	analyzer.NewService,
	github.NewPublisher,
	llm.NewPromptManager,
	provideLoggerConfig,
	provideLogWriter,
	provideSlogLogger,
	provideGitHubClient,
	provideRepoConfig,
	provideEvaluator,
	provideEmitter,
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.LoggerConfig()
}

// provideLogWriter sends logs to stderr. Stdout stays reserved for
// workflow commands, which the runner parses line by line.
func provideLogWriter() io.Writer {
	return os.Stderr
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(loggerConfig, writer)
}

// provideGitHubClient prefers App-installation auth when the full
// credential trio is configured, and falls back to the PAT.
func provideGitHubClient(ctx context.Context, cfg *config.Config, slogLogger *slog.Logger) (github.Client, error) {
	if cfg.HasAppAuth() {
		slogLogger.Info("authenticating as GitHub App installation", "app_id", cfg.GitHubAppID)
		return github.NewInstallationClient(cfg.GitHubAppID, cfg.GitHubAppPrivateKeyPath, cfg.GitHubAppInstallationID, slogLogger)
	}
	return github.NewPATClient(ctx, cfg.GitHubToken, slogLogger), nil
}

// provideRepoConfig loads the optional per-repository tuning file. Absence
// is the normal case and a broken file degrades to defaults.
func provideRepoConfig(cfg *config.Config, slogLogger *slog.Logger) *core.RepoConfig {
	repoCfg, err := config.LoadRepoConfig(cfg.Workspace)
	switch {
	case err == nil:
		slogLogger.Info("loaded repository config", "file", core.RepoConfigFileName)
		return repoCfg
	case errors.Is(err, config.ErrRepoConfigNotFound):
		return repoCfg
	default:
		slogLogger.Warn("failed to load repository config, using defaults", "error", err)
		return core.DefaultRepoConfig()
	}
}

// provideEvaluator returns a nil Evaluator when no model credential is
// configured, which switches the analyzer to heuristic scoring. A model
// that cannot be constructed degrades the same way instead of failing
// the run.
func provideEvaluator(ctx context.Context, cfg *config.Config, prompts *llm.PromptManager, slogLogger *slog.Logger) llm.Evaluator {
	if !cfg.ModelEnabled() {
		slogLogger.Info("no model credential configured, scoring heuristically")
		return nil
	}

	model, err := llm.NewModel(ctx, cfg, slogLogger)
	if err != nil {
		slogLogger.Warn("failed to create model client, scoring heuristically", "provider", cfg.LLMProvider, "error", err)
		return nil
	}
	return llm.NewEvaluator(model, prompts, llm.ModelProvider(cfg.LLMProvider), slogLogger)
}

func provideEmitter(slogLogger *slog.Logger) *actions.Emitter {
	return actions.NewEmitter(slogLogger, os.Stdout)
}
