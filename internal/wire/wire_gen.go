// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/issue-warden/internal/analyzer"
	"github.com/sevigo/issue-warden/internal/app"
	"github.com/sevigo/issue-warden/internal/config"
	"github.com/sevigo/issue-warden/internal/github"
	"github.com/sevigo/issue-warden/internal/llm"
)

// InitializeApp creates and wires all dependencies of the Actions
// entrypoint.
func InitializeApp(ctx context.Context) (*app.App, error) {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Logger
	slogLogger := provideSlogLogger(provideLoggerConfig(cfg), provideLogWriter())

	// GitHub client
	ghClient, err := provideGitHubClient(ctx, cfg, slogLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	// Prompt manager
	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	// Analyzer
	evaluator := provideEvaluator(ctx, cfg, promptMgr, slogLogger)
	repoCfg := provideRepoConfig(cfg, slogLogger)
	svc := analyzer.NewService(ghClient, evaluator, repoCfg, slogLogger)

	// Publishing and run outputs
	publisher := github.NewPublisher(ghClient, slogLogger)
	emitter := provideEmitter(slogLogger)

	return app.New(cfg, svc, publisher, emitter, slogLogger), nil
}

// InitializeCheck wires the subset of the graph the local check command
// needs. Repository and PR number are resolved by the caller.
func InitializeCheck(ctx context.Context) (*CheckComponents, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slogLogger := provideSlogLogger(provideLoggerConfig(cfg), provideLogWriter())

	ghClient, err := provideGitHubClient(ctx, cfg, slogLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	evaluator := provideEvaluator(ctx, cfg, promptMgr, slogLogger)
	repoCfg := provideRepoConfig(cfg, slogLogger)
	svc := analyzer.NewService(ghClient, evaluator, repoCfg, slogLogger)
	publisher := github.NewPublisher(ghClient, slogLogger)

	return &CheckComponents{
		Cfg:       cfg,
		Analyzer:  svc,
		Publisher: publisher,
		Logger:    slogLogger,
	}, nil
}
