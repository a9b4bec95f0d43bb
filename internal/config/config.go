// Package config loads the bot's configuration from the process
// environment, with defaults suitable for a GitHub Actions runner.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/sevigo/issue-warden/internal/actions"
	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/logger"
)

// Providers the model client knows how to construct.
const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config holds the application's configuration values.
type Config struct {
	GitHubToken    string
	Repository     string
	PRNumber       int
	PostComment    bool
	UpdateExisting bool

	LLMProvider  string
	GeminiAPIKey string
	ModelName    string
	OllamaHost   string

	GitHubAppID             int64
	GitHubAppPrivateKeyPath string
	GitHubAppInstallationID int64

	Workspace string
	LogLevel  string
	LogFormat string
}

// LoadConfig reads configuration from environment variables and an optional
// .env file, sets defaults, and resolves the pull request number from the
// runner context when none is given explicitly. Validation is deferred to
// the command-specific Validate* methods because the local check command
// needs less than the Actions entrypoint.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")

	viper.SetDefault("POST_COMMENT", true)
	viper.SetDefault("UPDATE_EXISTING_COMMENT", true)
	viper.SetDefault("LLM_PROVIDER", ProviderGemini)
	viper.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("GITHUB_WORKSPACE", ".")

	// Action inputs arrive as INPUT_* variables; accept both spellings.
	bindWithInputAlias("GITHUB_TOKEN")
	bindWithInputAlias("PR_NUMBER")
	bindWithInputAlias("GEMINI_API_KEY")
	bindWithInputAlias("POST_COMMENT")
	bindWithInputAlias("UPDATE_EXISTING_COMMENT")
	bindWithInputAlias("MODEL_NAME")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing or broken .env never takes the run down; the runner
		// environment is the canonical source.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			slog.Warn("failed to read .env file", "error", err)
		}
	}

	prNumber := viper.GetInt("PR_NUMBER")
	if prNumber == 0 {
		prNumber = actions.DetectPRNumber()
	}

	modelName := viper.GetString("MODEL_NAME")
	if modelName == "" {
		switch viper.GetString("LLM_PROVIDER") {
		case ProviderOllama:
			modelName = "gemma3:latest"
		default:
			modelName = "gemini-2.5-flash"
		}
	}

	return &Config{
		GitHubToken:             viper.GetString("GITHUB_TOKEN"),
		Repository:              viper.GetString("GITHUB_REPOSITORY"),
		PRNumber:                prNumber,
		PostComment:             viper.GetBool("POST_COMMENT"),
		UpdateExisting:          viper.GetBool("UPDATE_EXISTING_COMMENT"),
		LLMProvider:             viper.GetString("LLM_PROVIDER"),
		GeminiAPIKey:            viper.GetString("GEMINI_API_KEY"),
		ModelName:               modelName,
		OllamaHost:              viper.GetString("OLLAMA_HOST"),
		GitHubAppID:             viper.GetInt64("GITHUB_APP_ID"),
		GitHubAppPrivateKeyPath: viper.GetString("GITHUB_APP_PRIVATE_KEY_PATH"),
		GitHubAppInstallationID: viper.GetInt64("GITHUB_APP_INSTALLATION_ID"),
		Workspace:               viper.GetString("GITHUB_WORKSPACE"),
		LogLevel:                viper.GetString("LOG_LEVEL"),
		LogFormat:               viper.GetString("LOG_FORMAT"),
	}, nil
}

func bindWithInputAlias(key string) {
	// Binding can only fail for an empty key.
	_ = viper.BindEnv(key, key, "INPUT_"+key)
}

// ValidateForAction checks everything the Actions entrypoint needs.
func (c *Config) ValidateForAction() error {
	if err := c.validateAuth(); err != nil {
		return err
	}
	if _, err := c.RepoRef(); err != nil {
		return err
	}
	if c.PRNumber <= 0 {
		return fmt.Errorf("PR_NUMBER must be set (or the run must be in a pull request context)")
	}
	return nil
}

// ValidateForCheck checks what the local check command needs. Repository and
// PR number may come from the command line instead of the environment.
func (c *Config) ValidateForCheck() error {
	return c.validateAuth()
}

func (c *Config) validateAuth() error {
	if c.GitHubToken == "" && !c.HasAppAuth() {
		return fmt.Errorf("GITHUB_TOKEN must be set (or GitHub App credentials provided)")
	}
	return nil
}

// HasAppAuth reports whether the full GitHub App credential trio is
// configured.
func (c *Config) HasAppAuth() bool {
	return c.GitHubAppID > 0 && c.GitHubAppPrivateKeyPath != "" && c.GitHubAppInstallationID > 0
}

// ModelEnabled reports whether a model credential is configured; without
// one the analyzer scores heuristically.
func (c *Config) ModelEnabled() bool {
	switch c.LLMProvider {
	case ProviderGemini:
		return c.GeminiAPIKey != ""
	case ProviderOllama:
		return c.OllamaHost != ""
	default:
		return false
	}
}

// RepoRef parses the owner/repo coordinate.
func (c *Config) RepoRef() (core.RepoRef, error) {
	if c.Repository == "" {
		return core.RepoRef{}, fmt.Errorf("GITHUB_REPOSITORY must be set")
	}
	return core.ParseRepoRef(c.Repository)
}

// LoggerConfig adapts the logging fields for the logger package.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat}
}
