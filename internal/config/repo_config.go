package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/issue-warden/internal/core"
)

var (
	// ErrRepoConfigNotFound signals the repository ships no tuning file,
	// which is the common case and never fatal.
	ErrRepoConfigNotFound = errors.New("repo config file not found")
	// ErrRepoConfigParsing wraps YAML errors so callers can log and fall
	// back to defaults.
	ErrRepoConfigParsing = errors.New("repo config parsing failed")
)

// LoadRepoConfig loads and parses the .issue-warden.yml file from the
// workspace path.
func LoadRepoConfig(workspace string) (*core.RepoConfig, error) {
	configPath := filepath.Join(workspace, core.RepoConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.DefaultRepoConfig(), ErrRepoConfigNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", core.RepoConfigFileName, err)
	}

	repoCfg := core.DefaultRepoConfig()
	if err := yaml.Unmarshal(data, repoCfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRepoConfigParsing, err)
	}
	repoCfg.Normalize()
	return repoCfg, nil
}
