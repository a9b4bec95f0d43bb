package core

import "strings"

// RepoConfigFileName is looked up in the workspace root on every run.
const RepoConfigFileName = ".issue-warden.yml"

// RepoConfig is the optional per-repository tuning file
// (.issue-warden.yml). All fields extend the built-in behavior; an absent
// file means zero-value defaults.
type RepoConfig struct {
	// Extra instructions appended verbatim to the model prompt.
	CustomInstructions []string `yaml:"custom_instructions"`

	// Directories whose files never count as meaningful changes.
	// Example: ["dist", "vendor"]
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Extensions treated as low-signal in addition to the built-in set.
	// The leading dot is optional. Example: [".lock", "snap"]
	ExcludeExts []string `yaml:"exclude_exts"`
}

// DefaultRepoConfig returns an empty config.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		CustomInstructions: []string{},
		ExcludeDirs:        []string{},
		ExcludeExts:        []string{},
	}
}

// Normalize gives every configured extension its leading dot and lowercases
// it, so lookups against filepath.Ext output are direct. Called once after
// unmarshaling.
func (c *RepoConfig) Normalize() {
	for i, ext := range c.ExcludeExts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.ExcludeExts[i] = ext
	}
}
