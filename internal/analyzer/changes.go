package analyzer

import (
	"path"
	"strings"

	"github.com/sevigo/issue-warden/internal/core"
)

// lowSignalKeepThreshold keeps a low-signal file in play when its own change
// count is large enough to matter, for example a sweeping README rewrite.
const lowSignalKeepThreshold = 10

// Extensions that rarely carry implementation changes. filepath.Ext treats
// ".gitignore" itself as the extension, so dotfiles land here too.
var lowSignalExts = map[string]struct{}{
	".md":        {},
	".txt":       {},
	".gitignore": {},
	".yml":       {},
	".yaml":      {},
	".json":      {},
}

// Path fragments that indicate test files.
var testPathFragments = []string{"test", "spec", "__tests__", ".test.", ".spec."}

// Path fragments that indicate documentation.
var docPathFragments = []string{"readme", ".md", "docs/", "documentation"}

// Path fragments that indicate configuration or build plumbing, which raises
// merge risk.
var configPathFragments = []string{"config", "package.json", "requirements.txt", "dockerfile", ".env"}

// MeaningfulChanges reports whether the diff contains changes worth scoring.
// Low-signal files (documentation, config metadata, anything the repo config
// excludes) only count when they individually clear the keep threshold.
func MeaningfulChanges(files []core.FileChange, repo *core.RepoConfig) bool {
	if len(files) == 0 || totalFileChanges(files) == 0 {
		return false
	}

	filtered := filterLowSignal(files, repo)
	for _, f := range filtered {
		if f.Changes > 0 {
			return true
		}
	}
	return false
}

func filterLowSignal(files []core.FileChange, repo *core.RepoConfig) []core.FileChange {
	var kept []core.FileChange
	for _, f := range files {
		if repo != nil && underExcludedDir(f.Path, repo.ExcludeDirs) {
			continue
		}
		if isLowSignalExt(f.Path, repo) && f.Changes <= lowSignalKeepThreshold {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func isLowSignalExt(filePath string, repo *core.RepoConfig) bool {
	ext := strings.ToLower(path.Ext(filePath))
	if _, ok := lowSignalExts[ext]; ok {
		return true
	}
	if repo != nil {
		for _, extra := range repo.ExcludeExts {
			if ext == extra {
				return true
			}
		}
	}
	return false
}

func underExcludedDir(filePath string, dirs []string) bool {
	for _, dir := range dirs {
		dir = strings.Trim(dir, "/")
		if dir == "" {
			continue
		}
		if strings.HasPrefix(filePath, dir+"/") || strings.Contains(filePath, "/"+dir+"/") {
			return true
		}
	}
	return false
}

func totalFileChanges(files []core.FileChange) int {
	total := 0
	for _, f := range files {
		total += f.Changes
	}
	return total
}

func testsTouched(files []core.FileChange) bool {
	return anyPathContains(files, testPathFragments)
}

func docsTouched(files []core.FileChange) bool {
	return anyPathContains(files, docPathFragments)
}

func configTouched(files []core.FileChange) bool {
	return anyPathContains(files, configPathFragments)
}

func anyPathContains(files []core.FileChange, fragments []string) bool {
	for _, f := range files {
		lower := strings.ToLower(f.Path)
		for _, fragment := range fragments {
			if strings.Contains(lower, fragment) {
				return true
			}
		}
	}
	return false
}
