package gitutil

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/sevigo/issue-warden/internal/core"
)

// remoteURLRegex accepts the https, ssh, and scp-like forms GitHub hands out
// for clone URLs.
var remoteURLRegex = regexp.MustCompile(`github\.com[:/]([^/]+)/([^/]+)$`)

// InferRepoFromDir resolves owner/repo from the origin remote of the Git
// repository containing dir. It walks up to the enclosing .git directory, so
// it works from anywhere inside a checkout.
func InferRepoFromDir(dir string) (core.RepoRef, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return core.RepoRef{}, fmt.Errorf("failed to open git repository at %s: %w", dir, err)
	}

	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return core.RepoRef{}, fmt.Errorf("failed to resolve origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return core.RepoRef{}, fmt.Errorf("origin remote has no URL configured")
	}

	return parseRemoteURL(urls[0])
}

func parseRemoteURL(url string) (core.RepoRef, error) {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")
	url = strings.TrimSuffix(url, ".git")

	matches := remoteURLRegex.FindStringSubmatch(url)
	if len(matches) != 3 {
		return core.RepoRef{}, fmt.Errorf("remote URL %q does not look like a GitHub repository", url)
	}

	return core.RepoRef{Owner: matches[1], Name: matches[2]}, nil
}
