// Package gitutil resolves GitHub repository coordinates from pull request
// URLs and local working copies.
package gitutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sevigo/issue-warden/internal/core"
)

var prURLRegex = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/pull/(\d+)$`)

// ParsePullRequestURL extracts the repository and PR number from a GitHub
// pull request URL. Supported format: https://github.com/{owner}/{repo}/pull/{number}
func ParsePullRequestURL(url string) (core.RepoRef, int, error) {
	url = strings.TrimSuffix(url, "/")

	matches := prURLRegex.FindStringSubmatch(url)
	if len(matches) != 4 {
		return core.RepoRef{}, 0, fmt.Errorf("invalid pull request URL format: %s", url)
	}

	prNumber, err := strconv.Atoi(matches[3])
	if err != nil {
		return core.RepoRef{}, 0, fmt.Errorf("invalid PR number '%s': %w", matches[3], err)
	}

	return core.RepoRef{Owner: matches[1], Name: matches[2]}, prNumber, nil
}
