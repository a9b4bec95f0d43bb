// Package actions covers the GitHub Actions surface of the bot: resolving
// the pull request number from the runner environment and emitting run
// outputs, annotations, and the step summary.
package actions

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// workflowEvent is the slice of the webhook payload the bot cares about.
type workflowEvent struct {
	PullRequest struct {
		Number int `json:"number"`
	} `json:"pull_request"`
	Issue struct {
		Number      int `json:"number"`
		PullRequest *struct {
			URL string `json:"url"`
		} `json:"pull_request"`
	} `json:"issue"`
	// workflow_dispatch with an explicit number input.
	Number int `json:"number"`
}

// DetectPRNumber resolves the pull request number from the runner
// environment when no explicit one was configured. Returns 0 when the run
// is not in a pull request context.
func DetectPRNumber() int {
	if path := os.Getenv("GITHUB_EVENT_PATH"); path != "" {
		if n, err := prNumberFromEventPayload(path); err == nil && n > 0 {
			return n
		}
	}
	return prNumberFromRef(os.Getenv("GITHUB_REF"))
}

func prNumberFromEventPayload(eventPath string) (int, error) {
	data, err := os.ReadFile(eventPath)
	if err != nil {
		return 0, err
	}
	var ev workflowEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return 0, err
	}

	// pull_request event, the common trigger.
	if ev.PullRequest.Number != 0 {
		return ev.PullRequest.Number, nil
	}
	// issue_comment event on a PR.
	if ev.Issue.Number != 0 && ev.Issue.PullRequest != nil {
		return ev.Issue.Number, nil
	}
	// workflow_dispatch with a number input.
	return ev.Number, nil
}

// prNumberFromRef parses refs/pull/123/merge style refs.
func prNumberFromRef(ref string) int {
	if !strings.HasPrefix(ref, "refs/pull/") {
		return 0
	}
	parts := strings.Split(ref, "/")
	if len(parts) < 3 {
		return 0
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 0 {
		return 0
	}
	return n
}
