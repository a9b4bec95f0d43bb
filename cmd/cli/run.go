package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/issue-warden/internal/wire"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze the pull request from the surrounding GitHub Actions context",
	Long: `Analyze the pull request the workflow run belongs to.

Repository and PR number come from the runner environment (GITHUB_REPOSITORY,
PR_NUMBER, or the event payload). The verdict is published as run outputs, a
step summary, and a sticky summary comment on the pull request.`,
	Args: cobra.NoArgs,
	RunE: runAction,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(runCmd)
}

func runAction(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	application, err := wire.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run(ctx)
}
