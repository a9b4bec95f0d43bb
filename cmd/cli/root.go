package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var githubToken string

var rootCmd = &cobra.Command{
	Use:   "issue-warden",
	Short: "issue-warden checks pull requests against their linked issues.",
	Long: `issue-warden fetches a pull request's metadata, diff, and linked issues,
evaluates whether the implementation satisfies what the issues ask for, and
summarizes the verdict in a single comment.

Inside GitHub Actions use "run"; from a terminal use "check".`,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub token")

	if err := viper.BindPFlag("GITHUB_TOKEN", rootCmd.PersistentFlags().Lookup("github-token")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}
